package server

import (
	"datingmeet/internal/models"
	"datingmeet/internal/notifications"
	"datingmeet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMessageRequest is the body for POST /api/matches/:id/messages.
type SendMessageRequest struct {
	Content         string `json:"content"`
	MessageType     string `json:"messageType"`
	SuperchatPoints int    `json:"superchatPoints"`
}

// SendMessage handles POST /api/matches/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	var req SendMessageRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}
	if req.MessageType == "" {
		req.MessageType = string(models.MessageText)
	}

	msg, err := s.messageService.Send(c.UserContext(), service.SendMessageInput{
		SenderID:        userID,
		MatchID:         matchID,
		Content:         req.Content,
		MessageType:     models.MessageType(req.MessageType),
		SuperchatPoints: req.SuperchatPoints,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishMatchEvent(matchID, notifications.EventNewMessage, map[string]interface{}{
		"messageId": msg.ID,
		"matchId":   matchID,
		"senderId":  userID,
	})

	return models.Respond(c, fiber.StatusCreated, "Message sent", msg)
}

// GetMessages handles GET /api/matches/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	messages, err := s.messageService.List(c.UserContext(), userID, matchID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Messages retrieved", messages)
}

// MarkMessagesRead handles POST /api/matches/:id/messages/read
func (s *Server) MarkMessagesRead(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	updated, err := s.messageService.MarkRead(c.UserContext(), userID, matchID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Messages marked read", fiber.Map{
		"updated": updated,
	})
}
