package server

import (
	"datingmeet/internal/models"
	"datingmeet/internal/notifications"
	"datingmeet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitLikeRequest is the body for POST /api/likes.
// fromUserId is optional; when present it must match the authenticated user.
type SubmitLikeRequest struct {
	FromUserID  string `json:"fromUserId"`
	ToProfileID string `json:"toProfileId"`
	ActionType  string `json:"actionType"`
	Message     string `json:"message"`
}

// SubmitLike handles POST /api/likes
func (s *Server) SubmitLike(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req SubmitLikeRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	// The acting user is always the token subject. A mismatching body value
	// is an attempt to act on someone else's behalf.
	if req.FromUserID != "" && req.FromUserID != userID {
		return models.RespondWithError(c,
			models.NewForbiddenError("Cannot submit actions for another user"))
	}

	result, err := s.likeService.SubmitLike(c.UserContext(), service.SubmitLikeInput{
		FromUserID:  userID,
		ToProfileID: req.ToProfileID,
		ActionType:  models.LikeAction(req.ActionType),
		Message:     req.Message,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishLikeEvents(result)

	return models.Respond(c, fiber.StatusCreated, "Action recorded", result)
}

// publishLikeEvents fans out real-time events for an accepted action.
// Recipients are derived from the persisted notifications so real-time
// delivery never disagrees with the inbox.
func (s *Server) publishLikeEvents(result *service.SubmitLikeResult) {
	for _, n := range result.Notifications {
		payload := map[string]interface{}{
			"notificationId": n.ID,
			"message":        n.Message,
		}
		eventType := notifications.EventNewLike
		if n.Type == models.NotificationMatch {
			eventType = notifications.EventNewMatch
			if result.Match != nil {
				payload["matchId"] = result.Match.ID
			}
		}
		s.publishUserEvent(n.UserID, eventType, payload)
	}
}

// GetSentLikes handles GET /api/likes/sent
func (s *Server) GetSentLikes(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	likes, err := s.likeService.ListSentLikes(c.UserContext(), userID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Sent likes retrieved", likes)
}

// GetReceivedLikes handles GET /api/likes/received
func (s *Server) GetReceivedLikes(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	likes, err := s.likeService.ListReceivedLikes(c.UserContext(), userID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Received likes retrieved", likes)
}

// GetDailyLimit handles GET /api/likes/limit
func (s *Server) GetDailyLimit(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	status, err := s.likeService.GetDailyLimitStatus(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Daily limit retrieved", status)
}

// Unlike handles DELETE /api/likes/:id
func (s *Server) Unlike(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	likeID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	if err := s.likeService.Unlike(c.UserContext(), userID, likeID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Like withdrawn", nil)
}
