package server

import (
	"datingmeet/internal/models"
	"datingmeet/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

// GetMatches handles GET /api/matches
func (s *Server) GetMatches(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 50)

	matches, err := s.matchService.List(c.UserContext(), userID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Matches retrieved", matches)
}

// GetMatch handles GET /api/matches/:id
func (s *Server) GetMatch(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	match, err := s.matchService.Get(c.UserContext(), userID, matchID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Match retrieved", match)
}

// EndMatch handles DELETE /api/matches/:id
func (s *Server) EndMatch(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	if err := s.matchService.End(c.UserContext(), userID, matchID); err != nil {
		return models.RespondWithError(c, err)
	}

	s.publishMatchEvent(matchID, notifications.EventMatchEnded, map[string]interface{}{
		"matchId": matchID,
		"endedBy": userID,
	})

	return models.Respond(c, fiber.StatusOK, "Match ended", nil)
}

// MarkMatchSeen handles POST /api/matches/:id/seen
func (s *Server) MarkMatchSeen(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	matchID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	if err := s.matchService.MarkSeen(c.UserContext(), userID, matchID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Match marked seen", nil)
}
