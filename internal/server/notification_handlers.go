package server

import (
	"datingmeet/internal/models"
	"datingmeet/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, repository.DefaultNotificationPageSize)

	items, err := s.notificationService.List(c.UserContext(), userID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Notifications retrieved", items)
}

// GetRecentNotifications handles GET /api/notifications/recent
func (s *Server) GetRecentNotifications(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, repository.DefaultRecentNotificationLimit)

	items, err := s.notificationService.ListRecent(c.UserContext(), userID, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Recent notifications retrieved", items)
}

// GetUnreadCount handles GET /api/notifications/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	count, err := s.notificationService.CountUnread(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Unread count retrieved", count)
}

// MarkNotificationRead handles POST /api/notifications/:id/read
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	notificationID, err := s.parseIDParam(c, "id")
	if err != nil {
		return nil
	}

	if err := s.notificationService.MarkRead(c.UserContext(), userID, notificationID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Notification marked read", nil)
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (s *Server) MarkAllNotificationsRead(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	result, err := s.notificationService.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "All notifications marked read", result)
}
