package server

import (
	"strings"

	"datingmeet/internal/models"
	"datingmeet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpsertProfileRequest is the body for PUT /api/profiles/me.
type UpsertProfileRequest struct {
	Name      string   `json:"name"`
	BirthDate string   `json:"birthDate"`
	Gender    string   `json:"gender"`
	Bio       string   `json:"bio"`
	Photos    []string `json:"photos"`
}

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile retrieved", profile)
}

// UpsertMyProfile handles PUT /api/profiles/me
func (s *Server) UpsertMyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	var req UpsertProfileRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}

	profile, err := s.profileService.Upsert(c.UserContext(), service.UpsertProfileInput{
		UserID:    userID,
		Name:      req.Name,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		Bio:       req.Bio,
		Photos:    req.Photos,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile saved", profile)
}

// DeleteMyProfile handles DELETE /api/profiles/me
func (s *Server) DeleteMyProfile(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}

	if err := s.profileService.Delete(c.UserContext(), userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile deleted", nil)
}

// DiscoverProfiles handles GET /api/profiles/discover
func (s *Server) DiscoverProfiles(c *fiber.Ctx) error {
	userID, err := s.currentUserID(c)
	if err != nil {
		return nil
	}
	page := parsePagination(c, 20)
	gender := strings.TrimSpace(c.Query("gender"))

	profiles, err := s.profileService.Discover(c.UserContext(), userID, gender, page.Limit)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profiles retrieved", profiles)
}

// GetProfile handles GET /api/profiles/:userId
func (s *Server) GetProfile(c *fiber.Ctx) error {
	if _, err := s.currentUserID(c); err != nil {
		return nil
	}
	targetID, err := s.parseIDParam(c, "userId")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.Get(c.UserContext(), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, "Profile retrieved", profile)
}
