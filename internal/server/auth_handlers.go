package server

import (
	"time"

	"datingmeet/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DevTokenRequest is the body for POST /api/auth/dev-token.
type DevTokenRequest struct {
	UserID string `json:"userId"`
}

// IssueDevToken mints a signed token for local development and tests. The
// route is only registered outside production; real deployments get tokens
// from the identity provider.
func (s *Server) IssueDevToken(c *fiber.Ctx) error {
	var req DevTokenRequest
	if err := s.parseBody(c, &req); err != nil {
		return nil
	}
	if req.UserID == "" {
		return models.RespondWithError(c,
			models.NewInvalidRequestError("userId is required"))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": jwtIssuer,
		"aud": jwtAudience,
		"sub": req.UserID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return models.RespondWithError(c, models.NewPersistenceError(err))
	}

	return models.Respond(c, fiber.StatusOK, "Token issued", fiber.Map{
		"token":     signed,
		"expiresAt": now.Add(24 * time.Hour),
	})
}
