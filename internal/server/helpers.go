package server

import (
	"errors"
	"strings"

	"datingmeet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// currentUserID returns the authenticated user ID stored by AuthRequired.
// On failure it writes a 401 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) currentUserID(c *fiber.Ctx) (string, error) {
	userID, ok := c.Locals("userID").(string)
	if !ok || userID == "" {
		_ = models.RespondWithError(c,
			models.NewUnauthorizedError("Authentication required"))
		return "", errResponseWritten
	}
	return userID, nil
}

// parseIDParam extracts a non-empty route parameter by name.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseIDParam(c *fiber.Ctx, param string) (string, error) {
	id := strings.TrimSpace(c.Params(param))
	if id == "" {
		_ = models.RespondWithError(c,
			models.NewInvalidRequestError("Invalid "+humanizeParam(param)))
		return "", errResponseWritten
	}
	return id, nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		return strings.ToLower(param[:len(param)-2]) + " ID"
	}
	return param
}

// parseBody binds the JSON request body into dest.
// On failure it writes a 400 JSON response and returns errResponseWritten.
func (s *Server) parseBody(c *fiber.Ctx, dest interface{}) error {
	if err := c.BodyParser(dest); err != nil {
		_ = models.RespondWithError(c,
			models.NewInvalidRequestError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}
