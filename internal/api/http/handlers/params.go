package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/wholesale-hub/wholesale-service/internal/api/validation"
	"github.com/wholesale-hub/wholesale-service/internal/auth"
	apperrors "github.com/wholesale-hub/wholesale-service/pkg/util/errorutil"
)

// parseBody decodes and validates a JSON payload.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	return validation.Struct(out)
}

func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid path parameter", map[string]any{name: c.Params(name)})
	}
	return id, nil
}

func principal(c *fiber.Ctx) (*auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return p, nil
}
