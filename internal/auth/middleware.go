package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SubjectID string
	LoginID   string
	Role      domain.Role
}

// AuthMiddleware decodes bearer tokens and attaches principals. It never
// rejects a request; the route gates in roles.go decide.
type AuthMiddleware struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// Handle attaches a principal when a valid bearer token is present.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	raw, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := m.tokens.Decode(raw)
	if err != nil {
		m.logger.Debug("bearer token rejected",
			zap.String("path", c.Path()),
			zap.Error(err))
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		SubjectID: claims.Subject,
		LoginID:   claims.UserID,
		Role:      claims.Role,
	})
	return c.Next()
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
