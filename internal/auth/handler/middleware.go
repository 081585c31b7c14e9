package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/egarc258/ecommerce-app/internal/auth/domain"
	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	authconstant "github.com/egarc258/ecommerce-app/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequireAuth rejects requests without a valid bearer token for an active user and
// stores the user in Locals for the handlers behind it.
func (h *AuthHandler) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := h.resolver.Authenticate(c.UserContext(), extractBearerToken(c))
		if err != nil {
			switch {
			case errors.Is(err, autherror.ErrTokenExpired):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			case errors.Is(err, autherror.ErrTokenInvalid), errors.Is(err, autherror.ErrNotAuthenticated):
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrNotAuthenticated.Error()})
			default:
				return h.internalError(c, "authenticate request failed", err)
			}
		}

		c.Locals(authconstant.LocalsCurrentUser, user)
		return c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (h *AuthHandler) RequireRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": autherror.ErrNotAuthenticated.Error()})
		}
		if !user.HasRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": autherror.ErrForbidden.Error()})
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(authconstant.LocalsCurrentUser).(*domain.User)
	return user
}

func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		logger.Info("request", fields...)

		return err
	}
}

func extractBearerToken(c *fiber.Ctx) string {
	header := c.Get(authconstant.AuthorizationHeader)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], authconstant.DefaultTokenType) {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
