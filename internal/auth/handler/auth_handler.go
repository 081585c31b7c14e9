package handler

import (
	"errors"

	"github.com/egarc258/ecommerce-app/internal/auth/dto"
	"github.com/egarc258/ecommerce-app/internal/auth/service"
	autherror "github.com/egarc258/ecommerce-app/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	resolver    *service.SessionResolver
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, resolver *service.SessionResolver, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{
		userService: userService,
		resolver:    resolver,
		validate:    validator.New(),
		logger:      logger,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input dto.RegisterInput
	if err := h.bind(c, &input); err != nil {
		return invalidInput(c, err)
	}

	resp, err := h.userService.Register(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrValidation) {
			return invalidInput(c, err)
		}
		if errors.Is(err, autherror.ErrEmailAlreadyInUse) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return h.internalError(c, "register failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input dto.LoginInput
	if err := h.bind(c, &input); err != nil {
		return invalidInput(c, err)
	}

	resp, err := h.userService.Login(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, autherror.ErrAuthenticationFailed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": autherror.ErrAuthenticationFailed.Error(),
			})
		}
		return h.internalError(c, "login failed", err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}

// Me answers 404 for an anonymous caller, the same as for a user that no longer exists.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.resolver.ResolveCurrent(c.UserContext(), extractBearerToken(c))
	if err != nil {
		return h.internalError(c, "resolve current user failed", err)
	}
	if user == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": autherror.ErrNotAuthenticated.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

// WhoAmI echoes the user placed in Locals by RequireAuth.
func (h *AuthHandler) WhoAmI(c *fiber.Ctx) error {
	user := CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": autherror.ErrNotAuthenticated.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(dto.NewUserOutput(user))
}

func (h *AuthHandler) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

func (h *AuthHandler) bind(c *fiber.Ctx, input interface{}) error {
	if err := c.BodyParser(input); err != nil {
		return err
	}
	return h.validate.Struct(input)
}

func invalidInput(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": autherror.ErrValidation.Error()}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]string, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, fe.Field()+": "+fe.Tag())
		}
		body["fields"] = fields
	}

	return c.Status(fiber.StatusBadRequest).JSON(body)
}

func (h *AuthHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.logger.Error(msg, zap.Error(err), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal server error",
	})
}
