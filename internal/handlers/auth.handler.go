package handlers

import (
	"renthub/internal/app"
	authController "renthub/internal/controllers/auth"
	"renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler: Handler{
			log:        logger.New("handlers").File("auth_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	token := h.router.Group("/token")
	token.Post("/", h.login)
	token.Post("/refresh/", h.refresh)
	token.Post("/logout/", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var request models.LoginRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pair, user, err := h.authController.Login(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(fiber.Map{
		"access":    pair.AccessToken,
		"refresh":   pair.RefreshToken,
		"tokenType": pair.TokenType,
		"expiresIn": pair.ExpiresIn,
		"user":      user.ToProfile(),
	})
}

func (h *AuthHandler) refresh(c *fiber.Ctx) error {
	var request models.RefreshRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	pair, err := h.authController.Refresh(c.UserContext(), request.Refresh)
	if err != nil {
		return handleError(c, err)
	}

	return c.JSON(pair)
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	var request models.RefreshRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.authController.Logout(c.UserContext(), request.Refresh); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
