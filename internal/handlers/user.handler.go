package handlers

import (
	"renthub/internal/app"
	userController "renthub/internal/controllers/users"
	"renthub/internal/handlers/middleware"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
	tokenService   *services.TokenService
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		userController: app.Controllers.User,
		tokenService:   app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("user_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	protected := users.Group("/", h.middleware.RequireAuth(h.tokenService))

	protected.Get("/me/", h.getCurrentUser)

	admin := protected.Group("/", h.middleware.RequireAdmin())
	admin.Get("/", h.list)
	admin.Post("/", h.create)
	admin.Get("/:id/", h.get)
	admin.Patch("/:id/", h.update)
	admin.Delete("/:id/", h.delete)
	admin.Post("/:id/photo/", h.setPhoto)

	references := h.router.Group(
		"/reference-persons",
		h.middleware.RequireAuth(h.tokenService),
		h.middleware.RequireAdmin(),
	)
	references.Get("/", h.listReferences)
	references.Post("/", h.createReference)
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}
	return c.JSON(fiber.Map{"user": user.ToProfile()})
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	result, err := h.userController.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *UserHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	user, err := h.userController.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) create(c *fiber.Ctx) error {
	var request models.CreateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.userController.Create(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.UpdateUserRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := h.userController.Update(c.UserContext(), id, request)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.userController.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *UserHandler) setPhoto(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"photo": "Este campo es obligatorio"},
		})
	}

	user, err := h.userController.SetPhoto(c.UserContext(), id, file)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) listReferences(c *fiber.Ctx) error {
	result, err := h.userController.ListReferences(c.UserContext(), parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *UserHandler) createReference(c *fiber.Ctx) error {
	var request models.CreateReferencePersonRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	reference, err := h.userController.CreateReference(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(reference)
}
