package handlers

import (
	"renthub/internal/app"
	changeRequestController "renthub/internal/controllers/changerequests"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type ChangeRequestHandler struct {
	Handler
	changeRequestController changeRequestController.ChangeRequestControllerInterface
	tokenService            *services.TokenService
}

func NewChangeRequestHandler(app app.App, router fiber.Router) *ChangeRequestHandler {
	return &ChangeRequestHandler{
		changeRequestController: app.Controllers.ChangeRequest,
		tokenService:            app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("change_request_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ChangeRequestHandler) Register() {
	requests := h.router.Group("/change_requests", h.middleware.RequireAuth(h.tokenService))
	requests.Get("/", h.list)
	requests.Post("/", h.create)

	admin := requests.Group("/", h.middleware.RequireAdmin())
	admin.Post("/:id/approve/", h.approve)
	admin.Post("/:id/reject/", h.reject)
}

func (h *ChangeRequestHandler) list(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.changeRequestController.List(c.UserContext(), viewer, parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *ChangeRequestHandler) create(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.CreateChangeRequestRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	changeRequest, err := h.changeRequestController.Create(c.UserContext(), viewer, request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(changeRequest)
}

func (h *ChangeRequestHandler) approve(c *fiber.Ctx) error {
	return h.review(c, true)
}

func (h *ChangeRequestHandler) reject(c *fiber.Ctx) error {
	return h.review(c, false)
}

func (h *ChangeRequestHandler) review(c *fiber.Ctx, approve bool) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.ReviewChangeRequestRequest
	if err := c.BodyParser(&request); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	changeRequest, err := h.changeRequestController.Review(
		c.UserContext(), id, approve, request.ReviewComment,
	)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(changeRequest)
}
