package handlers

import (
	"renthub/internal/app"
	laundryController "renthub/internal/controllers/laundry"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type LaundryHandler struct {
	Handler
	laundryController laundryController.LaundryControllerInterface
	tokenService      *services.TokenService
}

func NewLaundryHandler(app app.App, router fiber.Router) *LaundryHandler {
	return &LaundryHandler{
		laundryController: app.Controllers.Laundry,
		tokenService:      app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("laundry_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *LaundryHandler) Register() {
	bookings := h.router.Group("/laundry-bookings", h.middleware.RequireAuth(h.tokenService))
	bookings.Get("/", h.list)
	bookings.Post("/", h.create)
	bookings.Get("/:id/", h.get)
	bookings.Get("/:id/voucher/", h.voucher)

	// Each workflow action is its own endpoint; the controller enforces who may
	// invoke which.
	bookings.Post("/:id/approve/", h.action(models.ActionApprove))
	bookings.Post("/:id/reject/", h.action(models.ActionReject))
	bookings.Post("/:id/propose/", h.action(models.ActionPropose))
	bookings.Post("/:id/counter-propose/", h.action(models.ActionCounterPropose))
	bookings.Post("/:id/accept/", h.action(models.ActionAccept))
}

func (h *LaundryHandler) list(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.laundryController.List(c.UserContext(), viewer, parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *LaundryHandler) get(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	booking, err := h.laundryController.Get(c.UserContext(), viewer, id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(booking)
}

func (h *LaundryHandler) create(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.CreateLaundryBookingRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	booking, err := h.laundryController.Create(c.UserContext(), viewer, request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *LaundryHandler) action(action models.BookingAction) fiber.Handler {
	return func(c *fiber.Ctx) error {
		viewer, err := requireUser(c)
		if err != nil {
			return handleError(c, err)
		}
		id, err := parseID(c)
		if err != nil {
			return handleError(c, err)
		}

		var proposal *models.ProposeBookingRequest
		if action == models.ActionPropose || action == models.ActionCounterPropose {
			var request models.ProposeBookingRequest
			if err := c.BodyParser(&request); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid request body",
				})
			}
			proposal = &request
		}

		// Approvals may attach a voucher image via multipart.
		voucher, _ := c.FormFile("voucher")

		booking, err := h.laundryController.Act(
			c.UserContext(), viewer, id, action, proposal, voucher,
		)
		if err != nil {
			return handleError(c, err)
		}
		return c.JSON(booking)
	}
}

func (h *LaundryHandler) voucher(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	path, err := h.laundryController.VoucherPath(c.UserContext(), viewer, id)
	if err != nil {
		return handleError(c, err)
	}
	return c.SendFile(path)
}
