package handlers

import (
	"renthub/internal/app"
	paymentController "renthub/internal/controllers/payments"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Handler
	paymentController paymentController.PaymentControllerInterface
	uploadService     *services.UploadService
	tokenService      *services.TokenService
}

func NewPaymentHandler(app app.App, router fiber.Router) *PaymentHandler {
	return &PaymentHandler{
		paymentController: app.Controllers.Payment,
		uploadService:     app.Services.Upload,
		tokenService:      app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("payment_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *PaymentHandler) Register() {
	payments := h.router.Group("/payments/rent", h.middleware.RequireAuth(h.tokenService))
	payments.Get("/", h.list)
	// Literal routes register before the :id routes or they would never match.
	payments.Get("/export/", h.middleware.RequireAdmin(), h.export)
	payments.Get("/:id/", h.get)
	payments.Get("/:id/receipt/", h.downloadReceipt)
	payments.Patch("/:id/", h.uploadReceipt)

	admin := payments.Group("/", h.middleware.RequireAdmin())
	admin.Post("/:id/approve/", h.approve)
	admin.Post("/:id/reject/", h.reject)
}

func (h *PaymentHandler) list(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.paymentController.List(c.UserContext(), viewer, parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *PaymentHandler) get(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	payment, err := h.paymentController.Get(c.UserContext(), viewer, id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(payment)
}

// uploadReceipt is the multipart PATCH attaching a receipt image and optional
// tenant comment.
func (h *PaymentHandler) uploadReceipt(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	file, err := c.FormFile("receipt")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"errors": fiber.Map{"receipt": "Este campo es obligatorio"},
		})
	}
	comment := c.FormValue("userComment")

	payment, err := h.paymentController.UploadReceipt(c.UserContext(), viewer, id, file, comment)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(payment)
}

func (h *PaymentHandler) downloadReceipt(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	payment, err := h.paymentController.Get(c.UserContext(), viewer, id)
	if err != nil {
		return handleError(c, err)
	}
	if payment.ReceiptPath == "" {
		return handleError(c, models.ErrNotFound)
	}

	return c.SendFile(h.uploadService.FullPath(payment.ReceiptPath))
}

func (h *PaymentHandler) approve(c *fiber.Ctx) error {
	return h.review(c, true)
}

func (h *PaymentHandler) reject(c *fiber.Ctx) error {
	return h.review(c, false)
}

func (h *PaymentHandler) review(c *fiber.Ctx, approve bool) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.ReviewPaymentRequest
	if err := c.BodyParser(&request); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	payment, err := h.paymentController.Review(c.UserContext(), id, approve, request.AdminComment)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(payment)
}

func (h *PaymentHandler) export(c *fiber.Ctx) error {
	buffer, filename, err := h.paymentController.ExportXLSX(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Set(fiber.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Send(buffer.Bytes())
}
