package handlers

import (
	"renthub/internal/app"
	contractController "renthub/internal/controllers/contracts"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
)

type ContractHandler struct {
	Handler
	contractController contractController.ContractControllerInterface
	tokenService       *services.TokenService
}

func NewContractHandler(app app.App, router fiber.Router) *ContractHandler {
	return &ContractHandler{
		contractController: app.Controllers.Contract,
		tokenService:       app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("contract_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ContractHandler) Register() {
	contracts := h.router.Group("/contracts", h.middleware.RequireAuth(h.tokenService))
	contracts.Get("/", h.list)
	contracts.Get("/:id/", h.get)

	admin := contracts.Group("/", h.middleware.RequireAdmin())
	admin.Post("/", h.create)
	admin.Patch("/:id/", h.update)
	admin.Delete("/:id/", h.delete)
}

func (h *ContractHandler) list(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}

	result, err := h.contractController.List(c.UserContext(), viewer, parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *ContractHandler) get(c *fiber.Ctx) error {
	viewer, err := requireUser(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	contract, err := h.contractController.Get(c.UserContext(), viewer, id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(contract)
}

func (h *ContractHandler) create(c *fiber.Ctx) error {
	var request models.CreateContractRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contract, err := h.contractController.Create(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(contract)
}

func (h *ContractHandler) update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.UpdateContractRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	contract, err := h.contractController.Update(c.UserContext(), id, request)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(contract)
}

func (h *ContractHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.contractController.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
