package handlers

import (
	"renthub/internal/app"
	buildingController "renthub/internal/controllers/buildings"
	roomController "renthub/internal/controllers/rooms"
	"renthub/internal/models"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type BuildingHandler struct {
	Handler
	buildingController buildingController.BuildingControllerInterface
	roomController     roomController.RoomControllerInterface
	tokenService       *services.TokenService
}

func NewBuildingHandler(app app.App, router fiber.Router) *BuildingHandler {
	return &BuildingHandler{
		buildingController: app.Controllers.Building,
		roomController:     app.Controllers.Room,
		tokenService:       app.Services.Token,
		Handler: Handler{
			log:        logger.New("handlers").File("building_handler"),
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *BuildingHandler) Register() {
	buildings := h.router.Group("/buildings", h.middleware.RequireAuth(h.tokenService))
	buildings.Get("/", h.list)
	buildings.Get("/:id/", h.get)

	adminBuildings := buildings.Group("/", h.middleware.RequireAdmin())
	adminBuildings.Post("/", h.create)
	adminBuildings.Patch("/:id/", h.update)

	rooms := h.router.Group("/rooms", h.middleware.RequireAuth(h.tokenService))
	rooms.Get("/", h.listRooms)
	rooms.Get("/available/", h.listAvailableRooms)
	rooms.Post("/", h.middleware.RequireAdmin(), h.createRoom)
}

func (h *BuildingHandler) list(c *fiber.Ctx) error {
	result, err := h.buildingController.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *BuildingHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	building, err := h.buildingController.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(building)
}

func (h *BuildingHandler) create(c *fiber.Ctx) error {
	var request models.CreateBuildingRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	building, err := h.buildingController.Create(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(building)
}

func (h *BuildingHandler) update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return handleError(c, err)
	}

	var request models.UpdateBuildingRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	building, err := h.buildingController.Update(c.UserContext(), id, request)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(building)
}

func (h *BuildingHandler) listRooms(c *fiber.Ctx) error {
	result, err := h.roomController.List(c.UserContext(), parseListParams(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(result)
}

func (h *BuildingHandler) listAvailableRooms(c *fiber.Ctx) error {
	var buildingID *uuid.UUID
	if raw := c.Query("building_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": fiber.Map{"buildingId": "Identificador inválido"},
			})
		}
		buildingID = &id
	}

	rooms, err := h.roomController.ListAvailable(c.UserContext(), buildingID)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(rooms)
}

func (h *BuildingHandler) createRoom(c *fiber.Ctx) error {
	var request models.CreateRoomRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	room, err := h.roomController.Create(c.UserContext(), request)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(room)
}
