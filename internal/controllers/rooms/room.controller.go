package roomController

import (
	"context"
	"strings"
	"time"

	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

type RoomController struct {
	roomRepo     repositories.RoomRepository
	buildingRepo repositories.BuildingRepository
	log          logger.Logger
}

type RoomControllerInterface interface {
	List(ctx context.Context, params ListParams) (ListResult[Room], error)
	ListAvailable(ctx context.Context, buildingID *uuid.UUID) ([]Room, error)
	Get(ctx context.Context, id uuid.UUID) (*Room, error)
	Create(ctx context.Context, request CreateRoomRequest) (*Room, error)
}

func New(repos repositories.Repository) RoomControllerInterface {
	return &RoomController{
		roomRepo:     repos.Room,
		buildingRepo: repos.Building,
		log:          logger.New("roomController"),
	}
}

func (c *RoomController) List(
	ctx context.Context,
	params ListParams,
) (ListResult[Room], error) {
	log := c.log.Function("List")
	params.Normalize()

	rooms, err := c.roomRepo.List(ctx)
	if err != nil {
		return ListResult[Room]{}, log.Err("failed to list rooms", err)
	}

	filtered := utils.FilterBySearch(rooms, params.Search)
	if key := roomSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)

	return ListResult[Room]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func roomSortKey(field string) func(Room) string {
	switch field {
	case "number":
		return func(r Room) string { return strings.ToLower(r.Number) }
	case "building":
		return func(r Room) string {
			if r.Building == nil {
				return ""
			}
			return strings.ToLower(r.Building.Name)
		}
	case "createdAt":
		return func(r Room) string { return r.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

// ListAvailable returns unoccupied rooms, optionally narrowed to one building.
// Used by the contract form's room picker.
func (c *RoomController) ListAvailable(
	ctx context.Context,
	buildingID *uuid.UUID,
) ([]Room, error) {
	log := c.log.Function("ListAvailable")

	rooms, err := c.roomRepo.ListAvailable(ctx, buildingID)
	if err != nil {
		return nil, log.Err("failed to list available rooms", err)
	}
	if rooms == nil {
		rooms = []Room{}
	}
	return rooms, nil
}

func (c *RoomController) Get(ctx context.Context, id uuid.UUID) (*Room, error) {
	room, err := c.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return room, nil
}

func (c *RoomController) Create(
	ctx context.Context,
	request CreateRoomRequest,
) (*Room, error) {
	log := c.log.Function("Create")

	if errs := ValidateStruct(request); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	buildingID, err := uuid.Parse(request.BuildingID)
	if err != nil {
		return nil, FieldError("buildingId", "Identificador inválido")
	}
	if _, err := c.buildingRepo.GetByID(ctx, buildingID); err != nil {
		return nil, FieldError("buildingId", "Edificio no encontrado")
	}

	room := &Room{
		Number:     request.Number,
		BuildingID: buildingID,
	}
	if err := c.roomRepo.Create(ctx, room); err != nil {
		return nil, log.Err("failed to create room", err, "buildingID", buildingID)
	}

	log.Info("room created", "roomID", room.ID, "buildingID", buildingID)
	return room, nil
}
