package repositories

import (
	"context"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Room, error)
	List(ctx context.Context) ([]Room, error)
	ListAvailable(ctx context.Context, buildingID *uuid.UUID) ([]Room, error)
	Create(ctx context.Context, room *Room) error
	SetOccupied(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, occupied bool) error
}

type roomRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRoomRepository(db database.DB) RoomRepository {
	return &roomRepository{
		db:  db,
		log: logger.New("roomRepository"),
	}
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*Room, error) {
	log := r.log.Function("GetByID")

	var room Room
	if err := r.db.SQLWithContext(ctx).
		Preload("Building").
		First(&room, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get room", err, "id", id)
	}

	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]Room, error) {
	log := r.log.Function("List")

	var rooms []Room
	if err := r.db.SQLWithContext(ctx).
		Preload("Building").
		Order("number asc").
		Find(&rooms).Error; err != nil {
		return nil, log.Err("failed to list rooms", err)
	}

	return rooms, nil
}

// ListAvailable is the one server-side filtered listing: unoccupied rooms,
// optionally scoped to a building.
func (r *roomRepository) ListAvailable(
	ctx context.Context,
	buildingID *uuid.UUID,
) ([]Room, error) {
	log := r.log.Function("ListAvailable")

	query := r.db.SQLWithContext(ctx).
		Preload("Building").
		Where("occupied = ?", false)
	if buildingID != nil {
		query = query.Where("building_id = ?", *buildingID)
	}

	var rooms []Room
	if err := query.Order("number asc").Find(&rooms).Error; err != nil {
		return nil, log.Err("failed to list available rooms", err)
	}

	return rooms, nil
}

func (r *roomRepository) Create(ctx context.Context, room *Room) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(room).Error; err != nil {
		return log.Err("failed to create room", err, "number", room.Number)
	}

	return nil
}

func (r *roomRepository) SetOccupied(
	ctx context.Context,
	tx *gorm.DB,
	roomID uuid.UUID,
	occupied bool,
) error {
	log := r.log.Function("SetOccupied")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Model(&Room{}).
		Where("id = ?", roomID).
		Update("occupied", occupied).Error; err != nil {
		return log.Err("failed to update room occupancy", err, "roomID", roomID)
	}

	return nil
}
