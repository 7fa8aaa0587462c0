package repositories

import (
	"context"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

type BuildingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Building, error)
	List(ctx context.Context) ([]Building, error)
	Create(ctx context.Context, building *Building) error
	Update(ctx context.Context, building *Building) error
}

type buildingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewBuildingRepository(db database.DB) BuildingRepository {
	return &buildingRepository{
		db:  db,
		log: logger.New("buildingRepository"),
	}
}

func (r *buildingRepository) GetByID(ctx context.Context, id uuid.UUID) (*Building, error) {
	log := r.log.Function("GetByID")

	var building Building
	if err := r.db.SQLWithContext(ctx).
		Preload("Rooms").
		First(&building, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get building", err, "id", id)
	}

	return &building, nil
}

func (r *buildingRepository) List(ctx context.Context) ([]Building, error) {
	log := r.log.Function("List")

	var buildings []Building
	if err := r.db.SQLWithContext(ctx).
		Preload("Rooms").
		Order("name asc").
		Find(&buildings).Error; err != nil {
		return nil, log.Err("failed to list buildings", err)
	}

	return buildings, nil
}

func (r *buildingRepository) Create(ctx context.Context, building *Building) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(building).Error; err != nil {
		return log.Err("failed to create building", err, "name", building.Name)
	}

	return nil
}

func (r *buildingRepository) Update(ctx context.Context, building *Building) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(building).Error; err != nil {
		return log.Err("failed to update building", err, "buildingID", building.ID)
	}

	return nil
}
