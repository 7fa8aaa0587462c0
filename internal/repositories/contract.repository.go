package repositories

import (
	"context"
	"time"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Contract, error)
	List(ctx context.Context) ([]Contract, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Contract, error)
	ListActive(ctx context.Context, date time.Time) ([]Contract, error)
	ListByRoom(ctx context.Context, roomID uuid.UUID) ([]Contract, error)
	GetActiveByRoom(ctx context.Context, roomID uuid.UUID, date time.Time) (*Contract, error)
	Create(ctx context.Context, tx *gorm.DB, contract *Contract) error
	Update(ctx context.Context, tx *gorm.DB, contract *Contract) error
	Delete(ctx context.Context, tx *gorm.DB, contract *Contract) error
	MarkOverdue(ctx context.Context, tx *gorm.DB, contractID uuid.UUID, overdue bool) error
}

type contractRepository struct {
	db  database.DB
	log logger.Logger
}

func NewContractRepository(db database.DB) ContractRepository {
	return &contractRepository{
		db:  db,
		log: logger.New("contractRepository"),
	}
}

func (r *contractRepository) GetByID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	log := r.log.Function("GetByID")

	var contract Contract
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Preload("Room").
		Preload("Room.Building").
		First(&contract, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get contract", err, "id", id)
	}

	return &contract, nil
}

func (r *contractRepository) List(ctx context.Context) ([]Contract, error) {
	log := r.log.Function("List")

	var contracts []Contract
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Preload("Room").
		Preload("Room.Building").
		Order("start_date desc").
		Find(&contracts).Error; err != nil {
		return nil, log.Err("failed to list contracts", err)
	}

	return contracts, nil
}

func (r *contractRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Contract, error) {
	log := r.log.Function("ListByUser")

	var contracts []Contract
	if err := r.db.SQLWithContext(ctx).
		Preload("Room").
		Preload("Room.Building").
		Where("user_id = ?", userID).
		Order("start_date desc").
		Find(&contracts).Error; err != nil {
		return nil, log.Err("failed to list contracts by user", err, "userID", userID)
	}

	return contracts, nil
}

func (r *contractRepository) ListActive(
	ctx context.Context,
	date time.Time,
) ([]Contract, error) {
	log := r.log.Function("ListActive")

	var contracts []Contract
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Where("start_date <= ? AND end_date >= ?", date, date).
		Find(&contracts).Error; err != nil {
		return nil, log.Err("failed to list active contracts", err)
	}

	return contracts, nil
}

func (r *contractRepository) ListByRoom(
	ctx context.Context,
	roomID uuid.UUID,
) ([]Contract, error) {
	log := r.log.Function("ListByRoom")

	var contracts []Contract
	if err := r.db.SQLWithContext(ctx).
		Where("room_id = ?", roomID).
		Order("start_date").
		Find(&contracts).Error; err != nil {
		return nil, log.Err("failed to list contracts by room", err, "roomID", roomID)
	}

	return contracts, nil
}

func (r *contractRepository) GetActiveByRoom(
	ctx context.Context,
	roomID uuid.UUID,
	date time.Time,
) (*Contract, error) {
	log := r.log.Function("GetActiveByRoom")

	var contract Contract
	err := r.db.SQLWithContext(ctx).
		Where("room_id = ? AND start_date <= ? AND end_date >= ?", roomID, date, date).
		First(&contract).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err("failed to get active contract by room", err, "roomID", roomID)
	}

	return &contract, nil
}

func (r *contractRepository) Create(ctx context.Context, tx *gorm.DB, contract *Contract) error {
	log := r.log.Function("Create")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Create(contract).Error; err != nil {
		return log.Err("failed to create contract", err, "userID", contract.UserID)
	}

	return nil
}

func (r *contractRepository) Update(ctx context.Context, tx *gorm.DB, contract *Contract) error {
	log := r.log.Function("Update")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Save(contract).Error; err != nil {
		return log.Err("failed to update contract", err, "contractID", contract.ID)
	}

	return nil
}

func (r *contractRepository) Delete(ctx context.Context, tx *gorm.DB, contract *Contract) error {
	log := r.log.Function("Delete")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Delete(contract).Error; err != nil {
		return log.Err("failed to delete contract", err, "contractID", contract.ID)
	}

	return nil
}

func (r *contractRepository) MarkOverdue(
	ctx context.Context,
	tx *gorm.DB,
	contractID uuid.UUID,
	overdue bool,
) error {
	log := r.log.Function("MarkOverdue")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Model(&Contract{}).
		Where("id = ?", contractID).
		Update("overdue", overdue).Error; err != nil {
		return log.Err("failed to mark contract overdue", err, "contractID", contractID)
	}

	return nil
}
