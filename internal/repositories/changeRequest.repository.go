package repositories

import (
	"context"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChangeRequestRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ChangeRequest, error)
	List(ctx context.Context) ([]ChangeRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ChangeRequest, error)
	HasPending(ctx context.Context, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, request *ChangeRequest) error
	Update(ctx context.Context, tx *gorm.DB, request *ChangeRequest) error
}

type changeRequestRepository struct {
	db  database.DB
	log logger.Logger
}

func NewChangeRequestRepository(db database.DB) ChangeRequestRepository {
	return &changeRequestRepository{
		db:  db,
		log: logger.New("changeRequestRepository"),
	}
}

func (r *changeRequestRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*ChangeRequest, error) {
	log := r.log.Function("GetByID")

	var request ChangeRequest
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		First(&request, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get change request", err, "id", id)
	}

	return &request, nil
}

func (r *changeRequestRepository) List(ctx context.Context) ([]ChangeRequest, error) {
	log := r.log.Function("List")

	var requests []ChangeRequest
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list change requests", err)
	}

	return requests, nil
}

func (r *changeRequestRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]ChangeRequest, error) {
	log := r.log.Function("ListByUser")

	var requests []ChangeRequest
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list change requests by user", err, "userID", userID)
	}

	return requests, nil
}

func (r *changeRequestRepository) HasPending(
	ctx context.Context,
	userID uuid.UUID,
) (bool, error) {
	log := r.log.Function("HasPending")

	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&ChangeRequest{}).
		Where("user_id = ? AND status = ?", userID, ChangeRequestPending).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to count pending change requests", err, "userID", userID)
	}

	return count > 0, nil
}

func (r *changeRequestRepository) Create(ctx context.Context, request *ChangeRequest) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(request).Error; err != nil {
		return log.Err("failed to create change request", err, "userID", request.UserID)
	}

	return nil
}

func (r *changeRequestRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	request *ChangeRequest,
) error {
	log := r.log.Function("Update")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Save(request).Error; err != nil {
		return log.Err("failed to update change request", err, "requestID", request.ID)
	}

	return nil
}
