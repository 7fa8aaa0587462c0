package repositories

import (
	"context"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferencePersonRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReferencePerson, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]ReferencePerson, error)
	List(ctx context.Context) ([]ReferencePerson, error)
	Create(ctx context.Context, tx *gorm.DB, reference *ReferencePerson) error
}

type referencePersonRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReferencePersonRepository(db database.DB) ReferencePersonRepository {
	return &referencePersonRepository{
		db:  db,
		log: logger.New("referencePersonRepository"),
	}
}

func (r *referencePersonRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*ReferencePerson, error) {
	log := r.log.Function("GetByID")

	var reference ReferencePerson
	if err := r.db.SQLWithContext(ctx).First(&reference, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get reference person", err, "id", id)
	}

	return &reference, nil
}

func (r *referencePersonRepository) GetByIDs(
	ctx context.Context,
	ids []uuid.UUID,
) ([]ReferencePerson, error) {
	log := r.log.Function("GetByIDs")

	var references []ReferencePerson
	if err := r.db.SQLWithContext(ctx).Find(&references, "id IN ?", ids).Error; err != nil {
		return nil, log.Err("failed to get reference persons", err, "ids", ids)
	}

	return references, nil
}

func (r *referencePersonRepository) List(ctx context.Context) ([]ReferencePerson, error) {
	log := r.log.Function("List")

	var references []ReferencePerson
	if err := r.db.SQLWithContext(ctx).Order("name asc").Find(&references).Error; err != nil {
		return nil, log.Err("failed to list reference persons", err)
	}

	return references, nil
}

func (r *referencePersonRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	reference *ReferencePerson,
) error {
	log := r.log.Function("Create")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Create(reference).Error; err != nil {
		return log.Err("failed to create reference person", err, "name", reference.Name)
	}

	return nil
}
