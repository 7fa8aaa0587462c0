package repositories

import (
	"context"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RentPayment, error)
	List(ctx context.Context) ([]RentPayment, error)
	ListByContract(ctx context.Context, contractID uuid.UUID) ([]RentPayment, error)
	ListByContracts(ctx context.Context, contractIDs []uuid.UUID) ([]RentPayment, error)
	GetByContractAndMonth(
		ctx context.Context,
		contractID uuid.UUID,
		monthKey string,
	) (*RentPayment, error)
	Create(ctx context.Context, tx *gorm.DB, payment *RentPayment) error
	Update(ctx context.Context, tx *gorm.DB, payment *RentPayment) error
}

type paymentRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPaymentRepository(db database.DB) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: logger.New("paymentRepository"),
	}
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*RentPayment, error) {
	log := r.log.Function("GetByID")

	var payment RentPayment
	if err := r.db.SQLWithContext(ctx).
		Preload("Contract").
		Preload("Contract.User").
		First(&payment, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get payment", err, "id", id)
	}

	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]RentPayment, error) {
	log := r.log.Function("List")

	var payments []RentPayment
	if err := r.db.SQLWithContext(ctx).
		Preload("Contract").
		Preload("Contract.User").
		Preload("Contract.Room").
		Order("month_paid desc").
		Find(&payments).Error; err != nil {
		return nil, log.Err("failed to list payments", err)
	}

	return payments, nil
}

func (r *paymentRepository) ListByContract(
	ctx context.Context,
	contractID uuid.UUID,
) ([]RentPayment, error) {
	log := r.log.Function("ListByContract")

	var payments []RentPayment
	if err := r.db.SQLWithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("month_paid desc").
		Find(&payments).Error; err != nil {
		return nil, log.Err("failed to list payments by contract", err, "contractID", contractID)
	}

	return payments, nil
}

func (r *paymentRepository) ListByContracts(
	ctx context.Context,
	contractIDs []uuid.UUID,
) ([]RentPayment, error) {
	log := r.log.Function("ListByContracts")

	if len(contractIDs) == 0 {
		return []RentPayment{}, nil
	}

	var payments []RentPayment
	if err := r.db.SQLWithContext(ctx).
		Preload("Contract").
		Preload("Contract.Room").
		Where("contract_id IN ?", contractIDs).
		Order("month_paid desc").
		Find(&payments).Error; err != nil {
		return nil, log.Err("failed to list payments by contracts", err)
	}

	return payments, nil
}

func (r *paymentRepository) GetByContractAndMonth(
	ctx context.Context,
	contractID uuid.UUID,
	monthKey string,
) (*RentPayment, error) {
	log := r.log.Function("GetByContractAndMonth")

	var payment RentPayment
	err := r.db.SQLWithContext(ctx).
		Where("contract_id = ? AND month_paid = ?", contractID, monthKey).
		First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, log.Err(
			"failed to get payment by contract and month",
			err,
			"contractID", contractID,
			"month", monthKey,
		)
	}

	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, tx *gorm.DB, payment *RentPayment) error {
	log := r.log.Function("Create")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Create(payment).Error; err != nil {
		return log.Err("failed to create payment", err, "contractID", payment.ContractID)
	}

	return nil
}

func (r *paymentRepository) Update(ctx context.Context, tx *gorm.DB, payment *RentPayment) error {
	log := r.log.Function("Update")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Save(payment).Error; err != nil {
		return log.Err("failed to update payment", err, "paymentID", payment.ID)
	}

	return nil
}
