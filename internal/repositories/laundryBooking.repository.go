package repositories

import (
	"context"
	"time"

	"renthub/internal/database"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

type LaundryBookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LaundryBooking, error)
	List(ctx context.Context) ([]LaundryBooking, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]LaundryBooking, error)
	SlotTaken(ctx context.Context, date time.Time, timeSlot string) (bool, error)
	Create(ctx context.Context, booking *LaundryBooking) error
	Update(ctx context.Context, booking *LaundryBooking) error
}

type laundryBookingRepository struct {
	db  database.DB
	log logger.Logger
}

func NewLaundryBookingRepository(db database.DB) LaundryBookingRepository {
	return &laundryBookingRepository{
		db:  db,
		log: logger.New("laundryBookingRepository"),
	}
}

func (r *laundryBookingRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*LaundryBooking, error) {
	log := r.log.Function("GetByID")

	var booking LaundryBooking
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		First(&booking, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get laundry booking", err, "id", id)
	}

	return &booking, nil
}

func (r *laundryBookingRepository) List(ctx context.Context) ([]LaundryBooking, error) {
	log := r.log.Function("List")

	var bookings []LaundryBooking
	if err := r.db.SQLWithContext(ctx).
		Preload("User").
		Order("date desc, time_slot asc").
		Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list laundry bookings", err)
	}

	return bookings, nil
}

func (r *laundryBookingRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]LaundryBooking, error) {
	log := r.log.Function("ListByUser")

	var bookings []LaundryBooking
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("date desc, time_slot asc").
		Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list laundry bookings by user", err, "userID", userID)
	}

	return bookings, nil
}

// SlotTaken reports whether an approved booking already holds the slot.
func (r *laundryBookingRepository) SlotTaken(
	ctx context.Context,
	date time.Time,
	timeSlot string,
) (bool, error) {
	log := r.log.Function("SlotTaken")

	var count int64
	if err := r.db.SQLWithContext(ctx).
		Model(&LaundryBooking{}).
		Where("date = ? AND time_slot = ? AND status = ?", date, timeSlot, BookingApproved).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check slot availability", err, "date", date, "slot", timeSlot)
	}

	return count > 0, nil
}

func (r *laundryBookingRepository) Create(ctx context.Context, booking *LaundryBooking) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(booking).Error; err != nil {
		return log.Err("failed to create laundry booking", err, "userID", booking.UserID)
	}

	return nil
}

func (r *laundryBookingRepository) Update(ctx context.Context, booking *LaundryBooking) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(booking).Error; err != nil {
		return log.Err("failed to update laundry booking", err, "bookingID", booking.ID)
	}

	return nil
}
