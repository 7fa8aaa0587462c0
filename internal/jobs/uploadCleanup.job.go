package jobs

import (
	"context"
	"time"

	"renthub/internal/repositories"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// Uploads younger than this are kept even when unreferenced, so an in-flight
// request cannot lose its file between write and row commit.
const uploadGracePeriod = 7 * 24 * time.Hour

// UploadCleanupJob removes stored images no payment receipt, laundry voucher
// or profile photo points at anymore.
type UploadCleanupJob struct {
	uploads     *services.UploadService
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	laundryRepo repositories.LaundryBookingRepository
	schedule    services.Schedule
	log         logger.Logger
}

func NewUploadCleanupJob(
	uploads *services.UploadService,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	laundryRepo repositories.LaundryBookingRepository,
	schedule services.Schedule,
) *UploadCleanupJob {
	return &UploadCleanupJob{
		uploads:     uploads,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		laundryRepo: laundryRepo,
		schedule:    schedule,
		log:         logger.New("uploadCleanupJob"),
	}
}

func (j *UploadCleanupJob) Name() string {
	return "upload-cleanup"
}

func (j *UploadCleanupJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *UploadCleanupJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	stored, err := j.uploads.ListFiles()
	if err != nil {
		return log.Err("failed to list stored uploads", err)
	}
	if len(stored) == 0 {
		return nil
	}

	referenced, err := j.referencedPaths(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-uploadGracePeriod)
	removed := 0
	for path, modTime := range stored {
		if referenced[path] || modTime.After(cutoff) {
			continue
		}
		if err := j.uploads.Remove(path); err != nil {
			log.Er("failed to remove orphaned upload", err, "path", path)
			continue
		}
		removed++
	}

	log.Info("upload cleanup finished", "stored", len(stored), "removed", removed)
	return nil
}

func (j *UploadCleanupJob) referencedPaths(ctx context.Context) (map[string]bool, error) {
	log := j.log.Function("referencedPaths")
	referenced := map[string]bool{}

	users, err := j.userRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}
	for _, user := range users {
		if user.PhotoPath != "" {
			referenced[user.PhotoPath] = true
		}
	}

	payments, err := j.paymentRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list payments", err)
	}
	for _, payment := range payments {
		if payment.ReceiptPath != "" {
			referenced[payment.ReceiptPath] = true
		}
	}

	bookings, err := j.laundryRepo.List(ctx)
	if err != nil {
		return nil, log.Err("failed to list bookings", err)
	}
	for _, booking := range bookings {
		if booking.VoucherPath != "" {
			referenced[booking.VoucherPath] = true
		}
	}

	return referenced, nil
}
