package paymentController

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"renthub/internal/events"
	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const receiptCategory = "receipts"

type PaymentController struct {
	paymentRepo   repositories.PaymentRepository
	contractRepo  repositories.ContractRepository
	uploadService *services.UploadService
	reportService *services.ReportService
	transaction   *services.TransactionService
	eventBus      *events.EventBus
	log           logger.Logger
}

type PaymentControllerInterface interface {
	List(ctx context.Context, viewer *User, params ListParams) (ListResult[RentPayment], error)
	Get(ctx context.Context, viewer *User, id uuid.UUID) (*RentPayment, error)
	UploadReceipt(
		ctx context.Context,
		viewer *User,
		id uuid.UUID,
		file *multipart.FileHeader,
		comment string,
	) (*RentPayment, error)
	Review(
		ctx context.Context,
		id uuid.UUID,
		approve bool,
		adminComment string,
	) (*RentPayment, error)
	ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) PaymentControllerInterface {
	return &PaymentController{
		paymentRepo:   repos.Payment,
		contractRepo:  repos.Contract,
		uploadService: services.Upload,
		reportService: services.Report,
		transaction:   services.Transaction,
		eventBus:      eventBus,
		log:           logger.New("paymentController"),
	}
}

func (c *PaymentController) List(
	ctx context.Context,
	viewer *User,
	params ListParams,
) (ListResult[RentPayment], error) {
	log := c.log.Function("List")
	params.Normalize()

	var payments []RentPayment
	var err error
	if viewer.IsAdmin() {
		payments, err = c.paymentRepo.List(ctx)
	} else {
		payments, err = c.listOwn(ctx, viewer.ID)
	}
	if err != nil {
		return ListResult[RentPayment]{}, log.Err("failed to list payments", err)
	}

	filtered := payments
	if params.Search != "" {
		filtered = make([]RentPayment, 0, len(payments))
		for _, payment := range payments {
			if payment.Contract != nil &&
				utils.MatchesSearch(payment.Contract.SearchText(), params.Search) {
				filtered = append(filtered, payment)
			}
		}
	}

	if key := paymentSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)
	return ListResult[RentPayment]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func paymentSortKey(field string) func(RentPayment) string {
	switch field {
	case "monthPaid":
		return func(p RentPayment) string { return p.MonthPaid }
	case "status":
		return func(p RentPayment) string { return string(p.Status) }
	case "createdAt":
		return func(p RentPayment) string { return p.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func (c *PaymentController) listOwn(
	ctx context.Context,
	userID uuid.UUID,
) ([]RentPayment, error) {
	contracts, err := c.contractRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return []RentPayment{}, nil
	}

	contractIDs := make([]uuid.UUID, 0, len(contracts))
	for _, contract := range contracts {
		contractIDs = append(contractIDs, contract.ID)
	}
	return c.paymentRepo.ListByContracts(ctx, contractIDs)
}

func (c *PaymentController) Get(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
) (*RentPayment, error) {
	payment, err := c.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := c.authorize(viewer, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (c *PaymentController) authorize(viewer *User, payment *RentPayment) error {
	if viewer.IsAdmin() {
		return nil
	}
	if payment.Contract == nil || payment.Contract.UserID != viewer.ID {
		return ErrForbidden
	}
	return nil
}

// UploadReceipt attaches a receipt image and moves the payment into review.
// Approved payments are final and reject re-uploads.
func (c *PaymentController) UploadReceipt(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
	file *multipart.FileHeader,
	comment string,
) (*RentPayment, error) {
	log := c.log.Function("UploadReceipt")

	payment, err := c.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if err := c.authorize(viewer, payment); err != nil {
		return nil, err
	}
	if !payment.Reviewable() {
		return nil, FieldError("receipt", "Este pago ya no admite comprobantes")
	}
	if file == nil {
		return nil, FieldError("receipt", "Este campo es obligatorio")
	}

	path, err := c.uploadService.SaveImage(receiptCategory, payment.ID, file)
	if err != nil {
		if errors.Is(err, utils.ErrImageExtension) || errors.Is(err, utils.ErrImageTooLarge) {
			return nil, FieldError("receipt", err.Error())
		}
		return nil, log.Err("failed to store receipt", err, "paymentID", payment.ID)
	}

	previous := payment.ReceiptPath
	payment.ReceiptPath = path
	payment.UserComment = comment
	payment.Status = PaymentPendingReview
	payment.AdminComment = ""

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.paymentRepo.Update(ctx, tx, payment)
	})
	if err != nil {
		return nil, log.Err("failed to update payment", err, "paymentID", payment.ID)
	}

	if previous != "" && previous != path {
		if err := c.uploadService.Remove(previous); err != nil {
			log.Warn("failed to remove previous receipt", "path", previous, "error", err)
		}
	}

	log.Info("receipt uploaded", "paymentID", payment.ID, "userID", viewer.ID)
	return payment, nil
}

// Review resolves a payment under review. The decision mail goes out
// asynchronously through the event bus.
func (c *PaymentController) Review(
	ctx context.Context,
	id uuid.UUID,
	approve bool,
	adminComment string,
) (*RentPayment, error) {
	log := c.log.Function("Review")

	payment, err := c.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if payment.Status != PaymentPendingReview {
		return nil, FieldError("status", "El pago no está en revisión")
	}
	if !approve && adminComment == "" {
		return nil, FieldError("adminComment", "Este campo es obligatorio")
	}

	if approve {
		payment.Status = PaymentApproved
	} else {
		payment.Status = PaymentRejected
	}
	payment.AdminComment = adminComment

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.paymentRepo.Update(ctx, tx, payment)
	})
	if err != nil {
		return nil, log.Err("failed to update payment", err, "paymentID", payment.ID)
	}

	var notifyUserID *uuid.UUID
	if payment.Contract != nil {
		notifyUserID = &payment.Contract.UserID
	}
	if err := c.eventBus.Publish(events.NOTIFICATIONS_CHANNEL, events.Event{
		Type:   events.PAYMENT_REVIEWED,
		UserID: notifyUserID,
		Data:   map[string]any{"paymentId": payment.ID.String()},
	}); err != nil {
		log.Warn("failed to publish payment reviewed event", "paymentID", payment.ID, "error", err)
	}

	log.Info("payment reviewed", "paymentID", payment.ID, "status", payment.Status)
	return payment, nil
}

// ExportXLSX renders the full payment history for admins.
func (c *PaymentController) ExportXLSX(ctx context.Context) (*bytes.Buffer, string, error) {
	log := c.log.Function("ExportXLSX")

	payments, err := c.paymentRepo.List(ctx)
	if err != nil {
		return nil, "", log.Err("failed to list payments", err)
	}

	buffer, err := c.reportService.PaymentHistoryXLSX(payments)
	if err != nil {
		return nil, "", err
	}
	return buffer, services.ReportFilename(""), nil
}
