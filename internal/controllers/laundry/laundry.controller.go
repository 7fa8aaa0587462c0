package laundryController

import (
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
	"gorm.io/datatypes"
)

const voucherCategory = "vouchers"

type LaundryController struct {
	laundryRepo   repositories.LaundryBookingRepository
	uploadService *services.UploadService
	eventBus      *events.EventBus
	log           logger.Logger
}

type LaundryControllerInterface interface {
	List(
		ctx context.Context,
		viewer *User,
		params ListParams,
	) (ListResult[LaundryBookingResponse], error)
	Get(ctx context.Context, viewer *User, id uuid.UUID) (*LaundryBookingResponse, error)
	Create(
		ctx context.Context,
		viewer *User,
		request CreateLaundryBookingRequest,
	) (*LaundryBookingResponse, error)
	Act(
		ctx context.Context,
		viewer *User,
		id uuid.UUID,
		action BookingAction,
		proposal *ProposeBookingRequest,
		voucher *multipart.FileHeader,
	) (*LaundryBookingResponse, error)
	VoucherPath(ctx context.Context, viewer *User, id uuid.UUID) (string, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) LaundryControllerInterface {
	return &LaundryController{
		laundryRepo:   repos.Laundry,
		uploadService: services.Upload,
		eventBus:      eventBus,
		log:           logger.New("laundryController"),
	}
}

func (c *LaundryController) List(
	ctx context.Context,
	viewer *User,
	params ListParams,
) (ListResult[LaundryBookingResponse], error) {
	log := c.log.Function("List")
	params.Normalize()

	var bookings []LaundryBooking
	var err error
	if viewer.IsAdmin() {
		bookings, err = c.laundryRepo.List(ctx)
	} else {
		bookings, err = c.laundryRepo.ListByUser(ctx, viewer.ID)
	}
	if err != nil {
		return ListResult[LaundryBookingResponse]{}, log.Err("failed to list bookings", err)
	}

	filtered := bookings
	if params.Search != "" {
		filtered = make([]LaundryBooking, 0, len(bookings))
		for _, booking := range bookings {
			if booking.User != nil &&
				utils.MatchesSearch(booking.User.SearchText(), params.Search) {
				filtered = append(filtered, booking)
			}
		}
	}

	if key := bookingSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)
	responses := make([]LaundryBookingResponse, 0, len(page))
	for i := range page {
		responses = append(responses, page[i].ToResponse(viewer.Role))
	}

	return ListResult[LaundryBookingResponse]{
		Items:    responses,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func bookingSortKey(field string) func(LaundryBooking) string {
	switch field {
	case "date":
		return func(b LaundryBooking) string {
			return b.BookingDate().Format("2006-01-02") + " " + b.TimeSlot
		}
	case "status":
		return func(b LaundryBooking) string { return string(b.Status) }
	case "createdAt":
		return func(b LaundryBooking) string { return b.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func (c *LaundryController) Get(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
) (*LaundryBookingResponse, error) {
	booking, err := c.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	response := booking.ToResponse(viewer.Role)
	return &response, nil
}

func (c *LaundryController) load(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
) (*LaundryBooking, error) {
	booking, err := c.laundryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !viewer.IsAdmin() && booking.UserID != viewer.ID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (c *LaundryController) Create(
	ctx context.Context,
	viewer *User,
	request CreateLaundryBookingRequest,
) (*LaundryBookingResponse, error) {
	log := c.log.Function("Create")

	errs := ValidateStruct(request)
	date, err := utils.ParseDate(request.Date)
	if err != nil {
		errs["date"] = "Fecha inválida"
	} else if date.Before(today()) {
		errs["date"] = "La fecha no puede estar en el pasado"
	}
	if request.TimeSlot != "" && !ValidTimeSlot(request.TimeSlot) {
		errs["timeSlot"] = "Horario inválido"
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	taken, err := c.laundryRepo.SlotTaken(ctx, date, request.TimeSlot)
	if err != nil {
		return nil, log.Err("failed to check slot availability", err)
	}
	if taken {
		return nil, FieldError("timeSlot", "Ese horario ya está reservado")
	}

	booking := &LaundryBooking{
		UserID:        viewer.ID,
		Date:          datatypes.Date(date),
		TimeSlot:      request.TimeSlot,
		Status:        BookingProposed,
		PendingAction: PendingAdmin,
		Comment:       request.Comment,
	}
	if err := c.laundryRepo.Create(ctx, booking); err != nil {
		return nil, log.Err("failed to create booking", err, "userID", viewer.ID)
	}

	log.Info("booking created", "bookingID", booking.ID, "userID", viewer.ID)
	response := booking.ToResponse(viewer.Role)
	return &response, nil
}

// Act advances a booking through the negotiation workflow. The action must be
// listed in the booking's available actions for the caller's role.
func (c *LaundryController) Act(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
	action BookingAction,
	proposal *ProposeBookingRequest,
	voucher *multipart.FileHeader,
) (*LaundryBookingResponse, error) {
	log := c.log.Function("Act")

	booking, err := c.load(ctx, viewer, id)
	if err != nil {
		return nil, err
	}

	if !actionAllowed(booking, viewer.Role, action) {
		return nil, ErrForbidden
	}

	resolved := false
	switch action {
	case ActionApprove:
		if err := c.attachVoucher(booking, voucher); err != nil {
			return nil, err
		}
		booking.Status = BookingApproved
		booking.PendingAction = PendingNone
		booking.ProposedDate = nil
		booking.ProposedTimeSlot = nil
		resolved = true

	case ActionReject:
		booking.Status = BookingRejected
		booking.PendingAction = PendingNone
		resolved = true

	case ActionPropose, ActionCounterPropose:
		if err := c.applyProposal(ctx, booking, proposal); err != nil {
			return nil, err
		}
		booking.Status = BookingCounterProposal
		if action == ActionPropose {
			booking.PendingAction = PendingUser
		} else {
			booking.PendingAction = PendingAdmin
		}

	case ActionAccept:
		if booking.ProposedDate != nil {
			booking.Date = *booking.ProposedDate
		}
		if booking.ProposedTimeSlot != nil {
			booking.TimeSlot = *booking.ProposedTimeSlot
		}
		booking.ProposedDate = nil
		booking.ProposedTimeSlot = nil
		booking.Status = BookingApproved
		booking.PendingAction = PendingNone
		resolved = true

	default:
		return nil, ErrForbidden
	}

	if err := c.laundryRepo.Update(ctx, booking); err != nil {
		return nil, log.Err("failed to update booking", err, "bookingID", booking.ID)
	}

	if resolved {
		if err := c.eventBus.Publish(events.NOTIFICATIONS_CHANNEL, events.Event{
			Type:   events.BOOKING_RESOLVED,
			UserID: &booking.UserID,
			Data:   map[string]any{"bookingId": booking.ID.String()},
		}); err != nil {
			log.Warn("failed to publish booking resolved event",
				"bookingID", booking.ID, "error", err)
		}
	}

	log.Info("booking action applied",
		"bookingID", booking.ID, "action", action, "status", booking.Status)
	response := booking.ToResponse(viewer.Role)
	return &response, nil
}

func actionAllowed(booking *LaundryBooking, role Role, action BookingAction) bool {
	for _, allowed := range booking.AvailableActions(role) {
		if allowed == action {
			return true
		}
	}
	return false
}

func (c *LaundryController) attachVoucher(
	booking *LaundryBooking,
	voucher *multipart.FileHeader,
) error {
	if voucher == nil {
		return nil
	}

	path, err := c.uploadService.SaveImage(voucherCategory, booking.ID, voucher)
	if err != nil {
		if errors.Is(err, utils.ErrImageExtension) || errors.Is(err, utils.ErrImageTooLarge) {
			return FieldError("voucher", err.Error())
		}
		return c.log.Function("attachVoucher").
			Err("failed to store voucher", err, "bookingID", booking.ID)
	}

	booking.VoucherPath = path
	return nil
}

func (c *LaundryController) applyProposal(
	ctx context.Context,
	booking *LaundryBooking,
	proposal *ProposeBookingRequest,
) error {
	if proposal == nil {
		return FieldError("date", "Este campo es obligatorio")
	}

	errs := ValidateStruct(*proposal)
	date, err := utils.ParseDate(proposal.Date)
	if err != nil {
		errs["date"] = "Fecha inválida"
	} else if date.Before(today()) {
		errs["date"] = "La fecha no puede estar en el pasado"
	}
	if proposal.TimeSlot != "" && !ValidTimeSlot(proposal.TimeSlot) {
		errs["timeSlot"] = "Horario inválido"
	}
	if len(errs) > 0 {
		return NewValidationError(errs)
	}

	taken, err := c.laundryRepo.SlotTaken(ctx, date, proposal.TimeSlot)
	if err != nil {
		return err
	}
	if taken {
		return FieldError("timeSlot", "Ese horario ya está reservado")
	}

	proposedDate := datatypes.Date(date)
	booking.ProposedDate = &proposedDate
	booking.ProposedTimeSlot = &proposal.TimeSlot
	return nil
}

// VoucherPath resolves the stored voucher for download. Only approved bookings
// expose one.
func (c *LaundryController) VoucherPath(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
) (string, error) {
	booking, err := c.load(ctx, viewer, id)
	if err != nil {
		return "", err
	}
	if booking.Status != BookingApproved || booking.VoucherPath == "" {
		return "", ErrNotFound
	}
	return c.uploadService.FullPath(booking.VoucherPath), nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
