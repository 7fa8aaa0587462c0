package changeRequestController

import (
	"context"
	"time"

	"renthub/internal/events"
	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ChangeRequestController struct {
	changeRequestRepo repositories.ChangeRequestRepository
	userRepo          repositories.UserRepository
	transaction       *services.TransactionService
	eventBus          *events.EventBus
	log               logger.Logger
}

type ChangeRequestControllerInterface interface {
	List(ctx context.Context, viewer *User, params ListParams) (ListResult[ChangeRequest], error)
	Create(
		ctx context.Context,
		viewer *User,
		request CreateChangeRequestRequest,
	) (*ChangeRequest, error)
	Review(
		ctx context.Context,
		id uuid.UUID,
		approve bool,
		comment string,
	) (*ChangeRequest, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
) ChangeRequestControllerInterface {
	return &ChangeRequestController{
		changeRequestRepo: repos.ChangeRequest,
		userRepo:          repos.User,
		transaction:       services.Transaction,
		eventBus:          eventBus,
		log:               logger.New("changeRequestController"),
	}
}

func (c *ChangeRequestController) List(
	ctx context.Context,
	viewer *User,
	params ListParams,
) (ListResult[ChangeRequest], error) {
	log := c.log.Function("List")
	params.Normalize()

	var requests []ChangeRequest
	var err error
	if viewer.IsAdmin() {
		requests, err = c.changeRequestRepo.List(ctx)
	} else {
		requests, err = c.changeRequestRepo.ListByUser(ctx, viewer.ID)
	}
	if err != nil {
		return ListResult[ChangeRequest]{}, log.Err("failed to list change requests", err)
	}

	filtered := requests
	if params.Search != "" {
		filtered = make([]ChangeRequest, 0, len(requests))
		for _, request := range requests {
			if request.User != nil &&
				utils.MatchesSearch(request.User.SearchText(), params.Search) {
				filtered = append(filtered, request)
			}
		}
	}

	if key := changeRequestSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)
	return ListResult[ChangeRequest]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func changeRequestSortKey(field string) func(ChangeRequest) string {
	switch field {
	case "status":
		return func(r ChangeRequest) string { return string(r.Status) }
	case "createdAt":
		return func(r ChangeRequest) string { return r.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func (c *ChangeRequestController) Create(
	ctx context.Context,
	viewer *User,
	request CreateChangeRequestRequest,
) (*ChangeRequest, error) {
	log := c.log.Function("Create")

	errs := ValidateStruct(request)
	for field := range request.Changes {
		if !ChangeableFields[field] {
			errs[field] = "Campo no modificable"
		}
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	pending, err := c.changeRequestRepo.HasPending(ctx, viewer.ID)
	if err != nil {
		return nil, log.Err("failed to check pending requests", err, "userID", viewer.ID)
	}
	if pending {
		return nil, FieldError("changes", "Ya tienes una solicitud pendiente")
	}

	changes := datatypes.JSONMap{}
	for field, value := range request.Changes {
		changes[field] = value
	}

	changeRequest := &ChangeRequest{
		UserID:  viewer.ID,
		Changes: changes,
		Status:  ChangeRequestPending,
	}
	if err := c.changeRequestRepo.Create(ctx, changeRequest); err != nil {
		return nil, log.Err("failed to create change request", err, "userID", viewer.ID)
	}

	log.Info("change request created", "requestID", changeRequest.ID, "userID", viewer.ID)
	return changeRequest, nil
}

// Review resolves a pending request. Approval applies the changes to the user
// inside the same transaction that flips the status.
func (c *ChangeRequestController) Review(
	ctx context.Context,
	id uuid.UUID,
	approve bool,
	comment string,
) (*ChangeRequest, error) {
	log := c.log.Function("Review")

	changeRequest, err := c.changeRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if changeRequest.Status != ChangeRequestPending {
		return nil, FieldError("status", "La solicitud ya fue resuelta")
	}
	if !approve && comment == "" {
		return nil, FieldError("reviewComment", "Este campo es obligatorio")
	}

	if approve {
		changeRequest.Status = ChangeRequestApproved
	} else {
		changeRequest.Status = ChangeRequestRejected
	}
	changeRequest.ReviewComment = comment

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if approve {
			user, err := c.userRepo.GetByID(ctx, changeRequest.UserID)
			if err != nil {
				return err
			}
			changeRequest.ApplyTo(user)
			if err := c.userRepo.Update(ctx, tx, user); err != nil {
				return err
			}
		}
		return c.changeRequestRepo.Update(ctx, tx, changeRequest)
	})
	if err != nil {
		return nil, log.Err("failed to review change request", err, "requestID", changeRequest.ID)
	}

	if err := c.eventBus.Publish(events.NOTIFICATIONS_CHANNEL, events.Event{
		Type:   events.CHANGE_REQUEST_RESOLVED,
		UserID: &changeRequest.UserID,
		Data:   map[string]any{"requestId": changeRequest.ID.String()},
	}); err != nil {
		log.Warn("failed to publish change request resolved event",
			"requestID", changeRequest.ID, "error", err)
	}

	log.Info("change request reviewed",
		"requestID", changeRequest.ID, "status", changeRequest.Status)
	return changeRequest, nil
}
