package contractController

import (
	"context"
	"strings"
	"time"

	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContractController struct {
	contractRepo repositories.ContractRepository
	paymentRepo  repositories.PaymentRepository
	roomRepo     repositories.RoomRepository
	userRepo     repositories.UserRepository
	transaction  *services.TransactionService
	log          logger.Logger
}

type ContractControllerInterface interface {
	List(ctx context.Context, viewer *User, params ListParams) (ListResult[ContractResponse], error)
	Get(ctx context.Context, viewer *User, id uuid.UUID) (*ContractResponse, error)
	Create(ctx context.Context, request CreateContractRequest) (*ContractResponse, error)
	Update(ctx context.Context, id uuid.UUID, request UpdateContractRequest) (*ContractResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
) ContractControllerInterface {
	return &ContractController{
		contractRepo: repos.Contract,
		paymentRepo:  repos.Payment,
		roomRepo:     repos.Room,
		userRepo:     repos.User,
		transaction:  services.Transaction,
		log:          logger.New("contractController"),
	}
}

// contractForm holds the parsed values of a contract submission.
type contractForm struct {
	start   time.Time
	end     time.Time
	rent    decimal.Decimal
	deposit decimal.Decimal
	wifi    decimal.Decimal
}

// validateContractForm parses and checks a contract submission. The returned
// map is empty when the form is valid; a non-empty map never reaches the DB.
func validateContractForm(
	startDate, endDate, rentAmount, depositAmount, wifiCost string,
	includesWifi bool,
) (contractForm, map[string]string) {
	form := contractForm{}
	errs := map[string]string{}

	var err error
	form.start, err = utils.ParseDate(startDate)
	if err != nil {
		errs["startDate"] = "Fecha inválida"
	}
	form.end, err = utils.ParseDate(endDate)
	if err != nil {
		errs["endDate"] = "Fecha inválida"
	}
	if errs["startDate"] == "" && errs["endDate"] == "" && !form.end.After(form.start) {
		errs["endDate"] = "La fecha de fin debe ser posterior a la de inicio"
	}

	form.rent, err = decimal.NewFromString(rentAmount)
	if err != nil {
		errs["rentAmount"] = "Monto inválido"
	} else if !form.rent.IsPositive() {
		errs["rentAmount"] = "Debe ser un monto positivo"
	}

	form.deposit, err = decimal.NewFromString(depositAmount)
	if err != nil {
		errs["depositAmount"] = "Monto inválido"
	} else if !form.deposit.IsPositive() {
		errs["depositAmount"] = "Debe ser un monto positivo"
	}

	if includesWifi {
		if wifiCost == "" {
			errs["wifiCost"] = "Este campo es obligatorio"
		} else {
			form.wifi, err = decimal.NewFromString(wifiCost)
			if err != nil {
				errs["wifiCost"] = "Monto inválido"
			} else if !form.wifi.IsPositive() {
				errs["wifiCost"] = "Debe ser un monto positivo"
			}
		}
	}

	return form, errs
}

func (c *ContractController) List(
	ctx context.Context,
	viewer *User,
	params ListParams,
) (ListResult[ContractResponse], error) {
	log := c.log.Function("List")
	params.Normalize()

	var contracts []Contract
	var err error
	if viewer.IsAdmin() {
		contracts, err = c.contractRepo.List(ctx)
	} else {
		contracts, err = c.contractRepo.ListByUser(ctx, viewer.ID)
	}
	if err != nil {
		return ListResult[ContractResponse]{}, log.Err("failed to list contracts", err)
	}

	filtered := utils.FilterBySearch(contracts, params.Search)
	if key := contractSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)

	responses := make([]ContractResponse, 0, len(page))
	for i := range page {
		responses = append(responses, c.toResponse(ctx, &page[i]))
	}

	return ListResult[ContractResponse]{
		Items:    responses,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func (c *ContractController) Get(
	ctx context.Context,
	viewer *User,
	id uuid.UUID,
) (*ContractResponse, error) {
	contract, err := c.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !viewer.IsAdmin() && contract.UserID != viewer.ID {
		return nil, ErrForbidden
	}

	response := c.toResponse(ctx, contract)
	return &response, nil
}

func contractSortKey(field string) func(Contract) string {
	switch field {
	case "startDate":
		return func(c Contract) string { return c.StartDate.Format("2006-01-02") }
	case "endDate":
		return func(c Contract) string { return c.EndDate.Format("2006-01-02") }
	case "tenant":
		return func(c Contract) string {
			if c.User == nil {
				return ""
			}
			return strings.ToLower(c.User.FullName)
		}
	case "createdAt":
		return func(c Contract) string { return c.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

// toResponse attaches the computed next-month payment. It is derived from
// payment rows at read time, never stored.
func (c *ContractController) toResponse(ctx context.Context, contract *Contract) ContractResponse {
	response := ContractResponse{Contract: *contract}

	nextMonth := utils.NextMonthKey(time.Now().UTC())
	monthStart, err := utils.ParseMonthKey(nextMonth)
	if err != nil || !contract.Active(monthStart) {
		return response
	}

	payment, err := c.paymentRepo.GetByContractAndMonth(ctx, contract.ID, nextMonth)
	if err != nil {
		c.log.Function("toResponse").
			Warn("failed to load next month payment", "contractID", contract.ID, "error", err)
		return response
	}

	if payment != nil {
		response.NextMonth = &NextMonthPayment{
			Month:     payment.MonthPaid,
			Status:    payment.Status,
			DueAmount: payment.DueAmount,
		}
	} else {
		response.NextMonth = &NextMonthPayment{
			Month:     nextMonth,
			Status:    PaymentUpcoming,
			DueAmount: contract.MonthlyTotal(),
		}
	}
	return response
}

func (c *ContractController) Create(
	ctx context.Context,
	request CreateContractRequest,
) (*ContractResponse, error) {
	log := c.log.Function("Create")

	errs := ValidateStruct(request)
	form, formErrs := validateContractForm(
		request.StartDate,
		request.EndDate,
		request.RentAmount,
		request.DepositAmount,
		request.WifiCost,
		request.IncludesWifi,
	)
	for field, msg := range formErrs {
		errs[field] = msg
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	userID, err := uuid.Parse(request.UserID)
	if err != nil {
		return nil, FieldError("userId", "Identificador inválido")
	}
	roomID, err := uuid.Parse(request.RoomID)
	if err != nil {
		return nil, FieldError("roomId", "Identificador inválido")
	}

	if _, err := c.userRepo.GetByID(ctx, userID); err != nil {
		return nil, FieldError("userId", "Usuario no encontrado")
	}
	if _, err := c.roomRepo.GetByID(ctx, roomID); err != nil {
		return nil, FieldError("roomId", "Habitación no encontrada")
	}

	conflict, err := c.roomConflict(ctx, roomID, form.start, form.end, uuid.Nil)
	if err != nil {
		return nil, log.Err("failed to check room availability", err, "roomID", roomID)
	}
	if conflict {
		return nil, FieldError("roomId", "La habitación ya está ocupada en ese período")
	}

	contract := &Contract{
		UserID:        userID,
		RoomID:        roomID,
		StartDate:     form.start,
		EndDate:       form.end,
		RentAmount:    form.rent,
		DepositAmount: form.deposit,
		IncludesWifi:  request.IncludesWifi,
		WifiCost:      form.wifi,
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.contractRepo.Create(ctx, tx, contract); err != nil {
			return err
		}
		if err := c.roomRepo.SetOccupied(ctx, tx, roomID, true); err != nil {
			return err
		}
		return c.seedPayments(ctx, tx, contract)
	})
	if err != nil {
		return nil, log.Err("failed to create contract", err, "userID", userID, "roomID", roomID)
	}

	log.Info("contract created", "contractID", contract.ID, "userID", userID, "roomID", roomID)
	response := c.toResponse(ctx, contract)
	return &response, nil
}

// seedPayments creates the upcoming rows for the current and next month so the
// payment history is populated immediately after signing.
func (c *ContractController) seedPayments(
	ctx context.Context,
	tx *gorm.DB,
	contract *Contract,
) error {
	now := time.Now().UTC()
	for _, month := range []string{utils.MonthKey(now), utils.NextMonthKey(now)} {
		monthStart, err := utils.ParseMonthKey(month)
		if err != nil {
			return err
		}
		if !contract.Active(monthStart) {
			continue
		}

		payment := &RentPayment{
			ContractID: contract.ID,
			MonthPaid:  month,
			Status:     PaymentUpcoming,
			DueAmount:  contract.MonthlyTotal(),
		}
		if err := c.paymentRepo.Create(ctx, tx, payment); err != nil {
			return err
		}
	}
	return nil
}

func (c *ContractController) Update(
	ctx context.Context,
	id uuid.UUID,
	request UpdateContractRequest,
) (*ContractResponse, error) {
	log := c.log.Function("Update")

	contract, err := c.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	// Merge the patch onto current values and validate the result, so a patch
	// can never leave the contract in an invalid state.
	startDate := contract.StartDate.Format("2006-01-02")
	if request.StartDate != nil {
		startDate = *request.StartDate
	}
	endDate := contract.EndDate.Format("2006-01-02")
	if request.EndDate != nil {
		endDate = *request.EndDate
	}
	rentAmount := contract.RentAmount.String()
	if request.RentAmount != nil {
		rentAmount = *request.RentAmount
	}
	depositAmount := contract.DepositAmount.String()
	if request.DepositAmount != nil {
		depositAmount = *request.DepositAmount
	}
	includesWifi := contract.IncludesWifi
	if request.IncludesWifi != nil {
		includesWifi = *request.IncludesWifi
	}
	wifiCost := contract.WifiCost.String()
	if request.WifiCost != nil {
		wifiCost = *request.WifiCost
	}

	form, errs := validateContractForm(
		startDate, endDate, rentAmount, depositAmount, wifiCost, includesWifi,
	)
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	newRoomID := contract.RoomID
	if request.RoomID != nil {
		newRoomID, err = uuid.Parse(*request.RoomID)
		if err != nil {
			return nil, FieldError("roomId", "Identificador inválido")
		}
	}
	roomChanged := newRoomID != contract.RoomID
	if roomChanged {
		if _, err := c.roomRepo.GetByID(ctx, newRoomID); err != nil {
			return nil, FieldError("roomId", "Habitación no encontrada")
		}
	}
	// The merged period is re-checked even when the room stays the same, since
	// a date change alone can collide with another contract on the room.
	conflict, err := c.roomConflict(ctx, newRoomID, form.start, form.end, contract.ID)
	if err != nil {
		return nil, log.Err("failed to check room availability", err, "roomID", newRoomID)
	}
	if conflict {
		return nil, FieldError("roomId", "La habitación ya está ocupada en ese período")
	}

	previousRoomID := contract.RoomID
	contract.RoomID = newRoomID
	contract.Room = nil
	contract.StartDate = form.start
	contract.EndDate = form.end
	contract.RentAmount = form.rent
	contract.DepositAmount = form.deposit
	contract.IncludesWifi = includesWifi
	contract.WifiCost = form.wifi

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.contractRepo.Update(ctx, tx, contract); err != nil {
			return err
		}
		if roomChanged {
			if err := c.roomRepo.SetOccupied(ctx, tx, newRoomID, true); err != nil {
				return err
			}
			return c.releaseRoomIfFree(ctx, tx, previousRoomID, contract.ID)
		}
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to update contract", err, "contractID", contract.ID)
	}

	response := c.toResponse(ctx, contract)
	return &response, nil
}

func (c *ContractController) Delete(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("Delete")

	contract, err := c.contractRepo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.contractRepo.Delete(ctx, tx, contract); err != nil {
			return err
		}
		return c.releaseRoomIfFree(ctx, tx, contract.RoomID, contract.ID)
	})
	if err != nil {
		return log.Err("failed to delete contract", err, "contractID", contract.ID)
	}

	log.Info("contract deleted", "contractID", contract.ID)
	return nil
}

// roomConflict reports whether any other contract on the room overlaps the
// [start, end] period. A point-in-time check is not enough: a contract that
// begins later inside the period would slip past it.
func (c *ContractController) roomConflict(
	ctx context.Context,
	roomID uuid.UUID,
	start, end time.Time,
	excludeContractID uuid.UUID,
) (bool, error) {
	existing, err := c.contractRepo.ListByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}

	for i := range existing {
		if existing[i].ID == excludeContractID {
			continue
		}
		if existing[i].Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// releaseRoomIfFree clears the occupied flag unless another active contract
// still holds the room.
func (c *ContractController) releaseRoomIfFree(
	ctx context.Context,
	tx *gorm.DB,
	roomID uuid.UUID,
	excludeContractID uuid.UUID,
) error {
	occupying, err := c.contractRepo.GetActiveByRoom(ctx, roomID, time.Now().UTC())
	if err != nil {
		return err
	}
	if occupying != nil && occupying.ID != excludeContractID {
		return nil
	}
	return c.roomRepo.SetOccupied(ctx, tx, roomID, false)
}
