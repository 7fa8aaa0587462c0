package client

import (
	"context"
	"io"
	"strconv"

	"renthub/internal/models"
)

// ListOptions mirror the collection query parameters.
type ListOptions struct {
	Search   string
	Page     int
	PageSize int
}

func (o ListOptions) query() map[string]string {
	query := map[string]string{}
	if o.Search != "" {
		query["search"] = o.Search
	}
	if o.Page > 0 {
		query["page"] = strconv.Itoa(o.Page)
	}
	if o.PageSize > 0 {
		query["page_size"] = strconv.Itoa(o.PageSize)
	}
	return query
}

type loginResponse struct {
	Access    string             `json:"access"`
	Refresh   string             `json:"refresh"`
	TokenType string             `json:"tokenType"`
	ExpiresIn int64              `json:"expiresIn"`
	User      models.UserProfile `json:"user"`
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*models.UserProfile, error) {
	var response loginResponse
	err := c.post(ctx, "/api/token/", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &response)
	if err != nil {
		return nil, err
	}

	c.tokens.Set(response.Access, response.Refresh)
	return &response.User, nil
}

// RefreshTokens exchanges the stored refresh token for a new pair.
func (c *Client) RefreshTokens(ctx context.Context) error {
	var pair models.TokenPair
	err := c.post(ctx, "/api/token/refresh/", models.RefreshRequest{
		Refresh: c.tokens.Refresh(),
	}, &pair)
	if err != nil {
		return err
	}

	c.tokens.Set(pair.AccessToken, pair.RefreshToken)
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.post(ctx, "/api/token/logout/", models.RefreshRequest{
		Refresh: c.tokens.Refresh(),
	}, nil)
	c.tokens.Clear()
	return err
}

func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var response struct {
		User models.UserProfile `json:"user"`
	}
	if err := c.get(ctx, "/api/users/me/", nil, &response); err != nil {
		return nil, err
	}
	return &response.User, nil
}

func (c *Client) ListUsers(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.User], error) {
	var result models.ListResult[models.User]
	err := c.get(ctx, "/api/users/", options.query(), &result)
	return result, err
}

func (c *Client) CreateUser(
	ctx context.Context,
	request models.CreateUserRequest,
) (*models.User, error) {
	var user models.User
	if err := c.post(ctx, "/api/users/", request, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser sends only the fields enabled on the patch.
func (c *Client) UpdateUser(ctx context.Context, id string, patch *Patch) (*models.User, error) {
	var user models.User
	if err := c.patch(ctx, "/api/users/"+id+"/", patch.Payload(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/users/"+id+"/")
}

func (c *Client) ListReferencePersons(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.ReferencePerson], error) {
	var result models.ListResult[models.ReferencePerson]
	err := c.get(ctx, "/api/reference-persons/", options.query(), &result)
	return result, err
}

func (c *Client) CreateReferencePerson(
	ctx context.Context,
	request models.CreateReferencePersonRequest,
) (*models.ReferencePerson, error) {
	var reference models.ReferencePerson
	if err := c.post(ctx, "/api/reference-persons/", request, &reference); err != nil {
		return nil, err
	}
	return &reference, nil
}

func (c *Client) ListBuildings(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.Building], error) {
	var result models.ListResult[models.Building]
	err := c.get(ctx, "/api/buildings/", options.query(), &result)
	return result, err
}

func (c *Client) CreateBuilding(
	ctx context.Context,
	request models.CreateBuildingRequest,
) (*models.Building, error) {
	var building models.Building
	if err := c.post(ctx, "/api/buildings/", request, &building); err != nil {
		return nil, err
	}
	return &building, nil
}

func (c *Client) UpdateBuilding(
	ctx context.Context,
	id string,
	patch *Patch,
) (*models.Building, error) {
	var building models.Building
	if err := c.patch(ctx, "/api/buildings/"+id+"/", patch.Payload(), &building); err != nil {
		return nil, err
	}
	return &building, nil
}

func (c *Client) ListRooms(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.Room], error) {
	var result models.ListResult[models.Room]
	err := c.get(ctx, "/api/rooms/", options.query(), &result)
	return result, err
}

// AvailableRooms lists unoccupied rooms, optionally scoped to one building.
func (c *Client) AvailableRooms(ctx context.Context, buildingID string) ([]models.Room, error) {
	query := map[string]string{}
	if buildingID != "" {
		query["building_id"] = buildingID
	}

	var rooms []models.Room
	err := c.get(ctx, "/api/rooms/available/", query, &rooms)
	return rooms, err
}

func (c *Client) CreateRoom(
	ctx context.Context,
	request models.CreateRoomRequest,
) (*models.Room, error) {
	var room models.Room
	if err := c.post(ctx, "/api/rooms/", request, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (c *Client) ListContracts(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.ContractResponse], error) {
	var result models.ListResult[models.ContractResponse]
	err := c.get(ctx, "/api/contracts/", options.query(), &result)
	return result, err
}

func (c *Client) CreateContract(
	ctx context.Context,
	request models.CreateContractRequest,
) (*models.ContractResponse, error) {
	var contract models.ContractResponse
	if err := c.post(ctx, "/api/contracts/", request, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *Client) UpdateContract(
	ctx context.Context,
	id string,
	patch *Patch,
) (*models.ContractResponse, error) {
	var contract models.ContractResponse
	if err := c.patch(ctx, "/api/contracts/"+id+"/", patch.Payload(), &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *Client) DeleteContract(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/contracts/"+id+"/")
}

func (c *Client) ListRentPayments(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.RentPayment], error) {
	var result models.ListResult[models.RentPayment]
	err := c.get(ctx, "/api/payments/rent/", options.query(), &result)
	return result, err
}

// UploadReceipt attaches a receipt image plus optional comment via multipart
// PATCH.
func (c *Client) UploadReceipt(
	ctx context.Context,
	paymentID, filename string,
	receipt io.Reader,
	comment string,
) (*models.RentPayment, error) {
	var payment models.RentPayment

	request := c.http.R().
		SetContext(ctx).
		SetFileReader("receipt", filename, receipt).
		SetResult(&payment)
	if comment != "" {
		request.SetFormData(map[string]string{"userComment": comment})
	}

	resp, err := request.Patch("/api/payments/rent/" + paymentID + "/")
	if err := wrapResponse(resp, err); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) ApprovePayment(
	ctx context.Context,
	paymentID, adminComment string,
) (*models.RentPayment, error) {
	return c.reviewPayment(ctx, paymentID, "approve", adminComment)
}

func (c *Client) RejectPayment(
	ctx context.Context,
	paymentID, adminComment string,
) (*models.RentPayment, error) {
	return c.reviewPayment(ctx, paymentID, "reject", adminComment)
}

func (c *Client) reviewPayment(
	ctx context.Context,
	paymentID, action, adminComment string,
) (*models.RentPayment, error) {
	var payment models.RentPayment
	err := c.post(
		ctx,
		"/api/payments/rent/"+paymentID+"/"+action+"/",
		models.ReviewPaymentRequest{AdminComment: adminComment},
		&payment,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) ListLaundryBookings(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.LaundryBookingResponse], error) {
	var result models.ListResult[models.LaundryBookingResponse]
	err := c.get(ctx, "/api/laundry-bookings/", options.query(), &result)
	return result, err
}

func (c *Client) CreateLaundryBooking(
	ctx context.Context,
	request models.CreateLaundryBookingRequest,
) (*models.LaundryBookingResponse, error) {
	var booking models.LaundryBookingResponse
	if err := c.post(ctx, "/api/laundry-bookings/", request, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// LaundryAction advances a booking through one workflow endpoint. The proposal
// is required for propose and counter-propose.
func (c *Client) LaundryAction(
	ctx context.Context,
	bookingID string,
	action models.BookingAction,
	proposal *models.ProposeBookingRequest,
) (*models.LaundryBookingResponse, error) {
	path := "/api/laundry-bookings/" + bookingID + "/"
	switch action {
	case models.ActionApprove:
		path += "approve/"
	case models.ActionReject:
		path += "reject/"
	case models.ActionPropose:
		path += "propose/"
	case models.ActionCounterPropose:
		path += "counter-propose/"
	case models.ActionAccept:
		path += "accept/"
	default:
		return nil, &APIError{Status: 0, Message: "unknown action " + string(action)}
	}

	var body any
	if proposal != nil {
		body = proposal
	}

	var booking models.LaundryBookingResponse
	if err := c.post(ctx, path, body, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) ListChangeRequests(
	ctx context.Context,
	options ListOptions,
) (models.ListResult[models.ChangeRequest], error) {
	var result models.ListResult[models.ChangeRequest]
	err := c.get(ctx, "/api/change_requests/", options.query(), &result)
	return result, err
}

func (c *Client) CreateChangeRequest(
	ctx context.Context,
	changes map[string]string,
) (*models.ChangeRequest, error) {
	var request models.ChangeRequest
	err := c.post(
		ctx,
		"/api/change_requests/",
		models.CreateChangeRequestRequest{Changes: changes},
		&request,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *Client) ApproveChangeRequest(
	ctx context.Context,
	id, comment string,
) (*models.ChangeRequest, error) {
	return c.reviewChangeRequest(ctx, id, "approve", comment)
}

func (c *Client) RejectChangeRequest(
	ctx context.Context,
	id, comment string,
) (*models.ChangeRequest, error) {
	return c.reviewChangeRequest(ctx, id, "reject", comment)
}

func (c *Client) reviewChangeRequest(
	ctx context.Context,
	id, action, comment string,
) (*models.ChangeRequest, error) {
	var request models.ChangeRequest
	err := c.post(
		ctx,
		"/api/change_requests/"+id+"/"+action+"/",
		models.ReviewChangeRequestRequest{ReviewComment: comment},
		&request,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.get(ctx, "/api/health", nil, nil)
}
