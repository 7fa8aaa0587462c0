package userController

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"
	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 8
	maxReferences     = 2
	photoCategory     = "photos"
)

type UserController struct {
	userRepo      repositories.UserRepository
	referenceRepo repositories.ReferencePersonRepository
	mailService   *services.MailService
	uploadService *services.UploadService
	transaction   *services.TransactionService
	log           logger.Logger
}

type UserControllerInterface interface {
	List(ctx context.Context, params ListParams) (ListResult[User], error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, request CreateUserRequest) (*User, error)
	Update(ctx context.Context, id uuid.UUID, request UpdateUserRequest) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetPhoto(ctx context.Context, id uuid.UUID, file *multipart.FileHeader) (*User, error)
	ListReferences(ctx context.Context, params ListParams) (ListResult[ReferencePerson], error)
	CreateReference(
		ctx context.Context,
		request CreateReferencePersonRequest,
	) (*ReferencePerson, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
) UserControllerInterface {
	return &UserController{
		userRepo:      repos.User,
		referenceRepo: repos.ReferencePerson,
		mailService:   services.Mail,
		uploadService: services.Upload,
		transaction:   services.Transaction,
		log:           logger.New("userController"),
	}
}

// validateUserForm holds the form rules tag validation cannot express. A create
// needs a password, an edit does not; a provided password still has to meet the
// minimum either way.
func validateUserForm(
	email, password, phone, documentNumber string,
	requirePassword bool,
) map[string]string {
	errs := map[string]string{}

	if requirePassword && password == "" {
		errs["password"] = "Este campo es obligatorio"
	}
	if password != "" && len(password) < minPasswordLength {
		errs["password"] = "Debe tener al menos 8 caracteres"
	}

	if email != "" && !strings.Contains(email, "@") {
		errs["email"] = "Correo electrónico inválido"
	}

	if phone != "" {
		digits := 0
		for _, r := range phone {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits < 7 || digits > 15 {
			errs["phone"] = "Teléfono inválido"
		}
	}

	if documentNumber != "" && len(documentNumber) < 5 {
		errs["documentNumber"] = "Debe tener al menos 5 caracteres"
	}

	return errs
}

func (c *UserController) List(
	ctx context.Context,
	params ListParams,
) (ListResult[User], error) {
	log := c.log.Function("List")
	params.Normalize()

	users, err := c.userRepo.List(ctx)
	if err != nil {
		return ListResult[User]{}, log.Err("failed to list users", err)
	}

	filtered := utils.FilterBySearch(users, params.Search)
	if key := userSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)

	return ListResult[User]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func userSortKey(field string) func(User) string {
	switch field {
	case "name":
		return func(u User) string { return strings.ToLower(u.FullName) }
	case "email":
		return func(u User) string { return strings.ToLower(u.Email) }
	case "createdAt":
		return func(u User) string { return u.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func referenceSortKey(field string) func(ReferencePerson) string {
	switch field {
	case "name":
		return func(r ReferencePerson) string { return strings.ToLower(r.Name) }
	case "createdAt":
		return func(r ReferencePerson) string { return r.CreatedAt.Format(time.RFC3339) }
	default:
		return nil
	}
}

func (c *UserController) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (c *UserController) Create(
	ctx context.Context,
	request CreateUserRequest,
) (*User, error) {
	log := c.log.Function("Create")

	errs := ValidateStruct(request)
	for field, msg := range validateUserForm(
		request.Email, request.Password, request.Phone, request.DocumentNumber, true,
	) {
		errs[field] = msg
	}
	if len(request.ReferenceIDs)+len(request.References) > maxReferences {
		errs["references"] = "Máximo dos personas de referencia"
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	if existing, _ := c.userRepo.GetByEmail(ctx, request.Email); existing != nil {
		return nil, FieldError("email", "El correo ya está registrado")
	}

	references, err := c.resolveReferences(ctx, request)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	role := request.Role
	if role == "" {
		role = RoleTenant
	}

	user := &User{
		FirstName:      request.FirstName,
		LastName:       request.LastName,
		Email:          request.Email,
		PasswordHash:   string(hash),
		Role:           role,
		DocumentType:   request.DocumentType,
		DocumentNumber: request.DocumentNumber,
		Phone:          request.Phone,
		IsActive:       true,
		References:     references,
	}

	// The credentials mail goes out inside the transaction so an unavailable
	// mail service rolls the whole creation back.
	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.userRepo.Create(ctx, tx, user); err != nil {
			return err
		}
		if c.mailService.Enabled() {
			return c.mailService.SendAccountCredentials(user, request.Password)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, services.ErrMailUnavailable) {
			return nil, err
		}
		return nil, log.Err("failed to create user", err, "email", request.Email)
	}

	log.Info("user created", "userID", user.ID, "role", user.Role)
	return user, nil
}

func (c *UserController) resolveReferences(
	ctx context.Context,
	request CreateUserRequest,
) ([]ReferencePerson, error) {
	references := make([]ReferencePerson, 0, maxReferences)

	if len(request.ReferenceIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(request.ReferenceIDs))
		for _, raw := range request.ReferenceIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, FieldError("referenceIds", "Identificador inválido")
			}
			ids = append(ids, id)
		}

		existing, err := c.referenceRepo.GetByIDs(ctx, ids)
		if err != nil || len(existing) != len(ids) {
			return nil, FieldError("referenceIds", "Persona de referencia no encontrada")
		}
		references = append(references, existing...)
	}

	for _, inline := range request.References {
		references = append(references, ReferencePerson{
			Name:           inline.Name,
			DocumentNumber: inline.DocumentNumber,
			Phone:          inline.Phone,
		})
	}

	return references, nil
}

func (c *UserController) Update(
	ctx context.Context,
	id uuid.UUID,
	request UpdateUserRequest,
) (*User, error) {
	log := c.log.Function("Update")

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	errs := ValidateStruct(request)

	email := user.Email
	if request.Email != nil {
		email = *request.Email
	}
	password := ""
	if request.Password != nil {
		password = *request.Password
	}
	phone := user.Phone
	if request.Phone != nil {
		phone = *request.Phone
	}
	documentNumber := user.DocumentNumber
	if request.DocumentNumber != nil {
		documentNumber = *request.DocumentNumber
	}
	for field, msg := range validateUserForm(email, password, phone, documentNumber, false) {
		errs[field] = msg
	}
	if len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	if request.Email != nil && *request.Email != user.Email {
		if existing, _ := c.userRepo.GetByEmail(ctx, *request.Email); existing != nil {
			return nil, FieldError("email", "El correo ya está registrado")
		}
	}

	request.ApplyTo(user)
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, log.Err("failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, log.Err("failed to update user", err, "userID", user.ID)
	}

	return user, nil
}

func (c *UserController) Delete(ctx context.Context, id uuid.UUID) error {
	log := c.log.Function("Delete")

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return ErrNotFound
	}

	if !user.Deletable() {
		log.Warn("refused to delete verified admin account", "userID", user.ID)
		return ErrForbidden
	}

	if err := c.userRepo.Delete(ctx, user); err != nil {
		return log.Err("failed to delete user", err, "userID", user.ID)
	}

	log.Info("user deleted", "userID", user.ID)
	return nil
}

func (c *UserController) SetPhoto(
	ctx context.Context,
	id uuid.UUID,
	file *multipart.FileHeader,
) (*User, error) {
	log := c.log.Function("SetPhoto")

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	path, err := c.uploadService.SaveImage(photoCategory, user.ID, file)
	if err != nil {
		if errors.Is(err, utils.ErrImageExtension) || errors.Is(err, utils.ErrImageTooLarge) {
			return nil, FieldError("photo", err.Error())
		}
		return nil, log.Err("failed to store profile photo", err, "userID", user.ID)
	}

	previous := user.PhotoPath
	user.PhotoPath = path

	err = c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Update(ctx, tx, user)
	})
	if err != nil {
		return nil, log.Err("failed to persist profile photo", err, "userID", user.ID)
	}

	if previous != "" && previous != path {
		if err := c.uploadService.Remove(previous); err != nil {
			log.Warn("failed to remove previous photo", "path", previous, "error", err)
		}
	}

	return user, nil
}

func (c *UserController) ListReferences(
	ctx context.Context,
	params ListParams,
) (ListResult[ReferencePerson], error) {
	log := c.log.Function("ListReferences")
	params.Normalize()

	references, err := c.referenceRepo.List(ctx)
	if err != nil {
		return ListResult[ReferencePerson]{}, log.Err("failed to list reference persons", err)
	}

	filtered := utils.FilterBySearch(references, params.Search)
	if key := referenceSortKey(params.Sort); key != nil {
		utils.SortSlice(filtered, key, params.Order)
	}
	page, total := utils.Paginate(filtered, params.Page, params.PageSize)

	return ListResult[ReferencePerson]{
		Items:    page,
		Total:    total,
		Page:     params.Page,
		PageSize: params.PageSize,
	}, nil
}

func (c *UserController) CreateReference(
	ctx context.Context,
	request CreateReferencePersonRequest,
) (*ReferencePerson, error) {
	log := c.log.Function("CreateReference")

	if errs := ValidateStruct(request); len(errs) > 0 {
		return nil, NewValidationError(errs)
	}

	reference := &ReferencePerson{
		Name:           request.Name,
		DocumentNumber: request.DocumentNumber,
		Phone:          request.Phone,
	}

	err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.referenceRepo.Create(ctx, tx, reference)
	})
	if err != nil {
		return nil, log.Err("failed to create reference person", err)
	}

	return reference, nil
}
