package authController

import (
	"context"
	"time"

	. "renthub/internal/models"
	"renthub/internal/repositories"
	"renthub/internal/services"

	logger "github.com/Bparsons0904/goLogger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	transaction  *services.TransactionService
	log          logger.Logger
}

type AuthControllerInterface interface {
	Login(ctx context.Context, request LoginRequest) (TokenPair, *User, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
}

func New(
	repos repositories.Repository,
	services services.Service,
) AuthControllerInterface {
	return &AuthController{
		userRepo:     repos.User,
		tokenService: services.Token,
		transaction:  services.Transaction,
		log:          logger.New("authController"),
	}
}

func (c *AuthController) Login(
	ctx context.Context,
	request LoginRequest,
) (TokenPair, *User, error) {
	log := c.log.Function("Login")

	if errs := ValidateStruct(request); len(errs) > 0 {
		return TokenPair{}, nil, NewValidationError(errs)
	}

	user, err := c.userRepo.GetByEmail(ctx, request.Email)
	if err != nil {
		log.Warn("login attempt for unknown email", "email", request.Email)
		return TokenPair{}, nil, ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(user.PasswordHash),
		[]byte(request.Password),
	); err != nil {
		log.Warn("login attempt with wrong password", "userID", user.ID)
		return TokenPair{}, nil, ErrUnauthorized
	}

	if !user.IsActive {
		log.Warn("login attempt on inactive account", "userID", user.ID)
		return TokenPair{}, nil, ErrUnauthorized
	}

	pair, err := c.tokenService.GeneratePair(ctx, user)
	if err != nil {
		return TokenPair{}, nil, log.Err("failed to generate token pair", err, "userID", user.ID)
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := c.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return c.userRepo.Update(ctx, tx, user)
	}); err != nil {
		log.Warn("failed to record last login", "userID", user.ID, "error", err)
	}

	log.Info("user logged in", "userID", user.ID)
	return pair, user, nil
}

func (c *AuthController) Refresh(
	ctx context.Context,
	refreshToken string,
) (TokenPair, error) {
	log := c.log.Function("Refresh")

	userID, err := c.tokenService.Rotate(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, ErrUnauthorized
	}

	user, err := c.userRepo.GetByID(ctx, userID)
	if err != nil {
		return TokenPair{}, ErrUnauthorized
	}
	if !user.IsActive {
		return TokenPair{}, ErrUnauthorized
	}

	pair, err := c.tokenService.GeneratePair(ctx, user)
	if err != nil {
		return TokenPair{}, log.Err("failed to generate token pair", err, "userID", user.ID)
	}

	return pair, nil
}

func (c *AuthController) Logout(ctx context.Context, refreshToken string) error {
	return c.tokenService.Revoke(ctx, refreshToken)
}
