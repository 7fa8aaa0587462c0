package services

import (
	"context"
	"errors"
	"time"

	"renthub/config"
	"renthub/internal/database"
	"renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	REFRESH_CACHE_PREFIX = "refresh:"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("refresh token revoked")
)

type TokenClaims struct {
	Role      models.Role `json:"role,omitempty"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *TokenClaims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// TokenService issues and validates the JWT access/refresh pair. Refresh
// tokens are allow-listed in the session cache by token ID and rotated on use.
type TokenService struct {
	config config.Config
	cache  database.CacheClient
	log    logger.Logger
}

func NewTokenService(config config.Config, db database.DB) *TokenService {
	return &TokenService{
		config: config,
		cache:  db.Cache.Session,
		log:    logger.New("tokenService"),
	}
}

func (s *TokenService) accessTTL() time.Duration {
	return time.Duration(s.config.AccessTokenMinutes) * time.Minute
}

func (s *TokenService) refreshTTL() time.Duration {
	return time.Duration(s.config.RefreshTokenHours) * time.Hour
}

// GeneratePair signs a new access/refresh pair for the user and allow-lists
// the refresh token.
func (s *TokenService) GeneratePair(ctx context.Context, user *models.User) (models.TokenPair, error) {
	log := s.log.Function("GeneratePair")

	now := time.Now()

	accessClaims := TokenClaims{
		Role:      user.Role,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL())),
			ID:        uuid.New().String(),
		},
	}

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return models.TokenPair{}, log.Err("failed to sign access token", err)
	}

	refreshID := uuid.New().String()
	refreshClaims := TokenClaims{
		TokenType: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTTL())),
			ID:        refreshID,
		},
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return models.TokenPair{}, log.Err("failed to sign refresh token", err)
	}

	if err := database.NewCacheBuilder(s.cache, REFRESH_CACHE_PREFIX+refreshID).
		WithStruct(user.ID).
		WithTTL(s.refreshTTL()).
		WithContext(ctx).
		Set(); err != nil {
		return models.TokenPair{}, log.Err("failed to allow-list refresh token", err)
	}

	return models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.accessTTL().Seconds()),
	}, nil
}

// ValidateAccess parses and verifies an access token.
func (s *TokenService) ValidateAccess(tokenString string) (*TokenClaims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenTypeAccess {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Rotate validates a refresh token against the allow-list, revokes it and
// returns the user ID it belongs to.
func (s *TokenService) Rotate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	log := s.log.Function("Rotate")

	claims, err := s.parse(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	if claims.TokenType != tokenTypeRefresh {
		return uuid.Nil, ErrInvalidToken
	}

	var userID uuid.UUID
	found, err := database.NewCacheBuilder(s.cache, REFRESH_CACHE_PREFIX+claims.ID).
		WithContext(ctx).
		Get(&userID)
	if err != nil {
		return uuid.Nil, log.Err("failed to check refresh allow-list", err)
	}
	if !found {
		return uuid.Nil, ErrTokenRevoked
	}

	if err := database.NewCacheBuilder(s.cache, REFRESH_CACHE_PREFIX+claims.ID).
		WithContext(ctx).
		Delete(); err != nil {
		log.Warn("failed to revoke rotated refresh token", "tokenID", claims.ID, "error", err)
	}

	return userID, nil
}

// Revoke drops a refresh token from the allow-list (logout).
func (s *TokenService) Revoke(ctx context.Context, tokenString string) error {
	claims, err := s.parse(tokenString)
	if err != nil {
		return err
	}

	return database.NewCacheBuilder(s.cache, REFRESH_CACHE_PREFIX+claims.ID).
		WithContext(ctx).
		Delete()
}

func (s *TokenService) parse(tokenString string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&TokenClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return []byte(s.config.JWTSecret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
