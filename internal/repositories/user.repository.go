package repositories

import (
	"context"
	"time"

	"renthub/internal/database"
	"renthub/internal/events"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY          = 24 * time.Hour
	USER_CACHE_PREFIX          = "user:"
	EMAIL_MAPPING_CACHE_PREFIX = "email:"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, user *User) error
	ReplaceReferences(ctx context.Context, user *User, references []ReferencePerson) error
	ClearCache(ctx context.Context, user *User)
}

type userRepository struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger
}

func NewUserRepository(db database.DB, eventBus *events.EventBus) UserRepository {
	return &userRepository{
		db:       db,
		eventBus: eventBus,
		log:      logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found := r.getCacheByID(ctx, id, &user); found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).
		Preload("References").
		First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	r.addToCache(ctx, &user)

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	// The email cache only maps to the user ID; the profile itself lives under
	// the ID key so there is a single copy to invalidate.
	var id uuid.UUID
	found, err := database.NewCacheBuilder(r.db.Cache.User, EMAIL_MAPPING_CACHE_PREFIX+email).
		WithContext(ctx).
		Get(&id)
	if err == nil && found {
		var cached User
		if ok := r.getCacheByID(ctx, id, &cached); ok {
			return &cached, nil
		}
	}

	var user User
	if err := r.db.SQLWithContext(ctx).
		Preload("References").
		First(&user, "email = ?", email).Error; err != nil {
		return nil, log.Err("failed to get user by email", err, "email", email)
	}

	r.addToCache(ctx, &user)

	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]User, error) {
	log := r.log.Function("List")

	var users []User
	if err := r.db.SQLWithContext(ctx).
		Preload("References").
		Order("created_at desc").
		Find(&users).Error; err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Create(user).Error; err != nil {
		return log.Err("failed to create user", err, "email", user.Email)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Update")

	if tx == nil {
		tx = r.db.SQLWithContext(ctx)
	}

	if err := tx.Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	r.ClearCache(ctx, user)
	r.publishInvalidation(user)

	return nil
}

func (r *userRepository) Delete(ctx context.Context, user *User) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Delete(user).Error; err != nil {
		return log.Err("failed to delete user", err, "userID", user.ID)
	}

	r.ClearCache(ctx, user)
	r.publishInvalidation(user)

	return nil
}

func (r *userRepository) ReplaceReferences(
	ctx context.Context,
	user *User,
	references []ReferencePerson,
) error {
	log := r.log.Function("ReplaceReferences")

	if err := r.db.SQLWithContext(ctx).
		Model(user).
		Association("References").
		Replace(references); err != nil {
		return log.Err("failed to replace user references", err, "userID", user.ID)
	}

	r.ClearCache(ctx, user)
	r.publishInvalidation(user)

	return nil
}

// publishInvalidation tells the other instances to drop their cached copy.
// ClearCache stays local so the subscriber handling this event does not
// republish it.
func (r *userRepository) publishInvalidation(user *User) {
	if r.eventBus == nil {
		return
	}

	err := r.eventBus.Publish(events.CACHE_CHANNEL, events.Event{
		Type:   events.USER_INVALIDATED,
		UserID: &user.ID,
		Data:   map[string]any{"email": user.Email},
	})
	if err != nil {
		r.log.Function("publishInvalidation").
			Warn("failed to publish user invalidation", "userID", user.ID, "error", err)
	}
}

func (r *userRepository) ClearCache(ctx context.Context, user *User) {
	log := r.log.Function("ClearCache")

	if err := database.NewCacheBuilder(r.db.Cache.User, USER_CACHE_PREFIX+user.ID.String()).
		WithContext(ctx).
		Delete(); err != nil {
		log.Warn("failed to clear user cache", "userID", user.ID, "error", err)
	}

	if user.Email != "" {
		if err := database.NewCacheBuilder(r.db.Cache.User, EMAIL_MAPPING_CACHE_PREFIX+user.Email).
			WithContext(ctx).
			Delete(); err != nil {
			log.Warn("failed to clear email mapping cache", "email", user.Email, "error", err)
		}
	}
}

func (r *userRepository) getCacheByID(ctx context.Context, id uuid.UUID, user *User) bool {
	found, err := database.NewCacheBuilder(r.db.Cache.User, USER_CACHE_PREFIX+id.String()).
		WithContext(ctx).
		Get(user)
	return err == nil && found
}

func (r *userRepository) addToCache(ctx context.Context, user *User) {
	log := r.log.Function("addToCache")

	if err := database.NewCacheBuilder(r.db.Cache.User, USER_CACHE_PREFIX+user.ID.String()).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to add user to cache", "userID", user.ID, "error", err)
	}

	if user.Email == "" {
		return
	}

	if err := database.NewCacheBuilder(r.db.Cache.User, EMAIL_MAPPING_CACHE_PREFIX+user.Email).
		WithStruct(user.ID).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache email mapping", "email", user.Email, "error", err)
	}
}
