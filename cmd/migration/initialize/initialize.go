package initialize

import (
	"renthub/config"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultSuperadminEmail = "admin@renthub.local"

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeSuperadmin(db, log); err != nil {
		return log.Err("failed to initialize superadmin", err)
	}

	log.Info("Table initialization complete")
	return nil
}

// initializeSuperadmin guarantees one superadmin account exists so the
// dashboard is reachable on a fresh database. The password must be rotated on
// first login.
func initializeSuperadmin(db *gorm.DB, log logger.Logger) error {
	var existing User
	if err := db.First(&existing, "role = ?", RoleSuperadmin).Error; err == nil {
		log.Info("Superadmin already exists", "userID", existing.ID)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("changeme-now"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash superadmin password", err)
	}

	superadmin := User{
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        defaultSuperadminEmail,
		PasswordHash: string(hash),
		Role:         RoleSuperadmin,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := db.Create(&superadmin).Error; err != nil {
		return log.Err("failed to create superadmin", err)
	}

	log.Info("Superadmin created", "email", defaultSuperadminEmail)
	return nil
}
