package seed

import (
	"time"

	"renthub/config"
	. "renthub/internal/models"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed loads a small development data set: two buildings with rooms, a pair of
// tenants and one active contract each.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	buildings := []Building{
		{Name: "Edificio Central", Address: "Calle Mayor 12"},
		{Name: "Residencia Norte", Address: "Avenida del Sol 45"},
	}
	for i := range buildings {
		if err := db.Create(&buildings[i]).Error; err != nil {
			return log.Err("failed to seed building", err, "name", buildings[i].Name)
		}
	}

	rooms := []Room{
		{Number: "101", BuildingID: buildings[0].ID},
		{Number: "102", BuildingID: buildings[0].ID},
		{Number: "201", BuildingID: buildings[1].ID},
		{Number: "202", BuildingID: buildings[1].ID},
	}
	for i := range rooms {
		if err := db.Create(&rooms[i]).Error; err != nil {
			return log.Err("failed to seed room", err, "number", rooms[i].Number)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.DefaultCost)
	if err != nil {
		return log.Err("failed to hash seed password", err)
	}

	tenants := []User{
		{
			FirstName:      "Ana",
			LastName:       "García",
			Email:          "ana@example.com",
			PasswordHash:   string(hash),
			Role:           RoleTenant,
			DocumentType:   "DNI",
			DocumentNumber: "12345678X",
			Phone:          "600123456",
			IsActive:       true,
			References: []ReferencePerson{
				{Name: "Luis García", DocumentNumber: "87654321Y", Phone: "600654321"},
			},
		},
		{
			FirstName:      "Pedro",
			LastName:       "Martínez",
			Email:          "pedro@example.com",
			PasswordHash:   string(hash),
			Role:           RoleTenant,
			DocumentType:   "NIE",
			DocumentNumber: "X1234567L",
			Phone:          "611222333",
			IsActive:       true,
		},
	}
	for i := range tenants {
		if err := db.Create(&tenants[i]).Error; err != nil {
			return log.Err("failed to seed tenant", err, "email", tenants[i].Email)
		}
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	contracts := []Contract{
		{
			UserID:        tenants[0].ID,
			RoomID:        rooms[0].ID,
			StartDate:     start,
			EndDate:       start.AddDate(1, 0, 0),
			RentAmount:    decimal.NewFromInt(350),
			DepositAmount: decimal.NewFromInt(350),
			IncludesWifi:  true,
			WifiCost:      decimal.NewFromInt(15),
		},
		{
			UserID:        tenants[1].ID,
			RoomID:        rooms[2].ID,
			StartDate:     start,
			EndDate:       start.AddDate(0, 6, 0),
			RentAmount:    decimal.NewFromInt(400),
			DepositAmount: decimal.NewFromInt(400),
		},
	}
	for i := range contracts {
		if err := db.Create(&contracts[i]).Error; err != nil {
			return log.Err("failed to seed contract", err)
		}
		if err := db.Model(&Room{}).
			Where("id = ?", contracts[i].RoomID).
			Update("occupied", true).Error; err != nil {
			return log.Err("failed to mark seeded room occupied", err)
		}
	}

	log.Info("Seed complete",
		"buildings", len(buildings), "rooms", len(rooms), "tenants", len(tenants))
	return nil
}
