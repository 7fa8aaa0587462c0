package models

import (
	"strings"

	"github.com/google/uuid"
)

type Room struct {
	BaseUUIDModel
	Number     string    `gorm:"type:text"                json:"number"`
	BuildingID uuid.UUID `gorm:"type:uuid;index;not null" json:"buildingId"`
	Building   *Building `gorm:"foreignKey:BuildingID"    json:"building,omitempty"`

	// Occupied mirrors active-contract existence and is maintained by the
	// contract controller, never written directly by clients.
	Occupied bool `gorm:"type:bool;default:false" json:"occupied"`
}

func (r Room) SearchText() string {
	haystack := r.Number
	if r.Building != nil {
		haystack += " " + r.Building.Name
	}
	return strings.ToLower(haystack)
}

type CreateRoomRequest struct {
	Number     string `json:"number"     validate:"required"`
	BuildingID string `json:"buildingId" validate:"required,uuid"`
}
