package models

import "strings"

type Building struct {
	BaseUUIDModel
	Name    string `gorm:"type:text;uniqueIndex" json:"name"`
	Address string `gorm:"type:text"             json:"address"`

	Rooms []Room `gorm:"foreignKey:BuildingID" json:"rooms,omitempty"`
}

func (b Building) SearchText() string {
	return strings.ToLower(b.Name + " " + b.Address)
}

type CreateBuildingRequest struct {
	Name    string `json:"name"    validate:"required"`
	Address string `json:"address" validate:"required"`
}

type UpdateBuildingRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

func (r *UpdateBuildingRequest) ApplyTo(building *Building) {
	if r.Name != nil {
		building.Name = *r.Name
	}
	if r.Address != nil {
		building.Address = *r.Address
	}
}
