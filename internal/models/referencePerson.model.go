package models

import "strings"

// ReferencePerson is a contact vouching for a tenant. Created standalone or
// inline while creating a user.
type ReferencePerson struct {
	BaseUUIDModel
	Name           string `gorm:"type:text"       json:"name"`
	DocumentNumber string `gorm:"type:text;index" json:"documentNumber"`
	Phone          string `gorm:"type:text"       json:"phone"`
}

func (r ReferencePerson) SearchText() string {
	return strings.ToLower(r.Name + " " + r.DocumentNumber)
}

type CreateReferencePersonRequest struct {
	Name           string `json:"name"           validate:"required"`
	DocumentNumber string `json:"documentNumber" validate:"required"`
	Phone          string `json:"phone"          validate:"required"`
}
