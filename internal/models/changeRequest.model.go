package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChangeRequestStatus string

const (
	ChangeRequestPending  ChangeRequestStatus = "pending"
	ChangeRequestApproved ChangeRequestStatus = "approved"
	ChangeRequestRejected ChangeRequestStatus = "rejected"
)

// ChangeableFields are the profile fields a tenant may ask to alter.
var ChangeableFields = map[string]bool{
	"first_name":      true,
	"last_name":       true,
	"email":           true,
	"phone":           true,
	"document_type":   true,
	"document_number": true,
}

// ChangeRequest is a tenant-submitted proposal to alter personal information,
// resolved by an admin.
type ChangeRequest struct {
	BaseUUIDModel
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	User   *User     `gorm:"foreignKey:UserID"        json:"user,omitempty"`

	// Changes maps field name -> requested new value.
	Changes datatypes.JSONMap `gorm:"type:jsonb" json:"changes"`

	Status        ChangeRequestStatus `gorm:"type:text;default:'pending';index" json:"status"`
	ReviewComment string              `gorm:"type:text"                         json:"reviewComment,omitempty"`
}

type CreateChangeRequestRequest struct {
	Changes map[string]string `json:"changes" validate:"required,min=1"`
}

type ReviewChangeRequestRequest struct {
	ReviewComment string `json:"reviewComment"`
}

// ApplyTo writes the approved changes onto the user. Unknown fields were
// rejected at create time, so they are simply skipped here.
func (cr *ChangeRequest) ApplyTo(user *User) {
	for field, raw := range cr.Changes {
		value, ok := raw.(string)
		if !ok {
			continue
		}
		switch field {
		case "first_name":
			user.FirstName = value
		case "last_name":
			user.LastName = value
		case "email":
			user.Email = value
		case "phone":
			user.Phone = value
		case "document_type":
			user.DocumentType = value
		case "document_number":
			user.DocumentNumber = value
		}
	}
}
