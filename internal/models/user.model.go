package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleTenant     Role = "tenant"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

type User struct {
	BaseUUIDModel
	FirstName      string `gorm:"type:text"                       json:"firstName"`
	LastName       string `gorm:"type:text"                       json:"lastName"`
	FullName       string `gorm:"type:text"                       json:"fullName"`
	Email          string `gorm:"type:text;uniqueIndex"           json:"email"`
	PasswordHash   string `gorm:"type:text"                       json:"-"`
	Role           Role   `gorm:"type:text;default:'tenant'"      json:"role"`
	DocumentType   string `gorm:"type:text"                       json:"documentType"`
	DocumentNumber string `gorm:"type:text;index"                 json:"documentNumber"`
	Phone          string `gorm:"type:text"                       json:"phone"`
	IsVerified     bool   `gorm:"type:bool;default:false"         json:"isVerified"`
	IsActive       bool   `gorm:"type:bool;default:true"          json:"isActive"`
	PhotoPath      string `gorm:"type:text"                       json:"photoPath,omitempty"`

	// A user carries at most two reference persons; the limit is enforced on write.
	References []ReferencePerson `gorm:"many2many:user_references" json:"references,omitempty"`

	LastLoginAt *time.Time `gorm:"type:timestamp" json:"lastLoginAt,omitempty"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	u.FullName = strings.TrimSpace(u.FirstName + " " + u.LastName)
	return nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// Deletable reports whether an admin may remove this account. Verified admin
// accounts are never deleted from the dashboard.
func (u *User) Deletable() bool {
	return !u.IsVerified || !u.IsAdmin()
}

// SearchText is the haystack for case-insensitive list filtering.
func (u User) SearchText() string {
	return strings.ToLower(u.FullName + " " + u.Email + " " + u.DocumentNumber)
}

type CreateUserRequest struct {
	FirstName      string   `json:"firstName"      validate:"required"`
	LastName       string   `json:"lastName"       validate:"required"`
	Email          string   `json:"email"          validate:"required,email"`
	Password       string   `json:"password"`
	Role           Role     `json:"role"           validate:"omitempty,oneof=tenant admin superadmin"`
	DocumentType   string   `json:"documentType"   validate:"required"`
	DocumentNumber string   `json:"documentNumber" validate:"required"`
	Phone          string   `json:"phone"`
	ReferenceIDs   []string `json:"referenceIds"   validate:"max=2"`

	// References created inline together with the user.
	References []CreateReferencePersonRequest `json:"references" validate:"max=2,dive"`
}

// UpdateUserRequest carries only the fields the caller enabled for editing.
// Nil fields are left untouched, matching the dashboard's per-field checkboxes.
type UpdateUserRequest struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"      validate:"omitempty,email"`
	Password       *string `json:"password,omitempty"`
	Role           *Role   `json:"role,omitempty"       validate:"omitempty,oneof=tenant admin superadmin"`
	DocumentType   *string `json:"documentType,omitempty"`
	DocumentNumber *string `json:"documentNumber,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	IsVerified     *bool   `json:"isVerified,omitempty"`
	IsActive       *bool   `json:"isActive,omitempty"`
}

// ApplyTo copies every provided field onto the user. Password is handled by the
// controller because it needs hashing.
func (r *UpdateUserRequest) ApplyTo(user *User) {
	if r.FirstName != nil {
		user.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		user.LastName = *r.LastName
	}
	if r.Email != nil {
		user.Email = *r.Email
	}
	if r.Role != nil {
		user.Role = *r.Role
	}
	if r.DocumentType != nil {
		user.DocumentType = *r.DocumentType
	}
	if r.DocumentNumber != nil {
		user.DocumentNumber = *r.DocumentNumber
	}
	if r.Phone != nil {
		user.Phone = *r.Phone
	}
	if r.IsVerified != nil {
		user.IsVerified = *r.IsVerified
	}
	if r.IsActive != nil {
		user.IsActive = *r.IsActive
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserProfile struct {
	ID             string            `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	FullName       string            `json:"fullName"`
	Email          string            `json:"email"`
	Role           Role              `json:"role"`
	DocumentType   string            `json:"documentType"`
	DocumentNumber string            `json:"documentNumber"`
	Phone          string            `json:"phone"`
	IsVerified     bool              `json:"isVerified"`
	IsActive       bool              `json:"isActive"`
	PhotoPath      string            `json:"photoPath,omitempty"`
	References     []ReferencePerson `json:"references,omitempty"`
	LastLoginAt    *time.Time        `json:"lastLoginAt,omitempty"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:             u.ID.String(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		FullName:       u.FullName,
		Email:          u.Email,
		Role:           u.Role,
		DocumentType:   u.DocumentType,
		DocumentNumber: u.DocumentNumber,
		Phone:          u.Phone,
		IsVerified:     u.IsVerified,
		IsActive:       u.IsActive,
		PhotoPath:      u.PhotoPath,
		References:     u.References,
		LastLoginAt:    u.LastLoginAt,
	}
}
