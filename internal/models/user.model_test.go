package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func TestUpdateUserRequestApplyTo(t *testing.T) {
	user := &User{
		FirstName:      "Ana",
		LastName:       "García",
		Email:          "ana@example.com",
		Phone:          "600123456",
		DocumentType:   "DNI",
		DocumentNumber: "12345678X",
		IsActive:       true,
	}

	request := UpdateUserRequest{
		FirstName: strPtr("Lucía"),
		Phone:     strPtr("600999888"),
	}
	request.ApplyTo(user)

	assert.Equal(t, "Lucía", user.FirstName)
	assert.Equal(t, "600999888", user.Phone)

	// Fields without a pointer stay untouched.
	assert.Equal(t, "García", user.LastName)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, "DNI", user.DocumentType)
	assert.Equal(t, "12345678X", user.DocumentNumber)
	assert.True(t, user.IsActive)
}

func TestUserDeletable(t *testing.T) {
	tests := []struct {
		name string
		user User
		want bool
	}{
		{name: "unverified tenant", user: User{Role: RoleTenant}, want: true},
		{name: "verified tenant", user: User{Role: RoleTenant, IsVerified: true}, want: true},
		{name: "unverified admin", user: User{Role: RoleAdmin}, want: true},
		{name: "verified admin", user: User{Role: RoleAdmin, IsVerified: true}, want: false},
		{
			name: "verified superadmin",
			user: User{Role: RoleSuperadmin, IsVerified: true},
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.user.Deletable())
		})
	}
}

func TestChangeRequestApplyTo(t *testing.T) {
	user := &User{FirstName: "Ana", Email: "ana@example.com", Phone: "600123456"}
	request := &ChangeRequest{
		Changes: datatypes.JSONMap{
			"first_name": "Lucía",
			"phone":      "600999888",
			"unknown":    "ignored",
		},
	}

	request.ApplyTo(user)

	assert.Equal(t, "Lucía", user.FirstName)
	assert.Equal(t, "600999888", user.Phone)
	assert.Equal(t, "ana@example.com", user.Email)
}
