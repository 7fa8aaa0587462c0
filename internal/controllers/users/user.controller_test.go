package userController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserForm(t *testing.T) {
	tests := []struct {
		name            string
		email           string
		password        string
		phone           string
		documentNumber  string
		requirePassword bool
		wantErrs        []string
	}{
		{
			name:            "valid create",
			email:           "ana@example.com",
			password:        "segura123",
			phone:           "+34 600 123 456",
			documentNumber:  "12345678X",
			requirePassword: true,
		},
		{
			name:            "create without password",
			email:           "ana@example.com",
			phone:           "600123456",
			documentNumber:  "12345678X",
			requirePassword: true,
			wantErrs:        []string{"password"},
		},
		{
			name:           "edit without password is fine",
			email:          "ana@example.com",
			phone:          "600123456",
			documentNumber: "12345678X",
		},
		{
			name:            "short password",
			email:           "ana@example.com",
			password:        "corta",
			documentNumber:  "12345678X",
			requirePassword: true,
			wantErrs:        []string{"password"},
		},
		{
			name:           "short password on edit still rejected",
			email:          "ana@example.com",
			password:       "corta",
			documentNumber: "12345678X",
			wantErrs:       []string{"password"},
		},
		{
			name:           "email without at sign",
			email:          "ana.example.com",
			documentNumber: "12345678X",
			wantErrs:       []string{"email"},
		},
		{
			name:           "phone with too few digits",
			email:          "ana@example.com",
			phone:          "12345",
			documentNumber: "12345678X",
			wantErrs:       []string{"phone"},
		},
		{
			name:           "short document number",
			email:          "ana@example.com",
			documentNumber: "123",
			wantErrs:       []string{"documentNumber"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateUserForm(
				tc.email,
				tc.password,
				tc.phone,
				tc.documentNumber,
				tc.requirePassword,
			)

			if len(tc.wantErrs) == 0 {
				assert.Empty(t, errs)
				return
			}

			assert.Len(t, errs, len(tc.wantErrs))
			for _, field := range tc.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateUserFormPasswordMessage(t *testing.T) {
	errs := validateUserForm("ana@example.com", "corta", "", "12345678X", false)
	assert.Equal(t, "Debe tener al menos 8 caracteres", errs["password"])
}
