package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStructUsesJSONFieldNames(t *testing.T) {
	type form struct {
		ReferenceIDs []string `json:"referenceIds" validate:"required,min=1"`
		UserID       string   `json:"userId"       validate:"required"`
		Untagged     string   `validate:"required"`
	}

	errs := ValidateStruct(form{})

	assert.Contains(t, errs, "referenceIds")
	assert.Contains(t, errs, "userId")
	assert.Contains(t, errs, "untagged")
	assert.NotContains(t, errs, "referenceIDs")
	assert.NotContains(t, errs, "userID")
	assert.Equal(t, "Este campo es obligatorio", errs["userId"])
}

func TestValidateStructValid(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
	}

	assert.Empty(t, ValidateStruct(form{Email: "ana@example.com"}))
}
