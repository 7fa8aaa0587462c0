package buildingController

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateBuildingForm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantMsg string
	}{
		{name: "valid name", input: "Edificio Central"},
		{name: "exactly three characters", input: "Sol"},
		{
			name:    "two characters",
			input:   "Ed",
			wantErr: true,
			wantMsg: "Debe tener al menos 3 caracteres",
		},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "padded short name still short", input: "  ab  ", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := validateBuildingForm(tc.input)

			if !tc.wantErr {
				assert.Empty(t, errs)
				return
			}

			assert.Contains(t, errs, "name")
			if tc.wantMsg != "" {
				assert.Equal(t, tc.wantMsg, errs["name"])
			}
		})
	}
}
