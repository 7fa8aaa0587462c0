package contractController

import (
	"testing"
	"time"

	. "renthub/internal/models"
	"renthub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractForMonths(tenant string, start, end time.Time) Contract {
	contract := Contract{StartDate: start, EndDate: end}
	if tenant != "" {
		contract.User = &User{FullName: tenant}
	}
	return contract
}

func TestContractSortKey(t *testing.T) {
	jan := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	dec := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	contracts := []Contract{
		contractForMonths("Luis Mendoza", mar, dec),
		contractForMonths("Ana García", jan, jun),
	}

	t.Run("by start date", func(t *testing.T) {
		sorted := append([]Contract(nil), contracts...)
		utils.SortSlice(sorted, contractSortKey("startDate"), "asc")
		assert.Equal(t, jan, sorted[0].StartDate)
		assert.Equal(t, mar, sorted[1].StartDate)
	})

	t.Run("by end date descending", func(t *testing.T) {
		sorted := append([]Contract(nil), contracts...)
		utils.SortSlice(sorted, contractSortKey("endDate"), "desc")
		assert.Equal(t, dec, sorted[0].EndDate)
	})

	t.Run("by tenant name handles missing user", func(t *testing.T) {
		sorted := []Contract{
			contractForMonths("Luis Mendoza", mar, dec),
			contractForMonths("", jan, jun),
			contractForMonths("Ana García", jan, jun),
		}
		utils.SortSlice(sorted, contractSortKey("tenant"), "asc")
		assert.Nil(t, sorted[0].User)
		assert.Equal(t, "Ana García", sorted[1].User.FullName)
		assert.Equal(t, "Luis Mendoza", sorted[2].User.FullName)
	})

	t.Run("unknown field has no key", func(t *testing.T) {
		assert.Nil(t, contractSortKey("rentAmount"))
		assert.Nil(t, contractSortKey(""))
	})
}

func TestValidateContractForm(t *testing.T) {
	tests := []struct {
		name          string
		startDate     string
		endDate       string
		rentAmount    string
		depositAmount string
		wifiCost      string
		includesWifi  bool
		wantErrs      []string
	}{
		{
			name:          "valid without wifi",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "350.00",
			depositAmount: "350.00",
		},
		{
			name:          "valid with wifi",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "350.00",
			depositAmount: "350.00",
			wifiCost:      "15.00",
			includesWifi:  true,
		},
		{
			name:          "end before start",
			startDate:     "2025-06-01",
			endDate:       "2025-01-01",
			rentAmount:    "350.00",
			depositAmount: "350.00",
			wantErrs:      []string{"endDate"},
		},
		{
			name:          "end equal to start",
			startDate:     "2025-06-01",
			endDate:       "2025-06-01",
			rentAmount:    "350.00",
			depositAmount: "350.00",
			wantErrs:      []string{"endDate"},
		},
		{
			name:          "zero rent",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "0",
			depositAmount: "350.00",
			wantErrs:      []string{"rentAmount"},
		},
		{
			name:          "negative deposit",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "350.00",
			depositAmount: "-10",
			wantErrs:      []string{"depositAmount"},
		},
		{
			name:          "wifi included but no cost",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "350.00",
			depositAmount: "350.00",
			includesWifi:  true,
			wantErrs:      []string{"wifiCost"},
		},
		{
			name:          "wifi included with zero cost",
			startDate:     "2025-01-01",
			endDate:       "2025-12-31",
			rentAmount:    "350.00",
			depositAmount: "350.00",
			wifiCost:      "0",
			includesWifi:  true,
			wantErrs:      []string{"wifiCost"},
		},
		{
			name:          "malformed dates and amounts",
			startDate:     "not-a-date",
			endDate:       "2025/12/31",
			rentAmount:    "abc",
			depositAmount: "",
			wantErrs:      []string{"startDate", "endDate", "rentAmount", "depositAmount"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := validateContractForm(
				tc.startDate,
				tc.endDate,
				tc.rentAmount,
				tc.depositAmount,
				tc.wifiCost,
				tc.includesWifi,
			)

			if len(tc.wantErrs) == 0 {
				assert.Empty(t, errs)
				return
			}

			require.Len(t, errs, len(tc.wantErrs))
			for _, field := range tc.wantErrs {
				assert.Contains(t, errs, field)
			}
		})
	}
}

func TestValidateContractFormMessages(t *testing.T) {
	_, errs := validateContractForm("2025-06-01", "2025-01-01", "350", "350", "", false)
	assert.Equal(t, "La fecha de fin debe ser posterior a la de inicio", errs["endDate"])

	_, errs = validateContractForm("2025-01-01", "2025-12-31", "-5", "350", "", false)
	assert.Equal(t, "Debe ser un monto positivo", errs["rentAmount"])
}
