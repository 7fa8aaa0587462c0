package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestContractOverlaps(t *testing.T) {
	existing := Contract{
		StartDate: day(2026, 3, 1),
		EndDate:   day(2026, 12, 31),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "new period ends inside existing",
			start: day(2026, 1, 1),
			end:   day(2026, 6, 30),
			want:  true,
		},
		{
			name:  "new period starts inside existing",
			start: day(2026, 10, 1),
			end:   day(2027, 3, 31),
			want:  true,
		},
		{
			name:  "new period contains existing",
			start: day(2026, 1, 1),
			end:   day(2027, 1, 31),
			want:  true,
		},
		{
			name:  "new period inside existing",
			start: day(2026, 5, 1),
			end:   day(2026, 5, 31),
			want:  true,
		},
		{
			name:  "shared boundary day overlaps",
			start: day(2026, 1, 1),
			end:   day(2026, 3, 1),
			want:  true,
		},
		{
			name:  "entirely before",
			start: day(2026, 1, 1),
			end:   day(2026, 2, 28),
			want:  false,
		},
		{
			name:  "entirely after",
			start: day(2027, 1, 1),
			end:   day(2027, 6, 30),
			want:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, existing.Overlaps(tc.start, tc.end))
		})
	}
}
