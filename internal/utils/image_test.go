package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateImageFile(t *testing.T) {
	testCases := []struct {
		name      string
		filename  string
		size      int64
		wantError error
	}{
		{
			name:     "valid jpg",
			filename: "receipt.jpg",
			size:     1024,
		},
		{
			name:     "valid jpeg uppercase",
			filename: "RECEIPT.JPEG",
			size:     1024,
		},
		{
			name:     "valid png",
			filename: "photo.png",
			size:     MaxImageBytes,
		},
		{
			name:     "valid gif",
			filename: "voucher.gif",
			size:     200,
		},
		{
			name:      "pdf rejected",
			filename:  "receipt.pdf",
			size:      1024,
			wantError: ErrImageExtension,
		},
		{
			name:      "no extension rejected",
			filename:  "receipt",
			size:      1024,
			wantError: ErrImageExtension,
		},
		{
			name:      "oversized rejected",
			filename:  "receipt.png",
			size:      MaxImageBytes + 1,
			wantError: ErrImageTooLarge,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImageFile(tc.filename, tc.size)
			if tc.wantError != nil {
				assert.ErrorIs(t, err, tc.wantError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
