package utils

import (
	"errors"
	"path/filepath"
	"strings"
)

// MaxImageBytes caps receipt, voucher and profile photo uploads.
const MaxImageBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var (
	ErrImageExtension = errors.New("formato no permitido: solo jpg, jpeg, png o gif")
	ErrImageTooLarge  = errors.New("la imagen supera el máximo de 5MB")
)

// ValidateImageFile checks the extension and size of an uploaded image.
// A nil result means the file is acceptable.
func ValidateImageFile(filename string, size int64) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedImageExtensions[ext] {
		return ErrImageExtension
	}

	if size > MaxImageBytes {
		return ErrImageTooLarge
	}

	return nil
}
