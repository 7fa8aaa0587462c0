package services

import (
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"renthub/internal/utils"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/google/uuid"
)

// UploadService stores receipt, voucher and profile photo images under the
// configured upload directory, one subdirectory per category.
type UploadService struct {
	baseDir string
	log     logger.Logger
}

func NewUploadService(baseDir string) (*UploadService, error) {
	log := logger.New("uploadService").Function("New")

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, log.Err("failed to create upload directory", err, "dir", baseDir)
	}

	return &UploadService{
		baseDir: baseDir,
		log:     logger.New("uploadService"),
	}, nil
}

// SaveImage validates and persists an uploaded image, returning the path
// relative to the upload root.
func (s *UploadService) SaveImage(
	category string,
	ownerID uuid.UUID,
	fileHeader *multipart.FileHeader,
) (string, error) {
	log := s.log.Function("SaveImage")

	if err := utils.ValidateImageFile(fileHeader.Filename, fileHeader.Size); err != nil {
		return "", err
	}

	dir := filepath.Join(s.baseDir, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", log.Err("failed to create category directory", err, "dir", dir)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	name := fmt.Sprintf("%s-%d%s", ownerID, time.Now().UnixNano(), ext)
	fullPath := filepath.Join(dir, name)

	src, err := fileHeader.Open()
	if err != nil {
		return "", log.Err("failed to open uploaded file", err)
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", log.Err("failed to create destination file", err, "path", fullPath)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", log.Err("failed to write uploaded file", err, "path", fullPath)
	}

	relative := filepath.Join(category, name)
	log.Info("stored upload", "path", relative, "size", fileHeader.Size)
	return relative, nil
}

// Open resolves a stored relative path for download handlers.
func (s *UploadService) FullPath(relative string) string {
	return filepath.Join(s.baseDir, relative)
}

func (s *UploadService) Remove(relative string) error {
	if relative == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.baseDir, relative))
}

// ListFiles walks the upload root returning all stored relative paths with
// their modification times. Used by the cleanup job.
func (s *UploadService) ListFiles() (map[string]time.Time, error) {
	log := s.log.Function("ListFiles")

	files := map[string]time.Time{}
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		relative, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}

		files[relative] = info.ModTime()
		return nil
	})
	if err != nil {
		return nil, log.Err("failed to walk upload directory", err)
	}

	return files, nil
}
