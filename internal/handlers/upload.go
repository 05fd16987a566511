package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/fuelease/fuelease/internal/config"
	"github.com/google/uuid"
)

// allowedImageExtensions limits uploads to the image types the web client
// produces.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// saveUploadedImage reads one multipart file field and writes it under the
// upload directory with a random name, returning the stored relative path.
// The original filename only contributes its extension.
func saveUploadedImage(r *http.Request, field string, cfg *config.UploadConfig) (string, error) {
	if err := r.ParseMultipartForm(cfg.MaxSizeByte); err != nil {
		return "", fmt.Errorf("failed to parse multipart form: %w", err)
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("missing file field %q: %w", field, err)
	}
	defer file.Close()

	if header.Size > cfg.MaxSizeByte {
		return "", fmt.Errorf("file exceeds maximum size of %d bytes", cfg.MaxSizeByte)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := uuid.New().String() + ext
	storedPath := filepath.Join(cfg.Dir, storedName)

	dst, err := os.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, cfg.MaxSizeByte)); err != nil {
		os.Remove(storedPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return storedName, nil
}
