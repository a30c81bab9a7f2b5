package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// MaxPhotoSize bounds a single downloaded photo (50 MB).
const MaxPhotoSize int64 = 50 * 1024 * 1024

// AllowedPhotoTypes are the MIME types accepted from the photo source.
var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// ValidatePhoto reads at most maxSize bytes, sniffs the content type from
// the magic bytes and rejects anything that is not an accepted image.
func ValidatePhoto(reader io.Reader, maxSize int64) ([]byte, string, error) {
	if maxSize <= 0 {
		maxSize = MaxPhotoSize
	}

	// Read one byte past the limit to detect oversized files
	limitedReader := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}

	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	// e.g. "image/jpeg; charset=utf-8" -> "image/jpeg"
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	for _, t := range AllowedPhotoTypes {
		if t == mimeType {
			return data, mimeType, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrInvalidMimeType, mimeType)
}
