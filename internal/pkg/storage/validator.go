package storage

import (
	"bytes"
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

// MaxImageSize bounds room photo uploads
const MaxImageSize = 8 * 1024 * 1024

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// ValidateImage reads at most maxSize bytes and sniffs the content type
func ValidateImage(reader io.Reader, maxSize int64) (*bytes.Buffer, string, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
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
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	if _, ok := imageExtensions[mimeType]; !ok {
		return nil, "", ErrInvalidMimeType
	}

	return bytes.NewBuffer(data), mimeType, nil
}

// ExtensionFor returns the file extension for an accepted image type
func ExtensionFor(mimeType string) string {
	return imageExtensions[mimeType]
}
