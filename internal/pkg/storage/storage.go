package storage

import (
	"context"
	"io"
	"strings"
	"time"
)

// Images stores room photos and resolves the URL a client can display
type Images interface {
	// Put stores an object under key
	Put(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete removes an object. Returns nil if it does not exist.
	Delete(ctx context.Context, key string) error

	// URL returns a displayable URL for key. Keys that already are absolute URLs are returned unchanged.
	URL(ctx context.Context, key string) (string, error)
}

// Config for the S3 (or MinIO) image bucket
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	AccessKey string
	SecretKey string
	URLTTL    time.Duration
	Presign   bool
}

// Enabled reports whether S3 credentials are configured
func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

func isAbsoluteURL(key string) bool {
	return strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://")
}
