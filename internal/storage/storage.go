// Package storage stages contract files between the moment a visitor picks
// a file and the moment it is sent for analysis.
//
// This package defines a Storage interface with implementations for:
// - MemoryStorage: in-process map, for development and tests
// - LocalStorage: a directory on the local filesystem
// - R2Storage: Cloudflare R2 (S3-compatible) object storage
// - MinioStorage: a MinIO bucket
//
// Staged objects are short-lived. They are deleted when the visitor picks
// another file, resets the form, or their session expires.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines the interface for staging operations.
//
// All methods are context-aware for timeout and cancellation support.
type Storage interface {
	// Put stores data at the specified key, replacing any existing object.
	// Returns ErrTooLarge if the data exceeds opts.MaxSize.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the data at the specified key.
	// The caller must close the returned reader. Returns ErrNotFound if the
	// key doesn't exist.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at the specified key.
	// This operation is idempotent - no error is returned if the key doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Data Types
// =============================================================================

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType specifies the MIME type of the object.
	// If empty, it is detected from the key's extension.
	ContentType string

	// Size is the expected size in bytes, or 0 when unknown.
	Size int64

	// MaxSize specifies the maximum allowed size in bytes.
	// A value of 0 means no limit.
	MaxSize int64
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string    // Object key/path
	Size         int64     // Size in bytes
	ContentType  string    // MIME type
	LastModified time.Time // Last modification time
	ETag         string    // Entity tag (if available)
}

// =============================================================================
// Configuration Types
// =============================================================================

// Config selects and configures a provider.
type Config struct {
	Provider string // One of the Provider* constants
	Local    LocalConfig
	R2       R2Config
	Minio    MinioConfig
}

// LocalConfig holds configuration for local filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory where files are stored.
	// Example: "./staging" or "/var/lib/aqdi/staging"
	BasePath string
}

// R2Config holds configuration for Cloudflare R2 storage.
type R2Config struct {
	// AccountID is your Cloudflare account ID.
	AccountID string

	// AccessKeyID is the R2 API access key ID.
	AccessKeyID string

	// SecretAccessKey is the R2 API secret key.
	SecretAccessKey string

	// BucketName is the name of the R2 bucket to use.
	BucketName string

	// Region is the AWS region to use (required by AWS SDK).
	// Default: "auto"
	Region string

	// Endpoint overrides the account endpoint. Used in tests.
	Endpoint string
}

// MinioConfig holds configuration for a MinIO bucket.
type MinioConfig struct {
	Endpoint  string // host:port
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// =============================================================================
// Provider Constants
// =============================================================================

const (
	// ProviderMemory identifies the in-process storage provider.
	ProviderMemory = "memory"

	// ProviderLocal identifies the local filesystem storage provider.
	ProviderLocal = "local"

	// ProviderR2 identifies the Cloudflare R2 storage provider.
	ProviderR2 = "r2"

	// ProviderMinio identifies the MinIO storage provider.
	ProviderMinio = "minio"
)

// New constructs the configured provider.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Storage, error) {
	switch cfg.Provider {
	case ProviderMemory, "":
		return NewMemoryStorage(), nil
	case ProviderLocal:
		return NewLocalStorage(cfg.Local, logger)
	case ProviderR2:
		return NewR2Storage(cfg.R2, logger)
	case ProviderMinio:
		return NewMinioStorage(ctx, cfg.Minio, logger)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}

// =============================================================================
// Key Generation Helpers
// =============================================================================

// StagingKey generates a storage key for a file selected in a session.
// Format: staging/{sessionID}/{uuid}{ext}
//
// Example: "staging/0b6f.../987fcdeb-51a2-43f1-b9c4-12345678abcd.pdf"
func StagingKey(sessionID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 8 || strings.ContainsAny(ext, `/\`) {
		ext = ""
	}
	return fmt.Sprintf("staging/%s/%s%s", sessionID, uuid.New(), ext)
}

// validateKey rejects empty keys and path traversal attempts.
func validateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}

// =============================================================================
// Size Limiting
// =============================================================================

// limitedReader fails with ErrTooLarge once more than max bytes are read.
type limitedReader struct {
	r        io.Reader
	max      int64
	n        int64
	exceeded bool
}

func newLimitedReader(r io.Reader, max int64) *limitedReader {
	return &limitedReader{r: r, max: max}
}

func (l *limitedReader) Read(p []byte) (int, error) {
	if l.max <= 0 {
		return l.r.Read(p)
	}
	if l.n > l.max {
		l.exceeded = true
		return 0, ErrTooLarge
	}
	// Read at most one byte past the limit so overflow is detectable.
	if remaining := l.max - l.n + 1; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err := l.r.Read(p)
	l.n += int64(n)
	if l.n > l.max {
		l.exceeded = true
		return n, ErrTooLarge
	}
	return n, err
}
