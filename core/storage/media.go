package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MediaStore persists uploaded media and hands out the paths the rest of
// the application records alongside each upload.
type MediaStore interface {
	// Save stores the media stream under objectName and returns the
	// storage path and the public URL the file is served under.
	Save(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (storagePath, publicURL string, err error)
	// Open returns the stored media and its content type.
	Open(ctx context.Context, objectName string) (io.ReadCloser, string, error)
}

// NewMediaStore creates the media backend selected by the configuration.
func NewMediaStore(cfg Config) (MediaStore, error) {
	switch cfg.Driver {
	case DriverLocal:
		return NewLocalMediaStore(cfg.LocalDir, cfg.PublicBase)
	case DriverS3:
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewS3MediaStore(client, cfg.Bucket, cfg.PublicBase), nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}

// ObjectName generates a unique storage name for an uploaded file,
// preserving its extension.
func ObjectName(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return uuid.NewString() + ext
}
