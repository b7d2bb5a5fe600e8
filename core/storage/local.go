package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// LocalMediaStore keeps uploaded media as plain files under a base
// directory, served statically under the public base URL.
type LocalMediaStore struct {
	baseDir    string
	publicBase string
}

// NewLocalMediaStore creates the base directory if needed.
func NewLocalMediaStore(baseDir, publicBase string) (*LocalMediaStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &LocalMediaStore{baseDir: baseDir, publicBase: strings.TrimSuffix(publicBase, "/")}, nil
}

// BaseDir returns the directory media files live in.
func (s *LocalMediaStore) BaseDir() string {
	return s.baseDir
}

// Save writes the stream to disk under objectName.
func (s *LocalMediaStore) Save(_ context.Context, objectName, _ string, r io.Reader, _ int64) (string, string, error) {
	path, err := s.safeJoin(objectName)
	if err != nil {
		return "", "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create media file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("failed to write media file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("failed to close media file: %w", err)
	}

	return path, s.publicBase + "/" + objectName, nil
}

// Open returns the stored file, inferring the content type from its
// extension.
func (s *LocalMediaStore) Open(_ context.Context, objectName string) (io.ReadCloser, string, error) {
	path, err := s.safeJoin(objectName)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("media not found: %s", objectName)
		}
		return nil, "", fmt.Errorf("failed to open media file: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

// safeJoin resolves objectName relative to the base directory and rejects
// directory traversal.
func (s *LocalMediaStore) safeJoin(objectName string) (string, error) {
	absBase, err := filepath.Abs(s.baseDir)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.baseDir, objectName))
	if err != nil {
		return "", fmt.Errorf("invalid media path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid media name: %q", objectName)
	}
	return absPath, nil
}
