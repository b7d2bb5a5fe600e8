package uploads

import (
	"context"
	"fmt"
	"io"

	"spacesavers/core/datastore"
	"spacesavers/core/storage"

	"go.uber.org/zap"
)

// Service handles uploaded media and its records.
type Service struct {
	store  *datastore.Store
	media  storage.MediaStore
	logger *zap.Logger
}

// NewService creates a new uploads service.
func NewService(store *datastore.Store, media storage.MediaStore, logger *zap.Logger) *Service {
	return &Service{store: store, media: media, logger: logger}
}

// SaveUpload stores the media stream and records an uploaded-image entry
// with detection count zero.
func (s *Service) SaveUpload(ctx context.Context, fileName, contentType string, r io.Reader, size int64) (datastore.UploadedImage, error) {
	objectName := storage.ObjectName(fileName)
	storagePath, publicURL, err := s.media.Save(ctx, objectName, contentType, r, size)
	if err != nil {
		return datastore.UploadedImage{}, fmt.Errorf("failed to store upload: %w", err)
	}

	record, err := s.store.AddUploadedImage(datastore.UploadedImage{
		FileName:    fileName,
		StoragePath: storagePath,
		PublicURL:   publicURL,
		ContentType: contentType,
		SizeBytes:   size,
	})
	if err != nil {
		return datastore.UploadedImage{}, err
	}

	s.logger.Info("Stored upload",
		zap.String("file", fileName),
		zap.String("public_url", record.PublicURL),
		zap.Int64("size_bytes", size))
	return record, nil
}

// ListImages returns all uploaded-image records.
func (s *Service) ListImages() ([]datastore.UploadedImage, error) {
	return s.store.GetUploadedImages()
}

// SetDetectionCount records detection results against an upload by its
// public URL.
func (s *Service) SetDetectionCount(publicURL string, count int) error {
	return s.store.UpdateDetectionCount(publicURL, count)
}
