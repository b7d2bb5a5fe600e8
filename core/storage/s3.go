package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
)

// S3MediaStore keeps uploaded media in an S3-compatible bucket.
type S3MediaStore struct {
	client     Client
	bucket     string
	publicBase string
}

// NewS3MediaStore wraps a storage client for a single bucket.
func NewS3MediaStore(client Client, bucket, publicBase string) *S3MediaStore {
	return &S3MediaStore{
		client:     client,
		bucket:     bucket,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3MediaStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Save uploads the stream as an object in the bucket.
func (s *S3MediaStore) Save(ctx context.Context, objectName, contentType string, r io.Reader, size int64) (string, string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to store media object: %w", err)
	}

	storagePath := fmt.Sprintf("s3://%s/%s", s.bucket, objectName)
	return storagePath, s.publicBase + "/" + objectName, nil
}

// Open downloads the object. The stored content type is not recoverable
// from a plain GetObject, so the caller gets an empty type.
func (s *S3MediaStore) Open(ctx context.Context, objectName string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", fmt.Errorf("failed to open media object: %w", err)
	}
	return obj, "", nil
}
