package detect

import (
	"context"
	"errors"
	"fmt"
	"io"

	"spacesavers/core/datastore"
	"spacesavers/core/detector"
	"spacesavers/feature/inventory"
	"spacesavers/feature/inventory/reconcile"
	"spacesavers/feature/uploads"

	"go.uber.org/zap"
)

// ErrDetectorFailed marks failures of the external detection service, so
// the handler can distinguish them from local storage errors.
var ErrDetectorFailed = errors.New("detection service failed")

// Client is the subset of the detector client the pipeline needs.
type Client interface {
	Detect(ctx context.Context, fileName string, r io.Reader) (*detector.ImageResult, error)
	DetectVideo(ctx context.Context, fileName string, r io.Reader) (*detector.VideoResult, error)
}

// ImagePipelineResult is the outcome of the full image pipeline.
type ImagePipelineResult struct {
	// PublicURL is where the uploaded media is served.
	PublicURL string `json:"public_url"`
	// Detections is the detector's output.
	Detections []detector.Detection `json:"detections"`
	// Count is the number of detections.
	Count int `json:"count"`
	// Image is the annotated image, base64-encoded.
	Image string `json:"image,omitempty"`
	// Report describes the inventory changes.
	Report *reconcile.Report `json:"report"`
}

// VideoPipelineResult is the outcome of the full video pipeline.
type VideoPipelineResult struct {
	PublicURL   string         `json:"public_url"`
	ClassCounts map[string]int `json:"class_counts"`
	Count       int            `json:"count"`
	Report      *reconcile.Report `json:"report"`
}

// Service runs the detection pipeline: store the media, call the detector,
// record the detection count, and reconcile the results into the
// inventory.
type Service struct {
	client    Client
	uploads   *uploads.Service
	inventory *inventory.Service
	logger    *zap.Logger
}

// NewService creates a new detect service.
func NewService(client Client, up *uploads.Service, inv *inventory.Service, logger *zap.Logger) *Service {
	return &Service{client: client, uploads: up, inventory: inv, logger: logger}
}

// ProcessImage uploads one image and reconciles its detections. open must
// return a fresh reader per call; the media store and the detector each
// consume one.
func (s *Service) ProcessImage(ctx context.Context, fileName, contentType string, size int64, open func() (io.ReadCloser, error)) (*ImagePipelineResult, error) {
	record, err := s.saveUpload(ctx, fileName, contentType, size, open)
	if err != nil {
		return nil, err
	}

	f, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen upload: %w", err)
	}
	defer f.Close()

	result, err := s.client.Detect(ctx, fileName, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetectorFailed, err)
	}

	if err := s.uploads.SetDetectionCount(record.PublicURL, len(result.Detections)); err != nil {
		return nil, err
	}

	report, err := s.inventory.AddDetections(result.Detections)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Image pipeline finished",
		zap.String("public_url", record.PublicURL),
		zap.Int("detections", len(result.Detections)))

	return &ImagePipelineResult{
		PublicURL:  record.PublicURL,
		Detections: result.Detections,
		Count:      len(result.Detections),
		Image:      result.Image,
		Report:     report,
	}, nil
}

// ProcessVideo uploads one video and reconciles its aggregate class
// counts.
func (s *Service) ProcessVideo(ctx context.Context, fileName, contentType string, size int64, open func() (io.ReadCloser, error)) (*VideoPipelineResult, error) {
	record, err := s.saveUpload(ctx, fileName, contentType, size, open)
	if err != nil {
		return nil, err
	}

	f, err := open()
	if err != nil {
		return nil, fmt.Errorf("failed to reopen upload: %w", err)
	}
	defer f.Close()

	result, err := s.client.DetectVideo(ctx, fileName, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDetectorFailed, err)
	}

	total := 0
	for _, count := range result.ClassCounts {
		total += count
	}
	if err := s.uploads.SetDetectionCount(record.PublicURL, total); err != nil {
		return nil, err
	}

	report, err := s.inventory.AddCounts(result.ClassCounts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Video pipeline finished",
		zap.String("public_url", record.PublicURL),
		zap.Int("detections", total))

	return &VideoPipelineResult{
		PublicURL:   record.PublicURL,
		ClassCounts: result.ClassCounts,
		Count:       total,
		Report:      report,
	}, nil
}

func (s *Service) saveUpload(ctx context.Context, fileName, contentType string, size int64, open func() (io.ReadCloser, error)) (datastore.UploadedImage, error) {
	f, err := open()
	if err != nil {
		return datastore.UploadedImage{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	return s.uploads.SaveUpload(ctx, fileName, contentType, f, size)
}
