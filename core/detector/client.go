package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Detection is a single detected object as reported by the service.
type Detection struct {
	ClassID    int       `json:"class_id"`
	ClassName  string    `json:"class_name"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox"`
}

// ImageResult is the response for single-image detection.
type ImageResult struct {
	// Detections lists every detected object.
	Detections []Detection `json:"detections"`
	// Image is the annotated image, base64-encoded.
	Image string `json:"image"`
	// Count is the number of detections.
	Count int `json:"count"`
}

// VideoResult is the response for batch/video detection.
type VideoResult struct {
	// ClassCounts maps detector class names to aggregate counts.
	ClassCounts map[string]int `json:"class_counts"`
	// ProcessedFrames holds annotated frames, base64-encoded.
	ProcessedFrames []string `json:"processed_frames"`
}

// Client calls the external object-detection service. It performs no
// retries; failures propagate to the caller.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a detection client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 120
	}
	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		http:     &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// Detect submits a single image and returns the detections.
func (c *Client) Detect(ctx context.Context, fileName string, r io.Reader) (*ImageResult, error) {
	var result ImageResult
	if err := c.postFile(ctx, "/detect", fileName, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DetectVideo submits a video and returns per-class aggregate counts.
func (c *Client) DetectVideo(ctx context.Context, fileName string, r io.Reader) (*VideoResult, error) {
	var result VideoResult
	if err := c.postFile(ctx, "/detect-video", fileName, r, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// postFile uploads a file as multipart form data and decodes the JSON
// response into out.
func (c *Client) postFile(ctx context.Context, path, fileName string, r io.Reader, out any) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("failed to read media: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, &body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("detection service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("detection service returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode detection response: %w", err)
	}
	return nil
}
