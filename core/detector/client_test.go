package detector

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) *Client {
	t.Helper()
	c := NewClient(Config{Endpoint: "http://detector.local"})
	httpmock.ActivateNonDefault(c.http)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestDetect_Success(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://detector.local/detect",
		httpmock.NewStringResponder(http.StatusOK, `{
			"detections": [
				{"class_id": 0, "class_name": "FireExtinguisher", "confidence": 0.91, "bbox": [10, 20, 110, 220]},
				{"class_id": 1, "class_name": "ToolBox", "confidence": 0.83, "bbox": [5, 5, 50, 50]}
			],
			"image": "aGVsbG8=",
			"count": 2
		}`))

	result, err := c.Detect(context.Background(), "rack.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	require.Len(t, result.Detections, 2)
	assert.Equal(t, "FireExtinguisher", result.Detections[0].ClassName)
	assert.InDelta(t, 0.91, result.Detections[0].Confidence, 0.001)
	assert.Equal(t, 2, result.Count)
}

func TestDetect_SendsMultipart(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://detector.local/detect",
		func(req *http.Request) (*http.Response, error) {
			assert.Contains(t, req.Header.Get("Content-Type"), "multipart/form-data")
			require.NoError(t, req.ParseMultipartForm(1<<20))
			_, header, err := req.FormFile("file")
			require.NoError(t, err)
			assert.Equal(t, "rack.jpg", header.Filename)
			return httpmock.NewStringResponse(http.StatusOK, `{"detections": [], "count": 0}`), nil
		})

	_, err := c.Detect(context.Background(), "rack.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
}

func TestDetect_ServiceError(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://detector.local/detect",
		httpmock.NewStringResponder(http.StatusInternalServerError, `boom`))

	result, err := c.Detect(context.Background(), "rack.jpg", strings.NewReader("jpeg-bytes"))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestDetect_InvalidJSON(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://detector.local/detect",
		httpmock.NewStringResponder(http.StatusOK, `{invalid`))

	_, err := c.Detect(context.Background(), "rack.jpg", strings.NewReader("jpeg-bytes"))
	require.Error(t, err)
}

func TestDetectVideo_Success(t *testing.T) {
	c := newMockedClient(t)

	httpmock.RegisterResponder(http.MethodPost, "http://detector.local/detect-video",
		httpmock.NewStringResponder(http.StatusOK, `{
			"class_counts": {"FireExtinguisher": 3, "OxygenTank": 1},
			"processed_frames": ["YQ==", "Yg=="]
		}`))

	result, err := c.DetectVideo(context.Background(), "bay.mp4", strings.NewReader("mp4-bytes"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"FireExtinguisher": 3, "OxygenTank": 1}, result.ClassCounts)
	assert.Len(t, result.ProcessedFrames, 2)
}
