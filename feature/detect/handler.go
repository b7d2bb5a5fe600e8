package detect

import (
	"errors"
	"io"
	"mime/multipart"

	"spacesavers/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the detection pipeline.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the detection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/detect", h.HandleDetectImage)
	app.Post("/detect-video", h.HandleDetectVideo)
}

// HandleDetectImage runs the full image pipeline on a multipart upload.
func (h *Handler) HandleDetectImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}

	result, err := h.service.ProcessImage(c.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		opener(fileHeader))
	if err != nil {
		return h.pipelineError(c, l, err)
	}
	return c.JSON(result)
}

// HandleDetectVideo runs the full video pipeline on a multipart upload.
func (h *Handler) HandleDetectVideo(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}

	result, err := h.service.ProcessVideo(c.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		opener(fileHeader))
	if err != nil {
		return h.pipelineError(c, l, err)
	}
	return c.JSON(result)
}

func (h *Handler) pipelineError(c *fiber.Ctx, l *zap.Logger, err error) error {
	if errors.Is(err, ErrDetectorFailed) {
		l.Error("Detection service failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Detection service unavailable",
		})
	}
	l.Error("Detection pipeline failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Detection failed",
	})
}

func opener(fileHeader *multipart.FileHeader) func() (io.ReadCloser, error) {
	return func() (io.ReadCloser, error) {
		return fileHeader.Open()
	}
}
