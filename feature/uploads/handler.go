package uploads

import (
	"spacesavers/core/logger"
	"spacesavers/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for uploaded media.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the upload routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/upload-image", h.HandleUploadImage)
	app.Get("/uploaded-images", h.HandleListImages)
	app.Post("/update-detection-count", h.HandleUpdateDetectionCount)
}

// HandleUploadImage stores a multipart upload and records it.
func (h *Handler) HandleUploadImage(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		l.Error("Failed to open upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store upload",
		})
	}
	defer f.Close()

	record, err := h.service.SaveUpload(c.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		f,
		fileHeader.Size)
	if err != nil {
		l.Error("Failed to store upload", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store upload",
		})
	}

	return c.JSON(fiber.Map{"publicUrl": record.PublicURL})
}

// HandleListImages returns all uploaded-image records.
func (h *Handler) HandleListImages(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	images, err := h.service.ListImages()
	if err != nil {
		l.Error("Failed to list uploads", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch uploads",
		})
	}
	return c.JSON(images)
}

// HandleUpdateDetectionCount records detection results for an upload.
func (h *Handler) HandleUpdateDetectionCount(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	publicURL, _ := payload["publicUrl"].(string)
	count, hasCount := payload["count"]
	if publicURL == "" || !hasCount {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	if err := h.service.SetDetectionCount(publicURL, utils.ToInt(count)); err != nil {
		l.Error("Failed to update detection count", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update detection count",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
