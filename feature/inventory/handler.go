package inventory

import (
	"spacesavers/core/detector"
	"spacesavers/core/logger"
	"spacesavers/core/utils"
	"spacesavers/feature/inventory/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/items", h.HandleListItems)
	app.Post("/items", h.HandleUpdateItem)
	app.Post("/add-to-inventory", h.HandleAddToInventory)
}

// HandleListItems returns all inventory items, seeding defaults on first
// run.
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	items, err := h.service.ListItems()
	if err != nil {
		l.Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch items",
		})
	}
	return c.JSON(items)
}

// HandleUpdateItem applies a quantity delta to one item, addressed either
// by id or by name. Addressing by an unknown name creates the item.
func (h *Handler) HandleUpdateItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	name, hasName := payload["name"].(string)
	_, hasID := payload["id"]
	if (!hasName || name == "") && !hasID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	delta := utils.ToInt(payload["quantity"])

	if hasID {
		item, err := h.service.AdjustQuantity(utils.ToInt64(payload["id"]), delta)
		if err != nil {
			l.Error("Failed to update item", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update items",
			})
		}
		if item == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return c.JSON(item)
	}

	item, err := h.service.UpsertItem(name, delta)
	if err != nil {
		l.Error("Failed to upsert item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update items",
		})
	}
	return c.JSON(item)
}

// HandleAddToInventory reconciles a detection batch into the inventory.
// The payload carries either a "detections" list or a "class_counts" map.
func (h *Handler) HandleAddToInventory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var payload struct {
		Detections  []detector.Detection `json:"detections"`
		ClassCounts map[string]int       `json:"class_counts"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}
	if payload.Detections == nil && payload.ClassCounts == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payload"})
	}

	var (
		report *reconcile.Report
		err    error
	)
	if payload.ClassCounts != nil {
		report, err = h.service.AddCounts(payload.ClassCounts)
	} else {
		report, err = h.service.AddDetections(payload.Detections)
	}
	if err != nil {
		l.Error("Failed to reconcile detections", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update inventory",
		})
	}

	l.Info("Reconciled detection batch",
		zap.Int("detections", report.Summary.TotalDetections),
		zap.Int("created", report.Summary.CreatedItems),
		zap.Int("updated", report.Summary.UpdatedItems))

	return c.JSON(fiber.Map{
		"success": true,
		"report":  report,
	})
}
