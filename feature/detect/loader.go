package detect

import (
	"spacesavers/feature/inventory"
	"spacesavers/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Detect feature, composed from the uploads and
// inventory services.
func NewFeature(client Client, up *uploads.Service, inv *inventory.Service, logger *zap.Logger) *Feature {
	svc := NewService(client, up, inv, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "detect"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
