package ipam

import (
	"inventory-sync/core/gateway/infoblox"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the ipam service into the feature loader.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the ipam feature with its service and handler.
func NewFeature(infobloxClient infoblox.Client, logger *zap.Logger) *Feature {
	svc := NewService(infobloxClient, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "ipam"
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
