package sync

import (
	"inventory-sync/core/gateway/infoblox"
	"inventory-sync/core/gateway/wug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature wires the sync service into the feature loader.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the sync feature with its service and handler.
func NewFeature(wugClient wug.Client, infobloxClient infoblox.Client, networkView string, logger *zap.Logger) *Feature {
	svc := NewService(wugClient, infobloxClient, networkView, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
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
