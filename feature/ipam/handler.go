package ipam

import (
	"context"

	"inventory-sync/core/ipspace"
	"inventory-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for IPAM lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the ipam routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ipam")

	// Computed views
	group.Get("/utilization", h.HandleUtilization)
	group.Get("/available", h.HandleAvailable)
	group.Get("/next-available", h.HandleNextAvailable)

	// Raw WAPI passthroughs
	group.Get("/views", h.listPassthrough("network views", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchNetworkViews(ctx)
	}))
	group.Get("/networks", h.listPassthrough("networks", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchNetworks(ctx)
	}))
	group.Get("/containers", h.listPassthrough("network containers", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchNetworkContainers(ctx)
	}))
	group.Get("/fixed-addresses", h.listPassthrough("fixed addresses", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchFixedAddresses(ctx)
	}))
	group.Get("/ranges", h.listPassthrough("ranges", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchRanges(ctx)
	}))
	group.Get("/aliases", h.listPassthrough("alias records", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchAliasRecords(ctx)
	}))
	group.Get("/shared-networks", h.listPassthrough("shared networks", func(ctx context.Context) ([]map[string]any, error) {
		return h.service.infoblox.FetchSharedNetworks(ctx)
	}))
}

// networkParam validates the required ?network= query parameter.
func networkParam(c *fiber.Ctx) (string, bool) {
	cidr := c.Query("network")
	if cidr == "" || !ipspace.ValidNetwork(cidr) {
		return "", false
	}
	return cidr, true
}

// listPassthrough builds a handler that relays a WAPI list unchanged.
func (h *Handler) listPassthrough(what string, fetch func(context.Context) ([]map[string]any, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c)
		items, err := fetch(c.Context())
		if err != nil {
			l.Error("Failed to fetch "+what, zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(items)
	}
}

// HandleUtilization reports address usage for a network.
// @Summary Network utilization
// @Description Computes usable/used/available counts and utilization percentage for an IPv4 network, counting Infoblox fixed addresses and host records as used.
// @Tags ipam
// @Produce json
// @Param network query string true "Network in CIDR notation"
// @Success 200 {object} ipspace.Utilization "Utilization Report"
// @Failure 400 {object} map[string]string "Invalid network"
// @Failure 502 {object} map[string]string "Gateway failure"
// @Router /ipam/utilization [get]
func (h *Handler) HandleUtilization(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cidr, ok := networkParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "network must be valid CIDR notation"})
	}

	report, err := h.service.Utilization(c.Context(), cidr)
	if err != nil {
		l.Error("Utilization lookup failed", zap.String("network", cidr), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleAvailable lists free addresses in a network.
// @Summary Available addresses
// @Description Lists the free usable addresses of a network in ascending order.
// @Tags ipam
// @Produce json
// @Param network query string true "Network in CIDR notation"
// @Param limit query integer false "Maximum number of addresses to return"
// @Success 200 {object} map[string]interface{} "Available addresses"
// @Failure 400 {object} map[string]string "Invalid network or limit"
// @Failure 502 {object} map[string]string "Gateway failure"
// @Router /ipam/available [get]
func (h *Handler) HandleAvailable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cidr, ok := networkParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "network must be valid CIDR notation"})
	}
	limit := c.QueryInt("limit", 0)
	if limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must not be negative"})
	}

	available, err := h.service.Available(c.Context(), cidr, limit)
	if err != nil {
		l.Error("Available lookup failed", zap.String("network", cidr), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"network":   cidr,
		"count":     len(available),
		"available": available,
	})
}

// HandleNextAvailable returns the first free address in a network.
// @Summary Next available address
// @Description Returns the lowest free usable address of a network.
// @Tags ipam
// @Produce json
// @Param network query string true "Network in CIDR notation"
// @Success 200 {object} map[string]string "Next available address"
// @Failure 400 {object} map[string]string "Invalid network"
// @Failure 404 {object} map[string]string "Network is full"
// @Failure 502 {object} map[string]string "Gateway failure"
// @Router /ipam/next-available [get]
func (h *Handler) HandleNextAvailable(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cidr, ok := networkParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "network must be valid CIDR notation"})
	}

	next, err := h.service.NextAvailable(c.Context(), cidr)
	if err != nil {
		l.Error("Next-available lookup failed", zap.String("network", cidr), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	if next == "" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no available addresses in " + cidr})
	}
	return c.JSON(fiber.Map{
		"network":        cidr,
		"next_available": next,
	})
}
