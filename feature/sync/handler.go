package sync

import (
	"errors"

	"inventory-sync/core/gateway/wug"
	"inventory-sync/core/logger"
	"inventory-sync/core/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for sync operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
	app.Post("/dry-run", h.HandleDryRun)
	app.Post("/reverse-sync", h.HandleReverseSync)
	app.Post("/reverse-dry-run", h.HandleReverseDryRun)
}

// syncRequest is the JSON payload accepted by the sync endpoints.
type syncRequest struct {
	// Limit caps the number of items fetched from the source system.
	Limit *int `json:"limit"`
}

// parseRequest extracts and validates the optional limit. An empty body
// is allowed; malformed JSON or a negative limit is rejected before any
// gateway call happens.
func parseRequest(c *fiber.Ctx) (int, error) {
	if len(c.Body()) == 0 {
		return 0, nil
	}
	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, errors.New("request body must be a JSON object")
	}
	if req.Limit == nil {
		return 0, nil
	}
	if *req.Limit < 0 {
		return 0, errors.New("limit must not be negative")
	}
	return *req.Limit, nil
}

// run executes one sync pass and writes the aggregate result.
// Per-item failures never change the HTTP status; only systemic
// failures (auth, collection fetch) produce a non-200 response.
func (h *Handler) run(c *fiber.Ctx, pass func(dryRun bool, limit int) (*models.SyncResult, error), dryRun bool, name string) error {
	l := logger.WithRayID(h.service.logger, c)

	limit, err := parseRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Starting sync pass",
		zap.String("pass", name),
		zap.Bool("dry_run", dryRun),
		zap.Int("limit", limit))

	result, err := pass(dryRun, limit)
	if err != nil {
		var authErr *wug.AuthError
		if errors.As(err, &authErr) {
			l.Error("Sync pass aborted: authentication failed", zap.Error(err))
		} else {
			l.Error("Sync pass aborted", zap.Error(err))
		}
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Sync pass completed",
		zap.String("pass", name),
		zap.Int("discovered", result.Discovered),
		zap.Int("created_or_updated", result.CreatedOrUpdated),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", result.Errors))

	return c.JSON(result)
}

// HandleSync runs a forward sync (WUG devices into Infoblox).
// @Summary Sync WUG devices to Infoblox
// @Description Fetches devices from WhatsUp Gold and upserts matching host records into Infoblox. Per-item failures are reported in the result, not as an HTTP error.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body sync.syncRequest false "Optional limit"
// @Success 200 {object} models.SyncResult "Sync Result"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 502 {object} map[string]string "Systemic gateway failure"
// @Router /sync [post]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	return h.run(c, func(dryRun bool, limit int) (*models.SyncResult, error) {
		return h.service.RunSync(c.Context(), dryRun, limit)
	}, false, "forward")
}

// HandleDryRun runs a forward sync without writing anything.
// @Summary Dry-run WUG to Infoblox sync
// @Description Same as /sync but no records are written; the gateway reports synthetic dry-run-upsert actions.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body sync.syncRequest false "Optional limit"
// @Success 200 {object} models.SyncResult "Sync Result"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 502 {object} map[string]string "Systemic gateway failure"
// @Router /dry-run [post]
func (h *Handler) HandleDryRun(c *fiber.Ctx) error {
	return h.run(c, func(dryRun bool, limit int) (*models.SyncResult, error) {
		return h.service.RunSync(c.Context(), dryRun, limit)
	}, true, "forward")
}

// HandleReverseSync imports Infoblox host records into WUG.
// @Summary Sync Infoblox host records to WUG
// @Description Fetches host records from Infoblox and creates missing devices in WhatsUp Gold. Existing devices are skipped.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body sync.syncRequest false "Optional limit"
// @Success 200 {object} models.SyncResult "Sync Result"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 502 {object} map[string]string "Systemic gateway failure"
// @Router /reverse-sync [post]
func (h *Handler) HandleReverseSync(c *fiber.Ctx) error {
	return h.run(c, func(dryRun bool, limit int) (*models.SyncResult, error) {
		return h.service.RunReverseSync(c.Context(), dryRun, limit)
	}, false, "reverse")
}

// HandleReverseDryRun runs a reverse sync without writing anything.
// @Summary Dry-run Infoblox to WUG sync
// @Description Same as /reverse-sync but no devices are created; would-create items are reported as dry-run-create.
// @Tags sync
// @Accept json
// @Produce json
// @Param payload body sync.syncRequest false "Optional limit"
// @Success 200 {object} models.SyncResult "Sync Result"
// @Failure 400 {object} map[string]string "Invalid payload"
// @Failure 502 {object} map[string]string "Systemic gateway failure"
// @Router /reverse-dry-run [post]
func (h *Handler) HandleReverseDryRun(c *fiber.Ctx) error {
	return h.run(c, func(dryRun bool, limit int) (*models.SyncResult, error) {
		return h.service.RunReverseSync(c.Context(), dryRun, limit)
	}, true, "reverse")
}
