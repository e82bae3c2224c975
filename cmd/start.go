package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"inventory-sync/core/config"
	"inventory-sync/core/gateway/infoblox"
	"inventory-sync/core/gateway/wug"
	"inventory-sync/core/loader"
	"inventory-sync/core/logger"
	"inventory-sync/core/middleware/auth"
	"inventory-sync/core/middleware/rayid"

	"inventory-sync/feature/ipam"
	syncfeature "inventory-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "inventory-sync/docs/swagger"
)

// @title Inventory Sync API
// @version 1.0
// @description API for reconciling device inventory between WhatsUp Gold and Infoblox.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Validate gateway configuration eagerly. Incomplete settings
		// are reported now but still surface lazily on first use, so a
		// partially configured service can serve the other direction.
		if err := cfg.Wug.Validate(); err != nil {
			logg.Warn("WUG gateway is not fully configured", zap.Error(err))
		}
		if err := cfg.Infoblox.Validate(); err != nil {
			logg.Warn("Infoblox gateway is not fully configured", zap.Error(err))
		}

		// 4. Initialize Gateways
		wugClient := wug.NewClient(cfg.Wug, cfg.Sync, logg)
		infobloxClient := infoblox.NewClient(cfg.Infoblox, cfg.Sync, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(syncfeature.NewFeature(wugClient, infobloxClient, cfg.Infoblox.NetworkView, logg))
		mgr.Register(ipam.NewFeature(infobloxClient, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 2.6 Liveness and endpoint index (Public). Liveness reflects
		// this process only, never gateway health.
		app.Get("/status", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"service": "inventory-sync", "status": "ok"})
		})
		app.Get("/", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"service": "inventory-sync",
				"version": "1.0.0",
				"endpoints": fiber.Map{
					"GET /status":              "Health check",
					"POST /sync":               "Sync WUG devices to Infoblox (payload: {limit?: number})",
					"POST /dry-run":            "Dry run WUG to Infoblox sync (payload: {limit?: number})",
					"POST /reverse-sync":       "Sync Infoblox host records to WUG (payload: {limit?: number})",
					"POST /reverse-dry-run":    "Dry run Infoblox to WUG sync (payload: {limit?: number})",
					"GET /ipam/utilization":    "Network utilization (?network=CIDR)",
					"GET /ipam/available":      "Available addresses (?network=CIDR&limit=n)",
					"GET /ipam/next-available": "Next free address (?network=CIDR)",
				},
			})
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 5. Start Server
		go func() {
			logg.Info("Starting server", zap.String("addr", cfg.Server.Addr()))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
