package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spacesavers/core/config"
	"spacesavers/core/datastore"
	"spacesavers/core/detector"
	"spacesavers/core/loader"
	"spacesavers/core/logger"
	"spacesavers/core/middleware/auth"
	"spacesavers/core/middleware/rayid"
	"spacesavers/core/storage"

	"spacesavers/feature/detect"
	"spacesavers/feature/inventory"
	"spacesavers/feature/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SpaceSavers server",
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

		// 3. Open Datastore
		store := datastore.New(cfg.Datastore)
		if _, err := store.EnsureDefaultItems(); err != nil {
			logg.Fatal("Failed to bootstrap datastore", zap.Error(err))
		}
		logg.Info("Datastore ready", zap.String("path", cfg.Datastore.Path))

		// 4. Initialize Media Storage
		if !cfg.Storage.IsValidDriver() {
			logg.Fatal("Invalid storage driver", zap.String("driver", cfg.Storage.Driver))
		}
		media, err := storage.NewMediaStore(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create media store", zap.Error(err))
		}
		if s3, ok := media.(*storage.S3MediaStore); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s3.EnsureBucket(ctx); err != nil {
				logg.Fatal("Failed to prepare media bucket", zap.Error(err))
			}
		}

		// 5. Detection Service Client
		detClient := detector.NewClient(cfg.Detector)

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             64 * 1024 * 1024,
		})

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

		// 3. Static media serving for the local driver
		if local, ok := media.(*storage.LocalMediaStore); ok {
			app.Static(cfg.Storage.PublicBase, local.BaseDir())
		}

		// 4. API group, optionally protected by API key
		api := app.Group("/api", auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Initialize Feature Loader
		mgr := loader.NewManager(logg)

		invFeature := inventory.NewFeature(store, nil, logg)
		upFeature := uploads.NewFeature(store, media, logg)
		mgr.Register(invFeature)
		mgr.Register(upFeature)
		mgr.Register(detect.NewFeature(detClient, upFeature.Service(), invFeature.Service(), logg))

		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.String("storage_driver", cfg.Storage.Driver),
				zap.String("detector", cfg.Detector.Endpoint))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
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
