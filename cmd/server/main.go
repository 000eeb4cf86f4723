package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"muni-hostelhub/internal/adapters/http/middleware"
	"muni-hostelhub/internal/adapters/http/routes"
	"muni-hostelhub/internal/adapters/persistence/filestore"
	"muni-hostelhub/internal/adapters/persistence/models"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/config"

	"github.com/gofiber/fiber/v2"

	_ "muni-hostelhub/docs" // Swagger docs
)

// @title Muni HostelHub API
// @version 1.0
// @description Hostel booking platform for Muni University students
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@muni.ac.ug

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.hostelhub.muni.ac.ug
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Open the selected storage backend
	repos, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to open storage: %v", err)
	}
	defer config.CloseDatabase()

	// Seed the super admin and sample hostels on an empty store
	seeder := config.NewSeeder(repos)
	if err := seeder.Run(context.Background()); err != nil {
		log.Printf("⚠️ Warning: Failed to seed data: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Muni HostelHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass repos and cfg for dependency injection)
	routes.Setup(app, repos, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// openStorage builds the repository set for the configured driver
func openStorage(cfg *config.Config) (*repositories.Set, error) {
	if cfg.Storage.Driver == "file" {
		store, err := filestore.New(cfg.Storage.FilePath)
		if err != nil {
			return nil, err
		}
		log.Printf("✅ File store opened at %s", cfg.Storage.FilePath)
		return filestore.NewSet(store), nil
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		return nil, err
	}
	log.Println("✅ Database migration completed")

	return repositories.NewGormSet(db), nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
