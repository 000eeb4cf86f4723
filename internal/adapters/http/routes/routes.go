package routes

import (
	"muni-hostelhub/internal/adapters/http/handlers"
	"muni-hostelhub/internal/adapters/http/middleware"
	"muni-hostelhub/internal/adapters/persistence/repositories"
	"muni-hostelhub/internal/config"
	"muni-hostelhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, repos *repositories.Set, cfg *config.Config) {
	// Initialize services
	securityLogService := services.NewSecurityLogService(repos.SecurityLogs)
	authService := services.NewAuthService(repos.Users, repos.RefreshTokens, securityLogService, cfg)
	authzService := services.NewAuthorizationService(repos.Users, repos.Hostels, securityLogService)
	userService := services.NewUserService(repos.Users, securityLogService)
	hostelService := services.NewHostelService(repos.Hostels, repos.Users, authzService, securityLogService)
	bookingService := services.NewBookingService(repos.Bookings, repos.Hostels, authzService, securityLogService)
	favoriteService := services.NewFavoriteService(repos.Favorites, repos.Hostels)
	dashboardService := services.NewDashboardService(repos, authzService, securityLogService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	hostelHandler := handlers.NewHostelHandler(hostelService, authService)
	bookingHandler := handlers.NewBookingHandler(bookingService, authService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService, authService)
	adminHandler := handlers.NewAdminHandler(userService, authzService, dashboardService, authService)
	securityHandler := handlers.NewSecurityHandler(securityLogService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, authService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	// Auth routes (public, rate limited)
	authRoutes := apiV1.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Hostel routes (public browsing, admin management)
	hostelRoutes := apiV1.Group("/hostels")
	setupHostelRoutes(hostelRoutes, hostelHandler, cfg)

	// Booking routes (authenticated)
	bookingRoutes := apiV1.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(cfg))
	setupBookingRoutes(bookingRoutes, bookingHandler)

	// Favorite routes (authenticated)
	favoriteRoutes := apiV1.Group("/favorites")
	favoriteRoutes.Use(middleware.AuthMiddleware(cfg))
	setupFavoriteRoutes(favoriteRoutes, favoriteHandler)

	// Dashboard route (authenticated, role scoped)
	dashboardRoutes := apiV1.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.Get)

	// Admin routes
	adminRoutes := apiV1.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAdminRoutes(adminRoutes, adminHandler, securityHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (5 req/min/IP against credential stuffing)
	router.Post("/signup", middleware.AuthRateLimiter(), handler.Signup)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupHostelRoutes configures hostel routes. Browsing is public with
// optional auth; creation and deletion are super admin only, editing is
// open to the owning admin.
func setupHostelRoutes(router fiber.Router, handler *handlers.HostelHandler, cfg *config.Config) {
	router.Get("/", middleware.OptionalAuth(cfg), handler.List)
	router.Get("/:id", middleware.OptionalAuth(cfg), handler.Get)

	router.Post("/", middleware.AuthMiddleware(cfg), middleware.SuperAdminOnly(), handler.Create)
	router.Put("/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), handler.Update)
	router.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.SuperAdminOnly(), handler.Delete)
}

// setupBookingRoutes configures booking routes
func setupBookingRoutes(router fiber.Router, handler *handlers.BookingHandler) {
	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Patch("/:id/status", middleware.AdminOnly(), handler.UpdateStatus)
}

// setupFavoriteRoutes configures favorite routes
func setupFavoriteRoutes(router fiber.Router, handler *handlers.FavoriteHandler) {
	router.Get("/", handler.List)
	router.Post("/:id", handler.Add)
	router.Delete("/:id", handler.Remove)
}

// setupAdminRoutes configures administration routes
func setupAdminRoutes(router fiber.Router, adminHandler *handlers.AdminHandler, securityHandler *handlers.SecurityHandler) {
	// User management (super admin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.SuperAdminOnly())
	userRoutes.Get("/", adminHandler.ListUsers)
	userRoutes.Post("/", adminHandler.CreateUser)
	userRoutes.Get("/stats", adminHandler.UserStats)
	userRoutes.Patch("/:id/role", adminHandler.UpdateRole)
	userRoutes.Patch("/:id/status", adminHandler.UpdateStatus)
	userRoutes.Patch("/:id/permissions", adminHandler.UpdatePermissions)

	// Hostel ownership (super admin only)
	router.Post("/hostels/:id/assign", middleware.SuperAdminOnly(), adminHandler.AssignHostel)
	router.Post("/hostels/:id/unassign", middleware.SuperAdminOnly(), adminHandler.UnassignHostel)

	// Security logs (super admin only; clearing is strictly rate limited)
	router.Get("/security-logs", middleware.SuperAdminOnly(), securityHandler.List)
	router.Delete("/security-logs", middleware.SuperAdminOnly(), middleware.StrictRateLimiter(), securityHandler.Clear)

	// Data export (admins; strictly rate limited)
	router.Get("/export", middleware.AdminOnly(), middleware.StrictRateLimiter(), adminHandler.Export)
}
