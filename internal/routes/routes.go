// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"quickfiss/internal/handlers"
	"quickfiss/internal/middleware"
	"quickfiss/internal/repositories"
	"quickfiss/internal/services/auth"
	"quickfiss/internal/services/feed"
	"quickfiss/internal/services/profile"
	"quickfiss/internal/services/user"
	"quickfiss/internal/services/verification"
	"quickfiss/internal/storage"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB, mail verification.Mailer, media storage.MediaStore) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	otpRepo := repositories.NewOTPRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	catalogRepo := repositories.NewCatalogRepository(db)
	postRepo := repositories.NewPostRepository(db)

	// Initialize services in dependency order
	profileService := profile.NewService(profileRepo, catalogRepo)
	userService := user.NewService(userRepo, profileService)
	authService := auth.NewService(userRepo)
	verificationService := verification.NewService(userRepo, otpRepo, mail)
	feedService := feed.NewService(postRepo, profileRepo, catalogRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, verificationService)
	verificationHandler := handlers.NewVerificationHandler(verificationService)
	onboardingHandler := handlers.NewOnboardingHandler(userService, profileService)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	postHandler := handlers.NewPostHandler(feedService, media)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Quickfiss API",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)
	api.Post("/resend-otp", verificationHandler.ResendOTP)
	api.Post("/verify-otp", verificationHandler.VerifyOTP)
	api.Post("/password-reset", verificationHandler.PasswordResetRequest)
	api.Post("/password-reset/confirm", verificationHandler.PasswordResetConfirm)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/services", catalogHandler.ListServices)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Get("/me", userHandler.GetMe)
	protected.Put("/role", onboardingHandler.SelectRole)
	protected.Get("/artisans/:id/reviews", postHandler.ListArtisanReviews)
	protected.Get("/cache-stats", handlers.CacheStats)

	// Client-only routes
	client := protected.Group("/", middleware.RequireClient)
	client.Put("/client/onboarding", onboardingHandler.ClientOnboarding)
	client.Get("/feed", postHandler.GetFeed)
	client.Post("/posts/:id/interactions", postHandler.RecordInteraction)
	client.Post("/reviews", postHandler.CreateReview)

	// Artisan-only routes
	artisan := protected.Group("/", middleware.RequireArtisan)
	artisan.Put("/artisan/kyc", onboardingHandler.ArtisanKYC)
	artisan.Put("/artisan/customization", onboardingHandler.ArtisanCustomization)
	artisan.Post("/posts", postHandler.CreatePost)
}
