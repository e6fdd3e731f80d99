package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/vbreban/accounts-backend/internal/config"
	"github.com/vbreban/accounts-backend/internal/handlers"
	"github.com/vbreban/accounts-backend/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	users := api.Group("/users")

	// Public
	users.Post("/signup", userHandler.Signup)
	users.Post("/login", userHandler.Login)
	users.Get("/verify/:verificationToken", userHandler.VerifyEmail)
	users.Post("/verify", userHandler.RequestVerification)

	// Admin-token guarded (open when no token is configured)
	users.Delete("/delete/:email", middleware.AdminToken(cfg), userHandler.Delete)

	// Protected (bearer token required)
	users.Get("/logout", middleware.JWTProtected(cfg), userHandler.Logout)
	users.Get("/current", middleware.JWTProtected(cfg), userHandler.Current)
	users.Patch("/:userId", middleware.JWTProtected(cfg), userHandler.UpdateSubscription)
}
