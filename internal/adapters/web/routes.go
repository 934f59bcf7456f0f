package web

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// SetupRoutes configures the application routes.
func SetupRoutes(app *fiber.App, handlers *Handlers, metrics http.Handler) {
	app.Get("/healthz", handlers.Health)
	app.Get("/metrics", adaptor.HTTPHandler(metrics))

	api := app.Group("/api")
	api.Post("/conversations", handlers.ArchiveConversation)
	api.Post("/auth/test", handlers.AuthTest)
}
