package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/handlers"
	"github.com/biosecret/go-taskmanager/middleware"
)

// SetupRoutes registers the public and the token-protected routes.
func SetupRoutes(app *fiber.App, h *handlers.Handler, tokens middleware.TokenVerifier, requestTimeout time.Duration) {
	app.Get("/", h.HandleRoot)
	app.Get("/health", middleware.RequestTimeout(requestTimeout), h.HandleHealthCheck)

	api := app.Group("/api", middleware.RequestTimeout(requestTimeout))
	api.Post("/register", h.RegisterHandler)
	api.Post("/login", h.LoginHandler)

	auth := middleware.JWTMiddleware(tokens)

	clients := api.Group("/clients", auth)
	clients.Post("/", h.HandleCreateClient)
	clients.Get("/", h.HandleAllClients)
	clients.Put("/:id", h.HandleUpdateClient)
	clients.Delete("/:id", h.HandleDeleteClient)

	tasks := api.Group("/tasks", auth)
	tasks.Post("/", h.HandleCreateTask)
	tasks.Get("/", h.HandleAllTasks)
	tasks.Put("/:id", h.HandleUpdateTask)
	tasks.Delete("/:id", h.HandleDeleteTask)
}
