package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/biosecret/go-taskmanager/docs"
)

// AddSwaggerRoutes serves the API documentation at /swagger. The bearer token
// entered in the UI survives page reloads.
func AddSwaggerRoutes(app *fiber.App) {
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:                docs.SwaggerInfo.Title,
		DeepLinking:          true,
		DocExpansion:         "list",
		PersistAuthorization: true,
	}))
}
