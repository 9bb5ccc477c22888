package main

import (
	"github.com/gofiber/fiber/v2/log"

	"github.com/biosecret/go-taskmanager/app"
	_ "github.com/biosecret/go-taskmanager/docs"
)

// @title                       Task Manager API
// @version                     1.0
// @description                 Per-user clients and tasks behind bearer-token authentication.
// @BasePath                    /api
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	// setup and run app
	if err := app.SetupAndRunApp(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
