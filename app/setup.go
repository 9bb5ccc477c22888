package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"

	"github.com/biosecret/go-taskmanager/config"
	"github.com/biosecret/go-taskmanager/database"
	"github.com/biosecret/go-taskmanager/handlers"
	"github.com/biosecret/go-taskmanager/router"
	"github.com/biosecret/go-taskmanager/utils"
)

// SetupAndRunApp starts the Fiber application and blocks until it is stopped
func SetupAndRunApp() error {
	// Load environment variables from .env
	if err := config.LoadENV(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// No traffic is accepted without a working database
	db, err := database.Open(context.Background(), database.Config{
		URL:             cfg.Database.URL,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer database.Close(db)

	tokens := utils.NewTokenManager(cfg.JWT.Secret)
	app := NewApp(cfg, db, tokens)

	// Shut down gracefully on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	log.Infof("Server listening on :%s", cfg.Server.Port)
	return app.Listen(":" + cfg.Server.Port)
}

// NewApp builds the Fiber application with its middleware chain and routes.
func NewApp(cfg *config.Config, db *sqlx.DB, tokens *utils.TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "go-taskmanager",
		ErrorHandler:          handlers.ErrorHandler,
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	// Recover from panics, tag and log every request
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  utils.NewRequestID,
		ContextKey: "requestid",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${ip}]:${port} ${status} - ${method} ${path} ${latency} ${locals:requestid}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	h := handlers.New(handlers.Deps{
		Users:     database.NewUserStore(db),
		Clients:   database.NewClientStore(db),
		Tasks:     database.NewTaskStore(db),
		Tokens:    tokens,
		Passwords: utils.NewPasswordHasher(),
		DB:        db,
	})

	router.SetupRoutes(app, h, tokens, cfg.Server.RequestTimeout)
	config.AddSwaggerRoutes(app)

	return app
}
