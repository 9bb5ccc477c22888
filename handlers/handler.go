package handlers

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/middleware"
	"github.com/biosecret/go-taskmanager/models"
)

type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type ClientStore interface {
	Create(ctx context.Context, userID int64, name string, contactEmail *string) (*models.Client, error)
	List(ctx context.Context, userID int64) ([]models.Client, error)
	Owns(ctx context.Context, userID, clientID int64) (bool, error)
	Update(ctx context.Context, userID, clientID int64, in models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, userID, clientID int64) (int64, error)
}

type TaskStore interface {
	Create(ctx context.Context, userID int64, in models.TaskInput) (*models.Task, error)
	List(ctx context.Context, userID int64, clientID *int64) ([]models.Task, error)
	Update(ctx context.Context, userID, taskID int64, in models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

type TokenIssuer interface {
	Issue(id models.Identity) (string, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators of Handler. All of them must be safe for concurrent use.
type Deps struct {
	Users     UserStore
	Clients   ClientStore
	Tasks     TaskStore
	Tokens    TokenIssuer
	Passwords PasswordHasher
	DB        Pinger
}

// Handler serves the REST API.
type Handler struct {
	users     UserStore
	clients   ClientStore
	tasks     TaskStore
	tokens    TokenIssuer
	passwords PasswordHasher
	db        Pinger

	decoyOnce sync.Once
	decoyHash string
}

func New(d Deps) *Handler {
	return &Handler{
		users:     d.Users,
		clients:   d.Clients,
		tasks:     d.Tasks,
		tokens:    d.Tokens,
		passwords: d.Passwords,
		db:        d.DB,
	}
}

// identity returns the caller set by middleware.JWTMiddleware. Its absence
// means the route was wired without the middleware.
func identity(c *fiber.Ctx) (models.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return models.Identity{}, unauthorizedError("Access denied. No token provided.")
	}
	return id, nil
}

func pathID(c *fiber.Ctx) (int64, error) {
	id, err := models.ParseID(c.Params("id"))
	if err != nil {
		return 0, validationError("Invalid id.")
	}
	return id, nil
}
