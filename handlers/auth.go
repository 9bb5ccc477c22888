package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/database"
	"github.com/biosecret/go-taskmanager/models"
	"github.com/biosecret/go-taskmanager/utils"
)

var errInvalidCredentials = unauthorizedError("Invalid credentials.")

// RegisterHandler creates a user
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.Credentials  true  "Username and password"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *Handler) RegisterHandler(c *fiber.Ctx) error {
	var in models.Credentials
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if in.Username == "" || in.Password == "" {
		return validationError("Username and password are required.")
	}
	if models.TooLong(in.Username) {
		return validationError("Username must be at most 255 characters.")
	}

	hashed, err := h.passwords.Hash(in.Password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return validationError("Password must be at most 72 bytes.")
	}
	if err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), in.Username, hashed)
	if errors.Is(err, database.ErrDuplicate) {
		return conflictError("Username already taken.")
	}
	if err != nil {
		return fmt.Errorf("register %q: %w", in.Username, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user": fiber.Map{
			"id":         user.ID,
			"username":   user.Username,
			"created_at": user.CreatedAt,
		},
	})
}

// LoginHandler checks the credentials and returns a bearer token
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.Credentials  true  "Username and password"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *Handler) LoginHandler(c *fiber.Ctx) error {
	var in models.Credentials
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if in.Username == "" || in.Password == "" {
		return validationError("Username and password are required.")
	}

	user, err := h.users.FindByUsername(c.UserContext(), in.Username)
	if errors.Is(err, database.ErrNotFound) {
		// Spend the same bcrypt time as a real comparison.
		_ = h.passwords.Compare(h.decoy(), in.Password)
		return errInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("login lookup: %w", err)
	}

	if err := h.passwords.Compare(user.PasswordHash, in.Password); err != nil {
		if errors.Is(err, utils.ErrPasswordMismatch) {
			return errInvalidCredentials
		}
		return err
	}

	token, err := h.tokens.Issue(models.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful!",
		"token":   token,
		"user": fiber.Map{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h *Handler) decoy() string {
	h.decoyOnce.Do(func() {
		h.decoyHash, _ = h.passwords.Hash("decoy-password-for-unknown-users")
	})
	return h.decoyHash
}
