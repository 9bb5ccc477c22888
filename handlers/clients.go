package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/database"
	"github.com/biosecret/go-taskmanager/models"
)

var errClientNotFound = notFoundError("Client not found.")

func checkClientLengths(name, contactEmail *string) error {
	if name != nil && models.TooLong(*name) {
		return validationError("Client name must be at most 255 characters.")
	}
	if contactEmail != nil && models.TooLong(*contactEmail) {
		return validationError("Contact email must be at most 255 characters.")
	}
	return nil
}

// HandleCreateClient creates a client owned by the caller
// @Summary      Create a client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.ClientInput  true  "Client"
// @Success      201   {object}  models.Client
// @Failure      400   {object}  map[string]string
// @Router       /clients [post]
func (h *Handler) HandleCreateClient(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var in models.ClientInput
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if in.Name == "" {
		return validationError("Client name is required.")
	}
	if err := checkClientLengths(&in.Name, in.ContactEmailValue()); err != nil {
		return err
	}

	client, err := h.clients.Create(c.UserContext(), id.UserID, in.Name, in.ContactEmailValue())
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(client)
}

// HandleAllClients lists the caller's clients, newest first
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}  models.Client
// @Router       /clients [get]
func (h *Handler) HandleAllClients(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	clients, err := h.clients.List(c.UserContext(), id.UserID)
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}
	return c.JSON(clients)
}

// HandleUpdateClient merges the supplied fields into the client
// @Summary      Update a client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Client ID"
// @Param        body  body      models.ClientUpdate  true  "Fields to change"
// @Success      200   {object}  models.Client
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *Handler) HandleUpdateClient(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c)
	if err != nil {
		return err
	}

	var in models.ClientUpdate
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if in.Name != nil && *in.Name == "" {
		return validationError("Client name is required.")
	}
	if err := checkClientLengths(in.Name, in.ContactEmailValue()); err != nil {
		return err
	}

	client, err := h.clients.Update(c.UserContext(), id.UserID, clientID, in)
	if errors.Is(err, database.ErrNotFound) {
		return errClientNotFound
	}
	if err != nil {
		return fmt.Errorf("update client %d: %w", clientID, err)
	}
	return c.JSON(client)
}

// HandleDeleteClient deletes the client together with its tasks
// @Summary      Delete a client and its tasks
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Client ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *Handler) HandleDeleteClient(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	clientID, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := h.clients.Delete(c.UserContext(), id.UserID, clientID)
	if errors.Is(err, database.ErrNotFound) {
		return errClientNotFound
	}
	if err != nil {
		return fmt.Errorf("delete client %d: %w", clientID, err)
	}
	return c.JSON(fiber.Map{
		"message":       "Client deleted successfully.",
		"deleted_tasks": deleted,
	})
}
