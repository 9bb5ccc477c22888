package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/go-taskmanager/database"
	"github.com/biosecret/go-taskmanager/models"
)

// taskValidationError turns a Normalize failure into the message sent to the client.
func taskValidationError(err error) error {
	switch {
	case errors.Is(err, models.ErrTaskFieldsRequired):
		return validationError("Client ID and Title are required.")
	case errors.Is(err, models.ErrEmptyTitle):
		return validationError("Title cannot be empty.")
	case errors.Is(err, models.ErrTitleTooLong):
		return validationError("Title must be at most 255 characters.")
	case errors.Is(err, models.ErrInvalidStatus):
		return validationError("Status must be one of pending, done, completed.")
	case errors.Is(err, models.ErrInvalidPriority):
		return validationError("Priority must be one of low, medium, high.")
	default:
		return errInvalidBody
	}
}

// HandleCreateTask adds a pending task to one of the caller's clients
// @Summary      Create a task
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      models.TaskInput  true  "Task"
// @Success      201   {object}  models.Task
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /tasks [post]
func (h *Handler) HandleCreateTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var in models.TaskInput
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if in.ClientID <= 0 || in.Title == "" {
		return validationError("Client ID and Title are required.")
	}
	if err := in.Normalize(); err != nil {
		return taskValidationError(err)
	}

	task, err := h.tasks.Create(c.UserContext(), id.UserID, in)
	if errors.Is(err, database.ErrNotFound) {
		return notFoundError("Client not found or does not belong to you.")
	}
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// HandleAllTasks lists the caller's tasks, optionally for one client
// @Summary      List tasks
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        client_id  query     int  false  "Only tasks of this client"
// @Success      200        {array}   models.Task
// @Failure      403        {object}  map[string]string
// @Router       /tasks [get]
func (h *Handler) HandleAllTasks(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var clientID *int64
	if raw := c.Query("client_id"); raw != "" {
		parsed, err := models.ParseID(raw)
		if err != nil {
			return validationError("Invalid client_id.")
		}

		owns, err := h.clients.Owns(c.UserContext(), id.UserID, parsed)
		if err != nil {
			return fmt.Errorf("check client %d: %w", parsed, err)
		}
		if !owns {
			return forbiddenError("Access denied to this client.")
		}
		clientID = &parsed
	}

	tasks, err := h.tasks.List(c.UserContext(), id.UserID, clientID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	return c.JSON(tasks)
}

// HandleUpdateTask merges the supplied fields into the task
// @Summary      Update a task
// @Tags         tasks
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id    path      int                true  "Task ID"
// @Param        body  body      models.TaskUpdate  true  "Fields to change"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *Handler) HandleUpdateTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	var in models.TaskUpdate
	if err := c.BodyParser(&in); err != nil {
		return errInvalidBody
	}
	if err := in.Normalize(); err != nil {
		return taskValidationError(err)
	}

	task, err := h.tasks.Update(c.UserContext(), id.UserID, taskID, in)
	if errors.Is(err, database.ErrNotFound) {
		return forbiddenError("Access denied.")
	}
	if err != nil {
		return fmt.Errorf("update task %d: %w", taskID, err)
	}
	return c.JSON(fiber.Map{"message": "Task updated!", "task": task})
}

// HandleDeleteTask deletes one of the caller's tasks
// @Summary      Delete a task
// @Tags         tasks
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      int  true  "Task ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *Handler) HandleDeleteTask(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return err
	}
	taskID, err := pathID(c)
	if err != nil {
		return err
	}

	err = h.tasks.Delete(c.UserContext(), id.UserID, taskID)
	if errors.Is(err, database.ErrNotFound) {
		return notFoundError("Task not found or not yours.")
	}
	if err != nil {
		return fmt.Errorf("delete task %d: %w", taskID, err)
	}
	return c.JSON(fiber.Map{"message": "Task deleted successfully."})
}
