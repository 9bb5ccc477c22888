package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString("Task Manager API is running!")
}

// HandleHealthCheck reports whether the database answers.
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	if err := h.db.PingContext(c.UserContext()); err != nil {
		log.Warnf("health check: database ping failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
