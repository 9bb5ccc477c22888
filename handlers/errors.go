package handlers

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/jackc/pgx/v5/pgconn"
)

// Error taxonomy. Every handler failure is one of these, or an unclassified
// error that ErrorHandler turns into 400 (string_data_right_truncation), 500, 503 or 504.

func validationError(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func notFoundError(message string) error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func forbiddenError(message string) error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func conflictError(message string) error {
	return fiber.NewError(fiber.StatusConflict, message)
}

func unauthorizedError(message string) error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

var errInvalidBody = validationError("Invalid request body.")

// ErrorHandler renders every error as {"error": message}. Errors that are not
// *fiber.Error are logged with the request ID and answered with a generic message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}

	status, message := classify(err)
	log.Errorw("request failed",
		"request_id", c.Locals("requestid"),
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"error", err,
	)
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func classify(err error) (int, string) {
	var connErr *pgconn.ConnectError
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == "22001":
		return fiber.StatusBadRequest, "Value too long."
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, "Request timed out."
	case errors.As(err, &connErr),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, sql.ErrConnDone):
		return fiber.StatusServiceUnavailable, "Database unavailable."
	default:
		return fiber.StatusInternalServerError, "Internal server error."
	}
}
