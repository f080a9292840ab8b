package handler

import (
	"errors"
	"log"
	"time"

	"kopdes-pos/internal/model"
	"kopdes-pos/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func getRole(c *fiber.Ctx) model.Role {
	if role, ok := c.Locals("role").(model.Role); ok {
		return role
	}
	return model.RoleAdmin
}

func getCashierName(c *fiber.Ctx) string {
	if name, ok := c.Locals("cashier_name").(string); ok && name != "" {
		return name
	}
	return getRole(c).CashierName()
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// respondError maps the service failure taxonomy onto HTTP statuses. Store
// failures surface as a generic message naming the attempted action; the
// caller retries manually if at all.
func respondError(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicate):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("%s: %v", action, err)
		return c.Status(500).JSON(fiber.Map{"error": "failed to " + action})
	}
}

// parseDay reads a YYYY-MM-DD query value, falling back to def.
func parseDay(value string, def time.Time) time.Time {
	if value == "" {
		return def
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return def
	}
	return day
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
