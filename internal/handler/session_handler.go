package handler

import (
	"kopdes-pos/internal/model"
	"kopdes-pos/pkg/roletoken"

	"github.com/gofiber/fiber/v2"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// SetRole mints a role session token for the requested simulated role.
// Anyone can mint any role; this only drives menu visibility and the
// cashier name on receipts.
func (h *SessionHandler) SetRole(c *fiber.Ctx) error {
	var body struct {
		Role model.Role `json:"role"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if !body.Role.Valid() {
		return c.Status(400).JSON(fiber.Map{"error": "role must be Admin or Kasir"})
	}

	token, err := roletoken.Generate(string(body.Role), body.Role.CashierName())
	if err != nil {
		return respondError(c, err, "create role session")
	}

	return c.JSON(fiber.Map{
		"token":        token,
		"role":         body.Role,
		"cashier_name": body.Role.CashierName(),
		"menus":        body.Role.Menus(),
	})
}

// Menus lists the menu ids visible to the current role.
func (h *SessionHandler) Menus(c *fiber.Ctx) error {
	role := getRole(c)
	return c.JSON(fiber.Map{
		"role":  role,
		"menus": role.Menus(),
	})
}
