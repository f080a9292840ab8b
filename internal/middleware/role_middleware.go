package middleware

import (
	"strings"

	"kopdes-pos/internal/model"
	"kopdes-pos/pkg/roletoken"

	"github.com/gofiber/fiber/v2"
)

// WithRole resolves the simulated role for the request: a Bearer role token
// if present, then an X-Role header, defaulting to Admin. This mirrors the
// client-side role toggle of the POS UI. It is a menu-capability filter
// ONLY — never an authorization mechanism; a real deployment needs its own
// trust boundary in front of this API.
func WithRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := model.RoleAdmin
		cashierName := role.CashierName()

		if authHeader := c.Get("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				if claims, err := roletoken.Validate(parts[1]); err == nil && model.Role(claims.Role).Valid() {
					role = model.Role(claims.Role)
					cashierName = claims.CashierName
				}
			}
		} else if header := model.Role(c.Get("X-Role")); header.Valid() {
			role = header
			cashierName = header.CashierName()
		}

		c.Locals("role", role)
		c.Locals("cashier_name", cashierName)
		return c.Next()
	}
}

// RequireRole restricts an endpoint to one simulated role. Same trust model
// as RequireMenu: a capability filter, not authorization.
func RequireRole(required model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(model.Role)
		if !ok || role != required {
			return c.Status(403).JSON(fiber.Map{
				"error": "this action is only available to " + string(required),
			})
		}
		return c.Next()
	}
}

// RequireMenu hides endpoints behind the role's menu visibility, the same
// filter the sidebar applies. A 403 here means "not on your menu", nothing
// stronger.
func RequireMenu(menu string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(model.Role)
		if !ok || !role.CanAccess(menu) {
			return c.Status(403).JSON(fiber.Map{
				"error": "menu '" + menu + "' is not available for this role",
			})
		}
		return c.Next()
	}
}
