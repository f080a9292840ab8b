package handler

import (
	"kopdes-pos/internal/receipt"
	"kopdes-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SalesHandler struct {
	service service.SalesService
}

func NewSalesHandler(s service.SalesService) *SalesHandler {
	return &SalesHandler{service: s}
}

func (h *SalesHandler) RecordSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	// cashier name comes from the session role, never from the cart
	transaction, err := h.service.RecordSale(req, getCashierName(c))
	if err != nil {
		return respondError(c, err, "record transaction")
	}
	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": transaction})
}

func (h *SalesHandler) GetTransactions(c *fiber.Ctx) error {
	return c.JSON(h.service.Transactions())
}

func (h *SalesHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.FindTransaction(id)
	if err != nil {
		return respondError(c, err, "fetch transaction")
	}
	return c.JSON(transaction)
}

// ReverseSale deletes a transaction and restocks its items. Destructive;
// the client is expected to have confirmed with the user before calling.
func (h *SalesHandler) ReverseSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.service.ReverseSale(id, getCashierName(c)); err != nil {
		return respondError(c, err, "reverse transaction")
	}
	return c.JSON(fiber.Map{"message": "Transaction reversed, stock restored"})
}

// GetReceipt renders the printable 58mm text receipt.
func (h *SalesHandler) GetReceipt(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	transaction, err := h.service.FindTransaction(id)
	if err != nil {
		return respondError(c, err, "fetch transaction")
	}

	c.Set("Content-Type", "text/plain; charset=utf-8")
	return c.SendString(receipt.Render(transaction))
}
