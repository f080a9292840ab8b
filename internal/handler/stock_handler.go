package handler

import (
	"kopdes-pos/internal/model"
	"kopdes-pos/internal/readmodel"
	"kopdes-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StockHandler struct {
	ledger service.LedgerService
	cache  *readmodel.Cache
}

func NewStockHandler(ledger service.LedgerService, cache *readmodel.Cache) *StockHandler {
	return &StockHandler{ledger: ledger, cache: cache}
}

// ReceiveStock books incoming goods (PO receipt) against a product.
func (h *StockHandler) ReceiveStock(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var body struct {
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.ledger.ReceiveStock(productID, body.Quantity, body.Notes, getCashierName(c))
	if err != nil {
		return respondError(c, err, "receive stock")
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock received", "data": entry})
}

// AdjustStock sets the absolute stock level (stock take correction).
func (h *StockHandler) AdjustStock(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var body struct {
		NewStock int    `json:"new_stock"`
		Notes    string `json:"notes"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	entry, err := h.ledger.AdjustStock(productID, body.NewStock, body.Notes, getCashierName(c))
	if err != nil {
		return respondError(c, err, "adjust stock")
	}
	return c.Status(201).JSON(fiber.Map{"message": "Stock adjusted", "data": entry})
}

// GetStockLogs lists the audit trail, optionally filtered by type.
func (h *StockHandler) GetStockLogs(c *fiber.Ctx) error {
	logs := h.cache.StockLogs()

	if typeFilter := c.Query("type"); typeFilter != "" {
		filtered := make([]model.StockLog, 0, len(logs))
		for _, l := range logs {
			if string(l.Type) == typeFilter {
				filtered = append(filtered, l)
			}
		}
		logs = filtered
	}

	return c.JSON(logs)
}
