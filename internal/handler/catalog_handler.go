package handler

import (
	"kopdes-pos/internal/model"
	"kopdes-pos/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

func (h *CatalogHandler) GetProducts(c *fiber.Ctx) error {
	return c.JSON(h.service.Products())
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getCashierName(c)); err != nil {
		return respondError(c, err, "create product")
	}
	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(productID, &product, getCashierName(c))
	if err != nil {
		return respondError(c, err, "update product")
	}
	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	productID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(productID); err != nil {
		return respondError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted"})
}

func (h *CatalogHandler) GetMembers(c *fiber.Ctx) error {
	return c.JSON(h.service.Members())
}

func (h *CatalogHandler) AddMember(c *fiber.Ctx) error {
	var member model.Member
	if err := c.BodyParser(&member); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.AddMember(&member); err != nil {
		return respondError(c, err, "add member")
	}
	return c.Status(201).JSON(fiber.Map{"message": "Member added", "data": member})
}

func (h *CatalogHandler) DeleteMember(c *fiber.Ctx) error {
	if err := h.service.DeleteMember(c.Params("id")); err != nil {
		return respondError(c, err, "delete member")
	}
	return c.JSON(fiber.Map{"message": "Member deleted"})
}
