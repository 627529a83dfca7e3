// Package catalogapi serves a read-only product catalog over HTTP.
package catalogapi

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/phanxgames/roomdesigner/catalog"
)

// ============================================================
// Catalog Handler
// ============================================================

type Handler struct {
	provider catalog.Provider
}

func NewHandler(provider catalog.Provider) *Handler {
	return &Handler{provider: provider}
}

// Register mounts the catalog and health routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Get("/products", h.ListProducts)
	r.Get("/products/:id", h.GetProduct)
	r.Get("/categories", h.ListCategories)
}

type productList struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

// ListProducts returns every product, optionally filtered by ?category=.
func (h *Handler) ListProducts(c fiber.Ctx) error {
	products, err := h.provider.Products(c.Context())
	if err != nil {
		log.Printf("[CATALOG] list products: %v", err)
		return fiber.NewError(http.StatusInternalServerError, "catalog unavailable")
	}
	products = catalog.InCategory(products, c.Query("category"))
	if products == nil {
		products = []catalog.Product{}
	}
	return c.JSON(productList{Products: products, Total: len(products)})
}

// GetProduct returns one product by numeric id.
func (h *Handler) GetProduct(c fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return fiber.NewError(http.StatusBadRequest, "invalid product id")
	}
	p, err := h.provider.Product(c.Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fiber.NewError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		log.Printf("[CATALOG] get product %d: %v", id, err)
		return fiber.NewError(http.StatusInternalServerError, "catalog unavailable")
	}
	return c.JSON(p)
}

// ListCategories returns the distinct product categories.
func (h *Handler) ListCategories(c fiber.Ctx) error {
	products, err := h.provider.Products(c.Context())
	if err != nil {
		log.Printf("[CATALOG] list categories: %v", err)
		return fiber.NewError(http.StatusInternalServerError, "catalog unavailable")
	}
	cats := catalog.Categories(products)
	if cats == nil {
		cats = []string{}
	}
	return c.JSON(fiber.Map{"categories": cats})
}

// ============================================================
// Health Check Handlers
// ============================================================

// Live reports that the process is up.
func (h *Handler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Ready reports whether the catalog can be read.
func (h *Handler) Ready(c fiber.Ctx) error {
	if _, err := h.provider.Products(c.Context()); err != nil {
		return c.Status(http.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

// ErrorHandler renders errors as {"error": message}. Errors that are not
// *fiber.Error become 500.
func ErrorHandler(c fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	msg := "internal error"
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
