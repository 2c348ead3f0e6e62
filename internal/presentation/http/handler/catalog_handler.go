package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// CatalogHandler serves the read-only product catalog
type CatalogHandler struct {
	catalog repository.ProductCatalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog repository.ProductCatalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns all products in display order, plus the category list
// in first-appearance order for the grid's filter tabs.
func (h *CatalogHandler) List(c *gin.Context) {
	products := h.catalog.List()

	seen := make(map[string]bool)
	var categories []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
	}

	response.OK(c, "Catalog retrieved", gin.H{
		"products":   products,
		"categories": categories,
	})
}

// Get returns a single product by id.
func (h *CatalogHandler) Get(c *gin.Context) {
	product, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	response.OK(c, "Product retrieved", product)
}
