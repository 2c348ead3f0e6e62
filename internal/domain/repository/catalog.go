package repository

import "github.com/tofrito/till-api/internal/domain/entity"

// ProductCatalog is the read-only product list supplied at startup.
type ProductCatalog interface {
	// List returns all products in display order.
	List() []entity.Product
	// Get returns the product with the given id.
	Get(id string) (*entity.Product, bool)
}
