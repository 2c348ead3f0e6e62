package service

import (
	"sync"

	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/pkg/apperror"
)

// CartService owns the single in-progress cart for this till. The
// cart never persists: it is destroyed on checkout or explicit clear.
type CartService struct {
	mu      sync.Mutex
	cart    *entity.Cart
	catalog repository.ProductCatalog
}

// NewCartService creates a new cart service
func NewCartService(catalog repository.ProductCatalog) *CartService {
	return &CartService{
		cart:    entity.NewCart(),
		catalog: catalog,
	}
}

// CartView is the cart state the sidebar renders after every mutation.
type CartView struct {
	Lines     []entity.CartLine `json:"lines"`
	Subtotal  int64             `json:"subtotal"`
	ItemCount int               `json:"item_count"`
	LineCount int               `json:"line_count"`
}

// Add puts one unit of the catalog product in the cart.
func (s *CartService) Add(productID string) (*CartView, error) {
	product, ok := s.catalog.Get(productID)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(*product)
	return s.viewLocked(), nil
}

// UpdateQuantity adjusts a line's quantity by delta (clamped at 1).
func (s *CartService) UpdateQuantity(productID string, delta int) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.UpdateQuantity(productID, delta)
	return s.viewLocked()
}

// Remove deletes the line for the product id.
func (s *CartService) Remove(productID string) *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	return s.viewLocked()
}

// Clear empties the cart.
func (s *CartService) Clear() *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	return s.viewLocked()
}

// View returns the current cart state.
func (s *CartService) View() *CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// Snapshot returns a frozen copy of the cart lines for checkout.
func (s *CartService) Snapshot() []entity.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

// Subtotal returns the live cart subtotal in centavos.
func (s *CartService) Subtotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Subtotal()
}

// IsEmpty reports whether the cart has no lines.
func (s *CartService) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

func (s *CartService) viewLocked() *CartView {
	lines := s.cart.Lines()
	return &CartView{
		Lines:     lines,
		Subtotal:  s.cart.Subtotal(),
		ItemCount: s.cart.ItemCount(),
		LineCount: len(lines),
	}
}
