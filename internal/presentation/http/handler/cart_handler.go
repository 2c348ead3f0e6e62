package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/presentation/http/dto/request"
	"github.com/tofrito/till-api/internal/presentation/http/dto/response"
)

// CartHandler handles cart mutations for the order in progress
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the current cart.
func (h *CartHandler) Get(c *gin.Context) {
	response.OK(c, "Cart retrieved", h.cartService.View())
}

// AddItem adds one unit of a product to the cart.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "product_id is required")
		return
	}

	view, err := h.cartService.Add(req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item added", view)
}

// UpdateQuantity adjusts a line's quantity by a delta.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	var req request.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "delta is required")
		return
	}

	view := h.cartService.UpdateQuantity(c.Param("productId"), req.Delta)
	response.OK(c, "Quantity updated", view)
}

// RemoveItem drops a line from the cart.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	view := h.cartService.Remove(c.Param("productId"))
	response.OK(c, "Item removed", view)
}

// Clear empties the cart.
func (h *CartHandler) Clear(c *gin.Context) {
	view := h.cartService.Clear()
	response.OK(c, "Cart cleared", view)
}
