package request

// AddItemRequest adds one unit of a catalog product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest adjusts a cart line quantity by delta.
// The resulting quantity is clamped at 1; use remove to drop a line.
type UpdateQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}
