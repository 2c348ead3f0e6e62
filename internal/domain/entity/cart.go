package entity

// CartLine is a product plus the quantity staged for the order in
// progress. Quantity is always >= 1; dropping a product uses Remove,
// not a zero quantity.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Total returns the line total in centavos.
func (l CartLine) Total() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// Cart is the mutable staging area for an in-progress order. Lines are
// kept in insertion order with at most one line per product id. The
// cart lives only in memory; it is destroyed on checkout or clear.
type Cart struct {
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of the product in the cart. An existing line for
// the same product id gains a unit instead of a second line.
func (c *Cart) Add(p Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: p, Quantity: 1})
}

// UpdateQuantity adjusts a line's quantity by delta, clamped at a
// minimum of 1. Unknown product ids are a no-op.
func (c *Cart) UpdateQuantity(productID string, delta int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			q := c.lines[i].Quantity + delta
			if q < 1 {
				q = 1
			}
			c.lines[i].Quantity = q
			return
		}
	}
}

// Remove deletes the line for the product id if present.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Subtotal returns the sum of line totals in centavos.
func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Total()
	}
	return sum
}

// Lines returns a copy of the cart lines in insertion order. Callers
// get a snapshot; mutating it does not touch the cart.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// ItemCount returns the total number of units across all lines, used
// for the cart badge.
func (c *Cart) ItemCount() int {
	var n int
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
