package entity

// Product represents a catalog entry. The catalog is supplied at
// startup and read-only to the till: products are never created or
// mutated here.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // Stored in centavos
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}
