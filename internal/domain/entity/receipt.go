package entity

// ReceiptHeader holds the store header printed at the top of a ticket.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem represents a single line item on a printed ticket.
type ReceiptItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Total    int64  `json:"total"` // centavos
}

// Receipt is a value object representing the printable customer
// ticket. It is composed from a transaction at print time; the big
// ticket number is what the customer waits on.
type Receipt struct {
	Header         ReceiptHeader `json:"header"`
	TicketNumber   string        `json:"ticket_number"`
	Date           string        `json:"date"`
	PaymentLabel   string        `json:"payment_label"`
	Items          []ReceiptItem `json:"items"`
	Subtotal       int64         `json:"subtotal"`
	Discount       int64         `json:"discount"`
	Total          int64         `json:"total"`
	AmountTendered *int64        `json:"amount_tendered,omitempty"`
	ChangeDue      *int64        `json:"change_due,omitempty"`
}
