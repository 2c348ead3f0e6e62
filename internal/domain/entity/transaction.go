package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/tofrito/till-api/internal/domain/enum"
)

// Transaction is a confirmed order in the ledger. Immutable once
// created except for the one-way completed -> cancelled transition.
// All amounts are in centavos.
type Transaction struct {
	ID            uuid.UUID              `json:"id"`
	TicketNumber  string                 `json:"ticket_number"`
	CreatedAt     time.Time              `json:"created_at"`
	Lines         []CartLine             `json:"lines"`
	Subtotal      int64                  `json:"subtotal"`
	Discount      int64                  `json:"discount"`
	Total         int64                  `json:"total"`
	PaymentMethod enum.PaymentMethod     `json:"payment_method"`
	Status        enum.TransactionStatus `json:"status"`

	// Cash metadata, present only when PaymentMethod is cash.
	AmountTendered *int64 `json:"amount_tendered,omitempty"`
	ChangeDue      *int64 `json:"change_due,omitempty"`
}

// IsCompleted reports whether the transaction still counts toward
// revenue and the kitchen queue.
func (t *Transaction) IsCompleted() bool {
	return t.Status == enum.StatusCompleted
}

// CreatedOn reports whether the transaction was created on the same
// local day as ref.
func (t *Transaction) CreatedOn(ref time.Time) bool {
	y1, m1, d1 := t.CreatedAt.Local().Date()
	y2, m2, d2 := ref.Local().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ItemCount returns the total number of units across all lines.
func (t *Transaction) ItemCount() int {
	var n int
	for _, l := range t.Lines {
		n += l.Quantity
	}
	return n
}
