package utils

import (
	"strconv"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

// FormatTicketNumber renders a ticket counter value as the
// customer-facing ticket string ("senha").
func FormatTicketNumber(n int) string {
	return strconv.Itoa(n)
}

// ParseTicketNumber parses a ticket string back into its counter
// value. Malformed tickets count as 0 so they never influence counter
// re-derivation.
func ParseTicketNumber(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
