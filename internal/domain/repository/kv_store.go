package repository

import "context"

// Storage keys. The ledger, the ticket counter, and the kitchen done
// set are independently loadable and resettable.
const (
	KeyLedger        = "pos:transactions"
	KeyTicketCounter = "pos:ticket_counter"
	KeyKitchenDone   = "pos:kitchen_done_ids"
)

// KVStore is the string-keyed persistence surface the core writes
// through. Values are opaque blobs; a missing key means "use the
// default" (empty ledger, counter 1, empty done set). Writes are
// last-writer-wins: this is a single-till system with no merge or
// conflict detection.
type KVStore interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
