package enum

import "encoding/json"

// CheckoutState is the state of the payment sub-flow for the checkout
// in progress. Transitions:
//
//	SelectingMethod --select credit/debit--> Ready
//	SelectingMethod --select pix-----------> AwaitingPixAck --ack--> Ready
//	SelectingMethod --select cash----------> EnteringCashTender --tender >= total--> Ready
//	Ready --confirm--> Committed (then back to SelectingMethod for the next sale)
//
// Re-selecting a method from any pre-commit state restarts its sub-flow.
type CheckoutState int

const (
	StateSelectingMethod    CheckoutState = 0
	StateAwaitingPixAck     CheckoutState = 1
	StateEnteringCashTender CheckoutState = 2
	StateReady              CheckoutState = 3
	StateCommitted          CheckoutState = 4
)

func (s CheckoutState) String() string {
	return [...]string{"selecting_method", "awaiting_pix_ack", "entering_cash_tender", "ready", "committed"}[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
