package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/pkg/apperror"
	"github.com/tofrito/till-api/pkg/money"
)

// CheckoutService runs the payment sub-flow for the checkout in
// progress: the manager-gated discount and the per-method completion
// steps (PIX acknowledgement, cash tender). Confirming hands the cart
// to the ledger and resets every piece of checkout-local state.
type CheckoutService struct {
	mu sync.Mutex

	cart    *CartService
	ledger  *LedgerService
	auth    *AuthService
	printer *PrinterService
	logger  *slog.Logger

	state          enum.CheckoutState
	method         enum.PaymentMethod
	methodSelected bool

	discountUnlocked bool
	stagedDiscount   string

	tenderRaw string // keypad buffer, e.g. "25.50"
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cart *CartService,
	ledger *LedgerService,
	auth *AuthService,
	printer *PrinterService,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		cart:    cart,
		ledger:  ledger,
		auth:    auth,
		printer: printer,
		logger:  logger,
		state:   enum.StateSelectingMethod,
	}
}

// CheckoutView is the checkout state the UI renders: totals computed
// against the live cart, gate status, and whether confirm is allowed.
type CheckoutView struct {
	State            enum.CheckoutState `json:"state"`
	Method           string             `json:"method,omitempty"`
	DiscountUnlocked bool               `json:"discount_unlocked"`
	StagedDiscount   string             `json:"staged_discount,omitempty"`
	Discount         int64              `json:"discount"`
	Subtotal         int64              `json:"subtotal"`
	Total            int64              `json:"total"`
	TenderRaw        string             `json:"tender_raw,omitempty"`
	AmountTendered   int64              `json:"amount_tendered"`
	ChangeDue        int64              `json:"change_due"`
	CanConfirm       bool               `json:"can_confirm"`
}

// ConfirmResult is returned to the UI for the ticket ("senha") screen.
type ConfirmResult struct {
	TransactionID string `json:"transaction_id"`
	TicketNumber  string `json:"ticket_number"`
	Total         int64  `json:"total"`
	ChangeDue     *int64 `json:"change_due,omitempty"`
}

// UnlockDiscount opens the discount gate with the manager passcode.
// A wrong passcode keeps the gate locked and clears nothing staged
// (there is nothing staged while locked); retry is allowed.
func (s *CheckoutService) UnlockDiscount(passcode string) error {
	if err := s.auth.VerifyPasscode(passcode); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountUnlocked = true
	return nil
}

// LockDiscount closes the gate and clears the staged discount.
func (s *CheckoutService) LockDiscount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountUnlocked = false
	s.stagedDiscount = ""
}

// StageDiscount stores the discount input as typed. The value is only
// parsed at confirm time; invalid input counts as zero then.
func (s *CheckoutService) StageDiscount(raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.discountUnlocked {
		return apperror.ErrForbidden
	}
	s.stagedDiscount = raw
	return nil
}

// SelectMethod picks a payment method and enters its completion
// sub-flow. Selecting a method restarts its sub-flow even if the same
// method was already selected.
func (s *CheckoutService) SelectMethod(method enum.PaymentMethod) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.method = method
	s.methodSelected = true
	s.tenderRaw = ""

	switch method {
	case enum.PaymentPix:
		s.state = enum.StateAwaitingPixAck
	case enum.PaymentCash:
		s.state = enum.StateEnteringCashTender
	default:
		s.state = enum.StateReady
	}
}

// AckPix acknowledges the simulated scan-and-pay step.
func (s *CheckoutService) AckPix() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != enum.StateAwaitingPixAck {
		return apperror.ErrCheckoutNotReady
	}
	s.state = enum.StateReady
	return nil
}

// TenderKey applies one keypad action to the tender buffer: a digit,
// ".", "backspace", or "clear".
func (s *CheckoutService) TenderKey(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != enum.StateEnteringCashTender && s.state != enum.StateReady {
		return apperror.ErrCheckoutNotReady
	}
	if !s.methodSelected || s.method != enum.PaymentCash {
		return apperror.ErrCheckoutNotReady
	}

	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		s.tenderRaw += key
	case ".", ",":
		if !strings.ContainsAny(s.tenderRaw, ".,") {
			s.tenderRaw += "."
		}
	case "backspace":
		if len(s.tenderRaw) > 0 {
			s.tenderRaw = s.tenderRaw[:len(s.tenderRaw)-1]
		}
	case "clear":
		s.tenderRaw = ""
	default:
		return apperror.NewBadRequestError("Unknown keypad key")
	}

	s.reevaluateCashLocked()
	return nil
}

// TenderQuickAdd adds a fixed denomination to the tendered amount.
func (s *CheckoutService) TenderQuickAdd(cents int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != enum.StateEnteringCashTender && s.state != enum.StateReady {
		return apperror.ErrCheckoutNotReady
	}
	if !s.methodSelected || s.method != enum.PaymentCash {
		return apperror.ErrCheckoutNotReady
	}
	if cents <= 0 {
		return apperror.NewBadRequestError("Denomination must be positive")
	}

	tendered := money.ParseAmount(s.tenderRaw) + cents
	s.tenderRaw = money.FormatPlain(tendered)
	s.reevaluateCashLocked()
	return nil
}

// Confirm finalizes the checkout: converts the cart to a transaction,
// prints the customer ticket best-effort, clears the cart, and resets
// all checkout-local state regardless of method.
func (s *CheckoutService) Confirm(ctx context.Context) (*ConfirmResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}
	if !s.methodSelected {
		return nil, apperror.ErrNoPaymentMethod
	}
	if s.state != enum.StateReady {
		return nil, apperror.ErrCheckoutNotReady
	}

	discount := money.ParseAmount(s.stagedDiscount)
	if !s.discountUnlocked {
		discount = 0
	}

	lines := s.cart.Snapshot()
	var subtotal int64
	for _, l := range lines {
		subtotal += l.Total()
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	input := &ConfirmInput{
		Lines:    lines,
		Discount: discount,
		Method:   s.method,
	}
	if s.method == enum.PaymentCash {
		// The cart may have grown after the tender screen reached
		// Ready; re-check against the live total.
		tendered := money.ParseAmount(s.tenderRaw)
		if tendered < total {
			s.state = enum.StateEnteringCashTender
			return nil, apperror.ErrCheckoutNotReady
		}
		input.Cash = &CashMeta{
			AmountTendered: tendered,
			ChangeDue:      tendered - total,
		}
	}

	s.state = enum.StateCommitted
	tx, err := s.ledger.Confirm(ctx, input)
	if err != nil {
		s.state = enum.StateReady
		return nil, err
	}

	if s.printer != nil {
		if _, err := s.printer.PrintTicket(tx); err != nil {
			s.logger.Warn("ticket print failed", "ticket", tx.TicketNumber, "error", err)
		}
	}

	s.cart.Clear()
	s.resetLocked()

	result := &ConfirmResult{
		TransactionID: tx.ID.String(),
		TicketNumber:  tx.TicketNumber,
		Total:         tx.Total,
		ChangeDue:     tx.ChangeDue,
	}
	return result, nil
}

// View returns the checkout state evaluated against the live cart.
func (s *CheckoutService) View() *CheckoutView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reevaluateCashLocked()

	subtotal := s.cart.Subtotal()
	discount := int64(0)
	if s.discountUnlocked {
		discount = money.ParseAmount(s.stagedDiscount)
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	tendered := money.ParseAmount(s.tenderRaw)
	change := tendered - total
	if change < 0 {
		change = 0
	}

	v := &CheckoutView{
		State:            s.state,
		DiscountUnlocked: s.discountUnlocked,
		StagedDiscount:   s.stagedDiscount,
		Discount:         discount,
		Subtotal:         subtotal,
		Total:            total,
		CanConfirm:       s.state == enum.StateReady && !s.cart.IsEmpty(),
	}
	if s.methodSelected {
		v.Method = s.method.String()
	}
	if s.methodSelected && s.method == enum.PaymentCash {
		v.TenderRaw = s.tenderRaw
		v.AmountTendered = tendered
		v.ChangeDue = change
	}
	return v
}

// reevaluateCashLocked moves the cash sub-flow between the tender
// screen and Ready as the tendered amount crosses the live total.
// Callers hold s.mu.
func (s *CheckoutService) reevaluateCashLocked() {
	if !s.methodSelected || s.method != enum.PaymentCash {
		return
	}
	if s.state != enum.StateEnteringCashTender && s.state != enum.StateReady {
		return
	}

	subtotal := s.cart.Subtotal()
	discount := int64(0)
	if s.discountUnlocked {
		discount = money.ParseAmount(s.stagedDiscount)
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	if money.ParseAmount(s.tenderRaw) >= total {
		s.state = enum.StateReady
	} else {
		s.state = enum.StateEnteringCashTender
	}
}

// resetLocked clears all checkout-local state. Callers hold s.mu.
func (s *CheckoutService) resetLocked() {
	s.state = enum.StateSelectingMethod
	s.methodSelected = false
	s.discountUnlocked = false
	s.stagedDiscount = ""
	s.tenderRaw = ""
}
