package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/internal/domain/repository"
	"github.com/tofrito/till-api/pkg/apperror"
	"github.com/tofrito/till-api/pkg/utils"
)

// LedgerService owns the append-mostly transaction ledger and the
// per-day ticket counter. It is the single writer: the kitchen tracker
// and the reporting aggregator read through it. Every mutation is
// flushed to the KV store before returning.
type LedgerService struct {
	mu     sync.Mutex
	store  repository.KVStore
	logger *slog.Logger

	transactions []entity.Transaction
	nextTicket   int

	now func() time.Time
}

// NewLedgerService creates a new ledger service
func NewLedgerService(store repository.KVStore, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		store:      store,
		logger:     logger,
		nextTicket: 1,
		now:        time.Now,
	}
}

// CashMeta carries cash-payment details through to the transaction.
// Amounts in centavos.
type CashMeta struct {
	AmountTendered int64
	ChangeDue      int64
}

// ConfirmInput represents a checkout ready to become a transaction.
type ConfirmInput struct {
	Lines    []entity.CartLine
	Discount int64
	Method   enum.PaymentMethod
	Cash     *CashMeta
}

// Load restores the ledger and ticket counter from the store. Missing
// or malformed data falls back to an empty ledger and counter 1; the
// till must come up regardless.
func (s *LedgerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	s.nextTicket = 1

	data, found, err := s.store.Get(ctx, repository.KeyLedger)
	if err != nil {
		s.logger.Warn("ledger load failed, starting empty", "error", err)
		return
	}
	if found {
		var txs []entity.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			s.logger.Warn("ledger blob is malformed, starting empty", "error", err)
		} else {
			s.transactions = txs
		}
	}

	// The counter is day-scoped implicitly: re-derive it from today's
	// tickets instead of trusting the stored value across a midnight
	// boundary.
	derived := 1
	today := s.now()
	for i := range s.transactions {
		if !s.transactions[i].CreatedOn(today) {
			continue
		}
		if n := utils.ParseTicketNumber(s.transactions[i].TicketNumber); n >= derived {
			derived = n + 1
		}
	}
	s.nextTicket = derived

	if raw, ok, err := s.store.Get(ctx, repository.KeyTicketCounter); err == nil && ok {
		var stored int
		if err := json.Unmarshal(raw, &stored); err == nil && stored != derived {
			s.logger.Info("ticket counter re-derived from today's ledger",
				"stored", stored, "derived", derived)
		}
	}

	s.logger.Info("ledger loaded",
		"transactions", len(s.transactions), "next_ticket", s.nextTicket)
}

// Confirm converts a cart snapshot into a transaction: assigns the
// next ticket number and a fresh id, computes totals from the
// snapshot, appends to the ledger, and persists ledger and counter.
func (s *LedgerService) Confirm(ctx context.Context, input *ConfirmInput) (*entity.Transaction, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	discount := input.Discount
	if discount < 0 {
		discount = 0
	}

	var subtotal int64
	for _, l := range input.Lines {
		subtotal += l.Total()
	}
	total := subtotal - discount
	if total < 0 {
		total = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := entity.Transaction{
		ID:            utils.NewUUID(),
		TicketNumber:  utils.FormatTicketNumber(s.nextTicket),
		CreatedAt:     s.now(),
		Lines:         input.Lines,
		Subtotal:      subtotal,
		Discount:      discount,
		Total:         total,
		PaymentMethod: input.Method,
		Status:        enum.StatusCompleted,
	}
	if input.Method == enum.PaymentCash && input.Cash != nil {
		tendered := input.Cash.AmountTendered
		change := tendered - total
		if change < 0 {
			change = 0
		}
		tx.AmountTendered = &tendered
		tx.ChangeDue = &change
	}

	s.transactions = append(s.transactions, tx)
	s.persistLedger(ctx)

	s.nextTicket++
	s.persistCounter(ctx)

	s.logger.Info("transaction confirmed",
		"id", tx.ID, "ticket", tx.TicketNumber,
		"total", tx.Total, "method", tx.PaymentMethod.String())

	out := tx
	return &out, nil
}

// Cancel flips a completed transaction to cancelled. Unknown ids and
// already-cancelled transactions are idempotent no-ops.
func (s *LedgerService) Cancel(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID != id {
			continue
		}
		if s.transactions[i].Status != enum.StatusCompleted {
			return
		}
		s.transactions[i].Status = enum.StatusCancelled
		s.persistLedger(ctx)
		s.logger.Info("transaction cancelled",
			"id", id, "ticket", s.transactions[i].TicketNumber)
		return
	}
}

// Reset wipes the ledger, resets the ticket counter to 1, and clears
// the kitchen done markers. Destructive and irreversible; meant for an
// end-of-period wipe.
func (s *LedgerService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = nil
	s.nextTicket = 1
	s.persistLedger(ctx)
	s.persistCounter(ctx)
	if err := s.store.Delete(ctx, repository.KeyKitchenDone); err != nil {
		s.logger.Warn("failed to clear kitchen done markers", "error", err)
	}

	s.logger.Info("ledger reset")
}

// Transactions returns a snapshot of the full ledger in append order.
func (s *LedgerService) Transactions() []entity.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Get returns the transaction with the given id.
func (s *LedgerService) Get(id uuid.UUID) (*entity.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.transactions {
		if s.transactions[i].ID == id {
			tx := s.transactions[i]
			return &tx, true
		}
	}
	return nil, false
}

// NextTicket returns the ticket number the next confirm will assign.
func (s *LedgerService) NextTicket() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextTicket
}

// persistLedger writes the transaction list. Callers hold s.mu.
// Persistence failures are logged, never surfaced: the in-memory state
// stays authoritative for the session.
func (s *LedgerService) persistLedger(ctx context.Context) {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		s.logger.Warn("failed to encode ledger", "error", err)
		return
	}
	if err := s.store.Set(ctx, repository.KeyLedger, data); err != nil {
		s.logger.Warn("failed to persist ledger", "error", err)
	}
}

// persistCounter writes the ticket counter. Callers hold s.mu.
func (s *LedgerService) persistCounter(ctx context.Context) {
	data, _ := json.Marshal(s.nextTicket)
	if err := s.store.Set(ctx, repository.KeyTicketCounter, data); err != nil {
		s.logger.Warn("failed to persist ticket counter", "error", err)
	}
}
