package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/repository"
)

// KitchenService tracks kitchen fulfillment as a side-set of "done"
// transaction ids, independent of the financial status. Both views are
// recomputed joins against the ledger on every read; the set is
// reloaded from the store each time so there is no cached copy to go
// stale (a reset wipes the stored set out from under us).
type KitchenService struct {
	// mu serializes the load-modify-save of the marker set so two
	// concurrent taps cannot lose each other's marker.
	mu     sync.Mutex
	ledger *LedgerService
	store  repository.KVStore
	logger *slog.Logger

	now func() time.Time
}

// NewKitchenService creates a new kitchen service
func NewKitchenService(ledger *LedgerService, store repository.KVStore, logger *slog.Logger) *KitchenService {
	return &KitchenService{
		ledger: ledger,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ActiveQueue returns today's completed transactions not yet marked
// done, oldest first. This is the kitchen's preparation order.
func (s *KitchenService) ActiveQueue(ctx context.Context) []entity.Transaction {
	done := s.loadDone(ctx)
	out := s.todaysCompleted(func(tx *entity.Transaction) bool {
		return !done[tx.ID]
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// CompletedToday returns today's completed transactions already marked
// done, newest first.
func (s *KitchenService) CompletedToday(ctx context.Context) []entity.Transaction {
	done := s.loadDone(ctx)
	out := s.todaysCompleted(func(tx *entity.Transaction) bool {
		return done[tx.ID]
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// MarkDone flags a transaction as fulfilled in the kitchen. Only ids
// of completed ledger entries enter the set; Transaction.Status is
// never touched.
func (s *KitchenService) MarkDone(ctx context.Context, id uuid.UUID) {
	tx, ok := s.ledger.Get(id)
	if !ok || !tx.IsCompleted() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	done := s.loadDone(ctx)
	if done[id] {
		return
	}
	done[id] = true
	s.saveDone(ctx, done)
}

// ReturnToPreparation removes the done marker, putting the order back
// in the active queue at its original FIFO position.
func (s *KitchenService) ReturnToPreparation(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	done := s.loadDone(ctx)
	if !done[id] {
		return
	}
	delete(done, id)
	s.saveDone(ctx, done)
}

func (s *KitchenService) todaysCompleted(keep func(*entity.Transaction) bool) []entity.Transaction {
	now := s.now()
	var out []entity.Transaction
	for _, tx := range s.ledger.Transactions() {
		if !tx.IsCompleted() || !tx.CreatedOn(now) {
			continue
		}
		if keep(&tx) {
			out = append(out, tx)
		}
	}
	return out
}

// loadDone reads the marker set. Malformed or missing data means an
// empty set; the kitchen view degrades to "everything pending" rather
// than failing.
func (s *KitchenService) loadDone(ctx context.Context) map[uuid.UUID]bool {
	done := make(map[uuid.UUID]bool)

	data, found, err := s.store.Get(ctx, repository.KeyKitchenDone)
	if err != nil {
		s.logger.Warn("kitchen done set load failed", "error", err)
		return done
	}
	if !found {
		return done
	}

	var ids []uuid.UUID
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("kitchen done set is malformed, treating as empty", "error", err)
		return done
	}
	for _, id := range ids {
		done[id] = true
	}
	return done
}

func (s *KitchenService) saveDone(ctx context.Context, done map[uuid.UUID]bool) {
	ids := make([]uuid.UUID, 0, len(done))
	for id := range done {
		ids = append(ids, id)
	}
	// Stable blob for byte-identical round-trips.
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Warn("failed to encode kitchen done set", "error", err)
		return
	}
	if err := s.store.Set(ctx, repository.KeyKitchenDone, data); err != nil {
		s.logger.Warn("failed to persist kitchen done set", "error", err)
	}
}
