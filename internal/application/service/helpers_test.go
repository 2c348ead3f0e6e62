package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/tofrito/till-api/internal/config"
	"github.com/tofrito/till-api/internal/domain/entity"
	"github.com/tofrito/till-api/internal/domain/repository"
	infrarepo "github.com/tofrito/till-api/internal/infrastructure/repository"
	"github.com/tofrito/till-api/pkg/utils"
)

var testMenu = []entity.Product{
	{ID: "burger", Name: "X-Burger", Price: 1000, Category: "Lanches"},
	{ID: "fries", Name: "Batata Frita", Price: 500, Category: "Porções"},
	{ID: "soda", Name: "Refrigerante Lata", Price: 300, Category: "Bebidas"},
}

// staticCatalog is a fixed in-memory menu for tests.
type staticCatalog struct {
	products []entity.Product
}

func (c *staticCatalog) List() []entity.Product {
	return c.products
}

func (c *staticCatalog) Get(id string) (*entity.Product, bool) {
	for i := range c.products {
		if c.products[i].ID == id {
			p := c.products[i]
			return &p, true
		}
	}
	return nil, false
}

func newTestCatalog() repository.ProductCatalog {
	return &staticCatalog{products: testMenu}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLedger(store repository.KVStore) *LedgerService {
	return NewLedgerService(store, testLogger())
}

func newTestAuth(passcode string, perMin float64, burst int) *AuthService {
	cfg := &config.ManagerConfig{
		Passcode:       passcode,
		AttemptsPerMin: perMin,
		AttemptsBurst:  burst,
	}
	auth, err := NewAuthService(cfg, utils.NewJWTManager("test-secret", time.Hour), testLogger())
	if err != nil {
		panic(err)
	}
	return auth
}

func newMemStore() repository.KVStore {
	return infrarepo.NewMemoryKV()
}

// fixedClock hands out timestamps that advance one minute per call, so
// confirmed transactions get distinct, ordered creation times.
func fixedClock(start time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		t := start.Add(time.Duration(n) * time.Minute)
		n++
		return t
	}
}

func lineFor(id string, qty int) entity.CartLine {
	for _, p := range testMenu {
		if p.ID == id {
			return entity.CartLine{Product: p, Quantity: qty}
		}
	}
	panic("unknown test product " + id)
}

// cartLines builds lines from alternating product id and quantity
// arguments, e.g. cartLines("burger", 2, "fries", 1).
func cartLines(args ...any) []entity.CartLine {
	if len(args)%2 != 0 {
		panic("cartLines wants id/quantity pairs")
	}
	var out []entity.CartLine
	for i := 0; i < len(args); i += 2 {
		out = append(out, lineFor(args[i].(string), args[i+1].(int)))
	}
	return out
}
