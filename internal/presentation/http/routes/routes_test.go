package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tofrito/till-api/internal/application/service"
	"github.com/tofrito/till-api/internal/config"
	"github.com/tofrito/till-api/internal/infrastructure/catalog"
	infrarepo "github.com/tofrito/till-api/internal/infrastructure/repository"
	"github.com/tofrito/till-api/internal/presentation/http/handler"
	"github.com/tofrito/till-api/pkg/printer"
	"github.com/tofrito/till-api/pkg/utils"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := infrarepo.NewMemoryKV()

	menu, err := catalog.Load("")
	require.NoError(t, err)

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	cfg := &config.Config{}
	cfg.App.Name = "till-api-test"
	cfg.Manager = config.ManagerConfig{
		Passcode:       "15704",
		AttemptsPerMin: 600,
		AttemptsBurst:  100,
	}

	authService, err := service.NewAuthService(&cfg.Manager, jwtManager, logger)
	require.NoError(t, err)

	ledgerService := service.NewLedgerService(store, logger)
	cartService := service.NewCartService(menu)
	printerService := service.NewPrinterService(printer.NewNullPrinter(), "none", 32, "TO FRITO!")
	checkoutService := service.NewCheckoutService(cartService, ledgerService, authService, nil, logger)
	kitchenService := service.NewKitchenService(ledgerService, store, logger)
	reportService := service.NewReportService(ledgerService)

	handlers := &Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Catalog:  handler.NewCatalogHandler(menu),
		Cart:     handler.NewCartHandler(cartService),
		Checkout: handler.NewCheckoutHandler(checkoutService),
		Kitchen:  handler.NewKitchenHandler(kitchenService),
		Report:   handler.NewReportHandler(reportService, ledgerService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	return Setup(handlers, &Deps{JWTManager: jwtManager, Cfg: cfg, Store: store})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

func TestCatalogListIsPublic(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/catalog", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "X-Tudo Monstro")
}

func TestFullSaleFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Stage the cart.
	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		gin.H{"product_id": "1"}, nil) // 3290
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPatch, "/api/v1/cart/items/1",
		gin.H{"delta": 1}, nil) // 2x 3290 = 6580
	require.Equal(t, http.StatusOK, w.Code)

	// Cash payment with change.
	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout/method",
		gin.H{"method": "cash"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout/tender/quick-add",
		gin.H{"amount": 10000}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var confirmed struct {
		Data struct {
			TicketNumber string `json:"ticket_number"`
			Total        int64  `json:"total"`
			ChangeDue    *int64 `json:"change_due"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &confirmed))
	assert.Equal(t, "1", confirmed.Data.TicketNumber)
	assert.Equal(t, int64(6580), confirmed.Data.Total)
	require.NotNil(t, confirmed.Data.ChangeDue)
	assert.Equal(t, int64(3420), *confirmed.Data.ChangeDue)

	// The order shows up in the kitchen queue.
	w = doJSON(t, router, http.MethodGet, "/api/v1/kitchen/queue", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"1"`)
}

func TestConfirmReplaysWithIdempotencyKey(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		gin.H{"product_id": "5"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout/method",
		gin.H{"method": "credit"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	headers := map[string]string{"Idempotency-Key": "tap-123"}
	first := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, headers)
	require.Equal(t, http.StatusCreated, first.Code)

	// The double tap replays the stored response instead of selling an
	// empty cart.
	second := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, headers)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}

func TestConfirmFailureIsNotCachedUnderIdempotencyKey(t *testing.T) {
	router := newTestRouter(t)

	// A confirm that fails on an empty cart must not pin its 409 to
	// the tap id; fixing the cart and retrying the same key completes
	// the sale.
	headers := map[string]string{"Idempotency-Key": "tap-999"}
	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, headers)
	require.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/cart/items",
		gin.H{"product_id": "5"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodPost, "/api/v1/checkout/method",
		gin.H{"method": "credit"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	retry := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, headers)
	assert.Equal(t, http.StatusCreated, retry.Code)
	assert.Empty(t, retry.Header().Get("X-Idempotency-Replayed"))

	// The successful response is what gets cached for replay.
	replayed := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, headers)
	assert.Equal(t, http.StatusCreated, replayed.Code)
	assert.Equal(t, "true", replayed.Header().Get("X-Idempotency-Replayed"))
	assert.JSONEq(t, retry.Body.String(), replayed.Body.String())
}

func TestManagerEndpointsRequireSession(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/reports/summary", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/manager",
		gin.H{"passcode": "00000"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/manager",
		gin.H{"passcode": "15704"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var login struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Data.Token)

	headers := map[string]string{"Authorization": "Bearer " + login.Data.Token}
	w = doJSON(t, router, http.MethodGet, "/api/v1/reports/summary", nil, headers)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfirmWithEmptyCartConflicts(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/checkout/confirm", gin.H{}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}
