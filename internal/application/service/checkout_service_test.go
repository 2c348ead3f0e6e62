package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tofrito/till-api/internal/domain/enum"
	"github.com/tofrito/till-api/pkg/apperror"
)

const testPasscode = "15704"

func newTestCheckout(t *testing.T) (*CheckoutService, *CartService, *LedgerService) {
	t.Helper()

	cart := NewCartService(newTestCatalog())
	led := newTestLedger(newMemStore())
	auth := newTestAuth(testPasscode, 600, 100)
	co := NewCheckoutService(cart, led, auth, nil, testLogger())
	return co, cart, led
}

func TestCheckout_StartsSelectingMethod(t *testing.T) {
	co, _, _ := newTestCheckout(t)

	v := co.View()
	assert.Equal(t, enum.StateSelectingMethod, v.State)
	assert.False(t, v.CanConfirm)
}

func TestCheckout_CardMethodIsImmediatelyReady(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)

	co.SelectMethod(enum.PaymentCredit)

	v := co.View()
	assert.Equal(t, enum.StateReady, v.State)
	assert.True(t, v.CanConfirm)
}

func TestCheckout_PixNeedsAcknowledgement(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)

	co.SelectMethod(enum.PaymentPix)
	assert.Equal(t, enum.StateAwaitingPixAck, co.View().State)
	assert.False(t, co.View().CanConfirm)

	require.NoError(t, co.AckPix())
	assert.Equal(t, enum.StateReady, co.View().State)

	// Acknowledging outside the PIX sub-flow is rejected.
	assert.ErrorIs(t, co.AckPix(), apperror.ErrCheckoutNotReady)
}

func TestCheckout_CashKeypadTracksTenderAndState(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger") // 1000
	require.NoError(t, err)

	co.SelectMethod(enum.PaymentCash)
	assert.Equal(t, enum.StateEnteringCashTender, co.View().State)

	require.NoError(t, co.TenderKey("5"))
	v := co.View()
	assert.Equal(t, enum.StateEnteringCashTender, v.State)
	assert.Equal(t, int64(500), v.AmountTendered)

	require.NoError(t, co.TenderKey("backspace"))
	require.NoError(t, co.TenderKey("1"))
	require.NoError(t, co.TenderKey("5"))
	require.NoError(t, co.TenderKey("."))
	require.NoError(t, co.TenderKey("5"))
	require.NoError(t, co.TenderKey("0"))

	v = co.View()
	assert.Equal(t, "15.50", v.TenderRaw)
	assert.Equal(t, int64(1550), v.AmountTendered)
	assert.Equal(t, enum.StateReady, v.State)
	assert.Equal(t, int64(550), v.ChangeDue)

	// A second decimal separator is ignored.
	require.NoError(t, co.TenderKey(","))
	assert.Equal(t, "15.50", co.View().TenderRaw)

	require.NoError(t, co.TenderKey("clear"))
	v = co.View()
	assert.Equal(t, enum.StateEnteringCashTender, v.State)
	assert.Equal(t, int64(0), v.AmountTendered)

	assert.Error(t, co.TenderKey("x"))
}

func TestCheckout_QuickAddAccumulates(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger") // 1000
	require.NoError(t, err)

	co.SelectMethod(enum.PaymentCash)
	require.NoError(t, co.TenderQuickAdd(500))
	require.NoError(t, co.TenderQuickAdd(1000))

	v := co.View()
	assert.Equal(t, int64(1500), v.AmountTendered)
	assert.Equal(t, enum.StateReady, v.State)
	assert.Equal(t, int64(500), v.ChangeDue)

	assert.Error(t, co.TenderQuickAdd(0))
}

func TestCheckout_TenderKeysRequireCashSubFlow(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)

	assert.ErrorIs(t, co.TenderKey("1"), apperror.ErrCheckoutNotReady)

	co.SelectMethod(enum.PaymentCredit)
	assert.ErrorIs(t, co.TenderQuickAdd(500), apperror.ErrCheckoutNotReady)
}

func TestCheckoutConfirm_CashProducesChange(t *testing.T) {
	ctx := context.Background()
	co, cart, led := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)
	cart.UpdateQuantity("burger", 1) // 2 x 1000

	co.SelectMethod(enum.PaymentCash)
	require.NoError(t, co.TenderQuickAdd(5000))

	res, err := co.Confirm(ctx)
	require.NoError(t, err)

	assert.Equal(t, "1", res.TicketNumber)
	assert.Equal(t, int64(2000), res.Total)
	require.NotNil(t, res.ChangeDue)
	assert.Equal(t, int64(3000), *res.ChangeDue)

	// Checkout and cart reset for the next customer.
	assert.True(t, cart.IsEmpty())
	v := co.View()
	assert.Equal(t, enum.StateSelectingMethod, v.State)
	assert.False(t, v.DiscountUnlocked)
	assert.Empty(t, v.TenderRaw)

	assert.Len(t, led.Transactions(), 1)
}

func TestCheckoutConfirm_RejectsWithoutMethodOrItems(t *testing.T) {
	ctx := context.Background()
	co, cart, _ := newTestCheckout(t)

	_, err := co.Confirm(ctx)
	assert.ErrorIs(t, err, apperror.ErrEmptyCart)

	_, err = cart.Add("soda")
	require.NoError(t, err)
	_, err = co.Confirm(ctx)
	assert.ErrorIs(t, err, apperror.ErrNoPaymentMethod)

	co.SelectMethod(enum.PaymentPix)
	_, err = co.Confirm(ctx)
	assert.ErrorIs(t, err, apperror.ErrCheckoutNotReady)
}

func TestCheckoutConfirm_CartGrowthInvalidatesCashTender(t *testing.T) {
	ctx := context.Background()
	co, cart, led := newTestCheckout(t)
	_, err := cart.Add("burger") // 1000
	require.NoError(t, err)

	co.SelectMethod(enum.PaymentCash)
	require.NoError(t, co.TenderQuickAdd(1000))
	assert.Equal(t, enum.StateReady, co.View().State)

	// More items land in the cart after the tender covered the total.
	_, err = cart.Add("fries") // total now 1500
	require.NoError(t, err)

	_, err = co.Confirm(ctx)
	assert.ErrorIs(t, err, apperror.ErrCheckoutNotReady)
	assert.Equal(t, enum.StateEnteringCashTender, co.View().State)
	assert.Empty(t, led.Transactions())

	// Topping up recovers the flow.
	require.NoError(t, co.TenderQuickAdd(500))
	res, err := co.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), res.Total)
}

func TestCheckoutDiscount_GateRequiresPasscode(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)

	assert.ErrorIs(t, co.StageDiscount("5.00"), apperror.ErrForbidden)
	assert.ErrorIs(t, co.UnlockDiscount("0000"), apperror.ErrInvalidPasscode)
	assert.ErrorIs(t, co.StageDiscount("5.00"), apperror.ErrForbidden)

	require.NoError(t, co.UnlockDiscount(testPasscode))
	require.NoError(t, co.StageDiscount("5.00"))

	v := co.View()
	assert.True(t, v.DiscountUnlocked)
	assert.Equal(t, int64(500), v.Discount)
	assert.Equal(t, int64(500), v.Total)
}

func TestCheckoutDiscount_LockClearsStagedValue(t *testing.T) {
	co, cart, _ := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)

	require.NoError(t, co.UnlockDiscount(testPasscode))
	require.NoError(t, co.StageDiscount("3,50"))
	assert.Equal(t, int64(350), co.View().Discount)

	co.LockDiscount()
	v := co.View()
	assert.False(t, v.DiscountUnlocked)
	assert.Equal(t, int64(0), v.Discount)
	assert.Equal(t, int64(1000), v.Total)
}

func TestCheckoutConfirm_AppliesUnlockedDiscount(t *testing.T) {
	ctx := context.Background()
	co, cart, led := newTestCheckout(t)
	_, err := cart.Add("burger")
	require.NoError(t, err)
	cart.UpdateQuantity("burger", 1) // 2000

	require.NoError(t, co.UnlockDiscount(testPasscode))
	require.NoError(t, co.StageDiscount("5.00"))
	co.SelectMethod(enum.PaymentDebit)

	res, err := co.Confirm(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), res.Total)

	txs := led.Transactions()
	require.Len(t, txs, 1)
	assert.Equal(t, int64(500), txs[0].Discount)
}
