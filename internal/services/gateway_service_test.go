// internal/services/gateway_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/models"
)

func newGatewayFixture(t *testing.T) (*ledgerFixture, *GatewayService) {
	t.Helper()

	f := newLedgerFixture(t)
	cfg := &config.Config{}
	cfg.Payment.Currency = "usd"
	cfg.Payment.BaseUnitDivisor = 1_000_000_000_000

	return f, NewGatewayService(f.db, cfg, f.editions, f.purchases)
}

func TestFiatAmount(t *testing.T) {
	cases := []struct {
		name    string
		price   uint64
		divisor uint64
		want    int64
	}{
		{"exact multiple", priceWei, 1_000_000_000_000, 150000},
		{"rounds up, never down", priceWei + 1, 1_000_000_000_000, 150001},
		{"one base unit", 1, 1_000_000_000_000, 1},
		{"zero divisor passes through", priceWei, 0, int64(priceWei)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, fiatAmount(tc.price, tc.divisor))
		})
	}
}

func TestSettleCheckoutMintsExactlyOnce(t *testing.T) {
	f, gw := newGatewayFixture(t)
	edition := f.createEdition(t, 10, priceWei, priceWei/2)

	require.NoError(t, gw.recordCheckout("pi_once", edition, buyerAddr, referrerAddr))

	result, err := gw.settleCheckout("pi_once", buyerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Token.ID)
	assert.Equal(t, buyerAddr, result.Token.Owner)

	// Replaying the same intent settles nothing.
	_, err = gw.settleCheckout("pi_once", buyerAddr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCheckoutConsumed))

	var consumed *CheckoutConsumedError
	require.True(t, errors.As(err, &consumed))
	assert.Equal(t, "pi_once", consumed.PaymentIntentID)

	var tokenCount int64
	require.NoError(t, f.db.Model(&models.Token{}).Count(&tokenCount).Error)
	assert.Equal(t, int64(1), tokenCount)

	balance, err := f.accounts.GetBalance(referrerAddr)
	require.NoError(t, err)
	assert.Equal(t, priceWei/2, balance)

	var checkout models.Checkout
	require.NoError(t, f.db.First(&checkout, "payment_intent_id = ?", "pi_once").Error)
	assert.Equal(t, models.CheckoutStatusSucceeded, checkout.Status)
	require.NotNil(t, checkout.TokenID)
	assert.Equal(t, uint64(0), *checkout.TokenID)
}

func TestSettleCheckoutUnknownIntent(t *testing.T) {
	_, gw := newGatewayFixture(t)

	_, err := gw.settleCheckout("pi_missing", buyerAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no checkout recorded")
}

func TestSettleCheckoutBuyerMismatch(t *testing.T) {
	f, gw := newGatewayFixture(t)
	edition := f.createEdition(t, 1, priceWei, 0)

	require.NoError(t, gw.recordCheckout("pi_owned", edition, buyerAddr, referrerAddr))

	_, err := gw.settleCheckout("pi_owned", otherAddr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), buyerAddr)

	var tokenCount int64
	require.NoError(t, f.db.Model(&models.Token{}).Count(&tokenCount).Error)
	assert.Equal(t, int64(0), tokenCount)
}

// A failed purchase must leave the checkout pending so confirmation can be
// retried once the recipient thaws.
func TestSettleCheckoutRollsBackWithPurchase(t *testing.T) {
	f, gw := newGatewayFixture(t)
	edition := f.createEdition(t, 1, priceWei, 0)

	require.NoError(t, f.accounts.SetFrozen(recipientAddr, true))
	require.NoError(t, gw.recordCheckout("pi_retry", edition, buyerAddr, referrerAddr))

	_, err := gw.settleCheckout("pi_retry", buyerAddr)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFrozenAccount))

	var checkout models.Checkout
	require.NoError(t, f.db.First(&checkout, "payment_intent_id = ?", "pi_retry").Error)
	assert.Equal(t, models.CheckoutStatusPending, checkout.Status)
	assert.Nil(t, checkout.TokenID)

	require.NoError(t, f.accounts.SetFrozen(recipientAddr, false))

	result, err := gw.settleCheckout("pi_retry", buyerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Token.ID)
}
