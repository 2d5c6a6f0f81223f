// internal/services/purchase_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/utils"
)

func TestBuyEditionMintsFirstTokenAtZero(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 10, priceWei, priceWei)

	result, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, priceWei)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), result.Token.ID)
	assert.Equal(t, buyerAddr, result.Token.Owner)
	assert.Equal(t, uint32(1), result.NumSold)

	owner, err := f.tokens.OwnerOf(0)
	require.NoError(t, err)
	assert.Equal(t, buyerAddr, owner)
}

// The reference scenario: ten units at 0.15 ETH each with the full price as
// commission. The referrer takes everything, the recipient nothing, token ids
// run 0 through 9, and the eleventh purchase dies sold-out.
func TestBuyEditionFullCommissionScenario(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 10, priceWei, priceWei)

	for i := 0; i < 10; i++ {
		result, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, priceWei)
		require.NoError(t, err)
		assert.Equal(t, uint64(i), result.Token.ID)
		assert.Equal(t, uint32(i+1), result.NumSold)
		assert.Equal(t, priceWei, result.ReferrerShare)
		assert.Equal(t, uint64(0), result.RecipientShare)
	}

	referrerBalance, err := f.accounts.GetBalance(referrerAddr)
	require.NoError(t, err)
	assert.Equal(t, 10*priceWei, referrerBalance)

	recipientBalance, err := f.accounts.GetBalance(recipientAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), recipientBalance)

	// Eleventh purchase fails and moves nothing.
	_, err = f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, priceWei)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSupplyExhausted))

	reloaded, err := f.editions.GetEdition(edition.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(10), reloaded.NumSold)

	balance, err := f.tokens.BalanceOf(buyerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(10), balance)
}

func TestBuyEditionSplitsCommission(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 5, 1000, 300)

	result, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(300), result.ReferrerShare)
	assert.Equal(t, uint64(700), result.RecipientShare)

	referrerBalance, _ := f.accounts.GetBalance(referrerAddr)
	recipientBalance, _ := f.accounts.GetBalance(recipientAddr)
	assert.Equal(t, uint64(300), referrerBalance)
	assert.Equal(t, uint64(700), recipientBalance)

	// Payment conservation across both accounts.
	assert.Equal(t, edition.Price, referrerBalance+recipientBalance)
}

func TestBuyEditionRejectsWrongPayment(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 10, priceWei, priceWei)

	for _, payment := range []uint64{0, priceWei - 1, priceWei + 1} {
		_, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, payment)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncorrectPayment))

		var paymentErr *IncorrectPaymentError
		require.True(t, errors.As(err, &paymentErr))
		assert.Equal(t, priceWei, paymentErr.Expected)
		assert.Equal(t, payment, paymentErr.Actual)
	}

	reloaded, err := f.editions.GetEdition(edition.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), reloaded.NumSold)
}

func TestBuyEditionUnknownEdition(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.purchases.BuyEdition(7, buyerAddr, referrerAddr, priceWei)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEdition))
}

// A recipient that rejects funds aborts the entire purchase: no counter
// movement, no token, no credits, no event.
func TestBuyEditionFrozenRecipientRollsBack(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 5, 1000, 300)

	require.NoError(t, f.accounts.SetFrozen(recipientAddr, true))

	_, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, 1000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFrozenAccount))

	reloaded, err := f.editions.GetEdition(edition.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), reloaded.NumSold)

	referrerBalance, _ := f.accounts.GetBalance(referrerAddr)
	assert.Equal(t, uint64(0), referrerBalance)

	balance, err := f.tokens.BalanceOf(buyerAddr)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	_, total, err := f.events.ListEvents(EventSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total) // only the creation event

	// Thawing the recipient lets the purchase through.
	require.NoError(t, f.accounts.SetFrozen(recipientAddr, false))
	result, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), result.Token.ID)
}

// Token ids stay globally dense when purchases interleave across editions.
func TestBuyEditionTokenIDsDenseAcrossEditions(t *testing.T) {
	f := newLedgerFixture(t)
	first := f.createEdition(t, 5, 1000, 100)
	second := f.createEdition(t, 5, 2000, 200)

	r1, err := f.purchases.BuyEdition(first.ID, buyerAddr, referrerAddr, 1000)
	require.NoError(t, err)
	r2, err := f.purchases.BuyEdition(second.ID, buyerAddr, referrerAddr, 2000)
	require.NoError(t, err)
	r3, err := f.purchases.BuyEdition(first.ID, otherAddr, referrerAddr, 1000)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), r1.Token.ID)
	assert.Equal(t, uint64(1), r2.Token.ID)
	assert.Equal(t, uint64(2), r3.Token.ID)

	assert.Equal(t, first.ID, r1.Token.EditionID)
	assert.Equal(t, second.ID, r2.Token.EditionID)
	assert.Equal(t, first.ID, r3.Token.EditionID)
}

func TestBuyEditionAppendsPurchaseEvent(t *testing.T) {
	f := newLedgerFixture(t)
	edition := f.createEdition(t, 10, priceWei, priceWei)

	result, err := f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, priceWei)
	require.NoError(t, err)

	purchased := models.EventEditionPurchased
	events, total, err := f.events.ListEvents(EventSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10},
		Type:             &purchased,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	event := events[0]
	assert.Equal(t, edition.ID, event.EditionID)
	require.NotNil(t, event.TokenID)
	assert.Equal(t, result.Token.ID, *event.TokenID)
	assert.Equal(t, buyerAddr, event.Buyer)
	assert.Equal(t, uint32(1), event.NumSold)
	assert.Equal(t, priceWei, event.Price)
}

// Buying the same referrer as recipient still conserves the payment.
func TestBuyEditionReferrerIsRecipient(t *testing.T) {
	f := newLedgerFixture(t)

	edition, err := f.editions.CreateEdition(&CreateEditionRequest{
		Quantity:         2,
		Price:            1000,
		Commission:       300,
		FundingRecipient: referrerAddr,
		TokenURI:         "https://example.com/metadata.json",
	})
	require.NoError(t, err)

	_, err = f.purchases.BuyEdition(edition.ID, buyerAddr, referrerAddr, 1000)
	require.NoError(t, err)

	balance, err := f.accounts.GetBalance(referrerAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), balance)
}
