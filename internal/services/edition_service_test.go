// internal/services/edition_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/utils"
)

func TestCreateEditionAssignsSequentialIDs(t *testing.T) {
	f := newLedgerFixture(t)

	first := f.createEdition(t, 10, priceWei, priceWei)
	second := f.createEdition(t, 5, 1000, 100)

	assert.Equal(t, uint64(0), first.ID)
	assert.Equal(t, uint64(1), second.ID)
	assert.Equal(t, uint32(0), first.NumSold)
	assert.Equal(t, uint32(0), second.NumSold)
}

func TestCreateEditionAppendsEvent(t *testing.T) {
	f := newLedgerFixture(t)

	edition := f.createEdition(t, 10, priceWei, priceWei)

	events, total, err := f.events.ListEvents(EventSearchParams{
		PaginationParams: utils.PaginationParams{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)

	event := events[0]
	assert.Equal(t, models.EventEditionCreated, event.Type)
	assert.Equal(t, edition.ID, event.EditionID)
	assert.Equal(t, edition.Quantity, event.Quantity)
	assert.Equal(t, edition.Price, event.Price)
	assert.Equal(t, recipientAddr, event.FundingRecipient)
	assert.NotEmpty(t, event.Hash)
}

func TestCreateEditionRejectsExcessiveCommission(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.editions.CreateEdition(&CreateEditionRequest{
		Quantity:         10,
		Price:            1000,
		Commission:       1001,
		FundingRecipient: recipientAddr,
		TokenURI:         "https://example.com/metadata.json",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCommission))

	var commissionErr *InvalidCommissionError
	require.True(t, errors.As(err, &commissionErr))
	assert.Equal(t, uint64(1001), commissionErr.Commission)
	assert.Equal(t, uint64(1000), commissionErr.Price)

	// Nothing was registered, so the next creation still gets id 0.
	edition := f.createEdition(t, 1, 1000, 1000)
	assert.Equal(t, uint64(0), edition.ID)
}

func TestCreateEditionAllowsCommissionEqualToPrice(t *testing.T) {
	f := newLedgerFixture(t)

	edition := f.createEdition(t, 10, priceWei, priceWei)
	assert.Equal(t, priceWei, edition.Commission)
}

func TestCreateEditionValidation(t *testing.T) {
	f := newLedgerFixture(t)

	// Zero quantity
	_, err := f.editions.CreateEdition(&CreateEditionRequest{
		Quantity:         0,
		Price:            1000,
		Commission:       0,
		FundingRecipient: recipientAddr,
		TokenURI:         "https://example.com/metadata.json",
	})
	assert.Error(t, err)

	// Malformed recipient address
	_, err = f.editions.CreateEdition(&CreateEditionRequest{
		Quantity:         1,
		Price:            1000,
		Commission:       0,
		FundingRecipient: "not-an-address",
		TokenURI:         "https://example.com/metadata.json",
	})
	assert.Error(t, err)
}

func TestGetEditionUnknown(t *testing.T) {
	f := newLedgerFixture(t)

	_, err := f.editions.GetEdition(42)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEdition))

	var unknownErr *UnknownEditionError
	require.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, uint64(42), unknownErr.EditionID)
}

func TestListEditions(t *testing.T) {
	f := newLedgerFixture(t)

	f.createEdition(t, 10, priceWei, priceWei)
	f.createEdition(t, 5, 1000, 100)
	f.createEdition(t, 3, 2000, 0)

	editions, total, err := f.editions.ListEditions(utils.PaginationParams{
		Page: 1, Limit: 2, Sort: "id", Order: "asc",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, editions, 2)
	assert.Equal(t, uint64(0), editions[0].ID)
	assert.Equal(t, uint64(1), editions[1].ID)
}
