// internal/services/service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/glasshouse/editions-backend/internal/models"
)

// Test addresses. Any 0x-prefixed 40-hex string is a valid participant.
const (
	sellerAddr    = "0x00000000000000000000000000000000000000a1"
	buyerAddr     = "0x00000000000000000000000000000000000000b2"
	referrerAddr  = "0x00000000000000000000000000000000000000c3"
	recipientAddr = "0x00000000000000000000000000000000000000d4"
	otherAddr     = "0x00000000000000000000000000000000000000e5"
)

// 0.15 ETH in wei, the reference sale price.
const priceWei = uint64(150000000000000000)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache DSN per test so parallel tests never collide.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Edition{},
		&models.Token{},
		&models.Account{},
		&models.LedgerEvent{},
		&models.Checkout{},
	))

	return db
}

// ledgerFixture bundles the full service graph against one test database.
type ledgerFixture struct {
	db        *gorm.DB
	seq       *Sequencer
	events    *EventService
	accounts  *AccountService
	editions  *EditionService
	tokens    *TokenService
	purchases *PurchaseService
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()

	db := setupTestDB(t)
	seq := NewSequencer()
	events := NewEventService(db)
	accounts := NewAccountService(db)
	editions := NewEditionService(db, seq, events)
	tokens := NewTokenService(db, seq)
	purchases := NewPurchaseService(db, seq, editions, tokens, accounts, events)

	return &ledgerFixture{
		db:        db,
		seq:       seq,
		events:    events,
		accounts:  accounts,
		editions:  editions,
		tokens:    tokens,
		purchases: purchases,
	}
}

func (f *ledgerFixture) createEdition(t *testing.T, quantity uint32, price, commission uint64) *models.Edition {
	t.Helper()

	edition, err := f.editions.CreateEdition(&CreateEditionRequest{
		Quantity:         quantity,
		Price:            price,
		Commission:       commission,
		FundingRecipient: recipientAddr,
		TokenURI:         "https://example.com/metadata.json",
	})
	require.NoError(t, err)
	return edition
}
