// internal/services/purchase_service.go
package services

import (
	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
)

// PurchaseService orchestrates a purchase: it validates the payment against
// the registry, bumps the sold counter, settles the commission split, mints
// the token, and appends the purchase event — all inside one transaction
// under the sequencer. Either every step lands or none of them do.
type PurchaseService struct {
	db       *gorm.DB
	seq      *Sequencer
	editions *EditionService
	tokens   *TokenService
	accounts *AccountService
	events   *EventService
}

func NewPurchaseService(db *gorm.DB, seq *Sequencer, editions *EditionService, tokens *TokenService, accounts *AccountService, events *EventService) *PurchaseService {
	return &PurchaseService{
		db:       db,
		seq:      seq,
		editions: editions,
		tokens:   tokens,
		accounts: accounts,
		events:   events,
	}
}

// PurchaseResult is the committed outcome of a successful purchase.
type PurchaseResult struct {
	Token          *models.Token `json:"token"`
	EditionID      uint64        `json:"edition_id"`
	NumSold        uint32        `json:"num_sold"`
	ReferrerShare  uint64        `json:"referrer_share"`
	RecipientShare uint64        `json:"recipient_share"`
}

// BuyEdition buys exactly one unit of an edition. The payment must equal the
// edition price exactly; the referrer receives the edition's commission and
// the funding recipient the remainder.
func (s *PurchaseService) BuyEdition(editionID uint64, buyer, referrer string, payment uint64) (*PurchaseResult, error) {
	return s.buyEdition(editionID, buyer, referrer, payment, nil)
}

// buyEdition runs the purchase. A non-nil settle callback runs inside the
// same transaction after the purchase steps land, so gateway bookkeeping
// commits or rolls back together with the mint and the credits.
func (s *PurchaseService) buyEdition(editionID uint64, buyer, referrer string, payment uint64, settle func(tx *gorm.DB, result *PurchaseResult) error) (*PurchaseResult, error) {
	var result *PurchaseResult
	var event *models.LedgerEvent

	err := s.seq.Do(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			edition, err := s.editions.getEditionTx(tx, editionID)
			if err != nil {
				return err
			}

			if payment != edition.Price {
				return &IncorrectPaymentError{EditionID: editionID, Expected: edition.Price, Actual: payment}
			}

			newNumSold, err := s.editions.incrementSoldTx(tx, edition)
			if err != nil {
				return err
			}

			referrerShare, recipientShare := SplitPayment(edition.Price, edition.Commission)

			if err := s.accounts.creditTx(tx, referrer, referrerShare); err != nil {
				return err
			}
			if err := s.accounts.creditTx(tx, edition.FundingRecipient, recipientShare); err != nil {
				return err
			}

			token, err := s.tokens.mintTx(tx, buyer, editionID)
			if err != nil {
				return err
			}

			tokenID := token.ID
			event = &models.LedgerEvent{
				Type:      models.EventEditionPurchased,
				EditionID: editionID,
				TokenID:   &tokenID,
				Buyer:     buyer,
				NumSold:   newNumSold,
				Price:     edition.Price,
			}
			if err := s.events.appendTx(tx, event); err != nil {
				return err
			}

			result = &PurchaseResult{
				Token:          token,
				EditionID:      editionID,
				NumSold:        newNumSold,
				ReferrerShare:  referrerShare,
				RecipientShare: recipientShare,
			}

			if settle != nil {
				return settle(tx, result)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.events.publish(event)
	return result, nil
}
