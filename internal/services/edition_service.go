// internal/services/edition_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/utils"
)

// EditionService is the edition registry: it stores immutable edition
// definitions and owns the sold counter. The counter only moves through
// incrementSoldTx, which the purchase service calls inside its transaction.
type EditionService struct {
	db     *gorm.DB
	seq    *Sequencer
	events *EventService
}

type CreateEditionRequest struct {
	Quantity         uint32 `json:"quantity" validate:"required,min=1"`
	Price            uint64 `json:"price"`
	Commission       uint64 `json:"commission"`
	FundingRecipient string `json:"funding_recipient" validate:"required,address"`
	TokenURI         string `json:"token_uri" validate:"required,max=2048"`
}

func NewEditionService(db *gorm.DB, seq *Sequencer, events *EventService) *EditionService {
	return &EditionService{
		db:     db,
		seq:    seq,
		events: events,
	}
}

// CreateEdition validates and stores a new edition with the next sequential
// id and a zero sold counter, and appends the creation event in the same
// transaction.
func (s *EditionService) CreateEdition(req *CreateEditionRequest) (*models.Edition, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Commission > req.Price {
		return nil, &InvalidCommissionError{Commission: req.Commission, Price: req.Price}
	}

	var edition *models.Edition
	var event *models.LedgerEvent

	err := s.seq.Do(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			// Edition ids are dense, so the row count is the next id.
			var count int64
			if err := tx.Model(&models.Edition{}).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to allocate edition id: %w", err)
			}

			edition = &models.Edition{
				ID:               uint64(count),
				Quantity:         req.Quantity,
				Price:            req.Price,
				Commission:       req.Commission,
				FundingRecipient: req.FundingRecipient,
				TokenURI:         req.TokenURI,
				NumSold:          0,
			}

			if err := tx.Create(edition).Error; err != nil {
				return fmt.Errorf("failed to create edition: %w", err)
			}

			event = &models.LedgerEvent{
				Type:             models.EventEditionCreated,
				EditionID:        edition.ID,
				Quantity:         edition.Quantity,
				Price:            edition.Price,
				FundingRecipient: edition.FundingRecipient,
			}
			return s.events.appendTx(tx, event)
		})
	})
	if err != nil {
		return nil, err
	}

	s.events.publish(event)
	return edition, nil
}

// GetEdition returns the stored edition, distinguishing a missing row from a
// present-but-zeroed one.
func (s *EditionService) GetEdition(editionID uint64) (*models.Edition, error) {
	var edition models.Edition
	if err := s.db.First(&edition, "id = ?", editionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownEditionError{EditionID: editionID}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &edition, nil
}

// ListEditions returns editions for browsing, newest first.
func (s *EditionService) ListEditions(params utils.PaginationParams) ([]models.Edition, int64, error) {
	query := s.db.Model(&models.Edition{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count editions: %w", err)
	}

	allowedSortFields := []string{"id", "created_at", "price", "num_sold"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var editions []models.Edition
	if err := query.Find(&editions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch editions: %w", err)
	}

	return editions, total, nil
}

// getEditionTx is the in-transaction lookup used by the purchase path.
func (s *EditionService) getEditionTx(tx *gorm.DB, editionID uint64) (*models.Edition, error) {
	var edition models.Edition
	if err := tx.First(&edition, "id = ?", editionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &UnknownEditionError{EditionID: editionID}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &edition, nil
}

// incrementSoldTx bumps the sold counter and returns the new count. This is
// the sole supply-bound enforcement point; it is unexported so only the
// purchase engine in this package can reach it. The caller holds the
// sequencer, so the read-check-write is not racy.
func (s *EditionService) incrementSoldTx(tx *gorm.DB, edition *models.Edition) (uint32, error) {
	if edition.NumSold >= edition.Quantity {
		return edition.NumSold, &SupplyExhaustedError{EditionID: edition.ID, Quantity: edition.Quantity}
	}

	newNumSold := edition.NumSold + 1
	if err := tx.Model(&models.Edition{}).Where("id = ?", edition.ID).
		UpdateColumn("num_sold", newNumSold).Error; err != nil {
		return edition.NumSold, fmt.Errorf("failed to update sold counter: %w", err)
	}
	edition.NumSold = newNumSold

	return newNumSold, nil
}
