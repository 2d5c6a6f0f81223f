// internal/services/token_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/utils"
)

// TokenService is the ownership ledger: who owns which token, plus delegated
// transfer approvals. Minting is reachable only from the purchase engine;
// everything else here is either a read or an owner-authorized mutation.
type TokenService struct {
	db  *gorm.DB
	seq *Sequencer
}

func NewTokenService(db *gorm.DB, seq *Sequencer) *TokenService {
	return &TokenService{db: db, seq: seq}
}

// mintTx allocates the next global token id and records the new owner.
// Token ids are dense across all editions, so the row count is the next id.
func (s *TokenService) mintTx(tx *gorm.DB, owner string, editionID uint64) (*models.Token, error) {
	var count int64
	if err := tx.Model(&models.Token{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to allocate token id: %w", err)
	}

	token := &models.Token{
		ID:        uint64(count),
		EditionID: editionID,
		Owner:     owner,
		Approved:  "",
	}
	if err := tx.Create(token).Error; err != nil {
		return nil, fmt.Errorf("failed to mint token: %w", err)
	}
	return token, nil
}

func (s *TokenService) getToken(db *gorm.DB, tokenID uint64) (*models.Token, error) {
	var token models.Token
	if err := db.First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NonexistentUnitError{TokenID: tokenID}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &token, nil
}

// GetToken returns the full ownership record for a minted token.
func (s *TokenService) GetToken(tokenID uint64) (*models.Token, error) {
	return s.getToken(s.db, tokenID)
}

// OwnerOf returns the current holder of a minted token.
func (s *TokenService) OwnerOf(tokenID uint64) (string, error) {
	token, err := s.getToken(s.db, tokenID)
	if err != nil {
		return "", err
	}
	return token.Owner, nil
}

// BalanceOf counts the tokens currently owned by an address. The count is
// always recomputed from ownership rows, never cached where it could drift.
func (s *TokenService) BalanceOf(address string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Token{}).Where("owner = ?", address).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return count, nil
}

// TokensOf lists the tokens owned by an address in mint order.
func (s *TokenService) TokensOf(address string, params utils.PaginationParams) ([]models.Token, int64, error) {
	query := s.db.Model(&models.Token{}).Where("owner = ?", address)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tokens: %w", err)
	}

	query = query.Order("id ASC")
	query = utils.ApplyPagination(query, params)

	var tokens []models.Token
	if err := query.Find(&tokens).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch tokens: %w", err)
	}
	return tokens, total, nil
}

// TokenURI returns the owning edition's metadata locator. An unminted id
// reports "not sold yet" — deliberately distinct from OwnerOf's
// nonexistent-token error, matching the collector-facing convention.
func (s *TokenService) TokenURI(tokenID uint64) (string, error) {
	var token models.Token
	if err := s.db.First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", &UnsoldUnitError{TokenID: tokenID}
		}
		return "", fmt.Errorf("database error: %w", err)
	}

	var edition models.Edition
	if err := s.db.First(&edition, "id = ?", token.EditionID).Error; err != nil {
		return "", fmt.Errorf("database error: %w", err)
	}
	return edition.TokenURI, nil
}

// Approve sets the single transfer delegate for a token. Only the current
// owner may approve; an empty delegate clears the approval.
func (s *TokenService) Approve(caller string, tokenID uint64, delegate string) error {
	return s.seq.Do(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			token, err := s.getToken(tx, tokenID)
			if err != nil {
				return err
			}
			if token.Owner != caller {
				return &UnauthorizedError{TokenID: tokenID, Caller: caller}
			}

			if err := tx.Model(&models.Token{}).Where("id = ?", tokenID).
				UpdateColumn("approved", delegate).Error; err != nil {
				return fmt.Errorf("failed to set approval: %w", err)
			}
			return nil
		})
	})
}

// GetApproved returns the current transfer delegate, empty when none is set.
func (s *TokenService) GetApproved(tokenID uint64) (string, error) {
	token, err := s.getToken(s.db, tokenID)
	if err != nil {
		return "", err
	}
	return token.Approved, nil
}

// TransferFrom reassigns ownership. The caller must be the stated source or
// the approved delegate, and the stated source must actually own the token.
// Any ownership change clears the approval.
func (s *TokenService) TransferFrom(caller, from, to string, tokenID uint64) error {
	return s.seq.Do(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			token, err := s.getToken(tx, tokenID)
			if err != nil {
				return err
			}

			if caller != from && caller != token.Approved {
				return &UnauthorizedError{TokenID: tokenID, Caller: caller}
			}
			if token.Owner != from {
				return &OwnerMismatchError{TokenID: tokenID, Claimed: from, Actual: token.Owner}
			}

			updates := map[string]interface{}{
				"owner":    to,
				"approved": "",
			}
			if err := tx.Model(&models.Token{}).Where("id = ?", tokenID).
				UpdateColumns(updates).Error; err != nil {
				return fmt.Errorf("failed to transfer token: %w", err)
			}
			return nil
		})
	})
}
