// internal/services/account_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
)

// AccountService manages settlement balances. The purchase engine is the only
// writer for credits; freezing is an operational control used to model an
// address that rejects incoming funds.
type AccountService struct {
	db *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{db: db}
}

// creditTx adds amount to the address's balance inside the caller's
// transaction, creating the account row on first credit. A frozen account
// rejects the credit, which rolls the whole purchase back.
func (s *AccountService) creditTx(tx *gorm.DB, address string, amount uint64) error {
	var account models.Account
	err := tx.First(&account, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.Account{Address: address, Balance: amount}
		if err := tx.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to create account %s: %w", address, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if account.Frozen {
		return &FrozenAccountError{Address: address}
	}

	if err := tx.Model(&models.Account{}).Where("address = ?", address).
		UpdateColumn("balance", gorm.Expr("balance + ?", amount)).Error; err != nil {
		return fmt.Errorf("failed to credit account %s: %w", address, err)
	}
	return nil
}

// GetBalance returns the settlement balance for an address. An address with
// no account row has a zero balance; that is a legitimate zero, not an error.
func (s *AccountService) GetBalance(address string) (uint64, error) {
	var account models.Account
	if err := s.db.First(&account, "address = ?", address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("database error: %w", err)
	}
	return account.Balance, nil
}

// SetFrozen marks an address as rejecting (or accepting) incoming funds,
// creating the account row if needed.
func (s *AccountService) SetFrozen(address string, frozen bool) error {
	var account models.Account
	err := s.db.First(&account, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		account = models.Account{Address: address, Frozen: frozen}
		if err := s.db.Create(&account).Error; err != nil {
			return fmt.Errorf("failed to create account %s: %w", address, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&models.Account{}).Where("address = ?", address).
		UpdateColumn("frozen", frozen).Error; err != nil {
		return fmt.Errorf("failed to update account %s: %w", address, err)
	}
	return nil
}
