// internal/services/contract_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
)

// ContractService exposes the collection-level metadata set once at
// bootstrap. The row is seeded by the database bootstrap before the API
// starts taking createEdition calls.
type ContractService struct {
	db *gorm.DB
}

func NewContractService(db *gorm.DB) *ContractService {
	return &ContractService{db: db}
}

func (s *ContractService) GetMetadata() (*models.ContractMetadata, error) {
	var meta models.ContractMetadata
	if err := s.db.First(&meta, "key = ?", models.ContractMetadataKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract metadata has not been initialized")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &meta, nil
}

// ContractURI returns the immutable collection metadata locator.
func (s *ContractService) ContractURI() (string, error) {
	meta, err := s.GetMetadata()
	if err != nil {
		return "", err
	}
	return meta.URI, nil
}
