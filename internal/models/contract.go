// internal/models/contract.go
package models

import "time"

// ContractMetadataKey is the fixed key of the singleton ContractMetadata row.
const ContractMetadataKey = "contract"

// ContractMetadata holds the collection-level metadata locator supplied once
// at bootstrap, before any edition exists. The row is never updated.
type ContractMetadata struct {
	Key       string    `json:"-" gorm:"primaryKey;size:16"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Symbol    string    `json:"symbol" gorm:"size:20;not null"`
	URI       string    `json:"contract_uri" gorm:"size:2048;not null"`
	CreatedAt time.Time `json:"initialized_at"`
}
