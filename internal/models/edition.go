// internal/models/edition.go
package models

import "time"

// Edition is a fixed-price, quantity-capped batch of otherwise-identical
// sellable tokens. Ids are dense and sequential starting at 0; everything but
// NumSold is immutable after creation, and NumSold only ever moves through the
// purchase path.
type Edition struct {
	ID               uint64    `json:"edition_id" gorm:"primaryKey;autoIncrement:false"`
	Quantity         uint32    `json:"quantity" gorm:"not null"`
	Price            uint64    `json:"price" gorm:"not null"`
	Commission       uint64    `json:"commission" gorm:"not null"`
	FundingRecipient string    `json:"funding_recipient" gorm:"size:42;not null;index"`
	TokenURI         string    `json:"token_uri" gorm:"size:2048;not null"`
	NumSold          uint32    `json:"num_sold" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// SoldOut reports whether every unit of the edition has been purchased.
func (e *Edition) SoldOut() bool {
	return e.NumSold >= e.Quantity
}
