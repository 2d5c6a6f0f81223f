// internal/models/token.go
package models

import "time"

// Token is one individually owned unit minted from an edition at purchase
// time. Token ids are globally dense and strictly increasing in mint order
// across all editions; a row exists only once the unit has been sold, so a
// missing row means "not sold yet", never "sold with zero values".
type Token struct {
	ID        uint64    `json:"token_id" gorm:"primaryKey;autoIncrement:false"`
	EditionID uint64    `json:"edition_id" gorm:"not null;index"`
	Owner     string    `json:"owner" gorm:"size:42;not null;index"`
	Approved  string    `json:"approved,omitempty" gorm:"size:42;not null;default:''"`
	CreatedAt time.Time `json:"minted_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Edition Edition `json:"-" gorm:"foreignKey:EditionID"`
}
