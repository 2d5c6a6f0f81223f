// internal/models/event.go
package models

import (
	"fmt"
	"time"
)

// LedgerEvent is one record of the append-only event feed consumed by
// indexers and tests. Rows are written in the same transaction as the state
// change they describe and are never updated or deleted. Each event is
// hash-chained to its predecessor so the feed's integrity can be verified
// after the fact.
type LedgerEvent struct {
	Seq              uint64    `json:"seq" gorm:"primaryKey;autoIncrement"`
	Type             EventType `json:"type" gorm:"type:varchar(32);not null;index"`
	EditionID        uint64    `json:"edition_id" gorm:"not null;index"`
	Quantity         uint32    `json:"quantity,omitempty"`
	Price            uint64    `json:"price,omitempty"`
	FundingRecipient string    `json:"funding_recipient,omitempty" gorm:"size:42"`
	TokenID          *uint64   `json:"token_id,omitempty"`
	Buyer            string    `json:"buyer,omitempty" gorm:"size:42"`
	NumSold          uint32    `json:"num_sold,omitempty"`
	PrevHash         string    `json:"prev_hash" gorm:"size:64;not null;default:''"`
	Hash             string    `json:"hash" gorm:"size:64;not null"`
	CreatedAt        time.Time `json:"created_at"`
}

// Payload returns the canonical string the event hash is computed over. The
// predecessor hash is mixed in by the event service, not here.
func (e *LedgerEvent) Payload() string {
	tokenID := ""
	if e.TokenID != nil {
		tokenID = fmt.Sprintf("%d", *e.TokenID)
	}
	return fmt.Sprintf("%s|%d|%d|%d|%s|%s|%s|%d",
		e.Type, e.EditionID, e.Quantity, e.Price, e.FundingRecipient, tokenID, e.Buyer, e.NumSold)
}
