// internal/models/account.go
package models

import "time"

// Account is the settlement-side balance for an address. Purchases credit the
// referrer and the edition's funding recipient here inside the same
// transaction that mints the token. Frozen accounts reject incoming funds,
// which rolls the whole purchase back.
type Account struct {
	Address   string    `json:"address" gorm:"primaryKey;size:42"`
	Balance   uint64    `json:"balance" gorm:"not null;default:0"`
	Frozen    bool      `json:"frozen" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
