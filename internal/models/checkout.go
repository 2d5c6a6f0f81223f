// internal/models/checkout.go
package models

import "time"

// Checkout records one Stripe PaymentIntent opened for one unit of an
// edition. The row is created pending alongside the intent and flipped to
// succeeded inside the purchase transaction, so a single intent can be
// exchanged for at most one token.
type Checkout struct {
	PaymentIntentID string         `json:"payment_intent_id" gorm:"primaryKey;size:255"`
	EditionID       uint64         `json:"edition_id" gorm:"not null;index"`
	Buyer           string         `json:"buyer" gorm:"size:42;not null;index"`
	Referrer        string         `json:"referrer" gorm:"size:42;not null"`
	Amount          uint64         `json:"amount" gorm:"not null"`
	Status          CheckoutStatus `json:"status" gorm:"size:20;not null;default:'pending'"`
	TokenID         *uint64        `json:"token_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
