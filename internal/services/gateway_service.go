// internal/services/gateway_service.go
package services

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/config"
	"github.com/glasshouse/editions-backend/internal/models"
)

// GatewayService is the fiat checkout adapter. It fronts the purchase engine
// with Stripe PaymentIntents: an intent is created for an edition's exact
// price, recorded as a pending checkout, and a succeeded intent is exchanged
// for at most one purchase. The engine itself never talks to Stripe — it
// just sees an exact payment amount.
type GatewayService struct {
	db        *gorm.DB
	config    *config.Config
	editions  *EditionService
	purchases *PurchaseService
}

type CheckoutIntentRequest struct {
	EditionID uint64 `json:"edition_id"`
	Referrer  string `json:"referrer" validate:"required,address"`
}

type CheckoutIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
	Amount       uint64 `json:"amount"`
}

type ConfirmCheckoutRequest struct {
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
}

func NewGatewayService(db *gorm.DB, cfg *config.Config, editions *EditionService, purchases *PurchaseService) *GatewayService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &GatewayService{
		db:        db,
		config:    cfg,
		editions:  editions,
		purchases: purchases,
	}
}

// fiatAmount converts a base-unit price to the gateway's minor currency
// unit, rounding up so Stripe never collects less than the ledger settles.
func fiatAmount(price, divisor uint64) int64 {
	if divisor == 0 {
		divisor = 1
	}
	return int64((price + divisor - 1) / divisor)
}

// CreateCheckoutIntent opens a Stripe intent for one unit of the edition at
// its exact price and records it as a pending checkout. The edition, buyer,
// and referrer ride along as metadata so the Stripe dashboard shows them,
// but confirmation reconstructs the purchase from the checkout row.
func (s *GatewayService) CreateCheckoutIntent(buyer string, req *CheckoutIntentRequest) (*CheckoutIntentResponse, error) {
	edition, err := s.editions.GetEdition(req.EditionID)
	if err != nil {
		return nil, err
	}
	if edition.SoldOut() {
		return nil, &SupplyExhaustedError{EditionID: edition.ID, Quantity: edition.Quantity}
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(fiatAmount(edition.Price, s.config.Payment.BaseUnitDivisor)),
		Currency: stripe.String(s.config.Payment.Currency),
	}
	params.AddMetadata("edition_id", strconv.FormatUint(edition.ID, 10))
	params.AddMetadata("buyer", buyer)
	params.AddMetadata("referrer", req.Referrer)

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	if err := s.recordCheckout(pi.ID, edition, buyer, req.Referrer); err != nil {
		return nil, err
	}

	return &CheckoutIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
		Amount:       edition.Price,
	}, nil
}

// recordCheckout persists the pending checkout row keyed by the intent id.
func (s *GatewayService) recordCheckout(intentID string, edition *models.Edition, buyer, referrer string) error {
	checkout := models.Checkout{
		PaymentIntentID: intentID,
		EditionID:       edition.ID,
		Buyer:           buyer,
		Referrer:        referrer,
		Amount:          edition.Price,
		Status:          models.CheckoutStatusPending,
	}
	if err := s.db.Create(&checkout).Error; err != nil {
		return fmt.Errorf("failed to record checkout %s: %w", intentID, err)
	}
	return nil
}

// ConfirmCheckout exchanges a succeeded intent for a purchase. The checkout
// row carries the attached payment (the edition's full price); the engine
// re-validates everything else and rolls back atomically on any failure,
// leaving the checkout pending so a later confirm can retry.
func (s *GatewayService) ConfirmCheckout(buyer string, req *ConfirmCheckoutRequest) (*PurchaseResult, error) {
	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status == stripe.PaymentIntentStatusCanceled {
		s.db.Model(&models.Checkout{}).
			Where("payment_intent_id = ? AND status = ?", pi.ID, models.CheckoutStatusPending).
			UpdateColumn("status", models.CheckoutStatusFailed)
		return nil, fmt.Errorf("payment intent %s is canceled", pi.ID)
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment intent %s is %s, not succeeded", pi.ID, pi.Status)
	}

	return s.settleCheckout(pi.ID, buyer)
}

// settleCheckout runs the purchase for a succeeded intent and flips the
// checkout row to succeeded in the same transaction. The guarded update is
// what makes confirmation idempotent: a second settle finds no pending row
// and fails with ErrCheckoutConsumed instead of minting again.
func (s *GatewayService) settleCheckout(intentID, buyer string) (*PurchaseResult, error) {
	var checkout models.Checkout
	if err := s.db.First(&checkout, "payment_intent_id = ?", intentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no checkout recorded for payment intent %s", intentID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if checkout.Buyer != buyer {
		return nil, fmt.Errorf("payment intent %s belongs to %s", intentID, checkout.Buyer)
	}
	if checkout.Status != models.CheckoutStatusPending {
		return nil, &CheckoutConsumedError{PaymentIntentID: intentID}
	}

	return s.purchases.buyEdition(checkout.EditionID, buyer, checkout.Referrer, checkout.Amount,
		func(tx *gorm.DB, result *PurchaseResult) error {
			update := tx.Model(&models.Checkout{}).
				Where("payment_intent_id = ? AND status = ?", intentID, models.CheckoutStatusPending).
				Updates(map[string]interface{}{
					"status":   models.CheckoutStatusSucceeded,
					"token_id": result.Token.ID,
				})
			if update.Error != nil {
				return fmt.Errorf("failed to settle checkout %s: %w", intentID, update.Error)
			}
			if update.RowsAffected == 0 {
				return &CheckoutConsumedError{PaymentIntentID: intentID}
			}
			return nil
		})
}
