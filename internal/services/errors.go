// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger taxonomy. Callers branch with errors.Is; the
// concrete error values carry the offending ids and expected-vs-actual
// context. Every one of these aborts the whole operation — there is no
// partial state to observe afterwards.
var (
	ErrInvalidCommission = errors.New("commission cannot exceed price")
	ErrUnknownEdition    = errors.New("edition does not exist")
	ErrSupplyExhausted   = errors.New("edition is sold out")
	ErrIncorrectPayment  = errors.New("payment must equal the edition price")
	ErrNonexistentUnit   = errors.New("owner query for nonexistent token")
	ErrUnsoldUnit        = errors.New("token has not been sold yet")
	ErrUnauthorized      = errors.New("caller is not owner nor approved")
	ErrOwnerMismatch     = errors.New("transfer from incorrect owner")
	ErrFrozenAccount     = errors.New("account cannot receive funds")
	ErrCheckoutConsumed  = errors.New("payment intent already settled")
)

type InvalidCommissionError struct {
	Commission uint64
	Price      uint64
}

func (e *InvalidCommissionError) Error() string {
	return fmt.Sprintf("commission %d exceeds price %d", e.Commission, e.Price)
}

func (e *InvalidCommissionError) Is(target error) bool { return target == ErrInvalidCommission }

type UnknownEditionError struct {
	EditionID uint64
}

func (e *UnknownEditionError) Error() string {
	return fmt.Sprintf("edition %d does not exist", e.EditionID)
}

func (e *UnknownEditionError) Is(target error) bool { return target == ErrUnknownEdition }

type SupplyExhaustedError struct {
	EditionID uint64
	Quantity  uint32
}

func (e *SupplyExhaustedError) Error() string {
	return fmt.Sprintf("edition %d is sold out (%d of %d sold)", e.EditionID, e.Quantity, e.Quantity)
}

func (e *SupplyExhaustedError) Is(target error) bool { return target == ErrSupplyExhausted }

type IncorrectPaymentError struct {
	EditionID uint64
	Expected  uint64
	Actual    uint64
}

func (e *IncorrectPaymentError) Error() string {
	return fmt.Sprintf("edition %d requires payment of exactly %d, got %d", e.EditionID, e.Expected, e.Actual)
}

func (e *IncorrectPaymentError) Is(target error) bool { return target == ErrIncorrectPayment }

type NonexistentUnitError struct {
	TokenID uint64
}

func (e *NonexistentUnitError) Error() string {
	return fmt.Sprintf("owner query for nonexistent token %d", e.TokenID)
}

func (e *NonexistentUnitError) Is(target error) bool { return target == ErrNonexistentUnit }

type UnsoldUnitError struct {
	TokenID uint64
}

func (e *UnsoldUnitError) Error() string {
	return fmt.Sprintf("token %d has not been sold yet", e.TokenID)
}

func (e *UnsoldUnitError) Is(target error) bool { return target == ErrUnsoldUnit }

type UnauthorizedError struct {
	TokenID uint64
	Caller  string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("caller %s is not owner nor approved for token %d", e.Caller, e.TokenID)
}

func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

type OwnerMismatchError struct {
	TokenID uint64
	Claimed string
	Actual  string
}

func (e *OwnerMismatchError) Error() string {
	return fmt.Sprintf("token %d is owned by %s, not %s", e.TokenID, e.Actual, e.Claimed)
}

func (e *OwnerMismatchError) Is(target error) bool { return target == ErrOwnerMismatch }

type FrozenAccountError struct {
	Address string
}

func (e *FrozenAccountError) Error() string {
	return fmt.Sprintf("account %s cannot receive funds", e.Address)
}

func (e *FrozenAccountError) Is(target error) bool { return target == ErrFrozenAccount }

type CheckoutConsumedError struct {
	PaymentIntentID string
}

func (e *CheckoutConsumedError) Error() string {
	return fmt.Sprintf("payment intent %s was already settled", e.PaymentIntentID)
}

func (e *CheckoutConsumedError) Is(target error) bool { return target == ErrCheckoutConsumed }
