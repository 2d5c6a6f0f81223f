// internal/services/split.go
package services

// SplitPayment divides a purchase payment between the referrer and the
// edition's funding recipient: the referrer receives the edition's fixed
// commission, the recipient the remainder. Pure computation; the
// commission <= price check at edition creation guarantees
// referrerShare + recipientShare == price for every input that can reach it,
// so no validation happens here.
func SplitPayment(price, commission uint64) (referrerShare, recipientShare uint64) {
	return commission, price - commission
}
