// internal/services/split_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPayment(t *testing.T) {
	tests := []struct {
		name          string
		price         uint64
		commission    uint64
		wantReferrer  uint64
		wantRecipient uint64
	}{
		{"no commission", priceWei, 0, 0, priceWei},
		{"partial commission", priceWei, 50000000000000000, 50000000000000000, 100000000000000000},
		{"full commission", priceWei, priceWei, priceWei, 0},
		{"free edition", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			referrer, recipient := SplitPayment(tt.price, tt.commission)
			assert.Equal(t, tt.wantReferrer, referrer)
			assert.Equal(t, tt.wantRecipient, recipient)

			// Conservation: the two shares always reassemble the price.
			assert.Equal(t, tt.price, referrer+recipient)
		})
	}
}
