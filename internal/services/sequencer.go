// internal/services/sequencer.go
package services

import "sync"

// Sequencer is the single serialization point for every mutating ledger
// operation. Operations apply in submission order, one at a time; no
// operation can observe another's in-flight state. Read-only queries bypass
// it. Combined with the per-operation database transaction this is what makes
// the supply-bound and token-id invariants hold without row locks.
type Sequencer struct {
	mu sync.Mutex
}

func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// Do runs fn to completion before any other queued operation starts.
func (s *Sequencer) Do(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
