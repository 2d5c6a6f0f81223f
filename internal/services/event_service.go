// internal/services/event_service.go
package services

import (
	"errors"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
	"github.com/glasshouse/editions-backend/internal/utils"
)

// EventService is the append-only event log. Events are written inside the
// transaction of the operation that caused them and hash-chained to their
// predecessor. The log is observational only: nothing reads it back into
// ledger state.
type EventService struct {
	db *gorm.DB

	mu          sync.Mutex
	subscribers map[uint64]chan models.LedgerEvent
	nextSubID   uint64
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{
		db:          db,
		subscribers: make(map[uint64]chan models.LedgerEvent),
	}
}

// appendTx stores the event with its chain hash. Must run inside the mutating
// operation's transaction so the event commits or rolls back with the state
// change it describes.
func (s *EventService) appendTx(tx *gorm.DB, event *models.LedgerEvent) error {
	var last models.LedgerEvent
	prevHash := ""
	if err := tx.Order("seq DESC").First(&last).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to read event chain head: %w", err)
		}
	} else {
		prevHash = last.Hash
	}

	event.PrevHash = prevHash
	event.Hash = utils.HashString(event.Payload() + "|" + prevHash)

	if err := tx.Create(event).Error; err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// publish fans a committed event out to subscribers. Called after the owning
// transaction commits, never inside it.
func (s *EventService) publish(event *models.LedgerEvent) {
	if event == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- *event:
		default:
			// Slow consumers drop events; the durable log is the source of truth.
		}
	}
}

// Subscribe returns a feed of committed events and a cancel function.
func (s *EventService) Subscribe() (<-chan models.LedgerEvent, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan models.LedgerEvent, 64)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(c)
		}
	}
	return ch, cancel
}

type EventSearchParams struct {
	utils.PaginationParams
	EditionID *uint64           `json:"edition_id,omitempty"`
	Type      *models.EventType `json:"type,omitempty"`
}

// ListEvents returns events in append order.
func (s *EventService) ListEvents(params EventSearchParams) ([]models.LedgerEvent, int64, error) {
	query := s.db.Model(&models.LedgerEvent{})

	if params.EditionID != nil {
		query = query.Where("edition_id = ?", *params.EditionID)
	}
	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count events: %w", err)
	}

	query = query.Order("seq ASC")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var events []models.LedgerEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	return events, total, nil
}

// VerifyChain recomputes every event hash in sequence order and reports the
// first sequence number whose hash does not match, if any.
func (s *EventService) VerifyChain() (bool, uint64, error) {
	var events []models.LedgerEvent
	if err := s.db.Order("seq ASC").Find(&events).Error; err != nil {
		return false, 0, fmt.Errorf("failed to fetch events: %w", err)
	}

	prevHash := ""
	for _, event := range events {
		if event.PrevHash != prevHash {
			return false, event.Seq, nil
		}
		expected := utils.HashString(event.Payload() + "|" + prevHash)
		if event.Hash != expected {
			return false, event.Seq, nil
		}
		prevHash = event.Hash
	}
	return true, 0, nil
}
