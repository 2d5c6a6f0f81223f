// internal/services/stats_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/glasshouse/editions-backend/internal/models"
)

// StatsService aggregates read-only platform figures for dashboards. All
// numbers are recomputed from ledger state on demand.
type StatsService struct {
	db *gorm.DB
}

type PlatformStats struct {
	TotalEditions   int64  `json:"total_editions"`
	TotalTokens     int64  `json:"total_tokens"`
	TotalEvents     int64  `json:"total_events"`
	SettledVolume   uint64 `json:"settled_volume"`
	DistinctOwners  int64  `json:"distinct_owners"`
	SoldOutEditions int64  `json:"sold_out_editions"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	if err := s.db.Model(&models.Edition{}).Count(&stats.TotalEditions).Error; err != nil {
		return nil, fmt.Errorf("failed to count editions: %w", err)
	}
	if err := s.db.Model(&models.Token{}).Count(&stats.TotalTokens).Error; err != nil {
		return nil, fmt.Errorf("failed to count tokens: %w", err)
	}
	if err := s.db.Model(&models.LedgerEvent{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if err := s.db.Model(&models.Edition{}).
		Where("num_sold >= quantity").Count(&stats.SoldOutEditions).Error; err != nil {
		return nil, fmt.Errorf("failed to count sold-out editions: %w", err)
	}
	if err := s.db.Model(&models.Token{}).
		Distinct("owner").Count(&stats.DistinctOwners).Error; err != nil {
		return nil, fmt.Errorf("failed to count owners: %w", err)
	}

	var volume *uint64
	if err := s.db.Model(&models.LedgerEvent{}).
		Where("type = ?", models.EventEditionPurchased).
		Select("COALESCE(SUM(price), 0)").Scan(&volume).Error; err != nil {
		return nil, fmt.Errorf("failed to sum settled volume: %w", err)
	}
	if volume != nil {
		stats.SettledVolume = *volume
	}

	return stats, nil
}
