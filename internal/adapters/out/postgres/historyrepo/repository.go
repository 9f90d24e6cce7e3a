package historyrepo

import (
	"context"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements StatusHistoryRepository using GORM.
type GormStatusHistoryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStatusHistoryRepository creates a new GORM status history repository.
func NewGormStatusHistoryRepository(db *gorm.DB, tracker aggregateTracker) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add appends one audit record for a status transition.
func (r *GormStatusHistoryRepository) Add(ctx context.Context, change *order.StatusChange) error {
	if err := change.ID.Validate(); err != nil {
		return err
	}

	dto := fromDomain(change)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(change.ID, change)
	return nil
}
