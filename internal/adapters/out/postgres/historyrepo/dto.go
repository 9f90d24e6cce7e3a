// Package historyrepo provides data transfer objects and mapping functions for
// the append-only status audit trail.
package historyrepo

import (
	"time"

	"formation/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusChangeDTO represents the database structure for persisting status
// transition records. Rows are only ever inserted.
type StatusChangeDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	PreviousStatus string    `gorm:"type:varchar(32);not null"`
	NewStatus      string    `gorm:"type:varchar(32);not null"`
	ChangedBy      string    `gorm:"type:varchar(255);not null"`
	Notes          string    `gorm:"type:text"`
	OccurredAt     time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for status change entities.
// Overrides GORM's default naming convention to use "order_status_history".
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts a status change record to its database representation.
func fromDomain(change *order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:             change.ID.Bytes(),
		OrderID:        change.OrderID.Bytes(),
		PreviousStatus: change.PreviousStatus.String(),
		NewStatus:      change.NewStatus.String(),
		ChangedBy:      change.ChangedBy,
		Notes:          change.Notes,
		OccurredAt:     change.OccurredAt,
	}
}
