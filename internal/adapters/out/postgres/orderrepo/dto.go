// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status.
type OrderDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName            string    `gorm:"type:varchar(255);not null"`
	NeedEIN                bool      `gorm:"not null"`
	NeedOperatingAgreement bool      `gorm:"not null"`
	NeedBankLetter         bool      `gorm:"not null"`
	Status                 string    `gorm:"type:varchar(32);not null;index"`
	CompletedAt            *time.Time
	CreatedAt              time.Time          `gorm:"not null"`
	ProgressEvents         []ProgressEventDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ProgressEventDTO represents the persisted completion state of one
// fulfillment step. The composite primary key enforces at most one row per
// order and event type, so saving the aggregate upserts rather than
// duplicates.
type ProgressEventDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType   string    `gorm:"type:varchar(64);primaryKey"`
	CompletedAt *time.Time
}

// TableName specifies the database table name for progress event entities.
// Overrides GORM's default naming convention to use "order_progress_events".
func (ProgressEventDTO) TableName() string {
	return "order_progress_events"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all aggregate entities including the progress event set.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()
	events := make([]ProgressEventDTO, 0, len(aggregate.ProgressEvents()))

	for _, event := range aggregate.ProgressEvents() {
		events = append(events, ProgressEventDTO{
			OrderID:     orderID,
			EventType:   event.EventType().String(),
			CompletedAt: event.CompletedAt(),
		})
	}

	return OrderDTO{
		ID:                     orderID,
		CompanyName:            aggregate.CompanyName(),
		NeedEIN:                aggregate.NeedEIN(),
		NeedOperatingAgreement: aggregate.NeedOperatingAgreement(),
		NeedBankLetter:         aggregate.NeedBankLetter(),
		Status:                 aggregate.Status().String(),
		CompletedAt:            aggregate.CompletedAt(),
		CreatedAt:              aggregate.CreatedAt(),
		ProgressEvents:         events,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and progress events using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	events := make([]*order.ProgressEvent, 0, len(dto.ProgressEvents))
	for _, eventDTO := range dto.ProgressEvents {
		event, eventErr := progressEventToDomain(eventDTO)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return order.RestoreOrder(
		id,
		dto.CompanyName,
		dto.NeedEIN,
		dto.NeedOperatingAgreement,
		dto.NeedBankLetter,
		status,
		dto.CompletedAt,
		dto.CreatedAt,
		events,
	)
}

// progressEventToDomain converts a progress event DTO to a domain entity.
// Uses RestoreProgressEvent to reconstruct the entity with its persisted state.
func progressEventToDomain(dto ProgressEventDTO) (*order.ProgressEvent, error) {
	eventType, err := order.EventTypeFromString(dto.EventType)
	if err != nil {
		return nil, err
	}

	return order.RestoreProgressEvent(eventType, dto.CompletedAt)
}
