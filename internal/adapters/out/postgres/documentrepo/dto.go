// Package documentrepo provides data transfer objects and mapping functions for document persistence.
// This package implements the repository pattern for the document domain aggregate, handling
// the conversion between domain entities and database representations.
package documentrepo

import (
	"time"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DocumentDTO represents the database structure for persisting document aggregates.
// Indexed by order and type since the gate and the latest-version lookup both
// filter on those columns.
type DocumentDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(64);not null;index"`
	FileName  string    `gorm:"type:varchar(512);not null"`
	FilePath  string    `gorm:"type:varchar(1024);not null"`
	FileSize  int64     `gorm:"not null"`
	IsLatest  bool      `gorm:"not null"`
	IsFinal   bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for document entities.
// Overrides GORM's default naming convention to use "documents".
func (DocumentDTO) TableName() string {
	return "documents"
}

// fromDomain converts a document domain aggregate to its database representation.
func fromDomain(aggregate *document.Document) DocumentDTO {
	return DocumentDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID().Bytes(),
		Type:      aggregate.Type().String(),
		FileName:  aggregate.FileName(),
		FilePath:  aggregate.FilePath(),
		FileSize:  aggregate.FileSize(),
		IsLatest:  aggregate.IsLatest(),
		IsFinal:   aggregate.IsFinal(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a document domain aggregate.
// Reconstructs the complete aggregate including its flags using RestoreDocument.
func toDomain(dto DocumentDTO) (*document.Document, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	docType, err := document.TypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	return document.RestoreDocument(
		id,
		orderID,
		docType,
		dto.FileName,
		dto.FilePath,
		dto.FileSize,
		dto.IsLatest,
		dto.IsFinal,
		dto.CreatedAt,
	)
}
