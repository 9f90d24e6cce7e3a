package ports

import (
	"context"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
)

// DocumentRepository defines the persistence contract for document aggregates.
type DocumentRepository interface {
	// Add persists a new document to storage.
	Add(ctx context.Context, aggregate *document.Document) error

	// Update persists changes to an existing document (the latest flag is
	// the only mutable attribute).
	Update(ctx context.Context, aggregate *document.Document) error

	// GetAllForOrder retrieves every document attached to the given order,
	// newest first. Used by the document gate, which is satisfied by the
	// existence of any document of the required type.
	GetAllForOrder(ctx context.Context, orderID kernel.UUID) ([]*document.Document, error)

	// GetLatest retrieves the latest document of the given type for the
	// order. Returns an ObjectNotFoundError when no such document exists.
	GetLatest(ctx context.Context, orderID kernel.UUID, docType document.Type) (*document.Document, error)
}
