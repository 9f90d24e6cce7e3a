package documentrepo

import (
	"context"
	"errors"
	"fmt"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentRepository implements DocumentRepository using GORM.
type GormDocumentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDocumentRepository creates a new GORM document repository.
func NewGormDocumentRepository(db *gorm.DB, tracker aggregateTracker) *GormDocumentRepository {
	return &GormDocumentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new document to the database.
func (r *GormDocumentRepository) Add(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing document to the database.
func (r *GormDocumentRepository) Update(ctx context.Context, aggregate *document.Document) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Select("*") forces all columns to be written so that clearing the
	// latest flag is persisted; Updates alone skips zero values.
	result := r.db.WithContext(ctx).Model(&DocumentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetAllForOrder retrieves every document attached to the given order, newest first.
func (r *GormDocumentRepository) GetAllForOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*document.Document, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error; err != nil {
		return nil, err
	}

	documents := make([]*document.Document, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}

	return documents, nil
}

// GetLatest retrieves the latest document of the given type for the order.
func (r *GormDocumentRepository) GetLatest(
	ctx context.Context,
	orderID kernel.UUID,
	docType document.Type,
) (*document.Document, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := docType.Validate(); err != nil {
		return nil, err
	}

	var dto DocumentDTO
	if err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND type = ? AND is_latest = true", orderID.Bytes(), docType.String()).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(
				"document", fmt.Sprintf("%s/%s", orderID.String(), docType))
		}
		return nil, err
	}

	return toDomain(dto)
}
