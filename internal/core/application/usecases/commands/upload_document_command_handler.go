package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/services"
	"formation/internal/core/ports"
	"formation/internal/pkg/errs"
)

// UploadDocumentCommandHandler stores an uploaded file and applies its
// progress side effect: the previous latest document of the same type is
// superseded, the new document becomes the latest, and when the type maps to
// a fulfillment step that step is auto-completed and the order status
// re-derived. The upload bypasses the document gate - the document's
// existence is itself the satisfying condition.
//
// The blob write happens before the database transaction commits; a commit
// failure can orphan a blob but never produces a document row without stored
// content.
type UploadDocumentCommandHandler struct {
	uowFactory UoWFactory
	store      ports.DocumentStore
}

// NewUploadDocumentCommandHandler creates a handler for document uploads.
// Requires a UoWFactory for transactional persistence and a DocumentStore
// for the file content.
func NewUploadDocumentCommandHandler(uowFactory UoWFactory, store ports.DocumentStore) UploadDocumentCommandHandler {
	return UploadDocumentCommandHandler{
		uowFactory: uowFactory,
		store:      store,
	}
}

// Handle processes the document upload command.
// Returns the persisted document on success so the HTTP adapter can echo it
// back to the caller.
func (h UploadDocumentCommandHandler) Handle(ctx context.Context, command UploadDocumentCommand) (*document.Document, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	documentRepo := uow.DocumentRepository()

	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	storagePath := fmt.Sprintf("orders/%s/%s_%d_%s",
		command.OrderID(), command.DocumentType(), now.UnixMilli(), command.SanitizedFileName())

	storedPath, err := h.store.Store(ctx, storagePath, command.Content())
	if err != nil {
		return nil, err
	}

	previous, err := documentRepo.GetLatest(ctx, command.OrderID(), command.DocumentType())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}
	if previous != nil {
		previous.MarkSuperseded()
		if err = documentRepo.Update(ctx, previous); err != nil {
			return nil, err
		}
	}

	doc, err := document.NewDocument(
		kernel.NewUUID(),
		command.OrderID(),
		command.DocumentType(),
		command.FileName(),
		storedPath,
		command.FileSize(),
		now,
	)
	if err != nil {
		return nil, err
	}

	if err = documentRepo.Add(ctx, doc); err != nil {
		return nil, err
	}

	if eventType, tracked := services.NewDocumentGate().EventForDocument(command.DocumentType()); tracked {
		if err = aggregate.SetProgress(eventType, true, now); err != nil {
			return nil, err
		}

		notes := fmt.Sprintf("Status updated based on uploaded document: %s", command.DocumentType())
		change, deriveErr := aggregate.DeriveStatus(notes, now)
		if deriveErr != nil {
			return nil, deriveErr
		}

		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}

		if change != nil {
			if err = uow.StatusHistoryRepository().Add(ctx, change); err != nil {
				return nil, err
			}
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return doc, nil
}
