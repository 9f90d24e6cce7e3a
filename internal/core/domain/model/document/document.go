// Package document provides the Document aggregate for files attached to
// formation orders. Documents are immutable uploads: a new upload of the same
// type supersedes the previous one rather than replacing it, and nothing in
// this flow ever deletes a document.
//
// Invariant: for a given (order, type) pair at most one document has
// IsLatest() == true; the upload handler flips the previous latest before
// adding a new one.
package document

import (
	"errors"
	"fmt"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"
)

// ErrDocumentIsNotConstructed is returned when a Document instance was not
// created through NewDocument or RestoreDocument.
var ErrDocumentIsNotConstructed = errors.New(
	"Document must be created via NewDocument or RestoreDocument constructor",
)

// Document represents a single uploaded file belonging to an order.
type Document struct {
	// id is the unique identifier for the document
	id kernel.UUID

	// orderID is the owning order
	orderID kernel.UUID

	// docType classifies the document
	docType Type

	// fileName is the original upload name
	fileName string

	// filePath is the relative path inside the document store
	filePath string

	// fileSize is the stored size in bytes
	fileSize int64

	// isLatest marks the most recent upload of this type for the order
	isLatest bool

	// isFinal marks the document as the final version shown to the customer
	isFinal bool

	// createdAt is when the document was uploaded
	createdAt time.Time

	// isConstructed ensures the document was created via a constructor
	isConstructed bool
}

// NewDocument creates a freshly uploaded document. New uploads are always the
// latest and final version of their type; the caller supersedes any previous
// latest first.
func NewDocument(
	id kernel.UUID,
	orderID kernel.UUID,
	docType Type,
	fileName string,
	filePath string,
	fileSize int64,
	createdAt time.Time,
) (*Document, error) {
	doc := &Document{
		isLatest:      true,
		isFinal:       true,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		doc.setID(id),
		doc.setOrderID(orderID),
		doc.setType(docType),
		doc.setFileName(fileName),
		doc.setFilePath(filePath),
		doc.setFileSize(fileSize),
	); err != nil {
		return nil, err
	}

	return doc, nil
}

// RestoreDocument reconstructs a document from persistence with its stored
// flags. Used by repository implementations.
func RestoreDocument(
	id kernel.UUID,
	orderID kernel.UUID,
	docType Type,
	fileName string,
	filePath string,
	fileSize int64,
	isLatest bool,
	isFinal bool,
	createdAt time.Time,
) (*Document, error) {
	doc, err := NewDocument(id, orderID, docType, fileName, filePath, fileSize, createdAt)
	if err != nil {
		return nil, err
	}

	doc.isLatest = isLatest
	doc.isFinal = isFinal
	return doc, nil
}

// Validate ensures the Document instance was properly constructed.
func (d *Document) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDocumentIsNotConstructed
	}
	return nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() kernel.UUID {
	return d.id
}

// OrderID returns the owning order's identifier.
func (d *Document) OrderID() kernel.UUID {
	return d.orderID
}

// Type returns the document classification.
func (d *Document) Type() Type {
	return d.docType
}

// FileName returns the original upload file name.
func (d *Document) FileName() string {
	return d.fileName
}

// FilePath returns the relative path inside the document store.
func (d *Document) FilePath() string {
	return d.filePath
}

// FileSize returns the stored size in bytes.
func (d *Document) FileSize() int64 {
	return d.fileSize
}

// IsLatest reports whether this is the most recent upload of its type.
func (d *Document) IsLatest() bool {
	return d.isLatest
}

// IsFinal reports whether this is the final version of the document.
func (d *Document) IsFinal() bool {
	return d.isFinal
}

// CreatedAt returns when the document was uploaded.
func (d *Document) CreatedAt() time.Time {
	return d.createdAt
}

// MarkSuperseded clears the latest flag when a newer upload of the same type
// arrives for the same order.
func (d *Document) MarkSuperseded() {
	d.isLatest = false
}

func (d *Document) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Document) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Document) setType(docType Type) error {
	if err := docType.Validate(); err != nil {
		return err
	}
	d.docType = docType
	return nil
}

func (d *Document) setFileName(fileName string) error {
	if fileName == "" {
		return errs.NewValueIsRequiredError("fileName")
	}
	d.fileName = fileName
	return nil
}

func (d *Document) setFilePath(filePath string) error {
	if filePath == "" {
		return errs.NewValueIsRequiredError("filePath")
	}
	d.filePath = filePath
	return nil
}

func (d *Document) setFileSize(fileSize int64) error {
	if fileSize < 0 {
		return errs.NewValueIsInvalidErrorWithCause("fileSize",
			fmt.Errorf("%d is negative", fileSize))
	}
	d.fileSize = fileSize
	return nil
}
