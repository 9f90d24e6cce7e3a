package commands

import (
	"errors"
	"io"
	"regexp"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"
	"formation/internal/pkg/guard"
)

var ErrUploadDocumentCommandIsNotConstructed = errors.New(
	"UploadDocumentCommand must be created via NewUploadDocumentCommand constructor",
)

// fileNameSanitizer strips characters that are unsafe in storage paths.
var fileNameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// UploadDocumentCommand represents an admin attaching a file to an order.
// The document type string is validated against the fixed enum before
// anything touches storage or persistence.
type UploadDocumentCommand struct {
	orderID      kernel.UUID
	documentType document.Type
	fileName     string
	fileSize     int64
	content      io.Reader

	guard guard.ConstructorGuard
}

// NewUploadDocumentCommand creates a command to store the given file for the
// order. The documentType string must be one of the six valid document types.
func NewUploadDocumentCommand(
	orderID kernel.UUID,
	documentType string,
	fileName string,
	fileSize int64,
	content io.Reader,
) (UploadDocumentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return UploadDocumentCommand{}, err
	}

	parsedType, err := document.TypeFromString(documentType)
	if err != nil {
		return UploadDocumentCommand{}, err
	}

	if fileName == "" {
		return UploadDocumentCommand{}, errs.NewValueIsRequiredError("fileName")
	}
	if content == nil {
		return UploadDocumentCommand{}, errs.NewValueIsRequiredError("file")
	}

	return UploadDocumentCommand{
		orderID:      orderID,
		documentType: parsedType,
		fileName:     fileName,
		fileSize:     fileSize,
		content:      content,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUploadDocumentCommandIsNotConstructed if validation fails.
func (c UploadDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUploadDocumentCommandIsNotConstructed)
}

// OrderID returns the identifier of the order receiving the document.
func (c UploadDocumentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DocumentType returns the classification of the uploaded document.
func (c UploadDocumentCommand) DocumentType() document.Type {
	return c.documentType
}

// FileName returns the original upload file name.
func (c UploadDocumentCommand) FileName() string {
	return c.fileName
}

// SanitizedFileName returns the upload file name with unsafe characters
// replaced, suitable for embedding in a storage path.
func (c UploadDocumentCommand) SanitizedFileName() string {
	return fileNameSanitizer.ReplaceAllString(c.fileName, "_")
}

// FileSize returns the upload size in bytes.
func (c UploadDocumentCommand) FileSize() int64 {
	return c.fileSize
}

// Content returns the file content reader.
func (c UploadDocumentCommand) Content() io.Reader {
	return c.content
}
