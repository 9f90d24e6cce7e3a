package services

import (
	"errors"
	"fmt"

	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/order"
)

// ErrDocumentRequired is returned when a progress step cannot be completed
// because its gating document has not been uploaded for the order.
var ErrDocumentRequired = errors.New("required document is missing")

// DocumentRequiredError carries which document type blocks which step so the
// admin UI can tell the user exactly what to upload.
type DocumentRequiredError struct {
	EventType    order.EventType
	DocumentType document.Type
}

func (e *DocumentRequiredError) Error() string {
	return fmt.Sprintf("%s: %s requires a %s document",
		ErrDocumentRequired, e.EventType, e.DocumentType)
}

func (e *DocumentRequiredError) Unwrap() error {
	return ErrDocumentRequired
}

// DocumentGate is a domain service enforcing the fixed mapping between
// document-gated progress steps and the document types that satisfy them.
//
// The mapping is total and small, so it is modeled as a static lookup table:
//
//	LLC_APPROVED                     <- ARTICLES_OF_ORGANIZATION
//	EIN_OBTAINED                     <- EIN_CONFIRMATION
//	OPERATING_AGREEMENT_GENERATED    <- OPERATING_AGREEMENT
//	BANK_RESOLUTION_LETTER_GENERATED <- BANK_RESOLUTION_LETTER
//
// All other event types are ungated, and the Invoice and Receipt document
// types map to no event.
type DocumentGate struct{}

// NewDocumentGate creates a new DocumentGate instance.
func NewDocumentGate() DocumentGate {
	return DocumentGate{}
}

func gatedEvents() map[order.EventType]document.Type {
	return map[order.EventType]document.Type{
		order.LLCApproved:                   document.ArticlesOfOrganization,
		order.EINObtained:                   document.EINConfirmation,
		order.OperatingAgreementGenerated:   document.OperatingAgreement,
		order.BankResolutionLetterGenerated: document.BankResolutionLetter,
	}
}

// RequiredDocument returns the document type gating the given step, if any.
func (g DocumentGate) RequiredDocument(eventType order.EventType) (document.Type, bool) {
	docType, ok := gatedEvents()[eventType]
	return docType, ok
}

// EventForDocument returns the step auto-completed by an upload of the given
// document type, if any. This is the inverse of RequiredDocument.
func (g DocumentGate) EventForDocument(docType document.Type) (order.EventType, bool) {
	for eventType, gatingType := range gatedEvents() {
		if gatingType == docType {
			return eventType, true
		}
	}
	return order.EventTypeUnknown, false
}

// EnsureCanComplete checks whether the step may be marked completed given the
// documents currently attached to the order. Any document of the required
// type satisfies the gate, latest or not - its existence is what matters.
// Returns a DocumentRequiredError when the gate fails.
func (g DocumentGate) EnsureCanComplete(eventType order.EventType, documents []*document.Document) error {
	requiredType, gated := gatedEvents()[eventType]
	if !gated {
		return nil
	}

	for _, doc := range documents {
		if doc.Type() == requiredType {
			return nil
		}
	}

	return &DocumentRequiredError{
		EventType:    eventType,
		DocumentType: requiredType,
	}
}
