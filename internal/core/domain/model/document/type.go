package document

import (
	"fmt"

	"formation/internal/pkg/errs"
)

// Type identifies the kind of document attached to a formation order.
// Four types correspond to fulfillment steps (see the services package for
// the mapping); Invoice and Receipt are stored but drive no progress.
type Type int

const (
	// TypeUnknown represents an invalid or undefined document type.
	TypeUnknown Type = iota

	// ArticlesOfOrganization is the state-approved formation filing.
	ArticlesOfOrganization

	// OperatingAgreement is the generated operating agreement.
	OperatingAgreement

	// EINConfirmation is the IRS EIN issuance confirmation.
	EINConfirmation

	// BankResolutionLetter is the generated bank resolution letter.
	BankResolutionLetter

	// Invoice is a billing document with no progress side effect.
	Invoice

	// Receipt is a payment receipt with no progress side effect.
	Receipt
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:            "UNKNOWN",
		ArticlesOfOrganization: "ARTICLES_OF_ORGANIZATION",
		OperatingAgreement:     "OPERATING_AGREEMENT",
		EINConfirmation:        "EIN_CONFIRMATION",
		BankResolutionLetter:   "BANK_RESOLUTION_LETTER",
		Invoice:                "INVOICE",
		Receipt:                "RECEIPT",
	}
}

func getValidTypeStrings() map[Type]string {
	//nolint:exhaustive // TypeUnknown is intentionally excluded as it's invalid
	return map[Type]string{
		ArticlesOfOrganization: "ARTICLES_OF_ORGANIZATION",
		OperatingAgreement:     "OPERATING_AGREEMENT",
		EINConfirmation:        "EIN_CONFIRMATION",
		BankResolutionLetter:   "BANK_RESOLUTION_LETTER",
		Invoice:                "INVOICE",
		Receipt:                "RECEIPT",
	}
}

// TypeFromString parses the wire representation of a document type
// (e.g. "EIN_CONFIRMATION"). Returns a ValueIsInvalidError for values outside
// the fixed enum; callers must reject such input before any persistence.
func TypeFromString(s string) (Type, error) {
	for docType, str := range getValidTypeStrings() {
		if str == s {
			return docType, nil
		}
	}
	return TypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"documentType", fmt.Errorf("%q is not a valid document type", s))
}

// Validate checks if the Type is one of the six defined document types.
func (t Type) Validate() error {
	if _, ok := getValidTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"documentType", fmt.Errorf("%d is not a valid document type", t))
	}
	return nil
}

// String returns the wire representation of the document type ("UNKNOWN" for
// invalid values). Implements fmt.Stringer.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
