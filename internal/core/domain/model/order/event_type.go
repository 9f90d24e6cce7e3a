package order

import (
	"fmt"

	"formation/internal/pkg/errs"
)

// EventType identifies a discrete fulfillment step of a formation order.
// The set is fixed: three base steps every order goes through, plus optional
// steps switched on by the order's service flags.
type EventType int

const (
	// EventTypeUnknown represents an invalid or undefined event type.
	EventTypeUnknown EventType = iota

	// OrderReceived records that the order was received for processing.
	OrderReceived

	// LLCFiled records that the LLC formation filing was submitted to the state.
	LLCFiled

	// LLCApproved records that the state approved the filing. Gated on the
	// articles of organization document.
	LLCApproved

	// EINFiled records that the EIN application was submitted to the IRS.
	EINFiled

	// EINObtained records that the EIN was issued. Gated on the EIN
	// confirmation document.
	EINObtained

	// OperatingAgreementGenerated records that the operating agreement was
	// produced. Gated on the operating agreement document.
	OperatingAgreementGenerated

	// BankResolutionLetterGenerated records that the bank resolution letter
	// was produced. Gated on the bank resolution letter document.
	BankResolutionLetterGenerated
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventTypeUnknown:              "UNKNOWN",
		OrderReceived:                 "ORDER_RECEIVED",
		LLCFiled:                      "LLC_FILED",
		LLCApproved:                   "LLC_APPROVED",
		EINFiled:                      "EIN_FILED",
		EINObtained:                   "EIN_OBTAINED",
		OperatingAgreementGenerated:   "OPERATING_AGREEMENT_GENERATED",
		BankResolutionLetterGenerated: "BANK_RESOLUTION_LETTER_GENERATED",
	}
}

func getValidEventTypeStrings() map[EventType]string {
	//nolint:exhaustive // EventTypeUnknown is intentionally excluded as it's invalid
	return map[EventType]string{
		OrderReceived:                 "ORDER_RECEIVED",
		LLCFiled:                      "LLC_FILED",
		LLCApproved:                   "LLC_APPROVED",
		EINFiled:                      "EIN_FILED",
		EINObtained:                   "EIN_OBTAINED",
		OperatingAgreementGenerated:   "OPERATING_AGREEMENT_GENERATED",
		BankResolutionLetterGenerated: "BANK_RESOLUTION_LETTER_GENERATED",
	}
}

// EventTypeFromString parses the wire representation of an event type
// (e.g. "LLC_FILED"). Returns a ValueIsInvalidError for values outside the
// fixed enum; callers must reject such input before any persistence.
func EventTypeFromString(s string) (EventType, error) {
	for eventType, str := range getValidEventTypeStrings() {
		if str == s {
			return eventType, nil
		}
	}
	return EventTypeUnknown, errs.NewValueIsInvalidErrorWithCause(
		"eventType", fmt.Errorf("%q is not a valid event type", s))
}

// Validate checks if the EventType is one of the seven defined steps.
func (t EventType) Validate() error {
	if _, ok := getValidEventTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"eventType", fmt.Errorf("%d is not a valid event type", t))
	}
	return nil
}

// String returns the wire representation of the event type ("UNKNOWN" for
// invalid values). Implements fmt.Stringer.
func (t EventType) String() string {
	if str, ok := getEventTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
