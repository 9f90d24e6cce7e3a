package order

import (
	"fmt"

	"formation/internal/pkg/errs"
)

// Status represents the fulfillment state of a formation order.
//
// State transitions derived from recorded progress:
//
//	PendingProcessing ──> Processing ──> Completed
//
// Cancelled and Refunded are terminal absorbing states reachable only through
// a manual admin override; the automatic deriver never enters or leaves them.
// The deriver also never moves a status backwards: un-completing a progress
// event after an order reached Completed leaves the status untouched.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// PendingProcessing is the initial status assigned when a formation
	// order is purchased. No filing work has started yet.
	PendingProcessing

	// Processing indicates filing work has started: the LLC or EIN filing
	// step has been recorded as completed.
	Processing

	// Completed indicates every required progress step for the order's
	// service selection has been completed.
	Completed

	// Cancelled indicates the order was cancelled by an admin. Terminal.
	Cancelled

	// Refunded indicates the order was refunded by an admin. Terminal.
	Refunded
)

// getStatusStrings returns the wire/database representation of every status,
// including StatusUnknown for display of invalid values.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "UNKNOWN",
		PendingProcessing: "PENDING_PROCESSING",
		Processing:        "PROCESSING",
		Completed:         "COMPLETED",
		Cancelled:         "CANCELLED",
		Refunded:          "REFUNDED",
	}
}

// getValidStatusStrings returns only the statuses accepted from external input.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingProcessing: "PENDING_PROCESSING",
		Processing:        "PROCESSING",
		Completed:         "COMPLETED",
		Cancelled:         "CANCELLED",
		Refunded:          "REFUNDED",
	}
}

// StatusFromString parses the wire representation of a status
// (e.g. "PENDING_PROCESSING"). Returns a ValueIsInvalidError for unknown
// values, which the HTTP adapter surfaces as a client error.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status ("UNKNOWN" for
// invalid values). Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status is one of the absorbing states that
// the automatic deriver must never leave.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Refunded
}
