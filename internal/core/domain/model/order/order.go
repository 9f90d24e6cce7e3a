package order

import (
	"errors"
	"fmt"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order represents an LLC formation order. It is the aggregate root that owns
// the order's progress events and derives the overall status from them.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty company name
//   - At most one progress event exists per event type
//   - Status transitions only move forward through the automatic deriver;
//     terminal statuses (Cancelled, Refunded) are never entered or left by it
//   - completedAt is stamped exactly when the status becomes Completed
//
// The struct uses private fields to ensure encapsulation; all mutation goes
// through SetProgress, DeriveStatus, and OverrideStatus.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// companyName is the name of the company being formed
	companyName string

	// needEIN switches on the EIN filing steps
	needEIN bool

	// needOperatingAgreement switches on the operating agreement step
	needOperatingAgreement bool

	// needBankLetter switches on the bank resolution letter step
	needBankLetter bool

	// status is the current fulfillment state
	status Status

	// completedAt is set when the order reaches Completed (nil otherwise)
	completedAt *time.Time

	// createdAt is when the order was placed
	createdAt time.Time

	// progressEvents are the recorded fulfillment steps, one per event type
	progressEvents []*ProgressEvent

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in PendingProcessing status with no recorded
// progress. The service flags determine which optional steps the order will
// require before it can complete.
func NewOrder(
	id kernel.UUID,
	companyName string,
	needEIN bool,
	needOperatingAgreement bool,
	needBankLetter bool,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status:                 PendingProcessing,
		needEIN:                needEIN,
		needOperatingAgreement: needOperatingAgreement,
		needBankLetter:         needBankLetter,
		createdAt:              createdAt,
		isConstructed:          true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setCompanyName(companyName),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence with its stored status,
// completion stamp, and progress events. Used by repository implementations.
func RestoreOrder(
	id kernel.UUID,
	companyName string,
	needEIN bool,
	needOperatingAgreement bool,
	needBankLetter bool,
	status Status,
	completedAt *time.Time,
	createdAt time.Time,
	progressEvents []*ProgressEvent,
) (*Order, error) {
	order, err := NewOrder(id, companyName, needEIN, needOperatingAgreement, needBankLetter, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	for _, event := range progressEvents {
		if eventErr := event.Validate(); eventErr != nil {
			return nil, eventErr
		}
	}

	order.status = status
	order.completedAt = completedAt
	order.progressEvents = progressEvents
	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// Returns ErrOrderIsNotConstructed otherwise. Repository implementations call
// this before persisting to prevent bypassing the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CompanyName returns the name of the company being formed.
func (o *Order) CompanyName() string {
	return o.companyName
}

// NeedEIN reports whether the order includes the EIN service.
func (o *Order) NeedEIN() bool {
	return o.needEIN
}

// NeedOperatingAgreement reports whether the order includes the operating
// agreement service.
func (o *Order) NeedOperatingAgreement() bool {
	return o.needOperatingAgreement
}

// NeedBankLetter reports whether the order includes the bank resolution
// letter service.
func (o *Order) NeedBankLetter() bool {
	return o.needBankLetter
}

// Status returns the current fulfillment status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CompletedAt returns when the order reached Completed, or nil.
func (o *Order) CompletedAt() *time.Time {
	return o.completedAt
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// ProgressEvents returns the recorded progress events.
func (o *Order) ProgressEvents() []*ProgressEvent {
	return o.progressEvents
}

// RequiredSteps returns the ordered set of event types that must be completed
// for the order to be considered done. The three base steps are always
// required; the optional steps are appended according to the service flags.
// The returned order is stable and matches the admin checklist display.
func (o *Order) RequiredSteps() []EventType {
	steps := []EventType{OrderReceived, LLCFiled, LLCApproved}

	if o.needEIN {
		steps = append(steps, EINFiled, EINObtained)
	}
	if o.needOperatingAgreement {
		steps = append(steps, OperatingAgreementGenerated)
	}
	if o.needBankLetter {
		steps = append(steps, BankResolutionLetterGenerated)
	}

	return steps
}

// StepCompleted reports whether the given step has a completed progress
// event. An absent event and a nil completion timestamp both mean false.
func (o *Order) StepCompleted(eventType EventType) bool {
	for _, event := range o.progressEvents {
		if event.eventType == eventType {
			return event.IsCompleted()
		}
	}
	return false
}

// SetProgress records the desired completion state for a single step,
// creating the progress event if it does not exist yet. Re-applying the same
// state is a no-op aside from a timestamp refresh.
//
// SetProgress does not touch the order status; callers re-derive it
// afterwards via DeriveStatus so both changes persist together.
func (o *Order) SetProgress(eventType EventType, completed bool, now time.Time) error {
	if err := eventType.Validate(); err != nil {
		return err
	}

	for _, event := range o.progressEvents {
		if event.eventType == eventType {
			if completed {
				event.markCompleted(now)
			} else {
				event.markUncompleted()
			}
			return nil
		}
	}

	event, err := NewProgressEvent(eventType)
	if err != nil {
		return err
	}
	if completed {
		event.markCompleted(now)
	}

	o.progressEvents = append(o.progressEvents, event)
	return nil
}

// DeriveStatus re-evaluates the order status against the current completion
// set and applies at most one transition:
//
//  1. PendingProcessing moves to Processing once the LLC or EIN filing step
//     is completed.
//  2. Any non-terminal status moves to Completed once every required step is
//     completed, stamping completedAt.
//
// Both rules are evaluated independently in the same call, so an order can
// jump from PendingProcessing straight to Completed; only the final status is
// kept. Returns the audit record for the transition, or nil when the status
// is unchanged. The notes describe what triggered the re-evaluation.
//
// The deriver never moves a status backwards and never leaves a terminal
// status, so un-completing a step after the order completed has no effect
// here; reverting a completed order is an explicit OverrideStatus concern.
func (o *Order) DeriveStatus(notes string, now time.Time) (*StatusChange, error) {
	derived := o.status

	if o.status == PendingProcessing && (o.StepCompleted(LLCFiled) || o.StepCompleted(EINFiled)) {
		derived = Processing
	}

	if !o.status.IsTerminal() && o.allRequiredStepsCompleted() {
		derived = Completed
	}

	if derived == o.status {
		return nil, nil
	}

	change, err := NewStatusChange(o.id, o.status, derived, SystemActor, notes, now)
	if err != nil {
		return nil, err
	}

	o.status = derived
	if derived == Completed {
		completedAt := now
		o.completedAt = &completedAt
	}

	return change, nil
}

// OverrideStatus sets an explicit status on behalf of an admin, bypassing the
// deriver's forward-only rules. This is the only path into the terminal
// Cancelled and Refunded statuses. Returns the audit record, or nil when the
// status is already the requested one (no transition, no history row).
func (o *Order) OverrideStatus(newStatus Status, changedBy string, notes string, now time.Time) (*StatusChange, error) {
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if changedBy == "" {
		return nil, errs.NewValueIsRequiredError("changedBy")
	}

	if newStatus == o.status {
		return nil, nil
	}

	change, err := NewStatusChange(o.id, o.status, newStatus, changedBy, notes, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	if newStatus == Completed {
		completedAt := now
		o.completedAt = &completedAt
	}

	return change, nil
}

// allRequiredStepsCompleted reports whether every step from RequiredSteps has
// a completed progress event.
func (o *Order) allRequiredStepsCompleted() bool {
	for _, step := range o.RequiredSteps() {
		if !o.StepCompleted(step) {
			return false
		}
	}
	return true
}

// setID validates and sets the order's unique identifier.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCompanyName validates and sets the company name.
// This is a private method used only during construction.
func (o *Order) setCompanyName(companyName string) error {
	if companyName == "" {
		return errs.NewValueIsRequiredErrorWithCause("companyName",
			fmt.Errorf("company name must not be empty"))
	}
	o.companyName = companyName
	return nil
}
