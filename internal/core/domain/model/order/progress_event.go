package order

import (
	"errors"
	"time"
)

// ErrProgressEventIsNotConstructed is returned when a ProgressEvent instance
// was not created through NewProgressEvent or RestoreProgressEvent.
var ErrProgressEventIsNotConstructed = errors.New(
	"ProgressEvent must be created via NewProgressEvent or RestoreProgressEvent constructor",
)

// ProgressEvent is a child entity of the Order aggregate recording whether a
// single fulfillment step has been completed. At most one event exists per
// (order, event type) pair; the aggregate enforces this through SetProgress.
//
// A nil completedAt means "not completed" - elsewhere only the null-vs-non-null
// distinction is tested, so refreshing the timestamp on a repeated completion
// is harmless.
type ProgressEvent struct {
	eventType   EventType
	completedAt *time.Time

	isConstructed bool
}

// NewProgressEvent creates an uncompleted progress event for the given step.
// The aggregate calls this when a step is toggled for the first time.
func NewProgressEvent(eventType EventType) (*ProgressEvent, error) {
	if err := eventType.Validate(); err != nil {
		return nil, err
	}

	return &ProgressEvent{
		eventType:     eventType,
		isConstructed: true,
	}, nil
}

// RestoreProgressEvent reconstructs a progress event from persistence with its
// stored completion timestamp.
func RestoreProgressEvent(eventType EventType, completedAt *time.Time) (*ProgressEvent, error) {
	event, err := NewProgressEvent(eventType)
	if err != nil {
		return nil, err
	}

	event.completedAt = completedAt
	return event, nil
}

// Validate ensures the event was created through a constructor.
func (e *ProgressEvent) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrProgressEventIsNotConstructed
	}
	return nil
}

// EventType returns the fulfillment step this event tracks.
func (e *ProgressEvent) EventType() EventType {
	return e.eventType
}

// CompletedAt returns when the step was completed, or nil if it is not.
func (e *ProgressEvent) CompletedAt() *time.Time {
	return e.completedAt
}

// IsCompleted reports whether the step has been completed.
func (e *ProgressEvent) IsCompleted() bool {
	return e.completedAt != nil
}

// markCompleted stamps the completion time. Always refreshes the timestamp.
func (e *ProgressEvent) markCompleted(now time.Time) {
	e.completedAt = &now
}

// markUncompleted clears the completion time.
func (e *ProgressEvent) markUncompleted() {
	e.completedAt = nil
}
