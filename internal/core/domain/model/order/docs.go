// Package order provides domain entities and business logic for formation
// order progress tracking. It implements the Order aggregate root with its
// progress events and the status derivation rules.
//
// The package includes:
//   - Order: the aggregate root owning service flags, status, and progress events
//   - ProgressEvent: a child entity recording completion of a single step
//   - Status: the fulfillment state with forward-only derived transitions
//   - EventType: the fixed enum of fulfillment steps
//   - StatusChange: the append-only audit record of a status transition
//
// Key business rules:
//   - Three base steps are always required; service flags add optional steps
//   - Recording the LLC or EIN filing moves a pending order to Processing
//   - Completing every required step moves any non-terminal order to Completed
//   - Cancelled and Refunded are terminal and only reachable via admin override
//   - The deriver never moves a status backwards
package order
