package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/core/domain/services"
	"formation/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderProgressQueryHandler assembles the admin checklist for one order.
// The checklist lists every step the order requires plus any extra steps that
// were recorded before the order's service flags changed, annotated with the
// document gate state so the UI can disable checkboxes that cannot be
// completed yet.
type GetOrderProgressQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderProgressQueryHandler creates a handler for progress checklist queries.
// Requires a GORM database connection for query execution.
func NewGetOrderProgressQueryHandler(db *gorm.DB) GetOrderProgressQueryHandler {
	return GetOrderProgressQueryHandler{db: db}
}

// Handle executes the query and returns the complete progress view.
// Returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderProgressQueryHandler) Handle(
	ctx context.Context,
	query GetOrderProgressQuery,
) (GetOrderProgressQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	aggregate, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	documentTypes, err := h.loadDocumentTypes(ctx, query.OrderID())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	history, err := h.loadHistory(ctx, query.OrderID())
	if err != nil {
		return GetOrderProgressQueryResponse{}, err
	}

	return GetOrderProgressQueryResponse{
		OrderID:     aggregate.ID(),
		CompanyName: aggregate.CompanyName(),
		Status:      aggregate.Status().String(),
		CompletedAt: aggregate.CompletedAt(),
		Steps:       buildSteps(aggregate, documentTypes),
		History:     history,
	}, nil
}

// loadOrder reads the order row with its progress events and rebuilds the
// aggregate, so required-step resolution stays in the domain model.
func (h GetOrderProgressQueryHandler) loadOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*order.Order, error) {
	var (
		id                     uuid.UUID
		companyName            string
		needEIN                bool
		needOperatingAgreement bool
		needBankLetter         bool
		statusStr              string
		completedAt            *time.Time
		createdAt              time.Time
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			company_name,
			need_ein,
			need_operating_agreement,
			need_bank_letter,
			status,
			completed_at,
			created_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Row()

	err := row.Scan(
		&id,
		&companyName,
		&needEIN,
		&needOperatingAgreement,
		&needBankLetter,
		&statusStr,
		&completedAt,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderID.String())
		}
		return nil, err
	}

	status, err := order.StatusFromString(statusStr)
	if err != nil {
		return nil, err
	}

	events, err := h.loadProgressEvents(ctx, orderID)
	if err != nil {
		return nil, err
	}

	restoredID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		restoredID, companyName,
		needEIN, needOperatingAgreement, needBankLetter,
		status, completedAt, createdAt, events,
	)
}

func (h GetOrderProgressQueryHandler) loadProgressEvents(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*order.ProgressEvent, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			event_type,
			completed_at
		FROM order_progress_events
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*order.ProgressEvent, 0)
	for rows.Next() {
		var eventTypeStr string
		var completedAt *time.Time

		if err = rows.Scan(&eventTypeStr, &completedAt); err != nil {
			return nil, err
		}

		eventType, typeErr := order.EventTypeFromString(eventTypeStr)
		if typeErr != nil {
			return nil, typeErr
		}

		event, eventErr := order.RestoreProgressEvent(eventType, completedAt)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// loadDocumentTypes returns the set of document types present for the order.
// Any document of a type satisfies its gate, superseded versions included.
func (h GetOrderProgressQueryHandler) loadDocumentTypes(
	ctx context.Context,
	orderID kernel.UUID,
) (map[string]bool, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT type
		FROM documents
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make(map[string]bool)
	for rows.Next() {
		var docType string
		if err = rows.Scan(&docType); err != nil {
			return nil, err
		}
		types[docType] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

func (h GetOrderProgressQueryHandler) loadHistory(
	ctx context.Context,
	orderID kernel.UUID,
) ([]StatusChangeResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			previous_status,
			new_status,
			changed_by,
			notes,
			occurred_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY occurred_at DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeResponse, 0)
	for rows.Next() {
		var change StatusChangeResponse
		if err = rows.Scan(
			&change.PreviousStatus,
			&change.NewStatus,
			&change.ChangedBy,
			&change.Notes,
			&change.OccurredAt,
		); err != nil {
			return nil, err
		}
		history = append(history, change)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// buildSteps produces the checklist: the order's required steps in canonical
// order, then any recorded steps the order no longer requires.
func buildSteps(aggregate *order.Order, documentTypes map[string]bool) []ProgressStepResponse {
	gate := services.NewDocumentGate()
	required := aggregate.RequiredSteps()
	requiredSet := make(map[order.EventType]bool, len(required))

	steps := make([]ProgressStepResponse, 0, len(required))
	for _, eventType := range required {
		requiredSet[eventType] = true
		steps = append(steps, buildStep(aggregate, gate, eventType, true, documentTypes))
	}

	for _, event := range aggregate.ProgressEvents() {
		if requiredSet[event.EventType()] {
			continue
		}
		steps = append(steps, buildStep(aggregate, gate, event.EventType(), false, documentTypes))
	}

	return steps
}

func buildStep(
	aggregate *order.Order,
	gate services.DocumentGate,
	eventType order.EventType,
	required bool,
	documentTypes map[string]bool,
) ProgressStepResponse {
	step := ProgressStepResponse{
		EventType: eventType.String(),
		Required:  required,
		Completed: aggregate.StepCompleted(eventType),
	}

	for _, event := range aggregate.ProgressEvents() {
		if event.EventType() == eventType {
			step.CompletedAt = event.CompletedAt()
			break
		}
	}

	if docType, gated := gate.RequiredDocument(eventType); gated {
		step.RequiredDocument = docType.String()
		step.HasDocument = documentTypes[docType.String()]
	}

	return step
}
