package queries

import (
	"errors"
	"time"

	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/pkg/guard"
)

var ErrGetOrdersQueryIsNotConstructed = errors.New(
	"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
)

const (
	// defaultOrdersPageSize is applied when the caller requests no limit.
	defaultOrdersPageSize = 50

	// maxOrdersPageSize caps a single page regardless of the requested limit.
	maxOrdersPageSize = 200
)

// GetOrdersQuery retrieves a page of orders for the admin list view, newest
// first, optionally filtered by status.
type GetOrdersQuery struct {
	status *order.Status
	limit  int
	offset int

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates a query for a page of orders. An empty status
// string means no filter. Non-positive limits fall back to the default page
// size, and limits above the cap are clamped.
func NewGetOrdersQuery(status string, limit int, offset int) (GetOrdersQuery, error) {
	var statusFilter *order.Status
	if status != "" {
		parsed, err := order.StatusFromString(status)
		if err != nil {
			return GetOrdersQuery{}, err
		}
		statusFilter = &parsed
	}

	if limit <= 0 {
		limit = defaultOrdersPageSize
	}
	if limit > maxOrdersPageSize {
		limit = maxOrdersPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return GetOrdersQuery{
		status: statusFilter,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersQueryIsNotConstructed if validation fails.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Status returns the status filter, or nil when no filter is applied.
func (q GetOrdersQuery) Status() *order.Status {
	return q.status
}

// Limit returns the page size.
func (q GetOrdersQuery) Limit() int {
	return q.limit
}

// Offset returns the number of orders to skip.
func (q GetOrdersQuery) Offset() int {
	return q.offset
}

// GetOrdersQueryResponse represents one order row in the admin list view.
type GetOrdersQueryResponse struct {
	ID                     kernel.UUID
	CompanyName            string
	Status                 string
	NeedEIN                bool
	NeedOperatingAgreement bool
	NeedBankLetter         bool
	CompletedAt            *time.Time
	CreatedAt              time.Time
}
