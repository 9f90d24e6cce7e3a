package queries

import (
	"context"
	"time"

	"formation/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler retrieves pages of orders from the database for the
// admin list view.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order list queries.
// Requires a GORM database connection for query execution.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve a page of orders, newest first.
func (h GetOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersQuery,
) ([]GetOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			id,
			company_name,
			status,
			need_ein,
			need_operating_agreement,
			need_bank_letter,
			completed_at,
			created_at
		FROM orders
	`
	args := make([]any, 0, 3)

	if query.Status() != nil {
		sql += " WHERE status = ?"
		args = append(args, query.Status().String())
	}

	sql += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetOrdersQueryResponse
		var id uuid.UUID
		var completedAt *time.Time

		err = rows.Scan(
			&id,
			&resp.CompanyName,
			&resp.Status,
			&resp.NeedEIN,
			&resp.NeedOperatingAgreement,
			&resp.NeedBankLetter,
			&completedAt,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.CompletedAt = completedAt
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
