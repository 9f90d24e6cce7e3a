package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"formation/internal/core/application/usecases/commands"
	"formation/internal/core/application/usecases/queries"
	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/services"
	"formation/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server handles the admin HTTP API. It coordinates between HTTP handlers and
// application use cases.
type Server struct {
	// Command handlers
	updateProgressHandler    commands.UpdateProgressCommandHandler
	uploadDocumentHandler    commands.UploadDocumentCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderProgressHandler queries.GetOrderProgressQueryHandler
	getOrdersHandler        queries.GetOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateProgressHandler commands.UpdateProgressCommandHandler,
	uploadDocumentHandler commands.UploadDocumentCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderProgressHandler queries.GetOrderProgressQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
) *Server {
	return &Server{
		updateProgressHandler:    updateProgressHandler,
		uploadDocumentHandler:    uploadDocumentHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderProgressHandler:  getOrderProgressHandler,
		getOrdersHandler:         getOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/orders/:id/progress", s.UpdateProgress)
	e.POST("/api/orders/documents/upload", s.UploadDocument)
	e.POST("/api/orders/:id/status", s.ChangeOrderStatus)
	e.GET("/api/orders/:id/progress", s.GetOrderProgress)
	e.GET("/api/orders", s.GetOrders)
	e.GET("/health", s.Health)
}

type updateProgressRequest struct {
	EventType string `json:"eventType"`
	Completed bool   `json:"completed"`
}

type changeOrderStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changedBy"`
	Notes     string `json:"notes"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type uploadDocumentResponse struct {
	Success  bool             `json:"success"`
	Document documentResponse `json:"document"`
}

type documentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Type      string    `json:"type"`
	FileName  string    `json:"fileName"`
	FilePath  string    `json:"filePath"`
	FileSize  int64     `json:"fileSize"`
	IsLatest  bool      `json:"isLatest"`
	IsFinal   bool      `json:"isFinal"`
	CreatedAt time.Time `json:"createdAt"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// UpdateProgress handles POST /api/orders/:id/progress - toggles a progress
// step for an order.
func (s *Server) UpdateProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order id"})
	}

	var req updateProgressRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	cmd, err := commands.NewUpdateProgressCommand(orderID, req.EventType, req.Completed)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if handleErr := s.updateProgressHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}

// UploadDocument handles POST /api/orders/documents/upload - stores an
// uploaded file and records it against the order.
func (s *Server) UploadDocument(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "file is required"})
	}

	orderID, err := kernel.UUIDFromString(ctx.FormValue("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order id"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to read uploaded file"})
	}
	defer file.Close()

	cmd, err := commands.NewUploadDocumentCommand(
		orderID,
		ctx.FormValue("documentType"),
		fileHeader.Filename,
		fileHeader.Size,
		file,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	doc, handleErr := s.uploadDocumentHandler.Handle(ctx.Request().Context(), cmd)
	if handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, uploadDocumentResponse{
		Success:  true,
		Document: documentToResponse(doc),
	})
}

// ChangeOrderStatus handles POST /api/orders/:id/status - manually overrides
// an order's status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order id"})
	}

	var req changeOrderStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, req.Status, req.ChangedBy, req.Notes)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	if handleErr := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return writeError(ctx, handleErr)
	}

	return ctx.JSON(http.StatusOK, successResponse{Success: true})
}

// GetOrderProgress handles GET /api/orders/:id/progress - returns the progress
// checklist and status history for an order.
func (s *Server) GetOrderProgress(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: "invalid order id"})
	}

	query, err := queries.NewGetOrderProgressQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	progress, err := s.getOrderProgressHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, progressToResponse(progress))
}

// GetOrders handles GET /api/orders - returns a page of orders, optionally
// filtered by status.
func (s *Server) GetOrders(ctx echo.Context) error {
	limit := intQueryParam(ctx, "limit")
	offset := intQueryParam(ctx, "offset")

	query, err := queries.NewGetOrdersQuery(ctx.QueryParam("status"), limit, offset)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]orderListItemResponse, len(orders))
	for i, o := range orders {
		response[i] = orderListItemResponse{
			ID:                     o.ID.String(),
			CompanyName:            o.CompanyName,
			Status:                 o.Status,
			NeedEIN:                o.NeedEIN,
			NeedOperatingAgreement: o.NeedOperatingAgreement,
			NeedBankLetter:         o.NeedBankLetter,
			CompletedAt:            o.CompletedAt,
			CreatedAt:              o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

type orderListItemResponse struct {
	ID                     string     `json:"id"`
	CompanyName            string     `json:"companyName"`
	Status                 string     `json:"status"`
	NeedEIN                bool       `json:"needEin"`
	NeedOperatingAgreement bool       `json:"needOperatingAgreement"`
	NeedBankLetter         bool       `json:"needBankLetter"`
	CompletedAt            *time.Time `json:"completedAt"`
	CreatedAt              time.Time  `json:"createdAt"`
}

type orderProgressResponse struct {
	OrderID     string                 `json:"orderId"`
	CompanyName string                 `json:"companyName"`
	Status      string                 `json:"status"`
	CompletedAt *time.Time             `json:"completedAt"`
	Steps       []progressStepResponse `json:"steps"`
	History     []statusChangeResponse `json:"history"`
}

type progressStepResponse struct {
	EventType        string     `json:"eventType"`
	Required         bool       `json:"required"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completedAt"`
	RequiredDocument string     `json:"requiredDocument,omitempty"`
	HasDocument      bool       `json:"hasDocument"`
}

type statusChangeResponse struct {
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
	ChangedBy      string    `json:"changedBy"`
	Notes          string    `json:"notes"`
	OccurredAt     time.Time `json:"occurredAt"`
}

func progressToResponse(progress queries.GetOrderProgressQueryResponse) orderProgressResponse {
	steps := make([]progressStepResponse, len(progress.Steps))
	for i, step := range progress.Steps {
		steps[i] = progressStepResponse{
			EventType:        step.EventType,
			Required:         step.Required,
			Completed:        step.Completed,
			CompletedAt:      step.CompletedAt,
			RequiredDocument: step.RequiredDocument,
			HasDocument:      step.HasDocument,
		}
	}

	history := make([]statusChangeResponse, len(progress.History))
	for i, change := range progress.History {
		history[i] = statusChangeResponse{
			PreviousStatus: change.PreviousStatus,
			NewStatus:      change.NewStatus,
			ChangedBy:      change.ChangedBy,
			Notes:          change.Notes,
			OccurredAt:     change.OccurredAt,
		}
	}

	return orderProgressResponse{
		OrderID:     progress.OrderID.String(),
		CompanyName: progress.CompanyName,
		Status:      progress.Status,
		CompletedAt: progress.CompletedAt,
		Steps:       steps,
		History:     history,
	}
}

func documentToResponse(doc *document.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID().String(),
		OrderID:   doc.OrderID().String(),
		Type:      doc.Type().String(),
		FileName:  doc.FileName(),
		FilePath:  doc.FilePath(),
		FileSize:  doc.FileSize(),
		IsLatest:  doc.IsLatest(),
		IsFinal:   doc.IsFinal(),
		CreatedAt: doc.CreatedAt(),
	}
}

// writeError maps application errors to HTTP responses. Domain validation
// failures and the document gate surface as client errors, missing aggregates
// as not found, everything else as a server error.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrDocumentRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func intQueryParam(ctx echo.Context, name string) int {
	value := ctx.QueryParam(name)
	if value == "" {
		return 0
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
