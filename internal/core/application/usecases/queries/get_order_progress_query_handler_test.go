package queries_test

import (
	"context"
	"testing"
	"time"

	"formation/internal/adapters/out/postgres/documentrepo"
	"formation/internal/adapters/out/postgres/historyrepo"
	"formation/internal/adapters/out/postgres/orderrepo"
	"formation/internal/core/application/usecases/queries"
	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/core/domain/model/order"
	"formation/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker for seeding test data through the
// write-side repositories.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOrderProgressQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetOrderProgressQueryHandler
	orderRepo   *orderrepo.GormOrderRepository
	docRepo     *documentrepo.GormDocumentRepository
	historyRepo *historyrepo.GormStatusHistoryRepository
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ProgressEventDTO{},
		&documentrepo.DocumentDTO{},
		&historyrepo.StatusChangeDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOrderProgressQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
	suite.docRepo = documentrepo.NewGormDocumentRepository(db, &mockAggregateTracker{})
	suite.historyRepo = historyrepo.NewGormStatusHistoryRepository(db, &mockAggregateTracker{})
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderProgressQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE orders, order_progress_events, documents, order_status_history CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_BaseOrder_ListsRequiredSteps() {
	ctx := context.Background()

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "Base LLC", false, false, false, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), result.OrderID)
	suite.Equal("Base LLC", result.CompanyName)
	suite.Equal("PENDING_PROCESSING", result.Status)
	suite.Nil(result.CompletedAt)
	suite.Empty(result.History)

	suite.Require().Len(result.Steps, 3)
	suite.Equal("ORDER_RECEIVED", result.Steps[0].EventType)
	suite.Equal("LLC_FILED", result.Steps[1].EventType)
	suite.Equal("LLC_APPROVED", result.Steps[2].EventType)
	for _, step := range result.Steps {
		suite.True(step.Required)
		suite.False(step.Completed)
	}

	// Only LLC_APPROVED is gated among the base steps.
	suite.Empty(result.Steps[0].RequiredDocument)
	suite.Empty(result.Steps[1].RequiredDocument)
	suite.Equal("ARTICLES_OF_ORGANIZATION", result.Steps[2].RequiredDocument)
	suite.False(result.Steps[2].HasDocument)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_FullServiceOrder_ListsAllSevenSteps() {
	ctx := context.Background()

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "Full Service LLC", true, true, true, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result.Steps, 7)

	stepTypes := make([]string, 0, len(result.Steps))
	for _, step := range result.Steps {
		stepTypes = append(stepTypes, step.EventType)
	}
	suite.Equal([]string{
		"ORDER_RECEIVED",
		"LLC_FILED",
		"LLC_APPROVED",
		"EIN_FILED",
		"EIN_OBTAINED",
		"OPERATING_AGREEMENT_GENERATED",
		"BANK_RESOLUTION_LETTER_GENERATED",
	}, stepTypes)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_ReflectsProgressAndDocuments() {
	ctx := context.Background()
	now := time.Now().UTC()

	testOrder, err := order.NewOrder(kernel.NewUUID(), "Progress LLC", false, false, false, now)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.SetProgress(order.OrderReceived, true, now))
	suite.Require().NoError(testOrder.SetProgress(order.LLCFiled, true, now))
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	articles, err := document.NewDocument(
		kernel.NewUUID(), testOrder.ID(), document.ArticlesOfOrganization,
		"articles.pdf", "orders/x/articles.pdf", 512, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.docRepo.Add(ctx, articles))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	stepsByType := make(map[string]queries.ProgressStepResponse)
	for _, step := range result.Steps {
		stepsByType[step.EventType] = step
	}

	suite.True(stepsByType["ORDER_RECEIVED"].Completed)
	suite.NotNil(stepsByType["ORDER_RECEIVED"].CompletedAt)
	suite.True(stepsByType["LLC_FILED"].Completed)
	suite.False(stepsByType["LLC_APPROVED"].Completed)
	suite.True(stepsByType["LLC_APPROVED"].HasDocument)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_IncludesHistoryNewestFirst() {
	ctx := context.Background()
	now := time.Now().UTC()

	testOrder, err := order.NewOrder(kernel.NewUUID(), "History LLC", false, false, false, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	first, err := order.NewStatusChange(
		testOrder.ID(), order.PendingProcessing, order.Processing,
		order.SystemActor, "llc filed", now.Add(-time.Hour))
	suite.Require().NoError(err)
	second, err := order.NewStatusChange(
		testOrder.ID(), order.Processing, order.Completed,
		order.SystemActor, "all steps complete", now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.historyRepo.Add(ctx, first))
	suite.Require().NoError(suite.historyRepo.Add(ctx, second))

	query, err := queries.NewGetOrderProgressQuery(testOrder.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(result.History, 2)
	suite.Equal("COMPLETED", result.History[0].NewStatus)
	suite.Equal("PROCESSING", result.History[1].NewStatus)
	suite.Equal(order.SystemActor, result.History[0].ChangedBy)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	query, err := queries.NewGetOrderProgressQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderProgressQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetOrderProgressQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetOrderProgressQuery constructor")
}

func TestGetOrderProgressQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderProgressQueryHandlerTestSuite))
}
