package documentrepo_test

import (
	"context"
	"testing"
	"time"

	"formation/internal/adapters/out/postgres/documentrepo"
	"formation/internal/core/domain/model/document"
	"formation/internal/core/domain/model/kernel"
	"formation/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// DocumentRepositoryIntegrationTestSuite provides integration tests for DocumentRepository
// using PostgreSQL containers to verify database persistence behavior.
type DocumentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *documentrepo.GormDocumentRepository
	tracker    *MockAggregateTracker
}

func (suite *DocumentRepositoryIntegrationTestSuite) SetupSuite() {
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&documentrepo.DocumentDTO{}))
}

func (suite *DocumentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE documents").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = documentrepo.NewGormDocumentRepository(suite.db, suite.tracker)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestAddAndGetLatest() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	doc := suite.createTestDocument(orderID, document.ArticlesOfOrganization, "articles.pdf")
	suite.tracker.On("TrackAggregate", doc.ID(), doc).Once()
	suite.Require().NoError(suite.repository.Add(ctx, doc))

	latest, err := suite.repository.GetLatest(ctx, orderID, document.ArticlesOfOrganization)
	suite.Require().NoError(err)

	suite.Equal(doc.ID(), latest.ID())
	suite.Equal(orderID, latest.OrderID())
	suite.Equal("articles.pdf", latest.FileName())
	suite.True(latest.IsLatest())
	suite.True(latest.IsFinal())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestGetLatest_NoDocument_ReturnsNotFoundError() {
	ctx := context.Background()

	latest, err := suite.repository.GetLatest(ctx, kernel.NewUUID(), document.EINConfirmation)

	suite.Nil(latest)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestUpdate_SupersededFlagIsPersisted() {
	ctx := context.Background()
	orderID := kernel.NewUUID()

	old := suite.createTestDocument(orderID, document.OperatingAgreement, "oa-v1.pdf")
	suite.tracker.On("TrackAggregate", old.ID(), old).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, old))

	replacement := suite.createTestDocument(orderID, document.OperatingAgreement, "oa-v2.pdf")
	suite.tracker.On("TrackAggregate", replacement.ID(), replacement).Once()

	old.MarkSuperseded()
	suite.Require().NoError(suite.repository.Update(ctx, old))
	suite.Require().NoError(suite.repository.Add(ctx, replacement))

	latest, err := suite.repository.GetLatest(ctx, orderID, document.OperatingAgreement)
	suite.Require().NoError(err)
	suite.Equal(replacement.ID(), latest.ID())
	suite.Equal("oa-v2.pdf", latest.FileName())

	all, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestGetAllForOrder_NewestFirst() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	otherOrderID := kernel.NewUUID()

	older, err := document.RestoreDocument(
		kernel.NewUUID(), orderID, document.Invoice,
		"invoice.pdf", "orders/x/invoice.pdf", 10,
		true, true, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)

	newer := suite.createTestDocument(orderID, document.Receipt, "receipt.pdf")
	foreign := suite.createTestDocument(otherOrderID, document.Invoice, "other.pdf")

	for _, d := range []*document.Document{older, newer, foreign} {
		suite.tracker.On("TrackAggregate", d.ID(), d).Once()
		suite.Require().NoError(suite.repository.Add(ctx, d))
	}

	all, err := suite.repository.GetAllForOrder(ctx, orderID)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.Equal(newer.ID(), all[0].ID())
	suite.Equal(older.ID(), all[1].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestGetAllForOrder_NoDocuments_ReturnsEmptySlice() {
	ctx := context.Background()

	all, err := suite.repository.GetAllForOrder(ctx, kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(all)
}

func (suite *DocumentRepositoryIntegrationTestSuite) TestUpdate_NonExistentDocument_ReturnsError() {
	ctx := context.Background()

	missing := suite.createTestDocument(kernel.NewUUID(), document.Receipt, "receipt.pdf")

	err := suite.repository.Update(ctx, missing)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

// createTestDocument creates a test document with default values.
func (suite *DocumentRepositoryIntegrationTestSuite) createTestDocument(
	orderID kernel.UUID, docType document.Type, fileName string,
) *document.Document {
	doc, err := document.NewDocument(
		kernel.NewUUID(), orderID, docType, fileName,
		"orders/"+orderID.String()+"/"+fileName, 2048, time.Now().UTC())
	suite.Require().NoError(err)
	return doc
}

func TestDocumentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentRepositoryIntegrationTestSuite))
}
