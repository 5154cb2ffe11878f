package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/core/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrderRepository ---
type MockOrderRepository struct {
	mock.Mock
}

var _ portsrepo.OrderRepositoryWithTx = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order domain.Order, stockDeltas map[string]decimal.Decimal) (*domain.Order, error) {
	args := m.Called(ctx, order, stockDeltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateOrderWithPaymentDiff(ctx context.Context, order domain.Order, diff domain.PaymentDiff) (*domain.Order, error) {
	args := m.Called(ctx, order, diff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) SoftDeleteOrderCascade(ctx context.Context, orderID string, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, orderID, deletedBy, deletedAt)
	return args.Error(0)
}

func (m *MockOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrders(ctx context.Context, orderType *domain.OrderType, limit int, nextToken *string) ([]domain.Order, *string, error) {
	args := m.Called(ctx, orderType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Order), returnedNextToken, args.Error(2)
}

func (m *MockOrderRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockOrderRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockOrderRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ContactReader ---
type MockContactReader struct {
	mock.Mock
}

var _ portsrepo.ContactReader = (*MockContactReader)(nil)

func (m *MockContactReader) FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error) {
	args := m.Called(ctx, contactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}

func (m *MockContactReader) ListContacts(ctx context.Context, kind *domain.ContactKind, limit int, offset int) ([]domain.Contact, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// --- Mock EventNotifier ---
type MockEventNotifier struct {
	mock.Mock
}

var _ portssvc.EventNotifier = (*MockEventNotifier)(nil)

func (m *MockEventNotifier) OrderCreated(order domain.Order) {
	m.Called(order)
}

func (m *MockEventNotifier) Close() {
	m.Called()
}

// --- Test Suite Setup ---
type OrderServiceTestSuite struct {
	suite.Suite
	mockOrderRepo   *MockOrderRepository
	mockContactRepo *MockContactReader
	mockNotifier    *MockEventNotifier
	service         portssvc.OrderSvcFacade
	agentID         string
	client          domain.Contact
	supplier        domain.Contact
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.mockOrderRepo = new(MockOrderRepository)
	suite.mockContactRepo = new(MockContactReader)
	suite.mockNotifier = new(MockEventNotifier)
	suite.service = services.NewOrderService(suite.mockOrderRepo, suite.mockContactRepo, suite.mockNotifier)

	suite.agentID = uuid.NewString()
	suite.client = domain.Contact{ContactID: uuid.NewString(), Kind: domain.ContactClient, Name: "Acme"}
	suite.supplier = domain.Contact{ContactID: uuid.NewString(), Kind: domain.ContactSupplier, Name: "Grossiste"}
}

func (suite *OrderServiceTestSuite) saleRequest() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Type: domain.OrderSale,
		Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Items: []dto.OrderItemRequest{
			{ArticleID: "art-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
		},
		Payments: []dto.PaymentRequest{
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(60), Method: domain.MethodCash},
		},
	}
}

func (suite *OrderServiceTestSuite) TestCreateOrder_Success() {
	req := suite.saleRequest()

	suite.mockOrderRepo.On("CreateOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.Type == domain.OrderSale &&
			o.TotalPrice.Equal(decimal.NewFromInt(100)) &&
			o.TotalPaid.Equal(decimal.NewFromInt(60)) &&
			o.TotalDue.Equal(decimal.NewFromInt(40))
	}), mock.Anything).Return(&domain.Order{OrderID: uuid.NewString(), Ref: "VEN-1", Type: domain.OrderSale}, nil).Once()
	suite.mockNotifier.On("OrderCreated", mock.Anything).Return().Once()

	order, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), order)
	assert.Equal(suite.T(), "VEN-1", order.Ref)
	suite.mockOrderRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_SaleStockDeltasEmpty() {
	req := suite.saleRequest()

	suite.mockOrderRepo.On("CreateOrder", mock.Anything, mock.Anything, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 0
	})).Return(&domain.Order{OrderID: uuid.NewString(), Type: domain.OrderSale}, nil).Once()
	suite.mockNotifier.On("OrderCreated", mock.Anything).Return().Once()

	_, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_PurchaseProducesStockDeltas() {
	req := dto.CreateOrderRequest{
		Type: domain.OrderPurchase,
		Date: time.Now().UTC(),
		Items: []dto.OrderItemRequest{
			{ArticleID: "art-1", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(10)},
			{ArticleID: "art-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockOrderRepo.On("CreateOrder", mock.Anything, mock.Anything, mock.MatchedBy(func(deltas map[string]decimal.Decimal) bool {
		return len(deltas) == 1 && deltas["art-1"].Equal(decimal.NewFromInt(5))
	})).Return(&domain.Order{OrderID: uuid.NewString(), Type: domain.OrderPurchase}, nil).Once()
	suite.mockNotifier.On("OrderCreated", mock.Anything).Return().Once()

	_, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestCreateOrder_NonPositivePaymentRejected() {
	req := suite.saleRequest()
	req.Payments[0].Amount = decimal.Zero

	_, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "CreateOrder")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_ContactKindMismatch() {
	req := suite.saleRequest()
	req.ContactID = &suite.supplier.ContactID

	suite.mockContactRepo.On("FindContactByID", mock.Anything, suite.supplier.ContactID).Return(&suite.supplier, nil).Once()

	_, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, services.ErrContactKindMismatch)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "CreateOrder")
}

func (suite *OrderServiceTestSuite) TestCreateOrder_UnknownContact() {
	req := suite.saleRequest()
	unknownID := uuid.NewString()
	req.ContactID = &unknownID

	suite.mockContactRepo.On("FindContactByID", mock.Anything, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateOrder(context.Background(), req, suite.agentID)

	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_DiffAppliedAndTotalsRecomputed() {
	orderID := uuid.NewString()
	keptRef := "VEN-2"
	persisted := &domain.Order{
		OrderID:    orderID,
		Type:       domain.OrderSale,
		TotalPrice: decimal.NewFromInt(100),
		Items: []domain.OrderItem{
			{ItemID: uuid.NewString(), OrderID: orderID, ArticleID: "art-1", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50)},
		},
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), OrderID: orderID, Ref: keptRef, Amount: decimal.NewFromInt(30), Method: domain.MethodCash},
			{PaymentID: uuid.NewString(), OrderID: orderID, Ref: "VEN-3", Amount: decimal.NewFromInt(20), Method: domain.MethodCheck},
		},
	}

	req := dto.UpdateOrderRequest{
		Date: time.Now().UTC(),
		Payments: []dto.PaymentRequest{
			// Kept and bumped from 30 to 50.
			{Ref: keptRef, Date: time.Now().UTC(), Amount: decimal.NewFromInt(50), Method: domain.MethodCash},
			// Brand new, ref-less.
			{Date: time.Now().UTC(), Amount: decimal.NewFromInt(25), Method: domain.MethodTPE},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, orderID).Return(persisted, nil).Once()
	suite.mockOrderRepo.On("UpdateOrderWithPaymentDiff", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.TotalPaid.Equal(decimal.NewFromInt(75)) && o.TotalDue.Equal(decimal.NewFromInt(25))
	}), mock.MatchedBy(func(d domain.PaymentDiff) bool {
		return len(d.ToInsert) == 1 && len(d.ToUpdate) == 1 && len(d.ToRemove) == 1 &&
			d.ToUpdate[0].Ref == keptRef && d.ToUpdate[0].Amount.Equal(decimal.NewFromInt(50)) &&
			d.ToRemove[0].Ref == "VEN-3"
	})).Return(&domain.Order{OrderID: orderID}, nil).Once()

	_, err := suite.service.UpdateOrder(context.Background(), orderID, req, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_UnknownRefRejected() {
	orderID := uuid.NewString()
	persisted := &domain.Order{OrderID: orderID, Type: domain.OrderSale}

	req := dto.UpdateOrderRequest{
		Date: time.Now().UTC(),
		Payments: []dto.PaymentRequest{
			{Ref: "VEN-999", Date: time.Now().UTC(), Amount: decimal.NewFromInt(10), Method: domain.MethodCash},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, orderID).Return(persisted, nil).Once()

	_, err := suite.service.UpdateOrder(context.Background(), orderID, req, suite.agentID)

	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrValidation)
	suite.mockOrderRepo.AssertNotCalled(suite.T(), "UpdateOrderWithPaymentDiff")
}

func (suite *OrderServiceTestSuite) TestUpdateOrder_DuplicateRefConflict() {
	orderID := uuid.NewString()
	persisted := &domain.Order{
		OrderID: orderID,
		Type:    domain.OrderSale,
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), OrderID: orderID, Ref: "VEN-5", Amount: decimal.NewFromInt(10), Method: domain.MethodCash},
		},
	}

	req := dto.UpdateOrderRequest{
		Date: time.Now().UTC(),
		Payments: []dto.PaymentRequest{
			{Ref: "VEN-5", Date: time.Now().UTC(), Amount: decimal.NewFromInt(10), Method: domain.MethodCash},
			{Ref: "VEN-5", Date: time.Now().UTC(), Amount: decimal.NewFromInt(15), Method: domain.MethodCash},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, orderID).Return(persisted, nil).Once()

	_, err := suite.service.UpdateOrder(context.Background(), orderID, req, suite.agentID)

	assert.Error(suite.T(), err)
	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *OrderServiceTestSuite) TestGetOrderByID_TotalsMismatchIsInternal() {
	orderID := uuid.NewString()
	broken := &domain.Order{
		OrderID:    orderID,
		Type:       domain.OrderSale,
		TotalPrice: decimal.NewFromInt(100),
		TotalPaid:  decimal.NewFromInt(999),
		TotalDue:   decimal.NewFromInt(-899),
		Payments: []domain.Payment{
			{PaymentID: uuid.NewString(), Amount: decimal.NewFromInt(30), Method: domain.MethodCash},
		},
	}

	suite.mockOrderRepo.On("FindOrderByID", mock.Anything, orderID).Return(broken, nil).Once()

	_, err := suite.service.GetOrderByID(context.Background(), orderID)

	assert.Error(suite.T(), err)
	var appErr *apperrors.AppError
	assert.ErrorAs(suite.T(), err, &appErr)
	assert.Equal(suite.T(), 500, appErr.Code)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_Cascades() {
	orderID := uuid.NewString()

	suite.mockOrderRepo.On("SoftDeleteOrderCascade", mock.Anything, orderID, suite.agentID, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteOrder(context.Background(), orderID, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockOrderRepo.AssertExpectations(suite.T())
}

func (suite *OrderServiceTestSuite) TestDeleteOrder_NotFound() {
	orderID := uuid.NewString()

	suite.mockOrderRepo.On("SoftDeleteOrderCascade", mock.Anything, orderID, suite.agentID, mock.Anything).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteOrder(context.Background(), orderID, suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
