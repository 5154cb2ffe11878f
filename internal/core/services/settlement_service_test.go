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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) LinkSettlement(ctx context.Context, paymentID string, txn domain.Transaction, state domain.SettlementState) (*domain.Transaction, error) {
	args := m.Called(ctx, paymentID, txn, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockPaymentRepository) UnlinkSettlement(ctx context.Context, paymentID string, transactionID string, state domain.SettlementState, deletedBy string, deletedAt time.Time) error {
	args := m.Called(ctx, paymentID, transactionID, state, deletedBy, deletedAt)
	return args.Error(0)
}

// --- Test Suite Setup ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo *MockPaymentRepository
	service         portssvc.SettlementSvcFacade
	agentID         string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.service = services.NewSettlementService(suite.mockPaymentRepo)
	suite.agentID = uuid.NewString()
}

func (suite *SettlementServiceTestSuite) cashPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID: uuid.NewString(),
		OrderID:   uuid.NewString(),
		Ref:       "VEN-7",
		Amount:    decimal.NewFromInt(120),
		Method:    domain.MethodCash,
	}
}

func (suite *SettlementServiceTestSuite) checkPayment() *domain.Payment {
	return &domain.Payment{
		PaymentID: uuid.NewString(),
		OrderID:   uuid.NewString(),
		Ref:       "VEN-8",
		Amount:    decimal.NewFromInt(200),
		Method:    domain.MethodCheck,
	}
}

func (suite *SettlementServiceTestSuite) TestCashPayment_Success() {
	payment := suite.cashPayment()
	date := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("LinkSettlement", mock.Anything, payment.PaymentID, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnCashing &&
			txn.Amount.Equal(payment.Amount) &&
			txn.Method != nil && *txn.Method == domain.MethodCash &&
			txn.Date.Equal(date)
	}), domain.SettlementCashed).Return(&domain.Transaction{TransactionID: uuid.NewString(), Ref: "TRA-1"}, nil).Once()

	txn, err := suite.service.CashPayment(context.Background(), payment.PaymentID, date, suite.agentID)

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), txn)
	assert.Equal(suite.T(), "TRA-1", txn.Ref)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCashPayment_NonCashConflict() {
	payment := suite.checkPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.CashPayment(context.Background(), payment.PaymentID, time.Now().UTC(), suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "LinkSettlement")
}

func (suite *SettlementServiceTestSuite) TestCashPayment_AlreadySettledConflict() {
	payment := suite.cashPayment()
	txnID := uuid.NewString()
	payment.CashingTransactionID = &txnID

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.CashPayment(context.Background(), payment.PaymentID, time.Now().UTC(), suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "LinkSettlement")
}

func (suite *SettlementServiceTestSuite) TestUndoCashing_Success() {
	payment := suite.cashPayment()
	txnID := uuid.NewString()
	payment.CashingTransactionID = &txnID

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UnlinkSettlement", mock.Anything, payment.PaymentID, txnID, domain.SettlementCashed, suite.agentID, mock.Anything).Return(nil).Once()

	err := suite.service.UndoCashing(context.Background(), payment.PaymentID, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestUndoCashing_NotCashedConflict() {
	payment := suite.cashPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	err := suite.service.UndoCashing(context.Background(), payment.PaymentID, suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "UnlinkSettlement")
}

func (suite *SettlementServiceTestSuite) TestDepositPayment_Success() {
	payment := suite.checkPayment()
	date := time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("LinkSettlement", mock.Anything, payment.PaymentID, mock.MatchedBy(func(txn domain.Transaction) bool {
		// The deposit entry keeps the payment's own method so the balance
		// fold can debit the check balance and credit cash.
		return txn.Type == domain.TxnCashing &&
			txn.Method != nil && *txn.Method == domain.MethodCheck &&
			txn.Amount.Equal(payment.Amount)
	}), domain.SettlementDeposited).Return(&domain.Transaction{TransactionID: uuid.NewString(), Ref: "TRA-2"}, nil).Once()

	txn, err := suite.service.DepositPayment(context.Background(), payment.PaymentID, date, suite.agentID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "TRA-2", txn.Ref)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestDepositPayment_CashMethodConflict() {
	payment := suite.cashPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.DepositPayment(context.Background(), payment.PaymentID, time.Now().UTC(), suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "LinkSettlement")
}

func (suite *SettlementServiceTestSuite) TestDepositPayment_AlreadyDepositedConflict() {
	payment := suite.checkPayment()
	txnID := uuid.NewString()
	payment.DepositTransactionID = &txnID

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	_, err := suite.service.DepositPayment(context.Background(), payment.PaymentID, time.Now().UTC(), suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *SettlementServiceTestSuite) TestUndoDeposit_Success() {
	payment := suite.checkPayment()
	txnID := uuid.NewString()
	payment.DepositTransactionID = &txnID

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UnlinkSettlement", mock.Anything, payment.PaymentID, txnID, domain.SettlementDeposited, suite.agentID, mock.Anything).Return(nil).Once()

	err := suite.service.UndoDeposit(context.Background(), payment.PaymentID, suite.agentID)

	assert.NoError(suite.T(), err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestUndoDeposit_NotDepositedConflict() {
	payment := suite.checkPayment()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, payment.PaymentID).Return(payment, nil).Once()

	err := suite.service.UndoDeposit(context.Background(), payment.PaymentID, suite.agentID)

	assert.ErrorIs(suite.T(), err, apperrors.ErrConflict)
}

func (suite *SettlementServiceTestSuite) TestSettlement_PaymentNotFound() {
	paymentID := uuid.NewString()

	suite.mockPaymentRepo.On("FindPaymentByID", mock.Anything, paymentID).Return(nil, apperrors.ErrNotFound).Times(4)

	_, err := suite.service.CashPayment(context.Background(), paymentID, time.Now().UTC(), suite.agentID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)

	err = suite.service.UndoCashing(context.Background(), paymentID, suite.agentID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)

	_, err = suite.service.DepositPayment(context.Background(), paymentID, time.Now().UTC(), suite.agentID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)

	err = suite.service.UndoDeposit(context.Background(), paymentID, suite.agentID)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
