package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	"github.com/gestion-app/gestion_backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionReader ---
type MockTransactionReader struct {
	mock.Mock
}

var _ portsrepo.TransactionReader = (*MockTransactionReader)(nil)

func (m *MockTransactionReader) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) FindActiveTransactions(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionReader) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func newTxn(txnType domain.TransactionType, method *domain.PaymentMethod, amount int64) domain.Transaction {
	return domain.Transaction{
		TransactionID: uuid.NewString(),
		Date:          time.Now().UTC(),
		Type:          txnType,
		Method:        method,
		Amount:        decimal.NewFromInt(amount),
	}
}

func TestGetBalances_FoldsFullLog(t *testing.T) {
	mockReader := new(MockTransactionReader)
	svc := services.NewReportingService(mockReader)

	check := domain.MethodCheck
	cash := domain.MethodCash

	txns := []domain.Transaction{
		newTxn(domain.TxnSale, &cash, 100),
		newTxn(domain.TxnSale, &check, 80),
		newTxn(domain.TxnPurchase, &cash, 30),
		// Deposit of the check: check balance drops, cash rises.
		newTxn(domain.TxnCashing, &check, 80),
	}
	mockReader.On("FindActiveTransactions", mock.Anything).Return(txns, nil).Once()

	balances, err := svc.GetBalances(context.Background())

	assert.NoError(t, err)
	assert.True(t, balances.Cash.Equal(decimal.NewFromInt(150)), "cash: got %s", balances.Cash)
	assert.True(t, balances.Check.Equal(decimal.Zero), "check: got %s", balances.Check)
	mockReader.AssertExpectations(t)
}

func TestGetBalances_EmptyLedgerIsAllZero(t *testing.T) {
	mockReader := new(MockTransactionReader)
	svc := services.NewReportingService(mockReader)

	mockReader.On("FindActiveTransactions", mock.Anything).Return([]domain.Transaction{}, nil).Once()

	balances, err := svc.GetBalances(context.Background())

	assert.NoError(t, err)
	assert.True(t, balances.Cash.IsZero())
	assert.True(t, balances.Check.IsZero())
	assert.True(t, balances.TPE.IsZero())
	assert.True(t, balances.BankTransfer.IsZero())
}

func TestGetBalances_RepoErrorPropagates(t *testing.T) {
	mockReader := new(MockTransactionReader)
	svc := services.NewReportingService(mockReader)

	mockReader.On("FindActiveTransactions", mock.Anything).Return(nil, assert.AnError).Once()

	_, err := svc.GetBalances(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
}
