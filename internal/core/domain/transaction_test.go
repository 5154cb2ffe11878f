package domain_test

import (
	"testing"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func methodPtr(m domain.PaymentMethod) *domain.PaymentMethod { return &m }

func TestComputeBalances(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		txns     []domain.Transaction
		wantCash string
		wantChk  string
		wantTPE  string
		wantBank string
	}{
		{
			name:     "empty log",
			wantCash: "0", wantChk: "0", wantTPE: "0", wantBank: "0",
		},
		{
			name: "sales and receives credit their method",
			txns: []domain.Transaction{
				{Type: domain.TxnSale, Method: methodPtr(domain.MethodCash), Amount: dec("100")},
				{Type: domain.TxnReceive, Method: methodPtr(domain.MethodCheck), Amount: dec("40")},
				{Type: domain.TxnSale, Method: methodPtr(domain.MethodTPE), Amount: dec("60")},
			},
			wantCash: "100", wantChk: "40", wantTPE: "60", wantBank: "0",
		},
		{
			name: "purchases and sends debit their method",
			txns: []domain.Transaction{
				{Type: domain.TxnSale, Method: methodPtr(domain.MethodCash), Amount: dec("100")},
				{Type: domain.TxnPurchase, Method: methodPtr(domain.MethodCash), Amount: dec("30")},
				{Type: domain.TxnSend, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("25")},
			},
			wantCash: "70", wantChk: "0", wantTPE: "0", wantBank: "-25",
		},
		{
			name: "cashing a bank payment moves the position into cash",
			txns: []domain.Transaction{
				{Type: domain.TxnSale, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("100")},
				{Type: domain.TxnCashing, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("100")},
			},
			wantCash: "100", wantChk: "0", wantTPE: "0", wantBank: "0",
		},
		{
			name: "cashing a cash payment credits cash exactly once",
			txns: []domain.Transaction{
				{Type: domain.TxnCashing, Method: methodPtr(domain.MethodCash), Amount: dec("300")},
			},
			wantCash: "300", wantChk: "0", wantTPE: "0", wantBank: "0",
		},
		{
			name: "method-less transfers do not move method balances",
			txns: []domain.Transaction{
				{Type: domain.TxnSend, Amount: dec("500")},
				{Type: domain.TxnReceive, Amount: dec("500")},
			},
			wantCash: "0", wantChk: "0", wantTPE: "0", wantBank: "0",
		},
		{
			name: "soft-deleted entries are ignored",
			txns: []domain.Transaction{
				{Type: domain.TxnSale, Method: methodPtr(domain.MethodCash), Amount: dec("100")},
				{
					Type: domain.TxnSale, Method: methodPtr(domain.MethodCash), Amount: dec("999"),
					SoftDelete: domain.SoftDelete{DeletedAt: &now},
				},
			},
			wantCash: "100", wantChk: "0", wantTPE: "0", wantBank: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ComputeBalances(tt.txns)
			assert.True(t, got.Cash.Equal(dec(tt.wantCash)), "cash: got %s", got.Cash)
			assert.True(t, got.Check.Equal(dec(tt.wantChk)), "check: got %s", got.Check)
			assert.True(t, got.TPE.Equal(dec(tt.wantTPE)), "tpe: got %s", got.TPE)
			assert.True(t, got.BankTransfer.Equal(dec(tt.wantBank)), "bank: got %s", got.BankTransfer)
		})
	}
}

func TestComputeBalances_CashingReducesSourceMethod(t *testing.T) {
	before := domain.ComputeBalances([]domain.Transaction{
		{Type: domain.TxnSale, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("100")},
	})
	after := domain.ComputeBalances([]domain.Transaction{
		{Type: domain.TxnSale, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("100")},
		{Type: domain.TxnCashing, Method: methodPtr(domain.MethodBankTransfer), Amount: dec("100")},
	})
	assert.True(t, before.BankTransfer.Sub(after.BankTransfer).Equal(dec("100")))
	assert.True(t, after.Cash.Sub(before.Cash).Equal(dec("100")))
}

func TestPayment_Settlement(t *testing.T) {
	assert.Equal(t, domain.SettlementUnsettled, domain.Payment{}.Settlement())
	assert.Equal(t, domain.SettlementCashed, domain.Payment{CashingTransactionID: strPtr("t1")}.Settlement())
	assert.Equal(t, domain.SettlementDeposited, domain.Payment{DepositTransactionID: strPtr("t2")}.Settlement())
}
