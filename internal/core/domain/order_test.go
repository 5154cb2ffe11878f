package domain_test

import (
	"testing"
	"time"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestOrder_RecomputeTotals(t *testing.T) {
	now := time.Now()
	deleted := domain.SoftDelete{DeletedAt: &now}

	tests := []struct {
		name      string
		items     []domain.OrderItem
		payments  []domain.Payment
		wantPrice string
		wantPaid  string
		wantDue   string
	}{
		{
			name:      "empty order",
			wantPrice: "0",
			wantPaid:  "0",
			wantDue:   "0",
		},
		{
			name: "items only",
			items: []domain.OrderItem{
				{Quantity: dec("2"), UnitPrice: dec("50")},
				{Quantity: dec("1"), UnitPrice: dec("199.99")},
			},
			wantPrice: "299.99",
			wantPaid:  "0",
			wantDue:   "299.99",
		},
		{
			name: "partially paid",
			items: []domain.OrderItem{
				{Quantity: dec("3"), UnitPrice: dec("100")},
			},
			payments: []domain.Payment{
				{Amount: dec("120"), Method: domain.MethodCash},
				{Amount: dec("80"), Method: domain.MethodCheck},
			},
			wantPrice: "300",
			wantPaid:  "200",
			wantDue:   "100",
		},
		{
			name: "soft-deleted payments excluded from paid total",
			items: []domain.OrderItem{
				{Quantity: dec("1"), UnitPrice: dec("300")},
			},
			payments: []domain.Payment{
				{Amount: dec("300"), Method: domain.MethodCash},
				{Amount: dec("50"), Method: domain.MethodCash, SoftDelete: deleted},
			},
			wantPrice: "300",
			wantPaid:  "300",
			wantDue:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := domain.Order{Items: tt.items, Payments: tt.payments}
			order.RecomputeTotals()
			assert.True(t, order.TotalPrice.Equal(dec(tt.wantPrice)), "price: got %s", order.TotalPrice)
			assert.True(t, order.TotalPaid.Equal(dec(tt.wantPaid)), "paid: got %s", order.TotalPaid)
			assert.True(t, order.TotalDue.Equal(dec(tt.wantDue)), "due: got %s", order.TotalDue)
			assert.NoError(t, order.CheckTotals())
		})
	}
}

func TestOrder_CheckTotals_Mismatch(t *testing.T) {
	order := domain.Order{
		TotalPrice: dec("300"),
		TotalPaid:  dec("100"),
		TotalDue:   dec("150"), // should be 200
	}
	err := order.CheckTotals()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTotalsMismatch)
}

func TestDiffPayments(t *testing.T) {
	persisted := []domain.Payment{
		{PaymentID: "p1", Ref: "VEN-1", Amount: dec("100"), Method: domain.MethodCash, CashingTransactionID: strPtr("t1")},
		{PaymentID: "p2", Ref: "VEN-2", Amount: dec("50"), Method: domain.MethodCheck},
	}

	t.Run("update preserves identity and settlement link", func(t *testing.T) {
		incoming := []domain.Payment{
			{Ref: "VEN-1", Amount: dec("120"), Method: domain.MethodCash, AgentID: "agent-2"},
			{Ref: "VEN-2", Amount: dec("50"), Method: domain.MethodCheck},
		}
		diff, err := domain.DiffPayments(persisted, incoming)
		require.NoError(t, err)
		assert.Empty(t, diff.ToInsert)
		assert.Empty(t, diff.ToRemove)
		require.Len(t, diff.ToUpdate, 2)
		assert.Equal(t, "p1", diff.ToUpdate[0].PaymentID)
		assert.True(t, diff.ToUpdate[0].Amount.Equal(dec("120")))
		assert.Equal(t, "agent-2", diff.ToUpdate[0].AgentID)
		require.NotNil(t, diff.ToUpdate[0].CashingTransactionID)
		assert.Equal(t, "t1", *diff.ToUpdate[0].CashingTransactionID)
	})

	t.Run("missing incoming entry is removed", func(t *testing.T) {
		incoming := []domain.Payment{
			{Ref: "VEN-1", Amount: dec("100"), Method: domain.MethodCash},
		}
		diff, err := domain.DiffPayments(persisted, incoming)
		require.NoError(t, err)
		require.Len(t, diff.ToRemove, 1)
		assert.Equal(t, "p2", diff.ToRemove[0].PaymentID)
	})

	t.Run("ref-less entries are new", func(t *testing.T) {
		incoming := []domain.Payment{
			{Ref: "VEN-1", Amount: dec("100"), Method: domain.MethodCash},
			{Ref: "VEN-2", Amount: dec("50"), Method: domain.MethodCheck},
			{Amount: dec("30"), Method: domain.MethodTPE},
			{Amount: dec("20"), Method: domain.MethodCash},
		}
		diff, err := domain.DiffPayments(persisted, incoming)
		require.NoError(t, err)
		assert.Len(t, diff.ToInsert, 2)
		assert.Len(t, diff.ToUpdate, 2)
		assert.Empty(t, diff.ToRemove)
	})

	t.Run("duplicate incoming ref is a conflict", func(t *testing.T) {
		incoming := []domain.Payment{
			{Ref: "VEN-1", Amount: dec("100"), Method: domain.MethodCash},
			{Ref: "VEN-1", Amount: dec("10"), Method: domain.MethodCash},
		}
		_, err := domain.DiffPayments(persisted, incoming)
		assert.ErrorIs(t, err, domain.ErrDuplicatePaymentRef)
	})

	t.Run("unknown incoming ref is rejected", func(t *testing.T) {
		incoming := []domain.Payment{
			{Ref: "VEN-999", Amount: dec("10"), Method: domain.MethodCash},
		}
		_, err := domain.DiffPayments(persisted, incoming)
		assert.ErrorIs(t, err, domain.ErrUnknownPaymentRef)
	})

	t.Run("idempotent when incoming mirrors persisted", func(t *testing.T) {
		incoming := make([]domain.Payment, len(persisted))
		copy(incoming, persisted)
		diff, err := domain.DiffPayments(persisted, incoming)
		require.NoError(t, err)
		assert.Empty(t, diff.ToInsert)
		assert.Empty(t, diff.ToRemove)
		require.Len(t, diff.ToUpdate, len(persisted))
		for i, p := range diff.ToUpdate {
			assert.Equal(t, persisted[i], p)
		}
	})
}

func TestPayment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payment domain.Payment
		wantErr error
	}{
		{
			name:    "valid cash payment",
			payment: domain.Payment{Amount: dec("10"), Method: domain.MethodCash},
		},
		{
			name:    "zero amount",
			payment: domain.Payment{Amount: decimal.Zero, Method: domain.MethodCash},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			payment: domain.Payment{Amount: dec("-5"), Method: domain.MethodCheck},
			wantErr: domain.ErrNonPositiveAmount,
		},
		{
			name:    "unknown method",
			payment: domain.Payment{Amount: dec("10"), Method: "crypto"},
			wantErr: domain.ErrUnknownMethod,
		},
		{
			name: "both settlement links set",
			payment: domain.Payment{
				Amount:               dec("10"),
				Method:               domain.MethodCash,
				CashingTransactionID: strPtr("t1"),
				DepositTransactionID: strPtr("t2"),
			},
			wantErr: domain.ErrBothSettlementLinks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payment.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOrder_StockDeltas(t *testing.T) {
	items := []domain.OrderItem{
		{ArticleID: "a1", Quantity: dec("5"), UnitPrice: dec("10")},
		{ArticleID: "a2", Quantity: dec("2"), UnitPrice: dec("7")},
		{ArticleID: "a1", Quantity: dec("3"), UnitPrice: dec("10")},
	}

	t.Run("purchase increments stock per article", func(t *testing.T) {
		order := domain.Order{Type: domain.OrderPurchase, Items: items}
		deltas := order.StockDeltas()
		require.Len(t, deltas, 2)
		assert.True(t, deltas["a1"].Equal(dec("8")))
		assert.True(t, deltas["a2"].Equal(dec("2")))
	})

	t.Run("sale has no stock effect", func(t *testing.T) {
		order := domain.Order{Type: domain.OrderSale, Items: items}
		assert.Nil(t, order.StockDeltas())
	})
}
