package services

import (
	"context"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	"github.com/gestion-app/gestion_backend/internal/dto"
)

// OrderSvcFacade exposes the order aggregate operations.
type OrderSvcFacade interface {
	// CreateOrder validates the counterparty, issues refs for the order and its
	// payments, computes totals and persists everything atomically. Purchase
	// line items adjust stock in the same unit of work.
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest, agentID string) (*domain.Order, error)

	// UpdateOrder diffs the incoming payment list against the persisted
	// sub-ledger by ref and persists the diff with recomputed totals atomically.
	UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, agentID string) (*domain.Order, error)

	// GetOrderByID retrieves an active order with its payments.
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)

	// ListOrders retrieves a page of active orders.
	ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error)

	// DeleteOrder soft-deletes the order, cascading to its payments and their
	// settlement transactions in one atomic operation.
	DeleteOrder(ctx context.Context, orderID string, agentID string) error
}
