package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestion-app/gestion_backend/internal/apperrors"
	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portsrepo "github.com/gestion-app/gestion_backend/internal/core/ports/repositories"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/gestion-app/gestion_backend/internal/dto"
	"github.com/gestion-app/gestion_backend/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrContactKindMismatch wraps ErrValidation so the boundary reports it as a
// client error.
var ErrContactKindMismatch = fmt.Errorf("%w: contact kind does not match order type", apperrors.ErrValidation)

// orderService provides the order aggregate operations.
type orderService struct {
	orderRepo   portsrepo.OrderRepositoryWithTx
	contactRepo portsrepo.ContactReader
	notifier    portssvc.EventNotifier
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo portsrepo.OrderRepositoryWithTx, contactRepo portsrepo.ContactReader, notifier portssvc.EventNotifier) portssvc.OrderSvcFacade {
	return &orderService{
		orderRepo:   orderRepo,
		contactRepo: contactRepo,
		notifier:    notifier,
	}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// checkContact verifies the counterparty exists and is of the kind the order
// type requires: clients for sales, suppliers for purchases.
func (s *orderService) checkContact(ctx context.Context, contactID *string, orderType domain.OrderType) error {
	if contactID == nil {
		return nil
	}
	contact, err := s.contactRepo.FindContactByID(ctx, *contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("contact " + *contactID + " not found")
		}
		return err
	}
	wantKind := domain.ContactClient
	if orderType == domain.OrderPurchase {
		wantKind = domain.ContactSupplier
	}
	if contact.Kind != wantKind {
		return fmt.Errorf("%w: order type %s requires a %s", ErrContactKindMismatch, orderType, wantKind)
	}
	return nil
}

// paymentsFromRequests builds domain payments from the request entries and
// validates each one. For creation every entry gets a fresh identity; for
// update only ref-less entries do (the diff resolves the rest).
func paymentsFromRequests(reqs []dto.PaymentRequest, orderID string, agentID string, now time.Time) ([]domain.Payment, error) {
	payments := make([]domain.Payment, len(reqs))
	for i, pr := range reqs {
		payments[i] = domain.Payment{
			PaymentID: uuid.NewString(),
			OrderID:   orderID,
			Ref:       pr.Ref,
			Date:      pr.Date,
			Amount:    pr.Amount,
			Method:    pr.Method,
			AgentID:   agentID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     agentID,
				LastUpdatedAt: now,
				LastUpdatedBy: agentID,
			},
		}
		if err := payments[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: payment %d: %v", apperrors.ErrValidation, i, err)
		}
	}
	return payments, nil
}

// CreateOrder validates the counterparty and payments, assembles the
// aggregate with computed totals, and persists it atomically. Purchase line
// items increase article stock in the same unit of work.
func (s *orderService) CreateOrder(ctx context.Context, req dto.CreateOrderRequest, agentID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown order type %q", apperrors.ErrValidation, req.Type)
	}
	if err := s.checkContact(ctx, req.ContactID, req.Type); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     agentID,
		LastUpdatedAt: now,
		LastUpdatedBy: agentID,
	}

	items := make([]domain.OrderItem, len(req.Items))
	for i, ir := range req.Items {
		if ir.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: item %d: quantity must be strictly positive", apperrors.ErrValidation, i)
		}
		if ir.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d: unit price cannot be negative", apperrors.ErrValidation, i)
		}
		items[i] = domain.OrderItem{
			ItemID:      uuid.NewString(),
			OrderID:     orderID,
			ArticleID:   ir.ArticleID,
			Quantity:    ir.Quantity,
			UnitPrice:   ir.UnitPrice,
			AuditFields: audit,
		}
	}

	payments, err := paymentsFromRequests(req.Payments, orderID, agentID, now)
	if err != nil {
		return nil, err
	}
	// Refs are issued at persistence time; a request that smuggles one in
	// would collide with the sequences.
	for i := range payments {
		payments[i].Ref = ""
	}

	order := domain.Order{
		OrderID:       orderID,
		Type:          req.Type,
		Date:          req.Date,
		AgentID:       agentID,
		ContactID:     req.ContactID,
		ReceiptNumber: req.ReceiptNumber,
		InvoiceNumber: req.InvoiceNumber,
		Items:         items,
		Payments:      payments,
		AuditFields:   audit,
	}
	order.RecomputeTotals()

	created, err := s.orderRepo.CreateOrder(ctx, order, order.StockDeltas())
	if err != nil {
		logger.Error("Failed to create order", slog.String("error", err.Error()), slog.String("order_type", string(req.Type)))
		return nil, err
	}

	logger.Info("Order created", slog.String("order_id", created.OrderID), slog.String("ref", created.Ref))
	if s.notifier != nil {
		s.notifier.OrderCreated(*created)
	}
	return created, nil
}

// UpdateOrder applies header edits and the ref-based payment diff atomically.
func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req dto.UpdateOrderRequest, agentID string) (*domain.Order, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	persisted, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkContact(ctx, req.ContactID, persisted.Type); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	incoming, err := paymentsFromRequests(req.Payments, orderID, agentID, now)
	if err != nil {
		return nil, err
	}

	diff, err := domain.DiffPayments(persisted.Payments, incoming)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicatePaymentRef):
			return nil, apperrors.NewConflictError(err.Error())
		case errors.Is(err, domain.ErrUnknownPaymentRef):
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		default:
			return nil, err
		}
	}
	for i := range diff.ToUpdate {
		diff.ToUpdate[i].LastUpdatedAt = now
		diff.ToUpdate[i].LastUpdatedBy = agentID
	}

	updated := *persisted
	updated.Date = req.Date
	updated.ContactID = req.ContactID
	updated.ReceiptNumber = req.ReceiptNumber
	updated.InvoiceNumber = req.InvoiceNumber
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = agentID
	updated.Payments = append(append([]domain.Payment{}, diff.ToUpdate...), diff.ToInsert...)
	updated.RecomputeTotals()

	result, err := s.orderRepo.UpdateOrderWithPaymentDiff(ctx, updated, diff)
	if err != nil {
		logger.Error("Failed to update order", slog.String("error", err.Error()), slog.String("order_id", orderID))
		return nil, err
	}

	logger.Info("Order updated", slog.String("order_id", orderID),
		slog.Int("payments_added", len(diff.ToInsert)),
		slog.Int("payments_removed", len(diff.ToRemove)),
	)
	return result, nil
}

// GetOrderByID retrieves an active order and cross-checks its stored totals
// against the sub-ledger before handing it out.
func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.CheckTotals(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Order totals inconsistent with sub-ledger",
			slog.String("order_id", orderID), slog.String("error", err.Error()))
		return nil, apperrors.NewAppError(500, "order "+orderID+" totals are inconsistent", err)
	}
	return order, nil
}

// ListOrders retrieves a page of active orders.
func (s *orderService) ListOrders(ctx context.Context, params dto.ListOrdersParams) (*dto.ListOrdersResponse, error) {
	orders, nextToken, err := s.orderRepo.ListOrders(ctx, params.Type, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = dto.ToOrderResponse(&orders[i])
	}
	return &dto.ListOrdersResponse{Orders: responses, NextToken: nextToken}, nil
}

// DeleteOrder soft-deletes the order and cascades to its payments and their
// settlement transactions.
func (s *orderService) DeleteOrder(ctx context.Context, orderID string, agentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()
	if err := s.orderRepo.SoftDeleteOrderCascade(ctx, orderID, agentID, now); err != nil {
		return err
	}
	logger.Info("Order deleted", slog.String("order_id", orderID))
	return nil
}
