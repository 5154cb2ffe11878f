// Package events publishes fire-and-forget business events. Events are
// emitted only after the owning database transaction has committed and are
// never awaited: the PostHog client batches and delivers in the background.
package events

import (
	"log/slog"

	"github.com/gestion-app/gestion_backend/internal/core/domain"
	portssvc "github.com/gestion-app/gestion_backend/internal/core/ports/services"
	"github.com/posthog/posthog-go"
)

// PosthogNotifier implements the EventNotifier port on top of posthog-go.
// A zero-value notifier (empty API key) is a safe no-op.
type PosthogNotifier struct {
	client posthog.Client
	logger *slog.Logger
}

var _ portssvc.EventNotifier = (*PosthogNotifier)(nil)

// NewPosthogNotifier creates the notifier, or a no-op one when apiKey is empty.
func NewPosthogNotifier(apiKey string, endpoint string, logger *slog.Logger) *PosthogNotifier {
	if apiKey == "" {
		logger.Warn("PostHog API key is empty, order events will not be published.")
		return &PosthogNotifier{logger: logger}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize PostHog client", slog.String("error", err.Error()))
		return &PosthogNotifier{logger: logger}
	}
	return &PosthogNotifier{client: client, logger: logger}
}

// OrderCreated publishes the order-created event. Never blocks on delivery.
func (n *PosthogNotifier) OrderCreated(order domain.Order) {
	if n.client == nil {
		return
	}
	err := n.client.Enqueue(posthog.Capture{
		DistinctId: order.AgentID,
		Event:      "order_created",
		Properties: map[string]any{
			"order_ref":   order.Ref,
			"order_type":  string(order.Type),
			"total_price": order.TotalPrice.String(),
			"payments":    len(order.Payments),
		},
	})
	if err != nil && n.logger != nil {
		// Delivery problems never affect the committed order.
		n.logger.Warn("Failed to enqueue order_created event", slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (n *PosthogNotifier) Close() {
	if n.client == nil {
		return
	}
	n.client.Close()
}
