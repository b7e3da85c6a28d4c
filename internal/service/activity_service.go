package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront/internal/events"
	"github.com/spec-kit/storefront/internal/observability"
)

// ActivityService records cart and session activity.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventCartItemAdded, a.handleCartEvent)
	a.dispatcher.Subscribe(events.EventCartItemRemoved, a.handleCartEvent)
	a.dispatcher.Subscribe(events.EventSessionIssued, a.handleSessionEvent)
	a.dispatcher.Subscribe(events.EventSessionCleared, a.handleSessionEvent)
}

func (a *ActivityService) handleCartEvent(_ context.Context, event events.Event) error {
	a.metrics.RecordActivity(string(event.Type))
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("user_id", event.Actor.ID),
	}
	if payload, ok := event.Payload.(events.CartItemPayload); ok {
		fields = append(fields, zap.String("product_id", payload.ProductID))
	}
	a.logger.Info("cart changed", fields...)
	return nil
}

func (a *ActivityService) handleSessionEvent(_ context.Context, event events.Event) error {
	a.metrics.RecordActivity(string(event.Type))
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.Actor.ID),
	}
	if payload, ok := event.Payload.(events.SessionPayload); ok {
		fields = append(fields, zap.String("role", string(payload.Role)))
		if !payload.ExpiresAt.IsZero() {
			fields = append(fields, zap.Time("expires_at", payload.ExpiresAt))
		}
	}
	a.logger.Info("session activity", fields...)
	return nil
}
