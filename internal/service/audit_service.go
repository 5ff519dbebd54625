package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/erp-service/internal/events"
)

// AuditService records domain events through the structured logger.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventOrderCreated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventOrderUpdated, a.handleEvent)
	a.dispatcher.Subscribe(events.EventOrderDeleted, a.handleEvent)
	a.dispatcher.Subscribe(events.EventUserCreated, a.handleEvent)
}

func (a *AuditService) handleEvent(_ context.Context, event events.Event) error {
	a.logger.Info("audit",
		zap.String("event_type", string(event.Type)),
		zap.String("entity_id", event.EntityID),
		zap.String("actor_id", event.ActorID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
