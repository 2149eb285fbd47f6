package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/events"
)

// EventSink forwards events outside the process.
type EventSink interface {
	Handle(ctx context.Context, event events.Event) error
}

// NotificationService logs workflow events and forwards them downstream.
type NotificationService struct {
	logger *zap.Logger
	sink   EventSink
}

// NewNotificationService creates the service. sink may be nil.
func NewNotificationService(logger *zap.Logger, sink EventSink) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger, sink: sink}
}

// Forwarding reports whether events leave the process.
func (n *NotificationService) Forwarding() bool {
	return n != nil && n.sink != nil
}

// Handle is an events.EventHandler. Sink failures are logged, never returned.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("resource_id", event.ResourceID),
		zap.String("actor", event.Actor.Email),
		zap.Any("payload", event.Payload))

	if n.sink == nil {
		return nil
	}
	if err := n.sink.Handle(ctx, event); err != nil {
		n.logger.Warn("forward event failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
	return nil
}
