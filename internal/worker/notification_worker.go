package worker

import (
	"go.uber.org/zap"

	"github.com/assetflow/asset-service/internal/events"
	"github.com/assetflow/asset-service/internal/service"
)

// StartNotificationWorker subscribes notifications to every workflow event
// type and returns the types it is listening on.
func StartNotificationWorker(dispatcher events.Dispatcher, notifications *service.NotificationService, logger *zap.Logger) []events.EventType {
	if dispatcher == nil || notifications == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	types := events.AllEventTypes()
	for _, eventType := range types {
		dispatcher.Subscribe(eventType, notifications.Handle)
	}
	logger.Info("notification worker started",
		zap.Int("event_types", len(types)),
		zap.Bool("stream_forwarding", notifications.Forwarding()))
	return types
}
