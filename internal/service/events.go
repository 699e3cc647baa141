package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/eduvillage-api/pkg/events"
)

// publishEvent emits a domain event after a committed write. Delivery is
// best effort: a failure is logged and never fails the request.
func publishEvent(ctx context.Context, publisher events.Publisher, logger *zap.Logger, eventType string, data interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, eventType, data); err != nil {
		logger.Warn("publish event failed", zap.String("event", eventType), zap.Error(err))
	}
}
