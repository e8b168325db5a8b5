package notification

import (
	"context"
	"encoding/json"
	"time"

	"slotify/models"
	"slotify/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TypeNotificationDeliver is the asynq task type for notification delivery.
const TypeNotificationDeliver = "notification:deliver"

// NewDeliverTask wraps a lifecycle event into an asynq task payload.
func NewDeliverTask(event models.NotificationEvent) (*asynq.Task, error) {
	b, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotificationDeliver, b), nil
}

// AsynqDispatcher enqueues delivery tasks so notification channels run off the
// request path. When the queue is unreachable it falls back to inline
// dispatch; either way the lifecycle transition has already committed.
type AsynqDispatcher struct {
	Client   *asynq.Client
	Fallback Dispatcher
}

func (d *AsynqDispatcher) Dispatch(event models.NotificationEvent) {
	logger := utils.GetLogger()

	task, err := NewDeliverTask(event)
	if err != nil {
		logger.Error("failed to build notification task", zap.Error(err))
		return
	}
	if _, err := d.Client.Enqueue(task, asynq.MaxRetry(3), asynq.Timeout(30*time.Second)); err != nil {
		logger.Warn("notification enqueue failed, dispatching inline", zap.Error(err))
		if d.Fallback != nil {
			d.Fallback.Dispatch(event)
		}
	}
}

// InlineDispatcher delivers in a background goroutine without a queue. Used
// when Redis is not configured and as the AsynqDispatcher fallback.
type InlineDispatcher struct {
	Svc NotificationService
}

func (d *InlineDispatcher) Dispatch(event models.NotificationEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := d.Svc.Create(ctx, event); err != nil {
			utils.GetLogger().Warn("notification delivery failed",
				zap.String("userID", event.UserID),
				zap.String("type", event.Type),
				zap.Error(err))
		}
	}()
}
