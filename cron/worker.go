package cron

import (
	"context"
	"encoding/json"
	"time"

	"slotify/config"
	"slotify/models"
	"slotify/services/notification"
	"slotify/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitNotificationWorker runs the async delivery worker in the background.
// It drains the notification queue and hands each event to the notification
// service, which persists the record and attempts the channel delivery.
func InitNotificationWorker(notifSvc notification.NotificationService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TypeNotificationDeliver, handleDeliverTask(notifSvc))

	go monitorRedisConnection()

	go func() {
		logger := utils.GetLogger()
		logger.Info("notification worker starting")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				logger.Error("notification worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))

				if attempts == maxAttempts {
					logger.Fatal("notification worker exhausted retry attempts")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDeliverTask(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var event models.NotificationEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			logger.Error("notification task has invalid payload", zap.Error(err))
			return err
		}

		logger.Debug("delivering queued notification",
			zap.String("userID", event.UserID),
			zap.String("type", event.Type),
			zap.String("title", event.Title))

		// Returning the channel error lets asynq retry transient failures; the
		// record is already persisted as FAILED for this attempt.
		if _, err := notifSvc.Create(ctx, event); err != nil {
			logger.Warn("queued notification delivery failed",
				zap.String("userID", event.UserID),
				zap.String("type", event.Type),
				zap.Error(err))
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			utils.GetLogger().Warn("notification queue redis connection lost", zap.Error(err))
		}
		time.Sleep(10 * time.Second)
	}
}
