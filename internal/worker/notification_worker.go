package worker

import (
	"context"

	"timealign/internal/queue"
	"timealign/internal/service"
)

type NotificationWorker interface {
	// 訂閱推播工作隊列
	Start(ctx context.Context) error
}

type NotificationWorkerImpl struct {
	service service.PushService
	queue   queue.NotificationQueue
}

func NewNotificationWorker(service service.PushService, queue queue.NotificationQueue) NotificationWorker {
	return &NotificationWorkerImpl{
		service: service,
		queue:   queue,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.SubscribeNotifications(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			// 派送失敗就 Nack 重試；fan-out 內單一 endpoint 失敗不算派送失敗
			err := w.service.Dispatch(ctx, msg.Data)

			if err != nil {
				msg.Nack(true)
			} else {
				msg.Ack()
			}
		}
	}()
	return nil
}
