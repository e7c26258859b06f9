package queue

import (
	"context"
	"timealign/internal/model"
)

type Delivery struct {
	Data *model.NotificationJob
	Ack  func()
	Nack func(requeue bool)
}

type NotificationQueue interface {
	// 發送推播工作到隊列
	PublishNotification(ctx context.Context, job *model.NotificationJob) error
	// 訂閱推播工作隊列
	SubscribeNotifications(ctx context.Context) (<-chan Delivery, error)
}

type NotificationQueueImpl struct {
	// 使用 Go channel 來模擬 MQ 隊列
	ch chan *model.NotificationJob
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	return &NotificationQueueImpl{
		ch: make(chan *model.NotificationJob, bufferSize),
	}
}

func (q *NotificationQueueImpl) PublishNotification(ctx context.Context, job *model.NotificationJob) error {
	q.ch <- job
	return nil
}

func (q *NotificationQueueImpl) SubscribeNotifications(ctx context.Context) (<-chan Delivery, error) {
	out := make(chan Delivery)

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case job, ok := <-q.ch:
				if !ok {
					return
				}

				out <- Delivery{
					Data: job,
					Ack:  func() { /* 記憶體版不用做特別動作 */ },
					Nack: func(requeue bool) {
						if requeue {
							q.ch <- job // 簡單模擬重回隊列
						}
					},
				}
			}
		}
	}()

	return out, nil
}
