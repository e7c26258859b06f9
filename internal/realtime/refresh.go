package realtime

import (
	"context"
	"fmt"

	"timealign/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RefreshTrigger 變更通知：只傳「活動 E 有變化、請整批重抓」的訊號，
// 不帶差異內容。訂閱端收到訊號後重新拉取完整參與者清單即可，重送無害。
type RefreshTrigger interface {
	Publish(ctx context.Context, eventID string) error
	// Subscribe 回傳訊號 channel 與取消函式；每個觀看 session 訂閱一次
	Subscribe(ctx context.Context, eventID string) (<-chan struct{}, func(), error)
}

type RedisRefreshTrigger struct {
	client *redis.Client
}

func NewRedisRefreshTrigger(client *redis.Client) RefreshTrigger {
	return &RedisRefreshTrigger{client: client}
}

func channelKey(eventID string) string {
	return fmt.Sprintf("event:%s:refresh", eventID)
}

func (t *RedisRefreshTrigger) Publish(ctx context.Context, eventID string) error {
	return t.client.Publish(ctx, channelKey(eventID), "refresh").Err()
}

func (t *RedisRefreshTrigger) Subscribe(ctx context.Context, eventID string) (<-chan struct{}, func(), error) {
	pubsub := t.client.Subscribe(ctx, channelKey(eventID))

	// 確認訂閱建立完成，避免漏掉緊接著的訊號
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	signals := make(chan struct{}, 1)
	go func() {
		defer close(signals)
		for range pubsub.Channel() {
			select {
			case signals <- struct{}{}:
			default:
				// 已有待處理訊號，合併即可：reload 是冪等的
			}
		}
	}()

	cancel := func() {
		if err := pubsub.Close(); err != nil {
			logger.WithComponent("realtime").Warn("pubsub close failed", zap.String("event_id", eventID), zap.Error(err))
		}
	}
	return signals, cancel, nil
}
