package service

import (
	"context"
	"encoding/json"
	"net/http"

	"timealign/config"
	"timealign/internal/model"
	"timealign/internal/repository"
	"timealign/pkg/logger"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
)

type PushService interface {
	Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.PushSubscription, error)
	Unsubscribe(ctx context.Context, endpoint string) error
	List(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error)
	Count(ctx context.Context, eventID string) (int, error)
	// Dispatch 對活動全部訂閱做 fan-out；單一 endpoint 失敗不中斷其餘派送
	Dispatch(ctx context.Context, job *model.NotificationJob) error
	// VAPIDConfigured 回報金鑰是否齊備，供 health 端點診斷
	VAPIDConfigured() (hasPublic bool, hasPrivate bool)
}

// sendFunc 可替換的 webpush 發送函式，測試用
type sendFunc func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

type PushServiceImpl struct {
	repo repository.PushSubscriptionRepository
	cfg  config.PushConfig
	send sendFunc
}

func NewPushService(repo repository.PushSubscriptionRepository, cfg config.PushConfig) PushService {
	return &PushServiceImpl{
		repo: repo,
		cfg:  cfg,
		send: webpush.SendNotificationWithContext,
	}
}

func (s *PushServiceImpl) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.PushSubscription, error) {
	sub := &model.PushSubscription{
		EventID:  req.EventID,
		TenantID: req.TenantID,
		Endpoint: req.Endpoint,
		P256dh:   req.P256dh,
		Auth:     req.Auth,
	}
	return s.repo.Save(ctx, sub)
}

func (s *PushServiceImpl) Unsubscribe(ctx context.Context, endpoint string) error {
	return s.repo.DeleteByEndpoint(ctx, endpoint)
}

func (s *PushServiceImpl) List(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error) {
	return s.repo.ListByEventID(ctx, eventID, tenantID)
}

func (s *PushServiceImpl) Count(ctx context.Context, eventID string) (int, error) {
	return s.repo.CountByEventID(ctx, eventID)
}

func (s *PushServiceImpl) VAPIDConfigured() (bool, bool) {
	return s.cfg.VAPIDPublicKey != "", s.cfg.VAPIDPrivateKey != ""
}

func (s *PushServiceImpl) Dispatch(ctx context.Context, job *model.NotificationJob) error {
	log := logger.WithComponent("push").With(zap.String("event_id", job.EventID))

	subs, err := s.repo.ListByEventID(ctx, job.EventID, job.TenantID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		return nil
	}

	message, err := json.Marshal(job.Payload)
	if err != nil {
		return err
	}

	options := &webpush.Options{
		Subscriber:      s.cfg.Subject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             60,
	}

	sent := 0
	for _, sub := range subs {
		resp, err := s.send(ctx, message, &webpush.Subscription{
			Endpoint: sub.Endpoint,
			Keys: webpush.Keys{
				P256dh: sub.P256dh,
				Auth:   sub.Auth,
			},
		}, options)
		if err != nil {
			log.Warn("webpush send failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
			continue
		}

		// 404/410 表示訂閱已失效，順手清掉
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
			if err := s.repo.DeleteByEndpoint(ctx, sub.Endpoint); err != nil {
				log.Warn("prune dead subscription failed", zap.String("endpoint", sub.Endpoint), zap.Error(err))
			}
		} else {
			sent++
		}
		resp.Body.Close()
	}

	log.Info("notification dispatched", zap.Int("subscriptions", len(subs)), zap.Int("sent", sent))
	return nil
}
