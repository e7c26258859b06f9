package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"timealign/config"
	"timealign/internal/model"
	"timealign/internal/repository/mocks"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeResponse(status int) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}
}

func TestPushService_Dispatch(t *testing.T) {
	ctx := context.Background()
	cfg := config.PushConfig{VAPIDPublicKey: "pub", VAPIDPrivateKey: "prv", Subject: "mailto:x@y"}

	subs := []*model.PushSubscription{
		{Endpoint: "https://push.example/a", P256dh: "k1", Auth: "a1"},
		{Endpoint: "https://push.example/b", P256dh: "k2", Auth: "a2"},
	}
	job := &model.NotificationJob{
		EventID: "evt-1",
		Payload: model.NotificationPayload{Title: "T", Body: "B"},
	}

	t.Run("Success - fans out to every subscription", func(t *testing.T) {
		repo := mocks.NewMockPushSubscriptionRepository()
		repo.On("ListByEventID", ctx, "evt-1", (*string)(nil)).Return(subs, nil).Once()

		var endpoints []string
		svc := &PushServiceImpl{repo: repo, cfg: cfg, send: func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			endpoints = append(endpoints, s.Endpoint)
			assert.Equal(t, "pub", options.VAPIDPublicKey)
			return fakeResponse(http.StatusCreated), nil
		}}

		err := svc.Dispatch(ctx, job)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://push.example/a", "https://push.example/b"}, endpoints)
	})

	t.Run("Success - single endpoint failure does not abort fan-out", func(t *testing.T) {
		repo := mocks.NewMockPushSubscriptionRepository()
		repo.On("ListByEventID", ctx, "evt-1", (*string)(nil)).Return(subs, nil).Once()

		calls := 0
		svc := &PushServiceImpl{repo: repo, cfg: cfg, send: func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			calls++
			if calls == 1 {
				return nil, assert.AnError
			}
			return fakeResponse(http.StatusCreated), nil
		}}

		err := svc.Dispatch(ctx, job)

		require.NoError(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("Success - prunes gone subscriptions", func(t *testing.T) {
		repo := mocks.NewMockPushSubscriptionRepository()
		repo.On("ListByEventID", ctx, "evt-1", (*string)(nil)).Return(subs[:1], nil).Once()
		repo.On("DeleteByEndpoint", ctx, "https://push.example/a").Return(nil).Once()

		svc := &PushServiceImpl{repo: repo, cfg: cfg, send: func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return fakeResponse(http.StatusGone), nil
		}}

		err := svc.Dispatch(ctx, job)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Success - no subscriptions is a no-op", func(t *testing.T) {
		repo := mocks.NewMockPushSubscriptionRepository()
		repo.On("ListByEventID", ctx, "evt-1", (*string)(nil)).Return([]*model.PushSubscription{}, nil).Once()

		called := false
		svc := &PushServiceImpl{repo: repo, cfg: cfg, send: func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			called = true
			return fakeResponse(http.StatusCreated), nil
		}}

		err := svc.Dispatch(ctx, job)

		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("Failed - list error propagated", func(t *testing.T) {
		repo := mocks.NewMockPushSubscriptionRepository()
		repo.On("ListByEventID", ctx, "evt-1", (*string)(nil)).Return(nil, assert.AnError).Once()

		svc := &PushServiceImpl{repo: repo, cfg: cfg, send: func(ctx context.Context, message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
			return fakeResponse(http.StatusCreated), nil
		}}

		err := svc.Dispatch(ctx, job)

		require.Error(t, err)
	})
}

func TestPushService_VAPIDConfigured(t *testing.T) {
	repo := mocks.NewMockPushSubscriptionRepository()

	svc := NewPushService(repo, config.PushConfig{VAPIDPublicKey: "pub"})
	hasPublic, hasPrivate := svc.VAPIDConfigured()
	assert.True(t, hasPublic)
	assert.False(t, hasPrivate)
}
