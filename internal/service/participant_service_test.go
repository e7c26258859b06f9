package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"timealign/internal/model"
	"timealign/internal/queue"
	"timealign/internal/repository"
	"timealign/internal/repository/mocks"
	"timealign/internal/service"
	"timealign/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRefreshTrigger struct {
	mock.Mock
}

func (m *mockRefreshTrigger) Publish(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *mockRefreshTrigger) Subscribe(ctx context.Context, eventID string) (<-chan struct{}, func(), error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan struct{}), args.Get(1).(func()), args.Error(2)
}

type mockNotificationQueue struct {
	mock.Mock
}

func (m *mockNotificationQueue) PublishNotification(ctx context.Context, job *model.NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *mockNotificationQueue) SubscribeNotifications(ctx context.Context) (<-chan queue.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan queue.Delivery), args.Error(1)
}

func setupParticipantService() (
	*mocks.MockParticipantRepository,
	*mocks.MockEventRepository,
	*mockRefreshTrigger,
	*mockNotificationQueue,
	service.ParticipantService,
) {
	participantRepo := mocks.NewMockParticipantRepository()
	eventRepo := mocks.NewMockEventRepository()
	refresh := &mockRefreshTrigger{}
	notifyQ := &mockNotificationQueue{}
	svc := service.NewParticipantService(participantRepo, eventRepo, refresh, notifyQ)
	return participantRepo, eventRepo, refresh, notifyQ, svc
}

func strPtr(s string) *string { return &s }

func TestParticipantService_Upsert(t *testing.T) {
	ctx := context.Background()
	event := &model.Event{ID: "evt-1", Title: "Team sync"}
	slots := []model.TimeSlot{{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Hour: 9}}

	t.Run("Success - insert without lock", func(t *testing.T) {
		participantRepo, eventRepo, refresh, notifyQ, svc := setupParticipantService()

		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "alice", mock.MatchedBy(func(p repository.UpsertParticipantParams) bool {
			return !p.Locked && p.AuthToken == nil && p.CallerToken == ""
		})).Return(&model.Participant{ID: 1, EventID: "evt-1", Name: "alice", Availability: slots}, nil).Once()
		refresh.On("Publish", ctx, "evt-1").Return(nil).Once()
		notifyQ.On("PublishNotification", ctx, mock.MatchedBy(func(j *model.NotificationJob) bool {
			return j.EventID == "evt-1" && j.Payload.Data["url"] == "/event/evt-1"
		})).Return(nil).Once()

		p, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{Name: "alice", Availability: slots})

		require.NoError(t, err)
		assert.Equal(t, "alice", p.Name)
		assert.False(t, p.Locked)
		participantRepo.AssertExpectations(t)
		refresh.AssertExpectations(t)
		notifyQ.AssertExpectations(t)
	})

	t.Run("Success - lock without caller token mints one", func(t *testing.T) {
		participantRepo, eventRepo, refresh, notifyQ, svc := setupParticipantService()

		var minted string
		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "bob", mock.MatchedBy(func(p repository.UpsertParticipantParams) bool {
			if !p.Locked || p.AuthToken == nil || *p.AuthToken == "" {
				return false
			}
			minted = *p.AuthToken
			return true
		})).Return(&model.Participant{ID: 2, Name: "bob", Locked: true, AuthToken: strPtr("whatever")}, nil).Once()
		refresh.On("Publish", ctx, "evt-1").Return(nil).Once()
		notifyQ.On("PublishNotification", ctx, mock.Anything).Return(nil).Once()

		_, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{Name: "bob", Availability: slots, Lock: true})

		require.NoError(t, err)
		assert.NotEmpty(t, minted)
		participantRepo.AssertExpectations(t)
	})

	t.Run("Success - lock with caller token keeps it", func(t *testing.T) {
		participantRepo, eventRepo, refresh, notifyQ, svc := setupParticipantService()

		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "bob", mock.MatchedBy(func(p repository.UpsertParticipantParams) bool {
			return p.Locked && p.AuthToken != nil && *p.AuthToken == "tok-123" && p.CallerToken == "tok-123"
		})).Return(&model.Participant{ID: 2, Name: "bob", Locked: true, AuthToken: strPtr("tok-123")}, nil).Once()
		refresh.On("Publish", ctx, "evt-1").Return(nil).Once()
		notifyQ.On("PublishNotification", ctx, mock.Anything).Return(nil).Once()

		p, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{
			Name: "bob", Availability: slots, Lock: true, Token: "tok-123",
		})

		require.NoError(t, err)
		assert.True(t, p.Locked)
	})

	t.Run("Failed - name locked leaves data unchanged", func(t *testing.T) {
		participantRepo, eventRepo, refresh, notifyQ, svc := setupParticipantService()

		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "alice", mock.Anything).
			Return(nil, app_errors.ErrNameLocked).Once()

		_, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{
			Name: "alice", Availability: slots, Token: "wrong",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrNameLocked)
		// 失敗時不觸發 refresh 也不排通知
		refresh.AssertNotCalled(t, "Publish")
		notifyQ.AssertNotCalled(t, "PublishNotification")
	})

	t.Run("Failed - event not found", func(t *testing.T) {
		participantRepo, eventRepo, _, _, svc := setupParticipantService()

		eventRepo.On("FindByID", ctx, "missing").Return(nil, app_errors.ErrEventNotFound).Once()

		_, err := svc.Upsert(ctx, "missing", model.UpsertParticipantRequest{Name: "alice", Availability: slots})

		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrEventNotFound)
		participantRepo.AssertNotCalled(t, "Upsert")
	})

	t.Run("Failed - storage error propagated unchanged", func(t *testing.T) {
		participantRepo, eventRepo, _, _, svc := setupParticipantService()

		dbErr := errors.New("db down")
		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "alice", mock.Anything).Return(nil, dbErr).Once()

		_, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{Name: "alice", Availability: slots})

		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Success - refresh failure does not fail the upsert", func(t *testing.T) {
		participantRepo, eventRepo, refresh, notifyQ, svc := setupParticipantService()

		eventRepo.On("FindByID", ctx, "evt-1").Return(event, nil).Once()
		participantRepo.On("Upsert", ctx, "evt-1", "alice", mock.Anything).
			Return(&model.Participant{ID: 1, Name: "alice"}, nil).Once()
		refresh.On("Publish", ctx, "evt-1").Return(errors.New("redis down")).Once()
		notifyQ.On("PublishNotification", ctx, mock.Anything).Return(errors.New("stream down")).Once()

		_, err := svc.Upsert(ctx, "evt-1", model.UpsertParticipantRequest{Name: "alice", Availability: slots})

		require.NoError(t, err)
	})
}

func TestParticipantService_Availability(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - aggregates full participant set", func(t *testing.T) {
		participantRepo, _, _, _, svc := setupParticipantService()

		slot9 := model.TimeSlot{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Hour: 9}
		slot10 := model.TimeSlot{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Hour: 10}
		participantRepo.On("ListByEventID", ctx, "evt-1").Return([]*model.Participant{
			{Name: "alice", Availability: []model.TimeSlot{slot9}},
			{Name: "bob", Availability: []model.TimeSlot{slot9}},
			{Name: "carol", Availability: []model.TimeSlot{slot10}},
		}, nil).Once()

		agg, err := svc.Availability(ctx, "evt-1")

		require.NoError(t, err)
		assert.Equal(t, 2, agg.Heatmap["2026-09-01-9"])
		assert.Equal(t, 1, agg.Heatmap["2026-09-01-10"])
		assert.Equal(t, 3, agg.ParticipantCount)
	})

	t.Run("Success - empty event", func(t *testing.T) {
		participantRepo, _, _, _, svc := setupParticipantService()

		participantRepo.On("ListByEventID", ctx, "evt-1").Return([]*model.Participant{}, nil).Once()

		agg, err := svc.Availability(ctx, "evt-1")

		require.NoError(t, err)
		assert.Empty(t, agg.Heatmap)
		assert.Empty(t, agg.BestTimes)
	})

	t.Run("Failed - list error", func(t *testing.T) {
		participantRepo, _, _, _, svc := setupParticipantService()

		participantRepo.On("ListByEventID", ctx, "evt-1").Return(nil, errors.New("db error")).Once()

		_, err := svc.Availability(ctx, "evt-1")

		require.Error(t, err)
	})
}
