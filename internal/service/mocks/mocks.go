package mocks

import (
	"context"

	"timealign/internal/model"
	"timealign/internal/schedule"

	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func NewMockEventService() *MockEventService {
	return &MockEventService{}
}

func (m *MockEventService) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockParticipantService struct {
	mock.Mock
}

func NewMockParticipantService() *MockParticipantService {
	return &MockParticipantService{}
}

func (m *MockParticipantService) Upsert(ctx context.Context, eventID string, req model.UpsertParticipantRequest) (*model.Participant, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantService) List(ctx context.Context, eventID string) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

func (m *MockParticipantService) Availability(ctx context.Context, eventID string) (schedule.Aggregation, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(schedule.Aggregation), args.Error(1)
}

type MockPushService struct {
	mock.Mock
}

func NewMockPushService() *MockPushService {
	return &MockPushService{}
}

func (m *MockPushService) Subscribe(ctx context.Context, req model.SubscribeRequest) (*model.PushSubscription, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PushSubscription), args.Error(1)
}

func (m *MockPushService) Unsubscribe(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}

func (m *MockPushService) List(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error) {
	args := m.Called(ctx, eventID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PushSubscription), args.Error(1)
}

func (m *MockPushService) Count(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockPushService) Dispatch(ctx context.Context, job *model.NotificationJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockPushService) VAPIDConfigured() (bool, bool) {
	args := m.Called()
	return args.Bool(0), args.Bool(1)
}
