package mocks

import (
	"context"

	"timealign/internal/model"
	"timealign/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockEventRepository struct {
	mock.Mock
}

func NewMockEventRepository() *MockEventRepository {
	return &MockEventRepository{}
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

type MockParticipantRepository struct {
	mock.Mock
}

func NewMockParticipantRepository() *MockParticipantRepository {
	return &MockParticipantRepository{}
}

func (m *MockParticipantRepository) FindByEventAndName(ctx context.Context, eventID string, name string) (*model.Participant, error) {
	args := m.Called(ctx, eventID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Insert(ctx context.Context, participant *model.Participant) (*model.Participant, error) {
	args := m.Called(ctx, participant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Update(ctx context.Context, id int, params repository.UpsertParticipantParams) (*model.Participant, error) {
	args := m.Called(ctx, id, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) Upsert(ctx context.Context, eventID string, name string, params repository.UpsertParticipantParams) (*model.Participant, error) {
	args := m.Called(ctx, eventID, name, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Participant), args.Error(1)
}

func (m *MockParticipantRepository) ListByEventID(ctx context.Context, eventID string) ([]*model.Participant, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Participant), args.Error(1)
}

type MockPushSubscriptionRepository struct {
	mock.Mock
}

func NewMockPushSubscriptionRepository() *MockPushSubscriptionRepository {
	return &MockPushSubscriptionRepository{}
}

func (m *MockPushSubscriptionRepository) Save(ctx context.Context, sub *model.PushSubscription) (*model.PushSubscription, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PushSubscription), args.Error(1)
}

func (m *MockPushSubscriptionRepository) ListByEventID(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error) {
	args := m.Called(ctx, eventID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PushSubscription), args.Error(1)
}

func (m *MockPushSubscriptionRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *MockPushSubscriptionRepository) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	args := m.Called(ctx, endpoint)
	return args.Error(0)
}
