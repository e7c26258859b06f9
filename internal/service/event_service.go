package service

import (
	"context"

	"timealign/internal/model"
	"timealign/internal/repository"

	"github.com/google/uuid"
)

type EventService interface {
	Create(ctx context.Context, event *model.Event) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

type EventServiceImpl struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &EventServiceImpl{repo: repo}
}

func (s *EventServiceImpl) Create(ctx context.Context, event *model.Event) (*model.Event, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}
	// ID 由建立端指定（分享連結短碼）；沒給就由伺服器產生
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	return s.repo.Create(ctx, event)
}

func (s *EventServiceImpl) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.repo.FindByID(ctx, id)
}
