package service_test

import (
	"context"
	"testing"
	"time"

	"timealign/internal/model"
	"timealign/internal/repository/mocks"
	"timealign/internal/service"
	"timealign/pkg/app_errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validEvent() *model.Event {
	return &model.Event{
		Title:     "Team sync",
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		StartHour: 9,
		EndHour:   18,
		Timezone:  "Asia/Taipei",
	}
}

func TestEventService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - keeps caller-assigned id", func(t *testing.T) {
		repo := mocks.NewMockEventRepository()
		svc := service.NewEventService(repo)

		event := validEvent()
		event.ID = "share-code-1"
		repo.On("Create", ctx, event).Return(event, nil).Once()

		created, err := svc.Create(ctx, event)

		require.NoError(t, err)
		assert.Equal(t, "share-code-1", created.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Success - generates id when missing", func(t *testing.T) {
		repo := mocks.NewMockEventRepository()
		svc := service.NewEventService(repo)

		repo.On("Create", ctx, mock.MatchedBy(func(e *model.Event) bool {
			return e.ID != ""
		})).Return(validEvent(), nil).Once()

		_, err := svc.Create(ctx, validEvent())

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Failed - end date before start date", func(t *testing.T) {
		repo := mocks.NewMockEventRepository()
		svc := service.NewEventService(repo)

		event := validEvent()
		event.StartDate, event.EndDate = event.EndDate, event.StartDate

		_, err := svc.Create(ctx, event)

		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrInvalidInput)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Failed - hour range invalid", func(t *testing.T) {
		repo := mocks.NewMockEventRepository()
		svc := service.NewEventService(repo)

		event := validEvent()
		event.StartHour = 18
		event.EndHour = 9

		_, err := svc.Create(ctx, event)

		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrInvalidInput)
	})
}

func TestEventService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Failed - not found", func(t *testing.T) {
		repo := mocks.NewMockEventRepository()
		svc := service.NewEventService(repo)

		repo.On("FindByID", ctx, "missing").Return(nil, app_errors.ErrEventNotFound).Once()

		_, err := svc.GetByID(ctx, "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, app_errors.ErrEventNotFound)
	})
}
