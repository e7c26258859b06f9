package service

import (
	"context"
	"fmt"

	"timealign/internal/model"
	"timealign/internal/queue"
	"timealign/internal/realtime"
	"timealign/internal/repository"
	"timealign/internal/schedule"
	"timealign/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ParticipantService interface {
	// Upsert 以 (event_id, name) 完全比對決定新增或覆蓋；
	// 名字已鎖定且 token 不符時回傳 ErrNameLocked，資料不變
	Upsert(ctx context.Context, eventID string, req model.UpsertParticipantRequest) (*model.Participant, error)
	List(ctx context.Context, eventID string) ([]*model.Participant, error)
	// Availability 整批重抓後重新聚合；訂閱端收到 refresh 訊號時呼叫
	Availability(ctx context.Context, eventID string) (schedule.Aggregation, error)
}

type ParticipantServiceImpl struct {
	repo      repository.ParticipantRepository
	eventRepo repository.EventRepository
	refresh   realtime.RefreshTrigger
	notifyQ   queue.NotificationQueue
}

func NewParticipantService(
	repo repository.ParticipantRepository,
	eventRepo repository.EventRepository,
	refresh realtime.RefreshTrigger,
	notifyQ queue.NotificationQueue,
) ParticipantService {
	return &ParticipantServiceImpl{
		repo:      repo,
		eventRepo: eventRepo,
		refresh:   refresh,
		notifyQ:   notifyQ,
	}
}

func (s *ParticipantServiceImpl) Upsert(ctx context.Context, eventID string, req model.UpsertParticipantRequest) (*model.Participant, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, err
	}

	params := repository.UpsertParticipantParams{
		Email:        req.Email,
		Availability: req.Availability,
		CallerToken:  req.Token,
	}
	if req.Lock {
		// token 優先序：既有（repository COALESCE 處理）> 呼叫端提供 > 新鑄造。
		// token 是能力憑證，呼叫端須自行保存供後續編輯
		token := req.Token
		if token == "" {
			token = uuid.NewString()
		}
		params.Locked = true
		params.AuthToken = &token
	}

	participant, err := s.repo.Upsert(ctx, eventID, req.Name, params)
	if err != nil {
		return nil, err
	}

	// 寫入成功後的通知皆為 fire-and-forget：失敗不影響本次提交結果
	if err := s.refresh.Publish(ctx, eventID); err != nil {
		logger.WithComponent("service").Warn("publish refresh failed", zap.String("event_id", eventID), zap.Error(err))
	}
	job := &model.NotificationJob{
		EventID: eventID,
		Payload: model.NotificationPayload{
			Body: fmt.Sprintf("%s updated their availability", participant.Name),
			Data: map[string]interface{}{"url": fmt.Sprintf("/event/%s", eventID)},
		},
	}
	if err := s.notifyQ.PublishNotification(ctx, job); err != nil {
		logger.WithComponent("service").Warn("enqueue notification failed", zap.String("event_id", eventID), zap.Error(err))
	}

	return participant, nil
}

func (s *ParticipantServiceImpl) List(ctx context.Context, eventID string) ([]*model.Participant, error) {
	return s.repo.ListByEventID(ctx, eventID)
}

func (s *ParticipantServiceImpl) Availability(ctx context.Context, eventID string) (schedule.Aggregation, error) {
	participants, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return schedule.Aggregation{}, err
	}
	return schedule.Aggregate(participants), nil
}
