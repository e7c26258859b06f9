package repository

import (
	"context"
	"encoding/json"

	"timealign/internal/model"
	"timealign/pkg/app_errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UpsertParticipantParams 條件式 upsert 的輸入。Locked 為 true 時
// AuthToken 必須帶入要寫進資料列的 token（既有 token 存在時以既有為準）。
type UpsertParticipantParams struct {
	Email        *string
	Availability []model.TimeSlot
	Locked       bool
	AuthToken    *string
	// CallerToken 呼叫端出示的 token，用於鎖定列的權限判斷
	CallerToken string
}

type ParticipantRepository interface {
	// FindByEventAndName 名字為大小寫敏感的完全比對
	FindByEventAndName(ctx context.Context, eventID string, name string) (*model.Participant, error)
	Insert(ctx context.Context, participant *model.Participant) (*model.Participant, error)
	Update(ctx context.Context, id int, params UpsertParticipantParams) (*model.Participant, error)
	// Upsert 單一原子語句完成 lookup-then-write：
	// (event_id, name) 不存在則插入；存在且未鎖定（或 token 相符）則整批覆蓋；
	// 鎖定且 token 不符則回傳 ErrNameLocked，資料不變
	Upsert(ctx context.Context, eventID string, name string, params UpsertParticipantParams) (*model.Participant, error)
	ListByEventID(ctx context.Context, eventID string) ([]*model.Participant, error)
}

type ParticipantRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) ParticipantRepository {
	return &ParticipantRepositoryImpl{
		pool: pool,
	}
}

func scanParticipant(row pgx.Row) (*model.Participant, error) {
	var p model.Participant
	var availJSON []byte
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Email,
		&availJSON,
		&p.Locked,
		&p.AuthToken,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(availJSON) > 0 {
		if err := json.Unmarshal(availJSON, &p.Availability); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *ParticipantRepositoryImpl) FindByEventAndName(ctx context.Context, eventID string, name string) (*model.Participant, error) {
	query := `
		SELECT id, event_id, name, email, availability, locked, auth_token, created_at
		FROM participants
		WHERE event_id = $1 AND name = $2
	`
	p, err := scanParticipant(r.pool.QueryRow(ctx, query, eventID, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, app_errors.ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipantRepositoryImpl) Insert(ctx context.Context, participant *model.Participant) (*model.Participant, error) {
	availJSON, err := json.Marshal(participant.Availability)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO participants (event_id, name, email, availability, locked, auth_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, event_id, name, email, availability, locked, auth_token, created_at
	`
	return scanParticipant(r.pool.QueryRow(ctx, query,
		participant.EventID,
		participant.Name,
		participant.Email,
		availJSON,
		participant.Locked,
		participant.AuthToken,
	))
}

func (r *ParticipantRepositoryImpl) Update(ctx context.Context, id int, params UpsertParticipantParams) (*model.Participant, error) {
	availJSON, err := json.Marshal(params.Availability)
	if err != nil {
		return nil, err
	}

	// email 與 availability 一律整批覆蓋，不做合併
	query := `
		UPDATE participants
		SET email = $1,
		    availability = $2,
		    locked = locked OR $3,
		    auth_token = COALESCE(auth_token, $4)
		WHERE id = $5
		RETURNING id, event_id, name, email, availability, locked, auth_token, created_at
	`
	p, err := scanParticipant(r.pool.QueryRow(ctx, query,
		params.Email, availJSON, params.Locked, params.AuthToken, id,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, app_errors.ErrParticipantNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipantRepositoryImpl) Upsert(ctx context.Context, eventID string, name string, params UpsertParticipantParams) (*model.Participant, error) {
	availJSON, err := json.Marshal(params.Availability)
	if err != nil {
		return nil, err
	}

	// (event_id, name) 上有唯一索引；鎖定判斷放進同一語句的 WHERE，
	// 兩個同名請求併發時由 Postgres 仲裁，不留 lookup-then-write 空窗
	query := `
		INSERT INTO participants (event_id, name, email, availability, locked, auth_token)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, name) DO UPDATE
		SET email = EXCLUDED.email,
		    availability = EXCLUDED.availability,
		    locked = participants.locked OR EXCLUDED.locked,
		    auth_token = COALESCE(participants.auth_token, EXCLUDED.auth_token)
		WHERE participants.locked = false
		   OR participants.auth_token IS NULL
		   OR participants.auth_token = $7
		RETURNING id, event_id, name, email, availability, locked, auth_token, created_at
	`
	p, err := scanParticipant(r.pool.QueryRow(ctx, query,
		eventID, name, params.Email, availJSON, params.Locked, params.AuthToken, params.CallerToken,
	))
	if err != nil {
		// DO UPDATE 的 WHERE 不成立時不回傳任何列 = 名字已被鎖定
		if err == pgx.ErrNoRows {
			return nil, app_errors.ErrNameLocked
		}
		return nil, err
	}
	return p, nil
}

func (r *ParticipantRepositoryImpl) ListByEventID(ctx context.Context, eventID string) ([]*model.Participant, error) {
	query := `
		SELECT id, event_id, name, email, availability, locked, auth_token, created_at
		FROM participants
		WHERE event_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*model.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, nil
}
