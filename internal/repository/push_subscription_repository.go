package repository

import (
	"context"

	"timealign/internal/model"
	"timealign/pkg/app_errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PushSubscriptionRepository interface {
	// Save 同一 endpoint 重複訂閱時覆蓋金鑰
	Save(ctx context.Context, sub *model.PushSubscription) (*model.PushSubscription, error)
	// ListByEventID tenantID 為 nil 時回傳該活動全部訂閱
	ListByEventID(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error)
	CountByEventID(ctx context.Context, eventID string) (int, error)
	DeleteByEndpoint(ctx context.Context, endpoint string) error
}

type PushSubscriptionRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewPushSubscriptionRepository(pool *pgxpool.Pool) PushSubscriptionRepository {
	return &PushSubscriptionRepositoryImpl{
		pool: pool,
	}
}

func (r *PushSubscriptionRepositoryImpl) Save(ctx context.Context, sub *model.PushSubscription) (*model.PushSubscription, error) {
	query := `
		INSERT INTO push_subscriptions (event_id, tenant_id, endpoint, p256dh, auth)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (endpoint) DO UPDATE
		SET event_id = EXCLUDED.event_id,
		    tenant_id = EXCLUDED.tenant_id,
		    p256dh = EXCLUDED.p256dh,
		    auth = EXCLUDED.auth
		RETURNING id, event_id, tenant_id, endpoint, p256dh, auth, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		sub.EventID, sub.TenantID, sub.Endpoint, sub.P256dh, sub.Auth,
	).Scan(
		&sub.ID,
		&sub.EventID,
		&sub.TenantID,
		&sub.Endpoint,
		&sub.P256dh,
		&sub.Auth,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *PushSubscriptionRepositoryImpl) ListByEventID(ctx context.Context, eventID string, tenantID *string) ([]*model.PushSubscription, error) {
	query := `
		SELECT id, event_id, tenant_id, endpoint, p256dh, auth, created_at
		FROM push_subscriptions
		WHERE event_id = $1 AND ($2::text IS NULL OR tenant_id = $2)
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, eventID, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]*model.PushSubscription, 0)
	for rows.Next() {
		var sub model.PushSubscription
		err := rows.Scan(
			&sub.ID,
			&sub.EventID,
			&sub.TenantID,
			&sub.Endpoint,
			&sub.P256dh,
			&sub.Auth,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		subs = append(subs, &sub)
	}
	return subs, nil
}

func (r *PushSubscriptionRepositoryImpl) CountByEventID(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COUNT(*) FROM push_subscriptions WHERE event_id = $1`

	var count int
	err := r.pool.QueryRow(ctx, query, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PushSubscriptionRepositoryImpl) DeleteByEndpoint(ctx context.Context, endpoint string) error {
	query := `DELETE FROM push_subscriptions WHERE endpoint = $1`

	result, err := r.pool.Exec(ctx, query, endpoint)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return app_errors.ErrSubscriptionNotFound
	}
	return nil
}
