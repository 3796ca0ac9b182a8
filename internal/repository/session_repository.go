package repository

import (
	"context"
	"time"

	"github.com/wholesale-hub/wholesale-service/internal/domain"
)

// SessionRepository persists refresh sessions.
type SessionRepository interface {
	// Replace stores session as the only session of its user, overwriting
	// whatever row the user already had.
	Replace(ctx context.Context, session *domain.RefreshSession) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshSession, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepository struct {
	pool DBTX
}

// NewSessionRepository constructs repository.
func NewSessionRepository(pool DBTX) SessionRepository {
	return &sessionRepository{pool: pool}
}

func (r *sessionRepository) Replace(ctx context.Context, session *domain.RefreshSession) error {
	const query = `
        INSERT INTO refresh_sessions (token, user_uuid, created_at, expires_at)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (user_uuid) DO UPDATE
        SET token=EXCLUDED.token, created_at=EXCLUDED.created_at, expires_at=EXCLUDED.expires_at
        RETURNING id`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		session.Token,
		session.UserID,
		session.CreatedAt,
		session.ExpiresAt,
	).Scan(&session.ID)
	return mapWriteError(err)
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.RefreshSession, error) {
	const query = `
        SELECT id, token, user_uuid, created_at, expires_at
        FROM refresh_sessions WHERE token=$1`
	var session domain.RefreshSession
	if err := conn(ctx, r.pool).QueryRow(ctx, query, token).Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM refresh_sessions WHERE user_uuid=$1`, userID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) (int64, error) {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM refresh_sessions WHERE token=$1`, token)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM refresh_sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
