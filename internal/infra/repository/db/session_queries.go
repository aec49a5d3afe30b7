package db

import (
	"context"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

func (q *Queries) CreateSession(ctx context.Context, session model.UserSession) error {
	sql := `
		INSERT INTO sessions (id, user_id, refresh_token, user_agent, client_ip, is_active, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.db.Exec(ctx, sql,
		session.ID,
		session.UserID,
		session.RefreshToken,
		session.UserAgent,
		session.ClientIP,
		session.IsActive,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (q *Queries) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (model.UserSession, error) {
	sql := `
		SELECT id, user_id, refresh_token, user_agent, client_ip, is_active, created_at, expires_at, revoked_at
		FROM sessions WHERE refresh_token = $1
	`
	var s model.UserSession
	err := q.db.QueryRow(ctx, sql, refreshToken).Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshToken,
		&s.UserAgent,
		&s.ClientIP,
		&s.IsActive,
		&s.CreatedAt,
		&s.ExpiresAt,
		&s.RevokedAt,
	)
	if err != nil {
		return model.UserSession{}, translateError(err)
	}
	return s, nil
}

func (q *Queries) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return translateError(err)
}

func (q *Queries) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return translateError(err)
}
