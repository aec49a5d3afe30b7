package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

func (q *Queries) CreateAuditLog(ctx context.Context, entry model.AuditLogModel) error {
	sql := `
		INSERT INTO audit_logs (id, actor_id, actor_email, action, entity, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.db.Exec(ctx, sql,
		entry.ID,
		entry.ActorID,
		entry.ActorEmail,
		entry.Action,
		entry.Entity,
		entry.EntityID,
		entry.Detail,
		entry.CreatedAt,
	)
	return translateError(err)
}

func (q *Queries) ListAuditLogs(ctx context.Context, limit, offset int32) ([]model.AuditLogModel, error) {
	sql := `
		SELECT id, actor_id, actor_email, action, entity, entity_id, detail, created_at
		FROM audit_logs ORDER BY created_at DESC LIMIT $1 OFFSET $2
	`
	rows, err := q.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []model.AuditLogModel
	for rows.Next() {
		var e model.AuditLogModel
		err := rows.Scan(
			&e.ID,
			&e.ActorID,
			&e.ActorEmail,
			&e.Action,
			&e.Entity,
			&e.EntityID,
			&e.Detail,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return entries, nil
}
