package db

import (
	"context"
	"fmt"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

const userColumns = `id, email, name, hash_password, role, is_active, created_at`

func scanUser(row interface{ Scan(...any) error }) (model.UserModel, error) {
	var u model.UserModel
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.HashPassword,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
	)
	return u, err
}

func (q *Queries) CreateUser(ctx context.Context, user model.UserModel) error {
	sql := `
		INSERT INTO users (id, email, name, hash_password, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := q.db.Exec(ctx, sql,
		user.ID,
		user.Email,
		user.Name,
		user.HashPassword,
		user.Role,
		user.IsActive,
		user.CreatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.UserModel{}, translateError(err)
	}
	return user, nil
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.UserModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(q.db.QueryRow(ctx, sql, email))
	if err != nil {
		return model.UserModel{}, translateError(err)
	}
	return user, nil
}

func (q *Queries) ListUsers(ctx context.Context, limit, offset int32) ([]model.UserModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, userColumns)

	rows, err := q.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []model.UserModel
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return users, nil
}

func (q *Queries) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (q *Queries) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	tag, err := q.db.Exec(ctx, `UPDATE users SET is_active = $1 WHERE id = $2`, isActive, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
