package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const reviewColumns = `id, product_id, user_id, rating, title, comment, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (model.ReviewModel, error) {
	var r model.ReviewModel
	err := row.Scan(
		&r.ID,
		&r.ProductID,
		&r.UserID,
		&r.Rating,
		&r.Title,
		&r.Comment,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	return r, err
}

func (q *Queries) CreateReview(ctx context.Context, review model.ReviewModel) error {
	sql := `
		INSERT INTO reviews (id, product_id, user_id, rating, title, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.db.Exec(ctx, sql,
		review.ID,
		review.ProductID,
		review.UserID,
		review.Rating,
		review.Title,
		review.Comment,
		review.CreatedAt,
		review.UpdatedAt,
	)
	return translateError(err)
}

func (q *Queries) GetReviewByID(ctx context.Context, id uuid.UUID) (model.ReviewModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM reviews WHERE id = $1`, reviewColumns)

	review, err := scanReview(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.ReviewModel{}, translateError(err)
	}
	return review, nil
}

func (q *Queries) ListReviewsByProduct(ctx context.Context, productID uuid.UUID, limit, offset int32) ([]model.ReviewModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM reviews WHERE product_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, reviewColumns)

	rows, err := q.db.Query(ctx, sql, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.ReviewModel
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return reviews, nil
}

func (q *Queries) UpdateReview(ctx context.Context, review model.ReviewModel) error {
	sql := `
		UPDATE reviews SET rating = $1, title = $2, comment = $3, updated_at = $4 WHERE id = $5
	`
	tag, err := q.db.Exec(ctx, sql,
		review.Rating,
		review.Title,
		review.Comment,
		time.Now().UTC(),
		review.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProductRatingStats 全量重算平均評分, 無評論時回傳0
func (q *Queries) GetProductRatingStats(ctx context.Context, productID uuid.UUID) (decimal.Decimal, int64, error) {
	var avg string
	var count int64
	err := q.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0)::text, COUNT(*) FROM reviews WHERE product_id = $1`,
		productID).Scan(&avg, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to get rating stats: %w", err)
	}
	rating, err := parseDecimal(avg)
	if err != nil {
		return decimal.Zero, 0, err
	}
	return rating, count, nil
}
