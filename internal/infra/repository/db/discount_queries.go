package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

const discountColumns = `id, name, type, value::text, coupon_code, start_date, end_date, usage_limit, usage_count, is_active, created_at, updated_at`

func scanDiscount(row interface{ Scan(...any) error }) (model.DiscountModel, error) {
	var d model.DiscountModel
	var value string
	var couponCode *string
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Type,
		&value,
		&couponCode,
		&d.StartDate,
		&d.EndDate,
		&d.UsageLimit,
		&d.UsageCount,
		&d.IsActive,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return model.DiscountModel{}, err
	}
	if couponCode != nil {
		d.CouponCode = *couponCode
	}
	if d.Value, err = parseDecimal(value); err != nil {
		return model.DiscountModel{}, err
	}
	return d, nil
}

func (q *Queries) CreateDiscount(ctx context.Context, discount model.DiscountModel) error {
	sql := `
		INSERT INTO discounts (id, name, type, value, coupon_code, start_date, end_date, usage_limit, usage_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := q.db.Exec(ctx, sql,
		discount.ID,
		discount.Name,
		discount.Type,
		discount.Value,
		nullIfEmpty(discount.CouponCode),
		discount.StartDate,
		discount.EndDate,
		discount.UsageLimit,
		discount.UsageCount,
		discount.IsActive,
		discount.CreatedAt,
		discount.UpdatedAt,
	)
	return translateError(err)
}

func (q *Queries) GetDiscountByID(ctx context.Context, id uuid.UUID) (model.DiscountModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM discounts WHERE id = $1`, discountColumns)

	discount, err := scanDiscount(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.DiscountModel{}, translateError(err)
	}
	return discount, nil
}

func (q *Queries) GetDiscountByCode(ctx context.Context, code string) (model.DiscountModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM discounts WHERE coupon_code = $1`, discountColumns)

	discount, err := scanDiscount(q.db.QueryRow(ctx, sql, code))
	if err != nil {
		return model.DiscountModel{}, translateError(err)
	}
	return discount, nil
}

func (q *Queries) ListDiscounts(ctx context.Context, limit, offset int32) ([]model.DiscountModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM discounts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, discountColumns)

	rows, err := q.db.Query(ctx, sql, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list discounts: %w", err)
	}
	defer rows.Close()

	var discounts []model.DiscountModel
	for rows.Next() {
		d, err := scanDiscount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		discounts = append(discounts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return discounts, nil
}

func (q *Queries) UpdateDiscount(ctx context.Context, discount model.DiscountModel) error {
	sql := `
		UPDATE discounts
		SET name = $1, type = $2, value = $3, coupon_code = $4, start_date = $5, end_date = $6,
		    usage_limit = $7, is_active = $8, updated_at = $9
		WHERE id = $10
	`
	tag, err := q.db.Exec(ctx, sql,
		discount.Name,
		discount.Type,
		discount.Value,
		nullIfEmpty(discount.CouponCode),
		discount.StartDate,
		discount.EndDate,
		discount.UsageLimit,
		discount.IsActive,
		time.Now().UTC(),
		discount.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM discounts WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IncrementDiscountUsage 原子遞增使用次數, 已達上限就不更新
func (q *Queries) IncrementDiscountUsage(ctx context.Context, id uuid.UUID) error {
	sql := `
		UPDATE discounts
		SET usage_count = usage_count + 1, updated_at = $1
		WHERE id = $2 AND (usage_limit IS NULL OR usage_count < usage_limit)
	`
	tag, err := q.db.Exec(ctx, sql, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotEnough
	}
	return nil
}
