package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

// AddWishlistItem 重複加入同商品視為成功, 不回錯
func (q *Queries) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	sql := `
		INSERT INTO wishlist_items (id, user_id, product_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`
	_, err := q.db.Exec(ctx, sql, uuid.New(), userID, productID, time.Now().UTC())
	return translateError(err)
}

func (q *Queries) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	_, err := q.db.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return translateError(err)
}

// ListWishlist join商品主檔帶出即時資訊, 商品已刪除的項目不回傳
func (q *Queries) ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.WishlistItemModel, error) {
	sql := fmt.Sprintf(`
		SELECT w.id, w.user_id, w.product_id, w.created_at, %s
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC
	`, prefixColumns("p", productColumns))

	rows, err := q.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItemModel
	for rows.Next() {
		var item model.WishlistItemModel
		var p model.ProductModel
		var price, rating string
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductID,
			&item.CreatedAt,
			&p.ID,
			&p.Name,
			&p.Description,
			&price,
			&p.Stock,
			&p.Category,
			&p.Images,
			&rating,
			&p.ReviewCount,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		if p.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		if p.Rating, err = parseDecimal(rating); err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return items, nil
}
