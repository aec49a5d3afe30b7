package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
)

func (q *Queries) CreateCart(ctx context.Context, cart model.CartModel) error {
	sql := `INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)`
	_, err := q.db.Exec(ctx, sql, cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt)
	return translateError(err)
}

func scanCart(row interface{ Scan(...any) error }) (model.CartModel, error) {
	var c model.CartModel
	err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (q *Queries) GetCartByUserID(ctx context.Context, userID uuid.UUID) (model.CartModel, error) {
	sql := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`

	cart, err := scanCart(q.db.QueryRow(ctx, sql, userID))
	if err != nil {
		return model.CartModel{}, translateError(err)
	}
	return cart, nil
}

// GetCartByUserIDForUpdate 下單流程專用
// 鎖住cart row, 讓同一使用者的並發下單在此序列化
func (q *Queries) GetCartByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (model.CartModel, error) {
	sql := `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1 FOR UPDATE`

	cart, err := scanCart(q.db.QueryRow(ctx, sql, userID))
	if err != nil {
		return model.CartModel{}, translateError(err)
	}
	return cart, nil
}

const cartItemColumns = `id, cart_id, product_id, name, image, price::text, quantity, size, created_at, updated_at`

func scanCartItem(row interface{ Scan(...any) error }) (model.CartItemModel, error) {
	var item model.CartItemModel
	var price string
	err := row.Scan(
		&item.ID,
		&item.CartID,
		&item.ProductID,
		&item.Name,
		&item.Image,
		&price,
		&item.Quantity,
		&item.Size,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return model.CartItemModel{}, err
	}
	if item.Price, err = parseDecimal(price); err != nil {
		return model.CartItemModel{}, err
	}
	return item, nil
}

func (q *Queries) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM cart_items WHERE cart_id = $1 ORDER BY created_at`, cartItemColumns)

	rows, err := q.db.Query(ctx, sql, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItemModel
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return items, nil
}

func (q *Queries) GetCartItemByID(ctx context.Context, itemID uuid.UUID) (model.CartItemModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM cart_items WHERE id = $1`, cartItemColumns)

	item, err := scanCartItem(q.db.QueryRow(ctx, sql, itemID))
	if err != nil {
		return model.CartItemModel{}, translateError(err)
	}
	return item, nil
}

// UpsertCartItem 同(cart,product,size)已存在時數量相加並封頂100
// 單一SQL原子操作, 並發加入不會遺失更新
func (q *Queries) UpsertCartItem(ctx context.Context, item model.CartItemModel) (model.CartItemModel, error) {
	sql := fmt.Sprintf(`
		INSERT INTO cart_items (id, cart_id, product_id, name, image, price, quantity, size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (cart_id, product_id, size) DO UPDATE
		SET quantity = LEAST(cart_items.quantity + EXCLUDED.quantity, 100),
		    updated_at = EXCLUDED.updated_at
		RETURNING %s
	`, cartItemColumns)

	now := time.Now().UTC()
	saved, err := scanCartItem(q.db.QueryRow(ctx, sql,
		item.ID,
		item.CartID,
		item.ProductID,
		item.Name,
		item.Image,
		item.Price,
		item.Quantity,
		item.Size,
		now,
		now,
	))
	if err != nil {
		return model.CartItemModel{}, translateError(err)
	}
	return saved, nil
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (model.CartItemModel, error) {
	sql := fmt.Sprintf(`
		UPDATE cart_items SET quantity = $1, updated_at = $2 WHERE id = $3
		RETURNING %s
	`, cartItemColumns)

	item, err := scanCartItem(q.db.QueryRow(ctx, sql, quantity, time.Now().UTC(), itemID))
	if err != nil {
		return model.CartItemModel{}, translateError(err)
	}
	return item, nil
}

// DeleteCartItem 刪除不存在的項目不回錯, 維持冪等
func (q *Queries) DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`, cartID, itemID)
	return translateError(err)
}

func (q *Queries) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	_, err := q.db.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return translateError(err)
}
