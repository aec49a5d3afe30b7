package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, user_id, subtotal::text, tax::text, shipping::text, total::text, status, payment_status, tracking_number, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (model.OrderModel, error) {
	var o model.OrderModel
	var subtotal, tax, shipping, total string
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&subtotal,
		&tax,
		&shipping,
		&total,
		&o.Status,
		&o.PaymentStatus,
		&o.TrackingNumber,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return model.OrderModel{}, err
	}
	for _, pair := range []struct {
		src string
		dst *decimal.Decimal
	}{
		{subtotal, &o.Subtotal},
		{tax, &o.Tax},
		{shipping, &o.Shipping},
		{total, &o.Total},
	} {
		if *pair.dst, err = parseDecimal(pair.src); err != nil {
			return model.OrderModel{}, err
		}
	}
	return o, nil
}

func (q *Queries) CreateOrder(ctx context.Context, order model.OrderModel) error {
	sql := `
		INSERT INTO orders (id, user_id, subtotal, tax, shipping, total, status, payment_status, tracking_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.db.Exec(ctx, sql,
		order.ID,
		order.UserID,
		order.Subtotal,
		order.Tax,
		order.Shipping,
		order.Total,
		order.Status,
		order.PaymentStatus,
		order.TrackingNumber,
		order.CreatedAt,
		order.UpdatedAt,
	)
	return translateError(err)
}

func (q *Queries) CreateOrderItem(ctx context.Context, item model.OrderItemModel) error {
	sql := `
		INSERT INTO order_items (id, order_id, product_id, name, image, price, quantity, size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := q.db.Exec(ctx, sql,
		item.ID,
		item.OrderID,
		item.ProductID,
		item.Name,
		item.Image,
		item.Price,
		item.Quantity,
		item.Size,
	)
	return translateError(err)
}

func (q *Queries) GetOrderByID(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.OrderModel{}, translateError(err)
	}
	return order, nil
}

func (q *Queries) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error) {
	sql := `
		SELECT id, order_id, product_id, name, image, price::text, quantity, size
		FROM order_items WHERE order_id = $1 ORDER BY id
	`
	rows, err := q.db.Query(ctx, sql, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItemModel
	for rows.Next() {
		var item model.OrderItemModel
		var price string
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&item.Image,
			&price,
			&item.Quantity,
			&item.Size,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if item.Price, err = parseDecimal(price); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return items, nil
}

func (q *Queries) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]model.OrderModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, orderColumns)

	rows, err := q.db.Query(ctx, sql, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (q *Queries) ListOrders(ctx context.Context, params model.ListOrdersParams) ([]model.OrderModel, error) {
	var args []any
	where := ""
	if params.Status != nil {
		args = append(args, *params.Status)
		where = " WHERE status = $1"
	}
	args = append(args, params.PageSize)
	limitPos := len(args)
	args = append(args, (params.Page-1)*params.PageSize)
	offsetPos := len(args)

	sql := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, limitPos, offsetPos)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]model.OrderModel, error) {
	var orders []model.OrderModel
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return orders, nil
}

func (q *Queries) CountOrders(ctx context.Context, status *model.OrderStatusEnum) (int64, error) {
	var count int64
	var err error
	if status != nil {
		err = q.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = $1`, *status).Scan(&count)
	} else {
		err = q.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatusEnum) error {
	tag, err := q.db.Exec(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum) error {
	tag, err := q.db.Exec(ctx, `UPDATE orders SET payment_status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) UpdateOrderTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error {
	tag, err := q.db.Exec(ctx, `UPDATE orders SET tracking_number = $1, updated_at = $2 WHERE id = $3`,
		trackingNumber, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) GetOrderStatusCounts(ctx context.Context) (map[model.OrderStatusEnum]int64, error) {
	rows, err := q.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.OrderStatusEnum]int64)
	for rows.Next() {
		var status model.OrderStatusEnum
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return counts, nil
}

func (q *Queries) GetPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue string
	err := q.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0)::text FROM orders WHERE payment_status = 'completed'`).Scan(&revenue)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get paid revenue: %w", err)
	}
	return parseDecimal(revenue)
}
