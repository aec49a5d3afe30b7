package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, description, price::text, stock, category, images, rating::text, review_count, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (model.ProductModel, error) {
	var p model.ProductModel
	var price, rating string
	err := row.Scan(
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
		return model.ProductModel{}, err
	}
	if p.Price, err = parseDecimal(price); err != nil {
		return model.ProductModel{}, err
	}
	if p.Rating, err = parseDecimal(rating); err != nil {
		return model.ProductModel{}, err
	}
	return p, nil
}

func (q *Queries) CreateProduct(ctx context.Context, product model.ProductModel) error {
	sql := `
		INSERT INTO products (id, name, description, price, stock, category, images, rating, review_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := q.db.Exec(ctx, sql,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		product.Images,
		product.Rating,
		product.ReviewCount,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	return nil
}

func (q *Queries) GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	sql := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(q.db.QueryRow(ctx, sql, id))
	if err != nil {
		return model.ProductModel{}, translateError(err)
	}
	return product, nil
}

// buildProductFilter 組合ListProducts/CountProducts共用的where條件
func buildProductFilter(params model.ListProductsParams) (string, []any) {
	var conds []string
	var args []any

	if params.Category != nil {
		args = append(args, *params.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if params.MinPrice != nil {
		args = append(args, *params.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if params.MaxPrice != nil {
		args = append(args, *params.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// 白名單排序欄位, 防止注入
var productSortColumns = map[string]string{
	"price":      "price",
	"name":       "name",
	"rating":     "rating",
	"created_at": "created_at",
}

func (q *Queries) ListProducts(ctx context.Context, params model.ListProductsParams) ([]model.ProductModel, error) {
	where, args := buildProductFilter(params)

	sortBy, ok := productSortColumns[params.SortBy]
	if !ok {
		sortBy = "created_at"
	}
	sortOrder := "ASC"
	if strings.EqualFold(params.SortOrder, "desc") {
		sortOrder = "DESC"
	}

	args = append(args, params.PageSize)
	limitPos := len(args)
	args = append(args, (params.Page-1)*params.PageSize)
	offsetPos := len(args)

	sql := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, sortBy, sortOrder, limitPos, offsetPos)

	rows, err := q.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.ProductModel
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return products, nil
}

func (q *Queries) CountProducts(ctx context.Context, params model.ListProductsParams) (int64, error) {
	where, args := buildProductFilter(params)

	var count int64
	err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (q *Queries) UpdateProduct(ctx context.Context, product model.ProductModel) error {
	sql := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category = $5, images = $6, updated_at = $7
		WHERE id = $8
	`
	tag, err := q.db.Exec(ctx, sql,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.Category,
		product.Images,
		time.Now().UTC(),
		product.ID,
	)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *Queries) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustProductStock 原子增減庫存, 不足時不更新
func (q *Queries) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int32) error {
	sql := `
		UPDATE products
		SET stock = stock + $1, updated_at = $2
		WHERE id = $3 AND stock + $1 >= 0
	`
	tag, err := q.db.Exec(ctx, sql, delta, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotEnough
	}
	return nil
}

func (q *Queries) SetProductRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, reviewCount int32) error {
	sql := `UPDATE products SET rating = $1, review_count = $2, updated_at = $3 WHERE id = $4`
	tag, err := q.db.Exec(ctx, sql, rating, reviewCount, time.Now().UTC(), id)
	if err != nil {
		return translateError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
