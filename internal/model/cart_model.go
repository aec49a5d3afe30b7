package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemModel 購物車項目
// Price/Name/Image 為加入當下的快照, 不會隨商品異動
type CartItemModel struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int32
	Size      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartModel struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Items     []CartItemModel
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total 以快照價格計算, total = Σ price_i × quantity_i
func (c *CartModel) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
	}
	return total
}

// Count count = Σ quantity_i
func (c *CartModel) Count() int32 {
	var count int32
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

type AddCartItemModel struct {
	ProductID uuid.UUID
	Quantity  int32
	Size      string
}
