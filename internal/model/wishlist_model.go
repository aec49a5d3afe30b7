package model

import (
	"time"

	"github.com/google/uuid"
)

type WishlistItemModel struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	CreatedAt time.Time

	// 列表查詢時帶出的即時商品資訊
	Product *ProductModel
}
