package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CategoryEnum string

const (
	CategoryElectronics CategoryEnum = "electronics"
	CategoryClothing    CategoryEnum = "clothing"
	CategoryHome        CategoryEnum = "home"
	CategoryBeauty      CategoryEnum = "beauty"
	CategorySports      CategoryEnum = "sports"
	CategoryBooks       CategoryEnum = "books"
	CategoryOther       CategoryEnum = "other"
)

func IsValidCategory(c string) bool {
	switch CategoryEnum(c) {
	case CategoryElectronics, CategoryClothing, CategoryHome,
		CategoryBeauty, CategorySports, CategoryBooks, CategoryOther:
		return true
	default:
		return false
	}
}

type ProductModel struct {
	ID          uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	Category    CategoryEnum
	Images      []string
	Rating      decimal.Decimal
	ReviewCount int32
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CreateProductModel struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int32
	Category    CategoryEnum
	Images      []string
}

type UpdateProductModel struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int32
	Category    *CategoryEnum
	Images      []string
}

// ListProductsParams 商品查詢條件
type ListProductsParams struct {
	Category  *CategoryEnum
	Search    string
	MinPrice  *decimal.Decimal
	MaxPrice  *decimal.Decimal
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}
