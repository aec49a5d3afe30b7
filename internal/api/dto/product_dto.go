package dto

import (
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductDTO struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description"`
	Price       string   `json:"price" validate:"required"`
	Stock       int32    `json:"stock" validate:"gte=0"`
	Category    string   `json:"category" validate:"required"`
	Images      []string `json:"images" validate:"dive,url"`
}

type UpdateProductDTO struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	Price       *string  `json:"price"`
	Stock       *int32   `json:"stock" validate:"omitempty,gte=0"`
	Category    *string  `json:"category"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

type ProductDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int32    `json:"stock"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Rating      string   `json:"rating"`
	ReviewCount int32    `json:"review_count"`
}

func ConvertProductModelToDTO(m model.ProductModel) ProductDTO {
	images := m.Images
	if images == nil {
		images = []string{}
	}
	return ProductDTO{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price.StringFixed(2),
		Stock:       m.Stock,
		Category:    string(m.Category),
		Images:      images,
		Rating:      m.Rating.StringFixed(2),
		ReviewCount: m.ReviewCount,
	}
}

func ConvertProductModelsToDTO(models []model.ProductModel) []ProductDTO {
	out := make([]ProductDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ConvertProductModelToDTO(m))
	}
	return out
}

// ParsePrice 金額一律以字串傳輸, 避免浮點精度問題
func ParsePrice(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
