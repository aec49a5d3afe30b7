package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type WishlistItemDTO struct {
	ProductID string      `json:"product_id"`
	AddedAt   time.Time   `json:"added_at"`
	Product   *ProductDTO `json:"product,omitempty"`
}

func ConvertWishlistModelsToDTO(models []model.WishlistItemModel) []WishlistItemDTO {
	out := make([]WishlistItemDTO, 0, len(models))
	for _, m := range models {
		item := WishlistItemDTO{
			ProductID: m.ProductID.String(),
			AddedAt:   m.CreatedAt,
		}
		if m.Product != nil {
			p := ConvertProductModelToDTO(*m.Product)
			item.Product = &p
		}
		out = append(out, item)
	}
	return out
}
