package dto

import "github.com/RoyceAzure/lab/shopcenter/internal/model"

type AddCartItemDTO struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int32  `json:"quantity" validate:"required,min=1,max=100"`
	Size      string `json:"size" validate:"max=20"`
}

type UpdateCartItemDTO struct {
	Quantity int32 `json:"quantity" validate:"required,min=1,max=100"`
}

type CartItemDTO struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

type CartDTO struct {
	ID    string        `json:"id"`
	Items []CartItemDTO `json:"items"`
	Total string        `json:"total"`
	Count int32         `json:"count"`
}

func ConvertCartModelToDTO(m model.CartModel) CartDTO {
	items := make([]CartItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, CartItemDTO{
			ID:        item.ID.String(),
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return CartDTO{
		ID:    m.ID.String(),
		Items: items,
		Total: m.Total().StringFixed(2),
		Count: m.Count(),
	}
}
