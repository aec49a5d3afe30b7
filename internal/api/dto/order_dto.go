package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type OrderItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     string `json:"price"`
	Quantity  int32  `json:"quantity"`
	Size      string `json:"size,omitempty"`
}

type OrderDTO struct {
	ID             string         `json:"id"`
	Items          []OrderItemDTO `json:"items"`
	Subtotal       string         `json:"subtotal"`
	Tax            string         `json:"tax"`
	Shipping       string         `json:"shipping"`
	Total          string         `json:"total"`
	Status         string         `json:"status"`
	PaymentStatus  string         `json:"payment_status"`
	TrackingNumber string         `json:"tracking_number,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required"`
}

type UpdateOrderTrackingDTO struct {
	TrackingNumber string `json:"tracking_number" validate:"required,max=64"`
}

type OrderStatsDTO struct {
	CountByStatus map[string]int64 `json:"count_by_status"`
	TotalOrders   int64            `json:"total_orders"`
	PaidRevenue   string           `json:"paid_revenue"`
}

func ConvertOrderModelToDTO(m model.OrderModel) OrderDTO {
	items := make([]OrderItemDTO, 0, len(m.Items))
	for _, item := range m.Items {
		items = append(items, OrderItemDTO{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Image:     item.Image,
			Price:     item.Price.StringFixed(2),
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return OrderDTO{
		ID:             m.ID.String(),
		Items:          items,
		Subtotal:       m.Subtotal.StringFixed(2),
		Tax:            m.Tax.StringFixed(2),
		Shipping:       m.Shipping.StringFixed(2),
		Total:          m.Total.StringFixed(2),
		Status:         string(m.Status),
		PaymentStatus:  string(m.PaymentStatus),
		TrackingNumber: m.TrackingNumber,
		CreatedAt:      m.CreatedAt,
	}
}

func ConvertOrderModelsToDTO(models []model.OrderModel) []OrderDTO {
	out := make([]OrderDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ConvertOrderModelToDTO(m))
	}
	return out
}

func ConvertOrderStatsToDTO(m model.OrderStatsModel) OrderStatsDTO {
	counts := make(map[string]int64, len(m.CountByStatus))
	for status, count := range m.CountByStatus {
		counts[string(status)] = count
	}
	return OrderStatsDTO{
		CountByStatus: counts,
		TotalOrders:   m.TotalOrders,
		PaidRevenue:   m.PaidRevenue.StringFixed(2),
	}
}
