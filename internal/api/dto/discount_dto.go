package dto

import (
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
)

type CreateDiscountDTO struct {
	Name       string    `json:"name" validate:"required,max=100"`
	Type       string    `json:"type" validate:"required,oneof=percentage fixed"`
	Value      string    `json:"value" validate:"required"`
	CouponCode string    `json:"coupon_code" validate:"max=40"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	UsageLimit *int32    `json:"usage_limit" validate:"omitempty,gte=0"`
}

type UpdateDiscountDTO struct {
	Name       string    `json:"name" validate:"required,max=100"`
	Type       string    `json:"type" validate:"required,oneof=percentage fixed"`
	Value      string    `json:"value" validate:"required"`
	CouponCode string    `json:"coupon_code" validate:"max=40"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	EndDate    time.Time `json:"end_date" validate:"required"`
	UsageLimit *int32    `json:"usage_limit" validate:"omitempty,gte=0"`
	IsActive   bool      `json:"is_active"`
}

type ValidateCouponDTO struct {
	Code     string `json:"code" validate:"required"`
	Subtotal string `json:"subtotal" validate:"required"`
}

type CouponResultDTO struct {
	Code      string `json:"code"`
	Deduction string `json:"deduction"`
}

type DiscountDTO struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Value      string    `json:"value"`
	CouponCode string    `json:"coupon_code,omitempty"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	UsageLimit *int32    `json:"usage_limit,omitempty"`
	UsageCount int32     `json:"usage_count"`
	IsActive   bool      `json:"is_active"`
}

func ConvertDiscountModelToDTO(m model.DiscountModel) DiscountDTO {
	return DiscountDTO{
		ID:         m.ID.String(),
		Name:       m.Name,
		Type:       string(m.Type),
		Value:      m.Value.String(),
		CouponCode: m.CouponCode,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		UsageLimit: m.UsageLimit,
		UsageCount: m.UsageCount,
		IsActive:   m.IsActive,
	}
}

func ConvertDiscountModelsToDTO(models []model.DiscountModel) []DiscountDTO {
	out := make([]DiscountDTO, 0, len(models))
	for _, m := range models {
		out = append(out, ConvertDiscountModelToDTO(m))
	}
	return out
}
