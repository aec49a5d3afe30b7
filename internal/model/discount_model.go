package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountTypeEnum string

const (
	DiscountTypePercentage DiscountTypeEnum = "percentage"
	DiscountTypeFixed      DiscountTypeEnum = "fixed"
)

func IsValidDiscountType(t string) bool {
	switch DiscountTypeEnum(t) {
	case DiscountTypePercentage, DiscountTypeFixed:
		return true
	default:
		return false
	}
}

type DiscountModel struct {
	ID         uuid.UUID
	Name       string
	Type       DiscountTypeEnum
	Value      decimal.Decimal
	CouponCode string
	StartDate  time.Time
	EndDate    time.Time
	UsageLimit *int32
	UsageCount int32
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Deduction 依折扣類型計算可折抵金額, 不超過小計
func (d *DiscountModel) Deduction(subtotal decimal.Decimal) decimal.Decimal {
	var deduction decimal.Decimal
	switch d.Type {
	case DiscountTypePercentage:
		deduction = subtotal.Mul(d.Value).Div(decimal.NewFromInt(100)).Round(2)
	case DiscountTypeFixed:
		deduction = d.Value
	}
	if deduction.GreaterThan(subtotal) {
		return subtotal
	}
	return deduction
}

type CreateDiscountModel struct {
	Name       string
	Type       DiscountTypeEnum
	Value      decimal.Decimal
	CouponCode string
	StartDate  time.Time
	EndDate    time.Time
	UsageLimit *int32
}
