package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatusEnum string

const (
	OrderStatusPending    OrderStatusEnum = "pending"
	OrderStatusProcessing OrderStatusEnum = "processing"
	OrderStatusConfirmed  OrderStatusEnum = "confirmed"
	OrderStatusShipped    OrderStatusEnum = "shipped"
	OrderStatusDelivered  OrderStatusEnum = "delivered"
	OrderStatusCancelled  OrderStatusEnum = "cancelled"
)

func IsValidOrderStatus(s string) bool {
	switch OrderStatusEnum(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

type PaymentStatusEnum string

const (
	PaymentStatusUnpaid    PaymentStatusEnum = "unpaid"
	PaymentStatusInitiated PaymentStatusEnum = "initiated"
	PaymentStatusPending   PaymentStatusEnum = "pending"
	PaymentStatusCompleted PaymentStatusEnum = "completed"
	PaymentStatusFailed    PaymentStatusEnum = "failed"
	PaymentStatusRefunded  PaymentStatusEnum = "refunded"
)

func IsValidPaymentStatus(s string) bool {
	switch PaymentStatusEnum(s) {
	case PaymentStatusUnpaid, PaymentStatusInitiated, PaymentStatusPending,
		PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// OrderItemModel 下單時自購物車複製的獨立快照
type OrderItemModel struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Name      string
	Image     string
	Price     decimal.Decimal
	Quantity  int32
	Size      string
}

type OrderModel struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Items          []OrderItemModel
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Shipping       decimal.Decimal
	Total          decimal.Decimal
	Status         OrderStatusEnum
	PaymentStatus  PaymentStatusEnum
	TrackingNumber string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type ListOrdersParams struct {
	Status   *OrderStatusEnum
	Page     int
	PageSize int
}

// OrderStatsModel 管理後台統計
type OrderStatsModel struct {
	CountByStatus map[OrderStatusEnum]int64
	TotalOrders   int64
	PaidRevenue   decimal.Decimal
}
