package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentModel struct {
	ID                   uuid.UUID
	OrderID              uuid.UUID
	UserID               uuid.UUID
	Amount               decimal.Decimal
	Gateway              string
	Method               string
	GatewayTransactionID string
	Status               PaymentStatusEnum
	FailureReason        string
	RefundDetails        *RefundDetails
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// RefundDetails 僅資料表示, 尚無退款流程
type RefundDetails struct {
	RefundID   string          `json:"refund_id"`
	Amount     decimal.Decimal `json:"amount"`
	Reason     string          `json:"reason"`
	RefundedAt time.Time       `json:"refunded_at"`
}

type InitiatePaymentModel struct {
	OrderID uuid.UUID
	Gateway string
	Method  string
}

// GatewayCallbackModel 來自金流商webhook的回調內容
type GatewayCallbackModel struct {
	GatewayTransactionID string
	Status               string
	FailureReason        string
	Signature            string
	RawBody              []byte
}
