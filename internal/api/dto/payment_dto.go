package dto

import "github.com/RoyceAzure/lab/shopcenter/internal/model"

type InitiatePaymentDTO struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	Gateway string `json:"gateway" validate:"required,oneof=stripe paypal mock"`
	Method  string `json:"method" validate:"required,oneof=card bank_transfer wallet"`
}

// GatewayWebhookDTO 金流回調酬載, 簽章在header
type GatewayWebhookDTO struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required"`
	FailureReason string `json:"failure_reason"`
}

type PaymentDTO struct {
	ID                   string `json:"id"`
	OrderID              string `json:"order_id"`
	Amount               string `json:"amount"`
	Gateway              string `json:"gateway"`
	Method               string `json:"method"`
	GatewayTransactionID string `json:"gateway_transaction_id,omitempty"`
	Status               string `json:"status"`
	FailureReason        string `json:"failure_reason,omitempty"`
}

func ConvertPaymentModelToDTO(m model.PaymentModel) PaymentDTO {
	return PaymentDTO{
		ID:                   m.ID.String(),
		OrderID:              m.OrderID.String(),
		Amount:               m.Amount.StringFixed(2),
		Gateway:              m.Gateway,
		Method:               m.Method,
		GatewayTransactionID: m.GatewayTransactionID,
		Status:               string(m.Status),
		FailureReason:        m.FailureReason,
	}
}
