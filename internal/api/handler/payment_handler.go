package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
)

// 金流商在webhook request header帶簽章
const gatewaySignatureHeader = "X-Gateway-Signature"

type PaymentHandler struct {
	paymentService service.IPaymentService
}

func NewPaymentHandler(paymentService service.IPaymentService) *PaymentHandler {
	if paymentService == nil {
		panic("paymentService cannot be nil")
	}
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// @Summary initiate payment for an order
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.InitiatePaymentDTO true "payment request"
// @Success 201 {object} api.Response{data=dto.PaymentDTO} "created"
// @Failure 400 {object} api.Response "order is not payable"
// @Failure 404 {object} api.Response "order not found"
// @Router /payments/initiate [post]
func (h *PaymentHandler) InitiatePayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var paymentDTO dto.InitiatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&paymentDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(paymentDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	orderID, err := uuid.Parse(paymentDTO.OrderID)
	if err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid order id")
		return
	}

	payment, err := h.paymentService.InitiatePayment(r.Context(), p, model.InitiatePaymentModel{
		OrderID: orderID,
		Gateway: paymentDTO.Gateway,
		Method:  paymentDTO.Method,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertPaymentModelToDTO(*payment), "")
}

// @Summary payment gateway webhook
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Gateway-Signature header string true "HMAC signature of the raw body"
// @Param callback body dto.GatewayWebhookDTO true "gateway callback"
// @Success 200 {object} api.Response "success"
// @Failure 401 {object} api.Response "invalid signature"
// @Router /payments/webhook [post]
func (h *PaymentHandler) GatewayWebhook(w http.ResponseWriter, r *http.Request) {
	// 簽章是對原始body做HMAC, 必須在decode前讀出
	body, err := io.ReadAll(r.Body)
	if err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}

	var webhookDTO dto.GatewayWebhookDTO
	if err := json.Unmarshal(body, &webhookDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(webhookDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	err = h.paymentService.HandleGatewayCallback(r.Context(), model.GatewayCallbackModel{
		GatewayTransactionID: webhookDTO.TransactionID,
		Status:               webhookDTO.Status,
		FailureReason:        webhookDTO.FailureReason,
		Signature:            r.Header.Get(gatewaySignatureHeader),
		RawBody:              body,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "callback processed")
}

// @Summary get payment
// @Tags payments
// @Produce json
// @Param id path string true "payment id"
// @Success 200 {object} api.Response{data=dto.PaymentDTO} "success"
// @Failure 404 {object} api.Response "payment not found"
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(r.Context(), p, id)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertPaymentModelToDTO(*payment), "")
}
