package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{
		orderService: orderService,
	}
}

// @Summary place order from cart
// @Tags orders
// @Produce json
// @Success 201 {object} api.Response{data=dto.OrderDTO} "created"
// @Failure 400 {object} api.Response "cart is empty or out of stock"
// @Router /orders [post]
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), p)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary list my orders
// @Tags orders
// @Produce json
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=[]dto.OrderDTO} "success"
// @Router /orders [get]
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.ListMyOrders(r.Context(), p.UserID,
		queryInt(r, "page", 1), queryInt(r, "page_size", 10))
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelsToDTO(orders), "")
}

// @Summary get order
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} api.Response "order not found"
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), p, id)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary cancel my order
// @Tags orders
// @Produce json
// @Param id path string true "order id"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 400 {object} api.Response "order is not pending"
// @Failure 404 {object} api.Response "order not found"
// @Router /orders/{id} [delete]
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orderService.CancelOrder(r.Context(), p, id)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary list all orders
// @Tags admin
// @Produce json
// @Param status query string false "order status filter"
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=dto.Page[dto.OrderDTO]} "success"
// @Router /admin/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := model.ListOrdersParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "page_size", 10),
	}
	if s := r.URL.Query().Get("status"); s != "" {
		status := model.OrderStatusEnum(s)
		params.Status = &status
	}

	orders, total, err := h.orderService.ListOrders(r.Context(), params)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewPage(dto.ConvertOrderModelsToDTO(orders), total, params.Page, params.PageSize), "")
}

// @Summary set order status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "target status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} api.Response "order not found"
// @Router /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}

	order, err := h.orderService.UpdateOrderStatus(r.Context(), p, id, statusDTO.Status)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary set order payment status
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param status body dto.UpdateOrderStatusDTO true "target payment status"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} api.Response "order not found"
// @Router /admin/orders/{id}/payment-status [put]
func (h *OrderHandler) UpdateOrderPaymentStatus(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var statusDTO dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&statusDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}

	order, err := h.orderService.UpdateOrderPaymentStatus(r.Context(), p, id, statusDTO.Status)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary set order tracking number
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "order id"
// @Param tracking body dto.UpdateOrderTrackingDTO true "tracking number"
// @Success 200 {object} api.Response{data=dto.OrderDTO} "success"
// @Failure 404 {object} api.Response "order not found"
// @Router /admin/orders/{id}/tracking [put]
func (h *OrderHandler) UpdateOrderTracking(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var trackingDTO dto.UpdateOrderTrackingDTO
	if err := json.NewDecoder(r.Body).Decode(&trackingDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(trackingDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	order, err := h.orderService.UpdateOrderTracking(r.Context(), p, id, trackingDTO.TrackingNumber)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderModelToDTO(*order), "")
}

// @Summary order statistics
// @Tags admin
// @Produce json
// @Success 200 {object} api.Response{data=dto.OrderStatsDTO} "success"
// @Router /admin/stats [get]
func (h *OrderHandler) GetOrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orderService.GetOrderStats(r.Context())
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertOrderStatsToDTO(*stats), "")
}
