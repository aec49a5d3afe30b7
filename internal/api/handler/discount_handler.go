package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/shopspring/decimal"
)

type DiscountHandler struct {
	discountService service.IDiscountService
}

func NewDiscountHandler(discountService service.IDiscountService) *DiscountHandler {
	if discountService == nil {
		panic("discountService cannot be nil")
	}
	return &DiscountHandler{
		discountService: discountService,
	}
}

// @Summary validate coupon against a subtotal
// @Tags coupons
// @Accept json
// @Produce json
// @Param coupon body dto.ValidateCouponDTO true "coupon code and subtotal"
// @Success 200 {object} api.Response{data=dto.CouponResultDTO} "success"
// @Failure 400 {object} api.Response "coupon is not valid"
// @Router /coupons/validate [post]
func (h *DiscountHandler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	var couponDTO dto.ValidateCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&couponDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(couponDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	subtotal, err := decimal.NewFromString(couponDTO.Subtotal)
	if err != nil || subtotal.IsNegative() {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid subtotal")
		return
	}

	deduction, err := h.discountService.ValidateCoupon(r.Context(), couponDTO.Code, subtotal)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.CouponResultDTO{
		Code:      couponDTO.Code,
		Deduction: deduction.StringFixed(2),
	}, "")
}

// @Summary redeem coupon, consuming one use
// @Tags coupons
// @Accept json
// @Produce json
// @Param coupon body dto.ValidateCouponDTO true "coupon code and subtotal"
// @Success 200 {object} api.Response{data=dto.CouponResultDTO} "success"
// @Failure 400 {object} api.Response "coupon is not valid"
// @Router /coupons/redeem [post]
func (h *DiscountHandler) RedeemCoupon(w http.ResponseWriter, r *http.Request) {
	var couponDTO dto.ValidateCouponDTO
	if err := json.NewDecoder(r.Body).Decode(&couponDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(couponDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	subtotal, err := decimal.NewFromString(couponDTO.Subtotal)
	if err != nil || subtotal.IsNegative() {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid subtotal")
		return
	}

	deduction, err := h.discountService.RedeemCoupon(r.Context(), couponDTO.Code, subtotal)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.CouponResultDTO{
		Code:      couponDTO.Code,
		Deduction: deduction.StringFixed(2),
	}, "coupon redeemed")
}

// @Summary create discount
// @Tags admin
// @Accept json
// @Produce json
// @Param discount body dto.CreateDiscountDTO true "discount"
// @Success 201 {object} api.Response{data=dto.DiscountDTO} "created"
// @Failure 409 {object} api.Response "coupon code already exists"
// @Router /admin/discounts [post]
func (h *DiscountHandler) CreateDiscount(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var discountDTO dto.CreateDiscountDTO
	if err := json.NewDecoder(r.Body).Decode(&discountDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(discountDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	value, err := decimal.NewFromString(discountDTO.Value)
	if err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid discount value")
		return
	}

	discount, err := h.discountService.CreateDiscount(r.Context(), p, model.CreateDiscountModel{
		Name:       discountDTO.Name,
		Type:       model.DiscountTypeEnum(discountDTO.Type),
		Value:      value,
		CouponCode: discountDTO.CouponCode,
		StartDate:  discountDTO.StartDate,
		EndDate:    discountDTO.EndDate,
		UsageLimit: discountDTO.UsageLimit,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertDiscountModelToDTO(*discount), "")
}

// @Summary list discounts
// @Tags admin
// @Produce json
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=[]dto.DiscountDTO} "success"
// @Router /admin/discounts [get]
func (h *DiscountHandler) ListDiscounts(w http.ResponseWriter, r *http.Request) {
	discounts, err := h.discountService.ListDiscounts(r.Context(),
		queryInt(r, "page", 1), queryInt(r, "page_size", 10))
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertDiscountModelsToDTO(discounts), "")
}

// @Summary get discount
// @Tags admin
// @Produce json
// @Param id path string true "discount id"
// @Success 200 {object} api.Response{data=dto.DiscountDTO} "success"
// @Failure 404 {object} api.Response "discount not found"
// @Router /admin/discounts/{id} [get]
func (h *DiscountHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	discount, err := h.discountService.GetDiscount(r.Context(), id)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertDiscountModelToDTO(*discount), "")
}

// @Summary update discount
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "discount id"
// @Param discount body dto.UpdateDiscountDTO true "discount"
// @Success 200 {object} api.Response{data=dto.DiscountDTO} "success"
// @Failure 404 {object} api.Response "discount not found"
// @Router /admin/discounts/{id} [put]
func (h *DiscountHandler) UpdateDiscount(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var discountDTO dto.UpdateDiscountDTO
	if err := json.NewDecoder(r.Body).Decode(&discountDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(discountDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	value, err := decimal.NewFromString(discountDTO.Value)
	if err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid discount value")
		return
	}

	discount, err := h.discountService.UpdateDiscount(r.Context(), p, model.DiscountModel{
		ID:         id,
		Name:       discountDTO.Name,
		Type:       model.DiscountTypeEnum(discountDTO.Type),
		Value:      value,
		CouponCode: discountDTO.CouponCode,
		StartDate:  discountDTO.StartDate,
		EndDate:    discountDTO.EndDate,
		UsageLimit: discountDTO.UsageLimit,
		IsActive:   discountDTO.IsActive,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertDiscountModelToDTO(*discount), "")
}

// @Summary delete discount
// @Tags admin
// @Produce json
// @Param id path string true "discount id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "discount not found"
// @Router /admin/discounts/{id} [delete]
func (h *DiscountHandler) DeleteDiscount(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.discountService.DeleteDiscount(r.Context(), p, id); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "discount deleted")
}
