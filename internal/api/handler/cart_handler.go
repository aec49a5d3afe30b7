package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
)

type CartHandler struct {
	cartService service.ICartService
}

func NewCartHandler(cartService service.ICartService) *CartHandler {
	if cartService == nil {
		panic("cartService cannot be nil")
	}
	return &CartHandler{
		cartService: cartService,
	}
}

// @Summary get my cart
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(r.Context(), p.UserID)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertCartModelToDTO(*cart), "")
}

// @Summary add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param item body dto.AddCartItemDTO true "product, quantity and optional size"
// @Success 201 {object} api.Response{data=dto.CartDTO} "created"
// @Failure 400 {object} api.Response "invalid quantity or out of stock"
// @Failure 404 {object} api.Response "product not found"
// @Router /cart/add [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var addDTO dto.AddCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&addDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(addDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidQuantityCode, err.Error())
		return
	}
	productID, err := uuid.Parse(addDTO.ProductID)
	if err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "invalid product_id")
		return
	}

	cart, err := h.cartService.AddItem(r.Context(), p.UserID, model.AddCartItemModel{
		ProductID: productID,
		Quantity:  addDTO.Quantity,
		Size:      addDTO.Size,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertCartModelToDTO(*cart), "")
}

// @Summary update cart item quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param itemID path string true "cart item id"
// @Param item body dto.UpdateCartItemDTO true "new quantity"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Failure 404 {object} api.Response "cart item not found"
// @Router /cart/update/{itemID} [put]
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	var updateDTO dto.UpdateCartItemDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(updateDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidQuantityCode, err.Error())
		return
	}

	cart, err := h.cartService.UpdateItem(r.Context(), p.UserID, itemID, updateDTO.Quantity)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertCartModelToDTO(*cart), "")
}

// @Summary remove cart item
// @Tags cart
// @Produce json
// @Param itemID path string true "cart item id"
// @Success 200 {object} api.Response{data=dto.CartDTO} "success"
// @Router /cart/remove/{itemID} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	itemID, ok := pathUUID(w, r, "itemID")
	if !ok {
		return
	}

	cart, err := h.cartService.RemoveItem(r.Context(), p.UserID, itemID)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertCartModelToDTO(*cart), "")
}

// @Summary clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} api.Response "success"
// @Router /cart/clear [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(r.Context(), p.UserID); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "cart cleared")
}
