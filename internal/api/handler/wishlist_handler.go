package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shopcenter/internal/api/dto"
	"github.com/RoyceAzure/lab/shopcenter/internal/service"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api"
)

type WishlistHandler struct {
	wishlistService service.IWishlistService
}

func NewWishlistHandler(wishlistService service.IWishlistService) *WishlistHandler {
	if wishlistService == nil {
		panic("wishlistService cannot be nil")
	}
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// @Summary list my wishlist
// @Tags wishlist
// @Produce json
// @Success 200 {object} api.Response{data=[]dto.WishlistItemDTO} "success"
// @Router /wishlist [get]
func (h *WishlistHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	items, err := h.wishlistService.ListItems(r.Context(), p.UserID)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertWishlistModelsToDTO(items), "")
}

// @Summary add product to wishlist
// @Tags wishlist
// @Produce json
// @Param productID path string true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "product not found"
// @Router /wishlist/{productID} [post]
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.wishlistService.AddItem(r.Context(), p.UserID, productID); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "added to wishlist")
}

// @Summary remove product from wishlist
// @Tags wishlist
// @Produce json
// @Param productID path string true "product id"
// @Success 200 {object} api.Response "success"
// @Router /wishlist/{productID} [delete]
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	productID, ok := pathUUID(w, r, "productID")
	if !ok {
		return
	}

	if err := h.wishlistService.RemoveItem(r.Context(), p.UserID, productID); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "removed from wishlist")
}
