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

type ReviewHandler struct {
	reviewService service.IReviewService
}

func NewReviewHandler(reviewService service.IReviewService) *ReviewHandler {
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// @Summary add product review
// @Tags reviews
// @Accept json
// @Produce json
// @Param review body dto.CreateReviewDTO true "review"
// @Success 201 {object} api.Response{data=dto.ReviewDTO} "created"
// @Failure 404 {object} api.Response "product not found"
// @Failure 409 {object} api.Response "already reviewed"
// @Router /reviews [post]
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var reviewDTO dto.CreateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&reviewDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(reviewDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	productID, err := uuid.Parse(reviewDTO.ProductID)
	if err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid product id")
		return
	}

	review, err := h.reviewService.AddReview(r.Context(), p, model.CreateReviewModel{
		ProductID: productID,
		Rating:    reviewDTO.Rating,
		Title:     reviewDTO.Title,
		Comment:   reviewDTO.Comment,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertReviewModelToDTO(*review), "")
}

// @Summary list product reviews
// @Tags reviews
// @Produce json
// @Param id path string true "product id"
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=[]dto.ReviewDTO} "success"
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	productID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListReviews(r.Context(), productID,
		queryInt(r, "page", 1), queryInt(r, "page_size", 10))
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertReviewModelsToDTO(reviews), "")
}

// @Summary update my review
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "review id"
// @Param review body dto.UpdateReviewDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ReviewDTO} "success"
// @Failure 404 {object} api.Response "review not found"
// @Router /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var reviewDTO dto.UpdateReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&reviewDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(reviewDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	review, err := h.reviewService.UpdateReview(r.Context(), p, id, model.UpdateReviewModel{
		Rating:  reviewDTO.Rating,
		Title:   reviewDTO.Title,
		Comment: reviewDTO.Comment,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertReviewModelToDTO(*review), "")
}

// @Summary delete review
// @Tags reviews
// @Produce json
// @Param id path string true "review id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "review not found"
// @Router /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(r.Context(), p, id); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "review deleted")
}
