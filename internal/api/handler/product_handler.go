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

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{
		productService: productService,
	}
}

// @Summary list products
// @Tags products
// @Produce json
// @Param category query string false "category filter"
// @Param search query string false "name keyword"
// @Param min_price query string false "minimum price"
// @Param max_price query string false "maximum price"
// @Param sort_by query string false "price|rating|created_at"
// @Param sort_order query string false "asc|desc"
// @Param page query int false "page"
// @Param page_size query int false "page size"
// @Success 200 {object} api.Response{data=dto.Page[dto.ProductDTO]} "success"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := model.ListProductsParams{
		Search:    q.Get("search"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
		Page:      queryInt(r, "page", 1),
		PageSize:  queryInt(r, "page_size", 10),
	}
	if c := q.Get("category"); c != "" {
		if !model.IsValidCategory(c) {
			api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid category: "+c)
			return
		}
		category := model.CategoryEnum(c)
		params.Category = &category
	}
	if v := q.Get("min_price"); v != "" {
		price, err := dto.ParsePrice(v)
		if err != nil {
			api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid min_price")
			return
		}
		params.MinPrice = &price
	}
	if v := q.Get("max_price"); v != "" {
		price, err := dto.ParsePrice(v)
		if err != nil {
			api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid max_price")
			return
		}
		params.MaxPrice = &price
	}

	products, total, err := h.productService.ListProducts(r.Context(), params)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.NewPage(dto.ConvertProductModelsToDTO(products), total, params.Page, params.PageSize), "")
}

// @Summary get product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.Response "product not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertProductModelToDTO(*product), "")
}

// @Summary create product
// @Tags admin
// @Accept json
// @Produce json
// @Param product body dto.CreateProductDTO true "product payload"
// @Success 201 {object} api.Response{data=dto.ProductDTO} "created"
// @Failure 409 {object} api.Response "product name already exists"
// @Router /admin/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}

	var createDTO dto.CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&createDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(createDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}
	price, err := dto.ParsePrice(createDTO.Price)
	if err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid price")
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), p, model.CreateProductModel{
		Name:        createDTO.Name,
		Description: createDTO.Description,
		Price:       price,
		Stock:       createDTO.Stock,
		Category:    model.CategoryEnum(createDTO.Category),
		Images:      createDTO.Images,
	})
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.CreatedJSON(w, dto.ConvertProductModelToDTO(*product), "")
}

// @Summary update product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param product body dto.UpdateProductDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ProductDTO} "success"
// @Failure 404 {object} api.Response "product not found"
// @Router /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var updateDTO dto.UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&updateDTO); err != nil {
		api.ErrorJSON(w, apperr.BadRequestCode, "")
		return
	}
	if err := dto.Validate(updateDTO); err != nil {
		api.ErrorJSON(w, apperr.InvalidArgumentCode, err.Error())
		return
	}

	arg := model.UpdateProductModel{
		Name:        updateDTO.Name,
		Description: updateDTO.Description,
		Stock:       updateDTO.Stock,
		Images:      updateDTO.Images,
	}
	if updateDTO.Price != nil {
		price, err := dto.ParsePrice(*updateDTO.Price)
		if err != nil {
			api.ErrorJSON(w, apperr.InvalidArgumentCode, "invalid price")
			return
		}
		arg.Price = &price
	}
	if updateDTO.Category != nil {
		category := model.CategoryEnum(*updateDTO.Category)
		arg.Category = &category
	}

	product, err := h.productService.UpdateProduct(r.Context(), p, id, arg)
	if err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, dto.ConvertProductModelToDTO(*product), "")
}

// @Summary delete product
// @Tags admin
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.Response "product not found"
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), p, id); err != nil {
		api.HandleServiceError(w, err)
		return
	}

	api.SuccessJSON(w, nil, "product deleted")
}
