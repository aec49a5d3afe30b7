package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IProductReader 讀取介面, 可由redis快取包裝
type IProductReader interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error)
}

// ICacheInvalidator 商品異動後清除快取
type ICacheInvalidator interface {
	Invalidate(ctx context.Context, id uuid.UUID)
}

type IProductService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductModel, error)
	ListProducts(ctx context.Context, params model.ListProductsParams) ([]model.ProductModel, int64, error)
	// CreateProduct 僅限admin
	//
	// 錯誤:
	//   - apperr.InvalidArgumentCode 460: 價格/庫存/分類不合法
	//   - apperr.ConflictCode 409: 商品名稱重複
	CreateProduct(ctx context.Context, principal model.Principal, arg model.CreateProductModel) (*model.ProductModel, error)
	UpdateProduct(ctx context.Context, principal model.Principal, id uuid.UUID, arg model.UpdateProductModel) (*model.ProductModel, error)
	DeleteProduct(ctx context.Context, principal model.Principal, id uuid.UUID) error
}

type ProductService struct {
	store       db.IStore
	reader      IProductReader
	invalidator ICacheInvalidator
	audit       IAuditService
}

func NewProductService(store db.IStore, reader IProductReader, invalidator ICacheInvalidator, audit IAuditService) IProductService {
	if reflect.ValueOf(store).IsNil() {
		panic("product service initialization failed: store cannot be nil")
	}
	if reader == nil {
		reader = store
	}
	return &ProductService{
		store:       store,
		reader:      reader,
		invalidator: invalidator,
		audit:       audit,
	}
}

func (s *ProductService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, id)
	}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*model.ProductModel, error) {
	product, err := s.reader.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get product", err)
	}
	return &product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, params model.ListProductsParams) ([]model.ProductModel, int64, error) {
	params.Page, params.PageSize = normalizePageParams(params.Page, params.PageSize)

	products, err := s.store.ListProducts(ctx, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to list products", err)
	}
	total, err := s.store.CountProducts(ctx, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to count products", err)
	}
	return products, total, nil
}

func validateProductFields(price decimal.Decimal, stock int32, category model.CategoryEnum) error {
	if price.IsNegative() {
		return apperr.New(apperr.InvalidArgumentCode, "price must not be negative")
	}
	if stock < 0 {
		return apperr.New(apperr.InvalidArgumentCode, "stock must not be negative")
	}
	if !model.IsValidCategory(string(category)) {
		return apperr.Newf(apperr.InvalidArgumentCode, "invalid category: %s", category)
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, principal model.Principal, arg model.CreateProductModel) (*model.ProductModel, error) {
	if arg.Name == "" {
		return nil, apperr.New(apperr.InvalidArgumentCode, "product name is required")
	}
	if err := validateProductFields(arg.Price, arg.Stock, arg.Category); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := model.ProductModel{
		ID:          uuid.New(),
		Name:        arg.Name,
		Description: arg.Description,
		Price:       arg.Price,
		Stock:       arg.Stock,
		Category:    arg.Category,
		Images:      arg.Images,
		Rating:      decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.store.CreateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.New(apperr.ConflictCode, "product name already exists")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create product", err)
	}

	s.audit.Record(ctx, principal, "product.create", "product", product.ID.String(), product.Name)
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, principal model.Principal, id uuid.UUID, arg model.UpdateProductModel) (*model.ProductModel, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get product", err)
	}

	if arg.Name != nil {
		product.Name = *arg.Name
	}
	if arg.Description != nil {
		product.Description = *arg.Description
	}
	if arg.Price != nil {
		product.Price = *arg.Price
	}
	if arg.Stock != nil {
		product.Stock = *arg.Stock
	}
	if arg.Category != nil {
		product.Category = *arg.Category
	}
	if arg.Images != nil {
		product.Images = arg.Images
	}

	if err := validateProductFields(product.Price, product.Stock, product.Category); err != nil {
		return nil, err
	}

	err = s.store.UpdateProduct(ctx, product)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.New(apperr.ConflictCode, "product name already exists")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update product", err)
	}

	s.invalidate(ctx, id)
	s.audit.Record(ctx, principal, "product.update", "product", id.String(), product.Name)
	return &product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	err := s.store.DeleteProduct(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.New(apperr.NotFoundCode, "product not found")
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to delete product", err)
	}

	s.invalidate(ctx, id)
	s.audit.Record(ctx, principal, "product.delete", "product", id.String(), "")
	return nil
}
