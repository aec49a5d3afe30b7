package service

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
)

type ICartService interface {
	// GetCart 取得使用者購物車, 沒有就建立空的
	GetCart(ctx context.Context, userID uuid.UUID) (*model.CartModel, error)
	// AddItem 加入商品, 同商品同尺寸合併數量, 上限100
	//
	// 錯誤:
	//   - apperr.InvalidQuantityCode 461: 數量不在 [1,100]
	//   - apperr.NotFoundCode 404: 商品不存在
	//   - apperr.OutOfStockCode 462: 庫存不足
	AddItem(ctx context.Context, userID uuid.UUID, arg model.AddCartItemModel) (*model.CartModel, error)
	// UpdateItem 改數量, 同樣檢查範圍與即時庫存
	UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int32) (*model.CartModel, error)
	// RemoveItem 移除不存在的項目視為成功
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartModel, error)
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

type CartService struct {
	store db.IStore
}

func NewCartService(store db.IStore) ICartService {
	if reflect.ValueOf(store).IsNil() {
		panic("cart service initialization failed: store cannot be nil")
	}
	return &CartService{store: store}
}

// getOrCreateCart 購物車採lazy建立
func (s *CartService) getOrCreateCart(ctx context.Context, q db.Querier, userID uuid.UUID) (model.CartModel, error) {
	cart, err := q.GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return model.CartModel{}, err
	}

	now := time.Now().UTC()
	cart = model.CartModel{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = q.CreateCart(ctx, cart)
	if err != nil {
		// 並發建立時撞唯一鍵, 改讀既有的
		if errors.Is(err, db.ErrDuplicate) {
			return q.GetCartByUserID(ctx, userID)
		}
		return model.CartModel{}, err
	}
	return cart, nil
}

func (s *CartService) loadCart(ctx context.Context, userID uuid.UUID) (*model.CartModel, error) {
	cart, err := s.getOrCreateCart(ctx, s.store, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get cart", err)
	}
	items, err := s.store.ListCartItems(ctx, cart.ID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list cart items", err)
	}
	cart.Items = items
	return &cart, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*model.CartModel, error) {
	return s.loadCart(ctx, userID)
}

func validQuantity(quantity int32) bool {
	return quantity >= constants.MinCartItemQuantity && quantity <= constants.MaxCartItemQuantity
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, arg model.AddCartItemModel) (*model.CartModel, error) {
	if !validQuantity(arg.Quantity) {
		return nil, apperr.Newf(apperr.InvalidQuantityCode, "quantity must be between %d and %d",
			constants.MinCartItemQuantity, constants.MaxCartItemQuantity)
	}

	product, err := s.store.GetProductByID(ctx, arg.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get product", err)
	}
	if product.Stock < arg.Quantity {
		return nil, apperr.Newf(apperr.OutOfStockCode, "insufficient stock for product %s", product.Name)
	}

	cart, err := s.getOrCreateCart(ctx, s.store, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get cart", err)
	}

	var image string
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	item := model.CartItemModel{
		ID:        uuid.New(),
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		Image:     image,
		Price:     product.Price,
		Quantity:  arg.Quantity,
		Size:      arg.Size,
	}

	// upsert在DB端合併數量並夾在上限, 避免並發加入時遺失更新
	_, err = s.store.UpsertCartItem(ctx, item)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to add cart item", err)
	}

	return s.loadCart(ctx, userID)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, quantity int32) (*model.CartModel, error) {
	if !validQuantity(quantity) {
		return nil, apperr.Newf(apperr.InvalidQuantityCode, "quantity must be between %d and %d",
			constants.MinCartItemQuantity, constants.MaxCartItemQuantity)
	}

	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "cart item not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get cart", err)
	}

	item, err := s.store.GetCartItemByID(ctx, itemID)
	if err != nil || item.CartID != cart.ID {
		if err != nil && !errors.Is(err, db.ErrNotFound) {
			return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get cart item", err)
		}
		return nil, apperr.New(apperr.NotFoundCode, "cart item not found")
	}

	// 改數量也要重查即時庫存
	product, err := s.store.GetProductByID(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "product not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get product", err)
	}
	if product.Stock < quantity {
		return nil, apperr.Newf(apperr.OutOfStockCode, "insufficient stock for product %s", product.Name)
	}

	_, err = s.store.UpdateCartItemQuantity(ctx, itemID, quantity)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "cart item not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update cart item", err)
	}

	return s.loadCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*model.CartModel, error) {
	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return s.loadCart(ctx, userID)
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get cart", err)
	}

	err = s.store.DeleteCartItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to remove cart item", err)
	}

	return s.loadCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) error {
	cart, err := s.store.GetCartByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to get cart", err)
	}

	err = s.store.ClearCart(ctx, cart.ID)
	if err != nil {
		return apperr.Wrap(apperr.InternalErrorCode, "failed to clear cart", err)
	}
	return nil
}
