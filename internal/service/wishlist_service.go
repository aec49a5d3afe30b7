package service

import (
	"context"
	"errors"
	"reflect"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
)

type IWishlistService interface {
	// AddItem 重複加入視為成功
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	// RemoveItem 移除不存在的項目視為成功
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]model.WishlistItemModel, error)
}

type WishlistService struct {
	store db.IStore
}

func NewWishlistService(store db.IStore) IWishlistService {
	if reflect.ValueOf(store).IsNil() {
		panic("wishlist service initialization failed: store cannot be nil")
	}
	return &WishlistService{store: store}
}

func (s *WishlistService) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if _, err := s.store.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.New(apperr.NotFoundCode, "product not found")
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to get product", err)
	}

	if err := s.store.AddWishlistItem(ctx, userID, productID); err != nil {
		return apperr.Wrap(apperr.InternalErrorCode, "failed to add wishlist item", err)
	}
	return nil
}

func (s *WishlistService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if err := s.store.RemoveWishlistItem(ctx, userID, productID); err != nil {
		return apperr.Wrap(apperr.InternalErrorCode, "failed to remove wishlist item", err)
	}
	return nil
}

func (s *WishlistService) ListItems(ctx context.Context, userID uuid.UUID) ([]model.WishlistItemModel, error) {
	items, err := s.store.ListWishlist(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list wishlist", err)
	}
	return items, nil
}
