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

type IUserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error)
	// ListUsers 管理後台分頁查詢
	ListUsers(ctx context.Context, page, pageSize int) ([]model.UserModel, int64, error)
	// SetUserActive 停用使用者後其既有token於驗證時被拒
	SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error
}

type UserService struct {
	store db.IStore
}

func NewUserService(store db.IStore) IUserService {
	if reflect.ValueOf(store).IsNil() {
		panic("user service initialization failed: store cannot be nil")
	}
	return &UserService{store: store}
}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "user not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get user", err)
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "user not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get user", err)
	}
	return &user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]model.UserModel, int64, error) {
	limit, offset := normalizePaging(page, pageSize)

	users, err := s.store.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to list users", err)
	}
	total, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to count users", err)
	}
	return users, total, nil
}

func (s *UserService) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	err := s.store.SetUserActive(ctx, id, isActive)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.New(apperr.NotFoundCode, "user not found")
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to update user", err)
	}
	return nil
}
