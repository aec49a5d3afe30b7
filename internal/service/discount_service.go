package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type IDiscountService interface {
	// admin CRUD
	CreateDiscount(ctx context.Context, principal model.Principal, arg model.CreateDiscountModel) (*model.DiscountModel, error)
	GetDiscount(ctx context.Context, id uuid.UUID) (*model.DiscountModel, error)
	ListDiscounts(ctx context.Context, page, pageSize int) ([]model.DiscountModel, error)
	UpdateDiscount(ctx context.Context, principal model.Principal, discount model.DiscountModel) (*model.DiscountModel, error)
	DeleteDiscount(ctx context.Context, principal model.Principal, id uuid.UUID) error

	// ValidateCoupon 計算可折抵金額, 不扣用量
	//
	// 錯誤:
	//   - apperr.CouponInvalidCode 465: 不存在/未啟用/不在效期/用量已滿
	ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
	// RedeemCoupon 驗證後原子性地增加用量
	RedeemCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error)
}

type DiscountService struct {
	store db.IStore
	audit IAuditService
}

func NewDiscountService(store db.IStore, audit IAuditService) IDiscountService {
	if reflect.ValueOf(store).IsNil() {
		panic("discount service initialization failed: store cannot be nil")
	}
	return &DiscountService{store: store, audit: audit}
}

func validateDiscountFields(discountType model.DiscountTypeEnum, value decimal.Decimal, start, end time.Time) error {
	if !model.IsValidDiscountType(string(discountType)) {
		return apperr.Newf(apperr.InvalidArgumentCode, "invalid discount type: %s", discountType)
	}
	if !value.IsPositive() {
		return apperr.New(apperr.InvalidArgumentCode, "discount value must be positive")
	}
	if discountType == model.DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return apperr.New(apperr.InvalidArgumentCode, "percentage discount cannot exceed 100")
	}
	if end.Before(start) {
		return apperr.New(apperr.InvalidArgumentCode, "end date must be after start date")
	}
	return nil
}

func (s *DiscountService) CreateDiscount(ctx context.Context, principal model.Principal, arg model.CreateDiscountModel) (*model.DiscountModel, error) {
	if arg.Name == "" {
		return nil, apperr.New(apperr.InvalidArgumentCode, "discount name is required")
	}
	if err := validateDiscountFields(arg.Type, arg.Value, arg.StartDate, arg.EndDate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	discount := model.DiscountModel{
		ID:         uuid.New(),
		Name:       arg.Name,
		Type:       arg.Type,
		Value:      arg.Value,
		CouponCode: strings.ToUpper(strings.TrimSpace(arg.CouponCode)),
		StartDate:  arg.StartDate,
		EndDate:    arg.EndDate,
		UsageLimit: arg.UsageLimit,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateDiscount(ctx, discount); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.New(apperr.ConflictCode, "coupon code already exists")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to create discount", err)
	}

	s.audit.Record(ctx, principal, "discount.create", "discount", discount.ID.String(), discount.Name)
	return &discount, nil
}

func (s *DiscountService) GetDiscount(ctx context.Context, id uuid.UUID) (*model.DiscountModel, error) {
	discount, err := s.store.GetDiscountByID(ctx, id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "discount not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get discount", err)
	}
	return &discount, nil
}

func (s *DiscountService) ListDiscounts(ctx context.Context, page, pageSize int) ([]model.DiscountModel, error) {
	limit, offset := normalizePaging(page, pageSize)
	discounts, err := s.store.ListDiscounts(ctx, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list discounts", err)
	}
	return discounts, nil
}

func (s *DiscountService) UpdateDiscount(ctx context.Context, principal model.Principal, discount model.DiscountModel) (*model.DiscountModel, error) {
	if err := validateDiscountFields(discount.Type, discount.Value, discount.StartDate, discount.EndDate); err != nil {
		return nil, err
	}
	discount.CouponCode = strings.ToUpper(strings.TrimSpace(discount.CouponCode))

	if err := s.store.UpdateDiscount(ctx, discount); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "discount not found")
		}
		if errors.Is(err, db.ErrDuplicate) {
			return nil, apperr.New(apperr.ConflictCode, "coupon code already exists")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update discount", err)
	}

	s.audit.Record(ctx, principal, "discount.update", "discount", discount.ID.String(), discount.Name)
	return &discount, nil
}

func (s *DiscountService) DeleteDiscount(ctx context.Context, principal model.Principal, id uuid.UUID) error {
	if err := s.store.DeleteDiscount(ctx, id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return apperr.New(apperr.NotFoundCode, "discount not found")
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to delete discount", err)
	}

	s.audit.Record(ctx, principal, "discount.delete", "discount", id.String(), "")
	return nil
}

// checkCoupon 回傳可用的折扣, 任何不可用情況一律回465不透漏原因
func (s *DiscountService) checkCoupon(ctx context.Context, q db.Querier, code string) (model.DiscountModel, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return model.DiscountModel{}, apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
	}

	discount, err := q.GetDiscountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return model.DiscountModel{}, apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
		}
		return model.DiscountModel{}, apperr.Wrap(apperr.InternalErrorCode, "failed to get discount", err)
	}

	now := time.Now().UTC()
	switch {
	case !discount.IsActive:
		return model.DiscountModel{}, apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
	case now.Before(discount.StartDate) || now.After(discount.EndDate):
		return model.DiscountModel{}, apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
	case discount.UsageLimit != nil && discount.UsageCount >= *discount.UsageLimit:
		return model.DiscountModel{}, apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
	}
	return discount, nil
}

func (s *DiscountService) ValidateCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	discount, err := s.checkCoupon(ctx, s.store, code)
	if err != nil {
		return decimal.Zero, err
	}
	return discount.Deduction(subtotal), nil
}

func (s *DiscountService) RedeemCoupon(ctx context.Context, code string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	var deduction decimal.Decimal

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		discount, err := s.checkCoupon(ctx, q, code)
		if err != nil {
			return err
		}

		// guarded increment, 與其他redeem競爭時用量不會超限
		if err = q.IncrementDiscountUsage(ctx, discount.ID); err != nil {
			if errors.Is(err, db.ErrNotEnough) {
				return apperr.New(apperr.CouponInvalidCode, "coupon is not valid")
			}
			return apperr.Wrap(apperr.InternalErrorCode, "failed to redeem coupon", err)
		}

		deduction = discount.Deduction(subtotal)
		return nil
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return decimal.Zero, err
		}
		return decimal.Zero, apperr.Wrap(apperr.InternalErrorCode, "failed to redeem coupon", err)
	}

	return deduction, nil
}
