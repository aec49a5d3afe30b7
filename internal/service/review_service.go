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
)

const (
	minRating int32 = 1
	maxRating int32 = 5
)

type IReviewService interface {
	// AddReview 每個使用者對同一商品僅能評論一次
	//
	// 錯誤:
	//   - apperr.InvalidArgumentCode 460: 評分不在 [1,5]
	//   - apperr.DuplicateReviewCode 466: 已評論過
	AddReview(ctx context.Context, principal model.Principal, arg model.CreateReviewModel) (*model.ReviewModel, error)
	UpdateReview(ctx context.Context, principal model.Principal, reviewID uuid.UUID, arg model.UpdateReviewModel) (*model.ReviewModel, error)
	// DeleteReview 本人或admin可刪除
	DeleteReview(ctx context.Context, principal model.Principal, reviewID uuid.UUID) error
	ListReviews(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]model.ReviewModel, error)
}

type ReviewService struct {
	store       db.IStore
	invalidator ICacheInvalidator
}

func NewReviewService(store db.IStore, invalidator ICacheInvalidator) IReviewService {
	if reflect.ValueOf(store).IsNil() {
		panic("review service initialization failed: store cannot be nil")
	}
	return &ReviewService{
		store:       store,
		invalidator: invalidator,
	}
}

func (s *ReviewService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, productID)
	}
}

// recomputeRating 以SQL彙總重算商品平均評分, 須在同一交易內呼叫
func recomputeRating(ctx context.Context, q db.Querier, productID uuid.UUID) error {
	avg, count, err := q.GetProductRatingStats(ctx, productID)
	if err != nil {
		return err
	}
	return q.SetProductRating(ctx, productID, avg.Round(2), int32(count))
}

func validRating(rating int32) bool {
	return rating >= minRating && rating <= maxRating
}

func (s *ReviewService) AddReview(ctx context.Context, principal model.Principal, arg model.CreateReviewModel) (*model.ReviewModel, error) {
	if !validRating(arg.Rating) {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "rating must be between %d and %d", minRating, maxRating)
	}

	now := time.Now().UTC()
	review := model.ReviewModel{
		ID:        uuid.New(),
		ProductID: arg.ProductID,
		UserID:    principal.UserID,
		Rating:    arg.Rating,
		Title:     arg.Title,
		Comment:   arg.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		if _, err := q.GetProductByID(ctx, arg.ProductID); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apperr.New(apperr.NotFoundCode, "product not found")
			}
			return err
		}
		if err := q.CreateReview(ctx, review); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				return apperr.New(apperr.DuplicateReviewCode, "you have already reviewed this product")
			}
			return err
		}
		return recomputeRating(ctx, q, arg.ProductID)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to add review", err)
	}

	s.invalidate(ctx, arg.ProductID)
	return &review, nil
}

func (s *ReviewService) UpdateReview(ctx context.Context, principal model.Principal, reviewID uuid.UUID, arg model.UpdateReviewModel) (*model.ReviewModel, error) {
	if arg.Rating != nil && !validRating(*arg.Rating) {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "rating must be between %d and %d", minRating, maxRating)
	}

	var updated model.ReviewModel
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		review, err := q.GetReviewByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apperr.New(apperr.NotFoundCode, "review not found")
			}
			return err
		}
		if review.UserID != principal.UserID {
			return apperr.New(apperr.NotFoundCode, "review not found")
		}

		if arg.Rating != nil {
			review.Rating = *arg.Rating
		}
		if arg.Title != nil {
			review.Title = *arg.Title
		}
		if arg.Comment != nil {
			review.Comment = *arg.Comment
		}
		review.UpdatedAt = time.Now().UTC()

		if err = q.UpdateReview(ctx, review); err != nil {
			return err
		}
		updated = review
		return recomputeRating(ctx, q, review.ProductID)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update review", err)
	}

	s.invalidate(ctx, updated.ProductID)
	return &updated, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, principal model.Principal, reviewID uuid.UUID) error {
	var productID uuid.UUID
	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		review, err := q.GetReviewByID(ctx, reviewID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apperr.New(apperr.NotFoundCode, "review not found")
			}
			return err
		}
		if review.UserID != principal.UserID && !principal.IsAdmin() {
			return apperr.New(apperr.NotFoundCode, "review not found")
		}

		if err = q.DeleteReview(ctx, reviewID); err != nil {
			return err
		}
		productID = review.ProductID
		// 刪到最後一則時AVG回傳0, 評分歸零
		return recomputeRating(ctx, q, review.ProductID)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return apperr.Wrap(apperr.InternalErrorCode, "failed to delete review", err)
	}

	s.invalidate(ctx, productID)
	return nil
}

func (s *ReviewService) ListReviews(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]model.ReviewModel, error) {
	limit, offset := normalizePaging(page, pageSize)
	reviews, err := s.store.ListReviewsByProduct(ctx, productID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list reviews", err)
	}
	return reviews, nil
}
