package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func addReview(t *testing.T, svc IReviewService, productID uuid.UUID, rating int32) (*model.ReviewModel, model.Principal) {
	t.Helper()
	principal := userPrincipal()
	review, err := svc.AddReview(context.Background(), principal, model.CreateReviewModel{
		ProductID: productID,
		Rating:    rating,
		Title:     "review",
		Comment:   "comment",
	})
	require.NoError(t, err)
	return review, principal
}

func requireRating(t *testing.T, store *memStore, productID uuid.UUID, rating string, count int32) {
	t.Helper()
	product, err := store.GetProductByID(context.Background(), productID)
	require.NoError(t, err)
	require.True(t, product.Rating.Equal(decimal.RequireFromString(rating)),
		"expected rating %s, got %s", rating, product.Rating)
	require.Equal(t, count, product.ReviewCount)
}

func TestAddReviewRecomputesMean(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "book", "20", 10)

	addReview(t, svc, product.ID, 5)
	requireRating(t, store, product.ID, "5", 1)

	addReview(t, svc, product.ID, 3)
	addReview(t, svc, product.ID, 4)
	requireRating(t, store, product.ID, "4", 3)
}

func TestUpdateReviewRecomputesMean(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "novel", "15", 10)

	review, principal := addReview(t, svc, product.ID, 5)
	addReview(t, svc, product.ID, 3)
	requireRating(t, store, product.ID, "4", 2)

	newRating := int32(4)
	updated, err := svc.UpdateReview(context.Background(), principal, review.ID, model.UpdateReviewModel{
		Rating: &newRating,
	})
	require.NoError(t, err)
	require.EqualValues(t, 4, updated.Rating)
	requireRating(t, store, product.ID, "3.5", 2)
}

func TestDeleteLastReviewResetsRating(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "comic", "8", 10)

	review, principal := addReview(t, svc, product.ID, 5)
	requireRating(t, store, product.ID, "5", 1)

	require.NoError(t, svc.DeleteReview(context.Background(), principal, review.ID))
	requireRating(t, store, product.ID, "0", 0)
}

func TestDuplicateReviewRejectedWithoutRecompute(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "magazine", "5", 10)

	_, principal := addReview(t, svc, product.ID, 5)

	_, err := svc.AddReview(context.Background(), principal, model.CreateReviewModel{
		ProductID: product.ID,
		Rating:    1,
	})
	requireCode(t, err, apperr.DuplicateReviewCode)
	requireRating(t, store, product.ID, "5", 1)
}

func TestReviewRatingBounds(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "poster", "3", 10)
	principal := userPrincipal()

	for _, rating := range []int32{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), principal, model.CreateReviewModel{
			ProductID: product.ID,
			Rating:    rating,
		})
		requireCode(t, err, apperr.InvalidArgumentCode)
	}
}

func TestAddReviewUnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)

	_, err := svc.AddReview(context.Background(), userPrincipal(), model.CreateReviewModel{
		ProductID: uuid.New(),
		Rating:    4,
	})
	requireCode(t, err, apperr.NotFoundCode)
}

func TestDeleteReviewPermissions(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "album", "12", 10)

	review, _ := addReview(t, svc, product.ID, 4)

	// a stranger cannot delete it
	err := svc.DeleteReview(context.Background(), userPrincipal(), review.ID)
	requireCode(t, err, apperr.NotFoundCode)

	// admin can
	require.NoError(t, svc.DeleteReview(context.Background(), adminPrincipal(), review.ID))
	requireRating(t, store, product.ID, "0", 0)
}

func TestUpdateReviewOnlyByOwner(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "vinyl", "25", 10)

	review, _ := addReview(t, svc, product.ID, 4)

	rating := int32(1)
	_, err := svc.UpdateReview(context.Background(), userPrincipal(), review.ID, model.UpdateReviewModel{
		Rating: &rating,
	})
	requireCode(t, err, apperr.NotFoundCode)
}

func TestListReviews(t *testing.T) {
	store := newMemStore()
	svc := NewReviewService(store, nil)
	product := seedProduct(t, store, "boardgame", "40", 10)
	other := seedProduct(t, store, "puzzle", "18", 10)

	addReview(t, svc, product.ID, 5)
	addReview(t, svc, product.ID, 3)
	addReview(t, svc, other.ID, 2)

	reviews, err := svc.ListReviews(context.Background(), product.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
}
