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

func requireCode(t *testing.T, err error, code apperr.Code) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, code, apperr.CodeOf(err))
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	userID := uuid.New()

	cart, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, userID, cart.UserID)
	require.Empty(t, cart.Items)
	require.True(t, cart.Total().IsZero())
	require.Zero(t, cart.Count())
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "keyboard", "49.99", 10)
	userID := uuid.New()

	cart := fillCart(t, svc, userID, product, 2)
	require.Len(t, cart.Items, 1)

	item := cart.Items[0]
	require.Equal(t, product.ID, item.ProductID)
	require.Equal(t, "keyboard", item.Name)
	require.True(t, item.Price.Equal(decimal.RequireFromString("49.99")))
	require.EqualValues(t, 2, item.Quantity)
	require.True(t, cart.Total().Equal(decimal.RequireFromString("99.98")))

	// 商品改價後快照不變
	product.Price = decimal.RequireFromString("99.99")
	require.NoError(t, store.UpdateProduct(context.Background(), product))

	cart, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.True(t, cart.Items[0].Price.Equal(decimal.RequireFromString("49.99")))
}

func TestAddItemMergesAndClamps(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "mouse", "10", 500)
	userID := uuid.New()

	fillCart(t, svc, userID, product, 60)
	cart := fillCart(t, svc, userID, product, 60)

	require.Len(t, cart.Items, 1)
	require.EqualValues(t, 100, cart.Items[0].Quantity)
}

func TestAddItemDifferentSizesAreSeparate(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "tshirt", "15", 50)
	userID := uuid.New()

	_, err := svc.AddItem(context.Background(), userID, model.AddCartItemModel{
		ProductID: product.ID, Quantity: 1, Size: "M",
	})
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), userID, model.AddCartItemModel{
		ProductID: product.ID, Quantity: 1, Size: "L",
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestAddItemQuantityBounds(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "cable", "5", 200)
	userID := uuid.New()

	testCases := []struct {
		name     string
		quantity int32
		code     apperr.Code
	}{
		{name: "zero", quantity: 0, code: apperr.InvalidQuantityCode},
		{name: "negative", quantity: -3, code: apperr.InvalidQuantityCode},
		{name: "above max", quantity: 101, code: apperr.InvalidQuantityCode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddItem(context.Background(), userID, model.AddCartItemModel{
				ProductID: product.ID, Quantity: tc.quantity,
			})
			requireCode(t, err, tc.code)
		})
	}
}

func TestAddItemUnknownProduct(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)

	_, err := svc.AddItem(context.Background(), uuid.New(), model.AddCartItemModel{
		ProductID: uuid.New(), Quantity: 1,
	})
	requireCode(t, err, apperr.NotFoundCode)
}

func TestAddItemInsufficientStock(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "limited", "99", 3)

	_, err := svc.AddItem(context.Background(), uuid.New(), model.AddCartItemModel{
		ProductID: product.ID, Quantity: 5,
	})
	requireCode(t, err, apperr.OutOfStockCode)
}

func TestUpdateItemQuantity(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "monitor", "200", 10)
	userID := uuid.New()

	cart := fillCart(t, svc, userID, product, 1)
	itemID := cart.Items[0].ID

	cart, err := svc.UpdateItem(context.Background(), userID, itemID, 4)
	require.NoError(t, err)
	require.EqualValues(t, 4, cart.Items[0].Quantity)
	require.True(t, cart.Total().Equal(decimal.NewFromInt(800)))

	_, err = svc.UpdateItem(context.Background(), userID, itemID, 0)
	requireCode(t, err, apperr.InvalidQuantityCode)
}

func TestUpdateItemBeyondLiveStock(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "dock", "90", 5)
	userID := uuid.New()

	cart := fillCart(t, svc, userID, product, 2)
	itemID := cart.Items[0].ID

	_, err := svc.UpdateItem(context.Background(), userID, itemID, 50)
	requireCode(t, err, apperr.OutOfStockCode)

	// 被拒絕後數量維持原樣
	cart, err = svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, cart.Items[0].Quantity)
}

func TestUpdateItemOfAnotherUser(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "webcam", "30", 10)
	owner := uuid.New()

	cart := fillCart(t, svc, owner, product, 1)
	itemID := cart.Items[0].ID

	_, err := svc.UpdateItem(context.Background(), uuid.New(), itemID, 2)
	requireCode(t, err, apperr.NotFoundCode)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "headset", "45", 10)
	userID := uuid.New()

	cart := fillCart(t, svc, userID, product, 1)
	itemID := cart.Items[0].ID

	cart, err := svc.RemoveItem(context.Background(), userID, itemID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// second remove of the same item is still a success
	cart, err = svc.RemoveItem(context.Background(), userID, itemID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearCart(t *testing.T) {
	store := newMemStore()
	svc := NewCartService(store)
	product := seedProduct(t, store, "charger", "20", 10)
	userID := uuid.New()

	fillCart(t, svc, userID, product, 3)
	require.NoError(t, svc.ClearCart(context.Background(), userID))

	cart, err := svc.GetCart(context.Background(), userID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// clearing a user without a cart is a no-op
	require.NoError(t, svc.ClearCart(context.Background(), uuid.New()))
}
