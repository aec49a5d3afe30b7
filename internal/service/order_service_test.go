package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(store *memStore) (ICartService, IOrderService) {
	return NewCartService(store), NewOrderService(store, testPricing, testAudit(store))
}

func TestPlaceOrderTotals(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "speaker", "75", 10)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 2)

	order, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	// subtotal 150, tax 10% = 15, free shipping above 100
	require.True(t, order.Subtotal.Equal(decimal.NewFromInt(150)))
	require.True(t, order.Tax.Equal(decimal.NewFromInt(15)))
	require.True(t, order.Shipping.IsZero())
	require.True(t, order.Total.Equal(decimal.NewFromInt(165)))
	require.Equal(t, model.OrderStatusPending, order.Status)
	require.Equal(t, model.PaymentStatusUnpaid, order.PaymentStatus)
}

func TestPlaceOrderFlatShippingAtThreshold(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "lamp", "100", 10)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 1)

	order, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	// subtotal exactly at the threshold still pays flat shipping
	require.True(t, order.Shipping.Equal(decimal.NewFromInt(10)))
	require.True(t, order.Total.Equal(decimal.NewFromInt(120)))
}

func TestPlaceOrderTaxRounding(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "sticker", "0.33", 10)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 1)

	order, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	// 0.033 rounds to 0.03
	require.True(t, order.Tax.Equal(decimal.RequireFromString("0.03")))
}

func TestPlaceOrderDecrementsStockAndClearsCart(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "tablet", "300", 5)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 3)

	_, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	updated, err := store.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 2, updated.Stock)

	cart, err := cartSvc.GetCart(context.Background(), principal.UserID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	store := newMemStore()
	_, orderSvc := newOrderFixture(store)

	_, err := orderSvc.PlaceOrder(context.Background(), userPrincipal())
	requireCode(t, err, apperr.EmptyCartCode)
}

func TestPlaceOrderOutOfStockRollsBack(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	first := seedProduct(t, store, "ssd", "80", 10)
	second := seedProduct(t, store, "ram", "60", 5)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, first, 2)
	fillCart(t, cartSvc, principal.UserID, second, 2)

	// stock drops below the cart quantity after the item was added
	require.NoError(t, store.AdjustProductStock(context.Background(), second.ID, -4))

	_, err := orderSvc.PlaceOrder(context.Background(), principal)
	requireCode(t, err, apperr.OutOfStockCode)

	// the first product's decrement was rolled back
	p, err := store.GetProductByID(context.Background(), first.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, p.Stock)

	// nothing was ordered and the cart is untouched
	orders, err := orderSvc.ListMyOrders(context.Background(), principal.UserID, 1, 10)
	require.NoError(t, err)
	require.Empty(t, orders)

	cart, err := cartSvc.GetCart(context.Background(), principal.UserID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestOrderItemsAreSnapshots(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "camera", "500", 10)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	product.Price = decimal.NewFromInt(999)
	product.Name = "camera v2"
	require.NoError(t, store.UpdateProduct(context.Background(), product))

	order, err := orderSvc.GetOrder(context.Background(), principal, placed.ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, "camera", order.Items[0].Name)
	require.True(t, order.Items[0].Price.Equal(decimal.NewFromInt(500)))
}

func TestGetOrderOwnership(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "drone", "250", 10)
	owner := userPrincipal()

	fillCart(t, cartSvc, owner.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), owner)
	require.NoError(t, err)

	// another user sees 404, not 403
	_, err = orderSvc.GetOrder(context.Background(), userPrincipal(), placed.ID)
	requireCode(t, err, apperr.NotFoundCode)

	// admin can read any order
	order, err := orderSvc.GetOrder(context.Background(), adminPrincipal(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, placed.ID, order.ID)
}

func TestCancelOrderRestoresStock(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "printer", "150", 8)
	principal := userPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 3)
	placed, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	cancelled, err := orderSvc.CancelOrder(context.Background(), principal, placed.ID)
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusCancelled, cancelled.Status)

	p, err := store.GetProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.EqualValues(t, 8, p.Stock)
}

func TestCancelOrderGuard(t *testing.T) {
	testCases := []struct {
		status model.OrderStatusEnum
		code   apperr.Code
	}{
		{model.OrderStatusProcessing, apperr.InvalidStateCode},
		{model.OrderStatusConfirmed, apperr.InvalidStateCode},
		{model.OrderStatusShipped, apperr.InvalidStateCode},
		{model.OrderStatusDelivered, apperr.InvalidStateCode},
		{model.OrderStatusCancelled, apperr.InvalidStateCode},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			store := newMemStore()
			cartSvc, orderSvc := newOrderFixture(store)
			product := seedProduct(t, store, "router", "90", 10)
			principal := userPrincipal()

			fillCart(t, cartSvc, principal.UserID, product, 1)
			placed, err := orderSvc.PlaceOrder(context.Background(), principal)
			require.NoError(t, err)

			require.NoError(t, store.UpdateOrderStatus(context.Background(), placed.ID, tc.status))

			_, err = orderSvc.CancelOrder(context.Background(), principal, placed.ID)
			requireCode(t, err, tc.code)
		})
	}
}

func TestCancelOrderOfAnotherUser(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "scanner", "70", 10)
	owner := userPrincipal()

	fillCart(t, cartSvc, owner.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), owner)
	require.NoError(t, err)

	_, err = orderSvc.CancelOrder(context.Background(), userPrincipal(), placed.ID)
	requireCode(t, err, apperr.UnauthorizedCode)
}

func TestAdminStatusOverride(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "projector", "400", 10)
	principal := userPrincipal()
	admin := adminPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	// admin is not bound to the state machine
	order, err := orderSvc.UpdateOrderStatus(context.Background(), admin, placed.ID, "delivered")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusDelivered, order.Status)

	order, err = orderSvc.UpdateOrderStatus(context.Background(), admin, placed.ID, "pending")
	require.NoError(t, err)
	require.Equal(t, model.OrderStatusPending, order.Status)

	_, err = orderSvc.UpdateOrderStatus(context.Background(), admin, placed.ID, "teleported")
	requireCode(t, err, apperr.InvalidArgumentCode)
}

func TestAdminTrackingAndPaymentStatus(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "nas", "600", 10)
	principal := userPrincipal()
	admin := adminPrincipal()

	fillCart(t, cartSvc, principal.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)

	order, err := orderSvc.UpdateOrderTracking(context.Background(), admin, placed.ID, "TW123456789")
	require.NoError(t, err)
	require.Equal(t, "TW123456789", order.TrackingNumber)

	_, err = orderSvc.UpdateOrderTracking(context.Background(), admin, placed.ID, "")
	requireCode(t, err, apperr.InvalidArgumentCode)

	order, err = orderSvc.UpdateOrderPaymentStatus(context.Background(), admin, placed.ID, "refunded")
	require.NoError(t, err)
	require.Equal(t, model.PaymentStatusRefunded, order.PaymentStatus)
}

func TestOrderStats(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "gpu", "50", 100)

	first := userPrincipal()
	fillCart(t, cartSvc, first.UserID, product, 1)
	placedFirst, err := orderSvc.PlaceOrder(context.Background(), first)
	require.NoError(t, err)

	second := userPrincipal()
	fillCart(t, cartSvc, second.UserID, product, 2)
	_, err = orderSvc.PlaceOrder(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, store.UpdateOrderPaymentStatus(context.Background(), placedFirst.ID, model.PaymentStatusCompleted))

	stats, err := orderSvc.GetOrderStats(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 2, stats.TotalOrders)
	require.EqualValues(t, 2, stats.CountByStatus[model.OrderStatusPending])
	// only the completed order counts toward revenue: 50 + 5 tax + 10 shipping
	require.True(t, stats.PaidRevenue.Equal(decimal.NewFromInt(65)))
}

func TestListOrdersFilterByStatus(t *testing.T) {
	store := newMemStore()
	cartSvc, orderSvc := newOrderFixture(store)
	product := seedProduct(t, store, "cpu", "120", 100)

	principal := userPrincipal()
	fillCart(t, cartSvc, principal.UserID, product, 1)
	placed, err := orderSvc.PlaceOrder(context.Background(), principal)
	require.NoError(t, err)
	require.NoError(t, store.UpdateOrderStatus(context.Background(), placed.ID, model.OrderStatusShipped))

	other := userPrincipal()
	fillCart(t, cartSvc, other.UserID, product, 1)
	_, err = orderSvc.PlaceOrder(context.Background(), other)
	require.NoError(t, err)

	shipped := model.OrderStatusShipped
	orders, total, err := orderSvc.ListOrders(context.Background(), model.ListOrdersParams{Status: &shipped})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	require.Equal(t, placed.ID, orders[0].ID)

	bogus := model.OrderStatusEnum("bogus")
	_, _, err = orderSvc.ListOrders(context.Background(), model.ListOrdersParams{Status: &bogus})
	requireCode(t, err, apperr.InvalidArgumentCode)
}
