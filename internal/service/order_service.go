package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/RoyceAzure/lab/shopcenter/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pricing 結帳金額規則, 自config載入
type Pricing struct {
	TaxRate               decimal.Decimal
	FlatShippingFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// Tax 四捨五入到分
func (p Pricing) Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(p.TaxRate).Round(2)
}

// Shipping 小計超過門檻免運, 否則固定運費
func (p Pricing) Shipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

type IOrderService interface {
	// PlaceOrder 以購物車內容建立訂單
	// 單一交易內鎖定購物車, 檢查並扣庫存, 複製快照, 清空購物車
	//
	// 錯誤:
	//   - apperr.EmptyCartCode 463: 購物車為空
	//   - apperr.OutOfStockCode 462: 任一項目庫存不足, 整筆回滾
	PlaceOrder(ctx context.Context, principal model.Principal) (*model.OrderModel, error)
	GetOrder(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.OrderModel, error)
	ListMyOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.OrderModel, error)
	// CancelOrder 使用者僅能取消pending訂單, 取消時回補庫存
	CancelOrder(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.OrderModel, error)

	// admin
	ListOrders(ctx context.Context, params model.ListOrdersParams) ([]model.OrderModel, int64, error)
	// UpdateOrderStatus admin可設定任意合法狀態, 不受狀態機限制
	UpdateOrderStatus(ctx context.Context, principal model.Principal, orderID uuid.UUID, status string) (*model.OrderModel, error)
	UpdateOrderPaymentStatus(ctx context.Context, principal model.Principal, orderID uuid.UUID, status string) (*model.OrderModel, error)
	UpdateOrderTracking(ctx context.Context, principal model.Principal, orderID uuid.UUID, trackingNumber string) (*model.OrderModel, error)
	GetOrderStats(ctx context.Context) (*model.OrderStatsModel, error)
}

type OrderService struct {
	store   db.IStore
	pricing Pricing
	audit   IAuditService
}

func NewOrderService(store db.IStore, pricing Pricing, audit IAuditService) IOrderService {
	if reflect.ValueOf(store).IsNil() {
		panic("order service initialization failed: store cannot be nil")
	}
	return &OrderService{
		store:   store,
		pricing: pricing,
		audit:   audit,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, principal model.Principal) (*model.OrderModel, error) {
	var order model.OrderModel

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		cart, err := q.GetCartByUserIDForUpdate(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return apperr.New(apperr.EmptyCartCode, "cart is empty")
			}
			return err
		}

		items, err := q.ListCartItems(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apperr.New(apperr.EmptyCartCode, "cart is empty")
		}

		now := time.Now().UTC()
		order = model.OrderModel{
			ID:            uuid.New(),
			UserID:        principal.UserID,
			Status:        model.OrderStatusPending,
			PaymentStatus: model.PaymentStatusUnpaid,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		subtotal := decimal.Zero
		for _, item := range items {
			// guarded update, 庫存不足時影響0列
			err = q.AdjustProductStock(ctx, item.ProductID, -item.Quantity)
			if err != nil {
				if errors.Is(err, db.ErrNotEnough) {
					return apperr.Newf(apperr.OutOfStockCode, "insufficient stock for product %s", item.Name)
				}
				return err
			}

			orderItem := model.OrderItemModel{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Name:      item.Name,
				Image:     item.Image,
				Price:     item.Price,
				Quantity:  item.Quantity,
				Size:      item.Size,
			}
			order.Items = append(order.Items, orderItem)
			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt32(item.Quantity)))
		}

		order.Subtotal = subtotal
		order.Tax = s.pricing.Tax(subtotal)
		order.Shipping = s.pricing.Shipping(subtotal)
		order.Total = subtotal.Add(order.Tax).Add(order.Shipping)

		if err = q.CreateOrder(ctx, order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err = q.CreateOrderItem(ctx, item); err != nil {
				return err
			}
		}

		return q.ClearCart(ctx, cart.ID)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to place order", err)
	}

	s.audit.Record(ctx, principal, "order.place", "order", order.ID.String(),
		fmt.Sprintf("total=%s items=%d", order.Total.StringFixed(2), len(order.Items)))
	return &order, nil
}

func (s *OrderService) getOrderWithItems(ctx context.Context, q db.Querier, orderID uuid.UUID) (*model.OrderModel, error) {
	order, err := q.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get order", err)
	}
	items, err := q.ListOrderItems(ctx, orderID)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list order items", err)
	}
	order.Items = items
	return &order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.OrderModel, error) {
	order, err := s.getOrderWithItems(ctx, s.store, orderID)
	if err != nil {
		return nil, err
	}
	// 非本人且非admin回404, 不洩漏訂單存在
	if order.UserID != principal.UserID && !principal.IsAdmin() {
		return nil, apperr.New(apperr.NotFoundCode, "order not found")
	}
	return order, nil
}

func (s *OrderService) ListMyOrders(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]model.OrderModel, error) {
	limit, offset := normalizePaging(page, pageSize)
	orders, err := s.store.ListOrdersByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, principal model.Principal, orderID uuid.UUID) (*model.OrderModel, error) {
	var cancelled *model.OrderModel

	err := s.store.ExecTx(ctx, func(q db.Querier) error {
		order, err := s.getOrderWithItems(ctx, q, orderID)
		if err != nil {
			return err
		}
		if order.UserID != principal.UserID && !principal.IsAdmin() {
			return apperr.New(apperr.UnauthorizedCode, "not allowed to cancel this order")
		}
		if order.Status != model.OrderStatusPending {
			return apperr.Newf(apperr.InvalidStateCode, "order in status %s cannot be cancelled", order.Status)
		}

		// 取消回補庫存
		for _, item := range order.Items {
			if err = q.AdjustProductStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err = q.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return err
		}
		order.Status = model.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to cancel order", err)
	}

	s.audit.Record(ctx, principal, "order.cancel", "order", orderID.String(), "")
	return cancelled, nil
}

func (s *OrderService) ListOrders(ctx context.Context, params model.ListOrdersParams) ([]model.OrderModel, int64, error) {
	params.Page, params.PageSize = normalizePageParams(params.Page, params.PageSize)
	if params.Status != nil && !model.IsValidOrderStatus(string(*params.Status)) {
		return nil, 0, apperr.Newf(apperr.InvalidArgumentCode, "invalid order status: %s", *params.Status)
	}

	orders, err := s.store.ListOrders(ctx, params)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to list orders", err)
	}
	total, err := s.store.CountOrders(ctx, params.Status)
	if err != nil {
		return nil, 0, apperr.Wrap(apperr.InternalErrorCode, "failed to count orders", err)
	}
	return orders, total, nil
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, principal model.Principal, orderID uuid.UUID, status string) (*model.OrderModel, error) {
	if !model.IsValidOrderStatus(status) {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "invalid order status: %s", status)
	}

	err := s.store.UpdateOrderStatus(ctx, orderID, model.OrderStatusEnum(status))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update order status", err)
	}

	s.audit.Record(ctx, principal, "order.status", "order", orderID.String(), status)
	return s.getOrderWithItems(ctx, s.store, orderID)
}

func (s *OrderService) UpdateOrderPaymentStatus(ctx context.Context, principal model.Principal, orderID uuid.UUID, status string) (*model.OrderModel, error) {
	if !model.IsValidPaymentStatus(status) {
		return nil, apperr.Newf(apperr.InvalidArgumentCode, "invalid payment status: %s", status)
	}

	err := s.store.UpdateOrderPaymentStatus(ctx, orderID, model.PaymentStatusEnum(status))
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update payment status", err)
	}

	s.audit.Record(ctx, principal, "order.payment_status", "order", orderID.String(), status)
	return s.getOrderWithItems(ctx, s.store, orderID)
}

func (s *OrderService) UpdateOrderTracking(ctx context.Context, principal model.Principal, orderID uuid.UUID, trackingNumber string) (*model.OrderModel, error) {
	if trackingNumber == "" {
		return nil, apperr.New(apperr.InvalidArgumentCode, "tracking number is required")
	}

	err := s.store.UpdateOrderTracking(ctx, orderID, trackingNumber)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, apperr.New(apperr.NotFoundCode, "order not found")
		}
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to update tracking number", err)
	}

	s.audit.Record(ctx, principal, "order.tracking", "order", orderID.String(), trackingNumber)
	return s.getOrderWithItems(ctx, s.store, orderID)
}

func (s *OrderService) GetOrderStats(ctx context.Context) (*model.OrderStatsModel, error) {
	counts, err := s.store.GetOrderStatusCounts(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get order stats", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	revenue, err := s.store.GetPaidRevenue(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.InternalErrorCode, "failed to get paid revenue", err)
	}

	return &model.OrderStatsModel{
		CountByStatus: counts,
		TotalOrders:   total,
		PaidRevenue:   revenue,
	}, nil
}
