package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/constants"
	"github.com/RoyceAzure/lab/shopcenter/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory db.IStore used by the service tests.
// ExecTx snapshots all tables before running fn and restores them on error,
// mimicking transaction rollback.
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]model.UserModel
	sessions   map[uuid.UUID]model.UserSession
	products   map[uuid.UUID]model.ProductModel
	carts      map[uuid.UUID]model.CartModel
	cartItems  map[uuid.UUID]model.CartItemModel
	orders     map[uuid.UUID]model.OrderModel
	orderItems map[uuid.UUID]model.OrderItemModel
	payments   map[uuid.UUID]model.PaymentModel
	reviews    map[uuid.UUID]model.ReviewModel
	wishlist   map[uuid.UUID]model.WishlistItemModel
	discounts  map[uuid.UUID]model.DiscountModel
	auditLogs  []model.AuditLogModel
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]model.UserModel),
		sessions:   make(map[uuid.UUID]model.UserSession),
		products:   make(map[uuid.UUID]model.ProductModel),
		carts:      make(map[uuid.UUID]model.CartModel),
		cartItems:  make(map[uuid.UUID]model.CartItemModel),
		orders:     make(map[uuid.UUID]model.OrderModel),
		orderItems: make(map[uuid.UUID]model.OrderItemModel),
		payments:   make(map[uuid.UUID]model.PaymentModel),
		reviews:    make(map[uuid.UUID]model.ReviewModel),
		wishlist:   make(map[uuid.UUID]model.WishlistItemModel),
		discounts:  make(map[uuid.UUID]model.DiscountModel),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memStore) ExecTx(ctx context.Context, fn func(db.Querier) error) error {
	m.mu.Lock()
	users := cloneMap(m.users)
	sessions := cloneMap(m.sessions)
	products := cloneMap(m.products)
	carts := cloneMap(m.carts)
	cartItems := cloneMap(m.cartItems)
	orders := cloneMap(m.orders)
	orderItems := cloneMap(m.orderItems)
	payments := cloneMap(m.payments)
	reviews := cloneMap(m.reviews)
	wishlist := cloneMap(m.wishlist)
	discounts := cloneMap(m.discounts)
	m.mu.Unlock()

	err := fn(m)
	if err != nil {
		m.mu.Lock()
		m.users = users
		m.sessions = sessions
		m.products = products
		m.carts = carts
		m.cartItems = cartItems
		m.orders = orders
		m.orderItems = orderItems
		m.payments = payments
		m.reviews = reviews
		m.wishlist = wishlist
		m.discounts = discounts
		m.mu.Unlock()
	}
	return err
}

func paginate[T any](items []T, limit, offset int32) []T {
	if int(offset) >= len(items) {
		return nil
	}
	items = items[offset:]
	if int(limit) < len(items) {
		items = items[:limit]
	}
	return items
}

// users

func (m *memStore) CreateUser(ctx context.Context, user model.UserModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return db.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memStore) GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return model.UserModel{}, db.ErrNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByEmail(ctx context.Context, email string) (model.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.UserModel{}, db.ErrNotFound
}

func (m *memStore) ListUsers(ctx context.Context, limit, offset int32) ([]model.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var users []model.UserModel
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return paginate(users, limit, offset), nil
}

func (m *memStore) CountUsers(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memStore) SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return db.ErrNotFound
	}
	user.IsActive = isActive
	m.users[id] = user
	return nil
}

// sessions

func (m *memStore) CreateSession(ctx context.Context, session model.UserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *memStore) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (model.UserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.RefreshToken == refreshToken {
			return s, nil
		}
	}
	return model.UserSession{}, db.ErrNotFound
}

func (m *memStore) DeleteSession(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memStore) DeleteUserSessions(ctx context.Context, userID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// products

func (m *memStore) CreateProduct(ctx context.Context, product model.ProductModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.Name == product.Name {
			return db.ErrDuplicate
		}
	}
	m.products[product.ID] = product
	return nil
}

func (m *memStore) GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return model.ProductModel{}, db.ErrNotFound
	}
	return product, nil
}

func (m *memStore) filterProducts(params model.ListProductsParams) []model.ProductModel {
	var out []model.ProductModel
	for _, p := range m.products {
		if params.Category != nil && p.Category != *params.Category {
			continue
		}
		if params.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(params.Search)) {
			continue
		}
		if params.MinPrice != nil && p.Price.LessThan(*params.MinPrice) {
			continue
		}
		if params.MaxPrice != nil && p.Price.GreaterThan(*params.MaxPrice) {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memStore) ListProducts(ctx context.Context, params model.ListProductsParams) ([]model.ProductModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit, offset := normalizePaging(params.Page, params.PageSize)
	return paginate(m.filterProducts(params), limit, offset), nil
}

func (m *memStore) CountProducts(ctx context.Context, params model.ListProductsParams) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.filterProducts(params))), nil
}

func (m *memStore) UpdateProduct(ctx context.Context, product model.ProductModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return db.ErrNotFound
	}
	for id, p := range m.products {
		if id != product.ID && p.Name == product.Name {
			return db.ErrDuplicate
		}
	}
	m.products[product.ID] = product
	return nil
}

func (m *memStore) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memStore) AdjustProductStock(ctx context.Context, id uuid.UUID, delta int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return db.ErrNotFound
	}
	if product.Stock+delta < 0 {
		return db.ErrNotEnough
	}
	product.Stock += delta
	m.products[id] = product
	return nil
}

func (m *memStore) SetProductRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, reviewCount int32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	product, ok := m.products[id]
	if !ok {
		return db.ErrNotFound
	}
	product.Rating = rating
	product.ReviewCount = reviewCount
	m.products[id] = product
	return nil
}

// carts

func (m *memStore) CreateCart(ctx context.Context, cart model.CartModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.UserID == cart.UserID {
			return db.ErrDuplicate
		}
	}
	cart.Items = nil
	m.carts[cart.ID] = cart
	return nil
}

func (m *memStore) GetCartByUserID(ctx context.Context, userID uuid.UUID) (model.CartModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return model.CartModel{}, db.ErrNotFound
}

func (m *memStore) GetCartByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (model.CartModel, error) {
	return m.GetCartByUserID(ctx, userID)
}

func (m *memStore) ListCartItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []model.CartItemModel
	for _, item := range m.cartItems {
		if item.CartID == cartID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (m *memStore) GetCartItemByID(ctx context.Context, itemID uuid.UUID) (model.CartItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cartItems[itemID]
	if !ok {
		return model.CartItemModel{}, db.ErrNotFound
	}
	return item, nil
}

func (m *memStore) UpsertCartItem(ctx context.Context, item model.CartItemModel) (model.CartItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, existing := range m.cartItems {
		if existing.CartID == item.CartID && existing.ProductID == item.ProductID && existing.Size == item.Size {
			existing.Quantity += item.Quantity
			if existing.Quantity > constants.MaxCartItemQuantity {
				existing.Quantity = constants.MaxCartItemQuantity
			}
			existing.UpdatedAt = time.Now().UTC()
			m.cartItems[id] = existing
			return existing, nil
		}
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	m.cartItems[item.ID] = item
	return item, nil
}

func (m *memStore) UpdateCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (model.CartItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cartItems[itemID]
	if !ok {
		return model.CartItemModel{}, db.ErrNotFound
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now().UTC()
	m.cartItems[itemID] = item
	return item, nil
}

func (m *memStore) DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item, ok := m.cartItems[itemID]
	if ok && item.CartID == cartID {
		delete(m.cartItems, itemID)
	}
	return nil
}

func (m *memStore) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, item := range m.cartItems {
		if item.CartID == cartID {
			delete(m.cartItems, id)
		}
	}
	return nil
}

// orders

func (m *memStore) CreateOrder(ctx context.Context, order model.OrderModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.Items = nil
	m.orders[order.ID] = order
	return nil
}

func (m *memStore) CreateOrderItem(ctx context.Context, item model.OrderItemModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orderItems[item.ID] = item
	return nil
}

func (m *memStore) GetOrderByID(ctx context.Context, id uuid.UUID) (model.OrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return model.OrderModel{}, db.ErrNotFound
	}
	return order, nil
}

func (m *memStore) ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []model.OrderItemModel
	for _, item := range m.orderItems {
		if item.OrderID == orderID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *memStore) ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]model.OrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []model.OrderModel
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return paginate(orders, limit, offset), nil
}

func (m *memStore) ListOrders(ctx context.Context, params model.ListOrdersParams) ([]model.OrderModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var orders []model.OrderModel
	for _, o := range m.orders {
		if params.Status != nil && o.Status != *params.Status {
			continue
		}
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	limit, offset := normalizePaging(params.Page, params.PageSize)
	return paginate(orders, limit, offset), nil
}

func (m *memStore) CountOrders(ctx context.Context, status *model.OrderStatusEnum) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, o := range m.orders {
		if status == nil || o.Status == *status {
			count++
		}
	}
	return count, nil
}

func (m *memStore) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatusEnum) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return db.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now().UTC()
	m.orders[id] = order
	return nil
}

func (m *memStore) UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return db.ErrNotFound
	}
	order.PaymentStatus = status
	order.UpdatedAt = time.Now().UTC()
	m.orders[id] = order
	return nil
}

func (m *memStore) UpdateOrderTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[id]
	if !ok {
		return db.ErrNotFound
	}
	order.TrackingNumber = trackingNumber
	order.UpdatedAt = time.Now().UTC()
	m.orders[id] = order
	return nil
}

func (m *memStore) GetOrderStatusCounts(ctx context.Context) (map[model.OrderStatusEnum]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	counts := make(map[model.OrderStatusEnum]int64)
	for _, o := range m.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (m *memStore) GetPaidRevenue(ctx context.Context) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	revenue := decimal.Zero
	for _, o := range m.orders {
		if o.PaymentStatus == model.PaymentStatusCompleted {
			revenue = revenue.Add(o.Total)
		}
	}
	return revenue, nil
}

// payments

func (m *memStore) CreatePayment(ctx context.Context, payment model.PaymentModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if payment.GatewayTransactionID != "" && p.GatewayTransactionID == payment.GatewayTransactionID {
			return db.ErrDuplicate
		}
	}
	m.payments[payment.ID] = payment
	return nil
}

func (m *memStore) GetPaymentByID(ctx context.Context, id uuid.UUID) (model.PaymentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return model.PaymentModel{}, db.ErrNotFound
	}
	return payment, nil
}

func (m *memStore) GetPaymentByGatewayTxID(ctx context.Context, gatewayTxID string) (model.PaymentModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.payments {
		if p.GatewayTransactionID == gatewayTxID {
			return p, nil
		}
	}
	return model.PaymentModel{}, db.ErrNotFound
}

func (m *memStore) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum, failureReason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return db.ErrNotFound
	}
	payment.Status = status
	payment.FailureReason = failureReason
	payment.UpdatedAt = time.Now().UTC()
	m.payments[id] = payment
	return nil
}

func (m *memStore) SetPaymentGatewayTx(ctx context.Context, id uuid.UUID, gatewayTxID string, status model.PaymentStatusEnum) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return db.ErrNotFound
	}
	payment.GatewayTransactionID = gatewayTxID
	payment.Status = status
	payment.UpdatedAt = time.Now().UTC()
	m.payments[id] = payment
	return nil
}

func (m *memStore) ExpireStalePayments(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var expired int64
	for id, p := range m.payments {
		if p.Status == model.PaymentStatusInitiated && p.CreatedAt.Before(cutoff) {
			p.Status = model.PaymentStatusFailed
			p.FailureReason = "payment expired"
			p.UpdatedAt = time.Now().UTC()
			m.payments[id] = p
			expired++
		}
	}
	return expired, nil
}

// reviews

func (m *memStore) CreateReview(ctx context.Context, review model.ReviewModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.ProductID == review.ProductID && r.UserID == review.UserID {
			return db.ErrDuplicate
		}
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *memStore) GetReviewByID(ctx context.Context, id uuid.UUID) (model.ReviewModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	review, ok := m.reviews[id]
	if !ok {
		return model.ReviewModel{}, db.ErrNotFound
	}
	return review, nil
}

func (m *memStore) ListReviewsByProduct(ctx context.Context, productID uuid.UUID, limit, offset int32) ([]model.ReviewModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var reviews []model.ReviewModel
	for _, r := range m.reviews {
		if r.ProductID == productID {
			reviews = append(reviews, r)
		}
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return paginate(reviews, limit, offset), nil
}

func (m *memStore) UpdateReview(ctx context.Context, review model.ReviewModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[review.ID]; !ok {
		return db.ErrNotFound
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *memStore) DeleteReview(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *memStore) GetProductRatingStats(ctx context.Context, productID uuid.UUID) (decimal.Decimal, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum := decimal.Zero
	var count int64
	for _, r := range m.reviews {
		if r.ProductID == productID {
			sum = sum.Add(decimal.NewFromInt32(r.Rating))
			count++
		}
	}
	if count == 0 {
		return decimal.Zero, 0, nil
	}
	return sum.Div(decimal.NewFromInt(count)), count, nil
}

// wishlist

func (m *memStore) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range m.wishlist {
		if w.UserID == userID && w.ProductID == productID {
			return nil
		}
	}
	id := uuid.New()
	m.wishlist[id] = model.WishlistItemModel{
		ID:        id,
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *memStore) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, w := range m.wishlist {
		if w.UserID == userID && w.ProductID == productID {
			delete(m.wishlist, id)
		}
	}
	return nil
}

func (m *memStore) ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.WishlistItemModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var items []model.WishlistItemModel
	for _, w := range m.wishlist {
		if w.UserID == userID {
			if p, ok := m.products[w.ProductID]; ok {
				p := p
				w.Product = &p
			}
			items = append(items, w)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

// discounts

func (m *memStore) CreateDiscount(ctx context.Context, discount model.DiscountModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.discounts {
		if discount.CouponCode != "" && d.CouponCode == discount.CouponCode {
			return db.ErrDuplicate
		}
	}
	m.discounts[discount.ID] = discount
	return nil
}

func (m *memStore) GetDiscountByID(ctx context.Context, id uuid.UUID) (model.DiscountModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	discount, ok := m.discounts[id]
	if !ok {
		return model.DiscountModel{}, db.ErrNotFound
	}
	return discount, nil
}

func (m *memStore) GetDiscountByCode(ctx context.Context, code string) (model.DiscountModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.discounts {
		if d.CouponCode == code {
			return d, nil
		}
	}
	return model.DiscountModel{}, db.ErrNotFound
}

func (m *memStore) ListDiscounts(ctx context.Context, limit, offset int32) ([]model.DiscountModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var discounts []model.DiscountModel
	for _, d := range m.discounts {
		discounts = append(discounts, d)
	}
	sort.Slice(discounts, func(i, j int) bool { return discounts[i].CreatedAt.Before(discounts[j].CreatedAt) })
	return paginate(discounts, limit, offset), nil
}

func (m *memStore) UpdateDiscount(ctx context.Context, discount model.DiscountModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.discounts[discount.ID]; !ok {
		return db.ErrNotFound
	}
	for id, d := range m.discounts {
		if id != discount.ID && discount.CouponCode != "" && d.CouponCode == discount.CouponCode {
			return db.ErrDuplicate
		}
	}
	m.discounts[discount.ID] = discount
	return nil
}

func (m *memStore) DeleteDiscount(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.discounts[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.discounts, id)
	return nil
}

func (m *memStore) IncrementDiscountUsage(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	discount, ok := m.discounts[id]
	if !ok {
		return db.ErrNotEnough
	}
	if discount.UsageLimit != nil && discount.UsageCount >= *discount.UsageLimit {
		return db.ErrNotEnough
	}
	discount.UsageCount++
	m.discounts[id] = discount
	return nil
}

// audit

func (m *memStore) CreateAuditLog(ctx context.Context, entry model.AuditLogModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditLogs = append(m.auditLogs, entry)
	return nil
}

func (m *memStore) ListAuditLogs(ctx context.Context, limit, offset int32) ([]model.AuditLogModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := make([]model.AuditLogModel, len(m.auditLogs))
	copy(logs, m.auditLogs)
	return paginate(logs, limit, offset), nil
}
