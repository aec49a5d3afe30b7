package db

import (
	"context"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DBTX pgxpool.Pool 與 pgx.Tx 的共同介面
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Querier 所有資料存取操作
type Querier interface {
	// users
	CreateUser(ctx context.Context, user model.UserModel) error
	GetUserByID(ctx context.Context, id uuid.UUID) (model.UserModel, error)
	GetUserByEmail(ctx context.Context, email string) (model.UserModel, error)
	ListUsers(ctx context.Context, limit, offset int32) ([]model.UserModel, error)
	CountUsers(ctx context.Context) (int64, error)
	SetUserActive(ctx context.Context, id uuid.UUID, isActive bool) error

	// sessions
	CreateSession(ctx context.Context, session model.UserSession) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (model.UserSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	DeleteUserSessions(ctx context.Context, userID uuid.UUID) error

	// products
	CreateProduct(ctx context.Context, product model.ProductModel) error
	GetProductByID(ctx context.Context, id uuid.UUID) (model.ProductModel, error)
	ListProducts(ctx context.Context, params model.ListProductsParams) ([]model.ProductModel, error)
	CountProducts(ctx context.Context, params model.ListProductsParams) (int64, error)
	UpdateProduct(ctx context.Context, product model.ProductModel) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AdjustProductStock(ctx context.Context, id uuid.UUID, delta int32) error
	SetProductRating(ctx context.Context, id uuid.UUID, rating decimal.Decimal, reviewCount int32) error

	// carts
	CreateCart(ctx context.Context, cart model.CartModel) error
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (model.CartModel, error)
	GetCartByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (model.CartModel, error)
	ListCartItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemModel, error)
	GetCartItemByID(ctx context.Context, itemID uuid.UUID) (model.CartItemModel, error)
	UpsertCartItem(ctx context.Context, item model.CartItemModel) (model.CartItemModel, error)
	UpdateCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int32) (model.CartItemModel, error)
	DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error

	// orders
	CreateOrder(ctx context.Context, order model.OrderModel) error
	CreateOrderItem(ctx context.Context, item model.OrderItemModel) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (model.OrderModel, error)
	ListOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemModel, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID, limit, offset int32) ([]model.OrderModel, error)
	ListOrders(ctx context.Context, params model.ListOrdersParams) ([]model.OrderModel, error)
	CountOrders(ctx context.Context, status *model.OrderStatusEnum) (int64, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatusEnum) error
	UpdateOrderPaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum) error
	UpdateOrderTracking(ctx context.Context, id uuid.UUID, trackingNumber string) error
	GetOrderStatusCounts(ctx context.Context) (map[model.OrderStatusEnum]int64, error)
	GetPaidRevenue(ctx context.Context) (decimal.Decimal, error)

	// payments
	CreatePayment(ctx context.Context, payment model.PaymentModel) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (model.PaymentModel, error)
	GetPaymentByGatewayTxID(ctx context.Context, gatewayTxID string) (model.PaymentModel, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status model.PaymentStatusEnum, failureReason string) error
	SetPaymentGatewayTx(ctx context.Context, id uuid.UUID, gatewayTxID string, status model.PaymentStatusEnum) error
	ExpireStalePayments(ctx context.Context, cutoff time.Time) (int64, error)

	// reviews
	CreateReview(ctx context.Context, review model.ReviewModel) error
	GetReviewByID(ctx context.Context, id uuid.UUID) (model.ReviewModel, error)
	ListReviewsByProduct(ctx context.Context, productID uuid.UUID, limit, offset int32) ([]model.ReviewModel, error)
	UpdateReview(ctx context.Context, review model.ReviewModel) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
	GetProductRatingStats(ctx context.Context, productID uuid.UUID) (decimal.Decimal, int64, error)

	// wishlist
	AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) error
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.WishlistItemModel, error)

	// discounts
	CreateDiscount(ctx context.Context, discount model.DiscountModel) error
	GetDiscountByID(ctx context.Context, id uuid.UUID) (model.DiscountModel, error)
	GetDiscountByCode(ctx context.Context, code string) (model.DiscountModel, error)
	ListDiscounts(ctx context.Context, limit, offset int32) ([]model.DiscountModel, error)
	UpdateDiscount(ctx context.Context, discount model.DiscountModel) error
	DeleteDiscount(ctx context.Context, id uuid.UUID) error
	IncrementDiscountUsage(ctx context.Context, id uuid.UUID) error

	// audit
	CreateAuditLog(ctx context.Context, entry model.AuditLogModel) error
	ListAuditLogs(ctx context.Context, limit, offset int32) ([]model.AuditLogModel, error)
}

type IStore interface {
	Querier
	ExecTx(ctx context.Context, fn func(Querier) error) error
}

// Queries 對單一DBTX執行查詢
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Store 結構用來管理數據庫連接和交易
type Store struct {
	*Queries
	db *pgxpool.Pool
}

// NewStore 創建一個新的 Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{
		db:      db,
		Queries: New(db),
	}
}

// ExecTx 執行一個交易
func (s *Store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	opts := pgx.TxOptions{
		IsoLevel:       pgx.ReadCommitted,
		AccessMode:     pgx.ReadWrite,
		DeferrableMode: pgx.NotDeferrable,
	}

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	q := New(tx)
	err = fn(q)

	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx error: %v, rollback error: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit(ctx)
}
