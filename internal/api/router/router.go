package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/api"
	m "github.com/RoyceAzure/lab/shopcenter/internal/api/middleware"
	"github.com/RoyceAzure/lab/shopcenter/pkg/api/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, rdb *redis.Client, rateLimit int, rateWindow time.Duration, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	if rdb != nil {
		r.Use(m.RateLimitMiddleware(rdb, rateLimit, rateWindow, logger))
	}
	r.Use(m.MetricsMiddleware)
	r.Use(m.LoggerMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", server.AuthHandler.Signup)
			r.Post("/login", server.AuthHandler.Login)
			r.Post("/refresh-token", server.AuthHandler.ReNewToken)
			r.Post("/logout", server.AuthHandler.Logout)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", server.ProductHandler.ListProducts)
			r.Get("/{id}", server.ProductHandler.GetProduct)
			r.Get("/{id}/reviews", server.ReviewHandler.ListReviews)
		})

		// 需登入的路由
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Post("/add", server.CartHandler.AddItem)
				r.Put("/update/{itemID}", server.CartHandler.UpdateItem)
				r.Delete("/remove/{itemID}", server.CartHandler.RemoveItem)
				r.Delete("/clear", server.CartHandler.ClearCart)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.PlaceOrder)
				r.Get("/", server.OrderHandler.ListMyOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Delete("/{id}", server.OrderHandler.CancelOrder)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/initiate", server.PaymentHandler.InitiatePayment)
				r.Get("/{id}", server.PaymentHandler.GetPayment)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", server.ReviewHandler.AddReview)
				r.Put("/{id}", server.ReviewHandler.UpdateReview)
				r.Delete("/{id}", server.ReviewHandler.DeleteReview)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", server.WishlistHandler.ListItems)
				r.Post("/{productID}", server.WishlistHandler.AddItem)
				r.Delete("/{productID}", server.WishlistHandler.RemoveItem)
			})

			r.Post("/coupons/validate", server.DiscountHandler.ValidateCoupon)
			r.Post("/coupons/redeem", server.DiscountHandler.RedeemCoupon)
		})

		// 金流商回調不帶使用者token, 靠HMAC簽章驗證
		r.Post("/payments/webhook", server.PaymentHandler.GatewayWebhook)

		// 管理後台
		r.Route("/admin", func(r chi.Router) {
			r.Use(m.AuthMiddleware)
			r.Use(m.AdminMiddleware)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", server.ProductHandler.CreateProduct)
				r.Put("/{id}", server.ProductHandler.UpdateProduct)
				r.Delete("/{id}", server.ProductHandler.DeleteProduct)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.OrderHandler.ListOrders)
				r.Put("/{id}/status", server.OrderHandler.UpdateOrderStatus)
				r.Put("/{id}/payment-status", server.OrderHandler.UpdateOrderPaymentStatus)
				r.Put("/{id}/tracking", server.OrderHandler.UpdateOrderTracking)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", server.AdminHandler.ListUsers)
				r.Put("/{id}/active", server.AdminHandler.SetUserActive)
			})

			r.Route("/discounts", func(r chi.Router) {
				r.Post("/", server.DiscountHandler.CreateDiscount)
				r.Get("/", server.DiscountHandler.ListDiscounts)
				r.Get("/{id}", server.DiscountHandler.GetDiscount)
				r.Put("/{id}", server.DiscountHandler.UpdateDiscount)
				r.Delete("/{id}", server.DiscountHandler.DeleteDiscount)
			})

			r.Get("/stats", server.OrderHandler.GetOrderStats)
			r.Get("/audit", server.AdminHandler.ListAuditLogs)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
