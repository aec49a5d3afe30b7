package api

import "github.com/RoyceAzure/lab/shopcenter/internal/api/handler"

type Server struct {
	AuthHandler     *handler.AuthHandler
	ProductHandler  *handler.ProductHandler
	CartHandler     *handler.CartHandler
	OrderHandler    *handler.OrderHandler
	PaymentHandler  *handler.PaymentHandler
	ReviewHandler   *handler.ReviewHandler
	WishlistHandler *handler.WishlistHandler
	DiscountHandler *handler.DiscountHandler
	AdminHandler    *handler.AdminHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	paymentHandler *handler.PaymentHandler,
	reviewHandler *handler.ReviewHandler,
	wishlistHandler *handler.WishlistHandler,
	discountHandler *handler.DiscountHandler,
	adminHandler *handler.AdminHandler,
) *Server {
	return &Server{
		AuthHandler:     authHandler,
		ProductHandler:  productHandler,
		CartHandler:     cartHandler,
		OrderHandler:    orderHandler,
		PaymentHandler:  paymentHandler,
		ReviewHandler:   reviewHandler,
		WishlistHandler: wishlistHandler,
		DiscountHandler: discountHandler,
		AdminHandler:    adminHandler,
	}
}
