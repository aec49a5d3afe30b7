package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/shopcenter/internal/infra/audit"
	"github.com/RoyceAzure/lab/shopcenter/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testPricing = Pricing{
	TaxRate:               decimal.RequireFromString("0.10"),
	FlatShippingFee:       decimal.NewFromInt(10),
	FreeShippingThreshold: decimal.NewFromInt(100),
}

func testAudit(store *memStore) IAuditService {
	return NewAuditService(store, audit.NopPublisher{}, nil)
}

func userPrincipal() model.Principal {
	return model.Principal{
		UserID: uuid.New(),
		Email:  "user@example.com",
		Role:   "user",
	}
}

func adminPrincipal() model.Principal {
	return model.Principal{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   "admin",
	}
}

func seedProduct(t *testing.T, store *memStore, name string, price string, stock int32) model.ProductModel {
	t.Helper()
	now := time.Now().UTC()
	product := model.ProductModel{
		ID:        uuid.New(),
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		Category:  model.CategoryElectronics,
		Images:    []string{"https://cdn.example.com/" + name + ".jpg"},
		Rating:    decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, store.CreateProduct(context.Background(), product))
	return product
}

// fillCart adds the product with the given quantity through the cart service.
func fillCart(t *testing.T, svc ICartService, userID uuid.UUID, product model.ProductModel, quantity int32) *model.CartModel {
	t.Helper()
	cart, err := svc.AddItem(context.Background(), userID, model.AddCartItemModel{
		ProductID: product.ID,
		Quantity:  quantity,
	})
	require.NoError(t, err)
	return cart
}
