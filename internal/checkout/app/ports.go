package app

import (
	"context"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
)

// Cart is the session cart as checkout sees it. Callers hold the session
// lock for the duration of a call.
type Cart interface {
	// OrderMessage renders the order summary of the session cart. It returns
	// ErrEmptyCart when there is nothing to order.
	OrderMessage(ctx context.Context, sessionID string) (string, error)
	Add(ctx context.Context, sessionID string, item cartdomain.LineItem) error
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (Product, error)
}

type Product struct {
	ID     string
	Name   string
	Amount int64
}

// Composer renders the single-item buy-now text.
type Composer interface {
	Purchase(item cartdomain.LineItem) string
}

type Metrics interface {
	CheckoutLink(kind string)
}

type nopMetrics struct{}

func (nopMetrics) CheckoutLink(string) {}
