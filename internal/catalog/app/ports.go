package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// ProductSource yields the immutable catalog once at startup.
type ProductSource interface {
	Load(ctx context.Context) ([]domain.Product, error)
}
