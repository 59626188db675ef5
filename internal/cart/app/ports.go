package app

import (
	"context"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// SlotStorage is a string key-value store holding one serialized cart per key.
// Get reports ok=false when the key has never been written.
type SlotStorage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Presenter receives the derived reads that follow every mutation, in order:
// BadgeChanged, Render, then Notify when the operation has a message.
type Presenter interface {
	BadgeChanged(count int)
	Render(lines domain.Lines, total int64)
	Notify(n domain.Notification)
}

// Metrics is the subset of instrumentation the store reports to.
type Metrics interface {
	CartMutation(op string)
	SlotWriteFailed()
}

type nopMetrics struct{}

func (nopMetrics) CartMutation(string) {}
func (nopMetrics) SlotWriteFailed() {}
