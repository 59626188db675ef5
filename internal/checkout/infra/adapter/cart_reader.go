package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/session"
)

// SessionCart exposes the session carts of a registry to checkout.
type SessionCart struct {
	sessions *session.Registry
	tmpl     cartapp.MessageTemplate
}

func NewSessionCart(sessions *session.Registry, tmpl cartapp.MessageTemplate) *SessionCart {
	return &SessionCart{sessions: sessions, tmpl: tmpl}
}

func (c *SessionCart) OrderMessage(ctx context.Context, sessionID string) (string, error) {
	s := c.sessions.GetOrCreate(ctx, sessionID)
	if s.Cart.IsEmpty() {
		return "", checkoutapp.ErrEmptyCart
	}
	return s.Cart.BuildOrderMessage(c.tmpl), nil
}

func (c *SessionCart) Add(ctx context.Context, sessionID string, item cartdomain.LineItem) error {
	c.sessions.GetOrCreate(ctx, sessionID).Cart.Add(ctx, item)
	return nil
}
