package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
)

const (
	KindOrder  = "order"
	KindBuyNow = "buy_now"
)

var ErrEmptyCart = errors.New("cart is empty")

type Service struct {
	Cart    Cart
	Catalog CatalogReader

	composer  Composer
	recipient domain.Recipient
	log       *slog.Logger
	metrics   Metrics
}

type Option func(*Service)

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

func NewService(cart Cart, catalog CatalogReader, composer Composer, recipient domain.Recipient, opts ...Option) *Service {
	s := &Service{
		Cart:      cart,
		Catalog:   catalog,
		composer:  composer,
		recipient: recipient,
		log:       slog.Default(),
		metrics:   nopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Checkout turns the whole session cart into a messaging link. The cart is
// left untouched.
func (s *Service) Checkout(ctx context.Context, sessionID string) (domain.Link, error) {
	msg, err := s.Cart.OrderMessage(ctx, sessionID)
	if err != nil {
		return domain.Link{}, err
	}

	link := s.recipient.NewLink(msg)
	s.metrics.CheckoutLink(KindOrder)
	s.log.InfoContext(ctx, "checkout link built", slog.String("session", sessionID), slog.String("kind", KindOrder))
	return link, nil
}

// BuyNow adds qty of the product to the session cart, then builds a link for
// that product alone. qty < 1 counts as 1.
func (s *Service) BuyNow(ctx context.Context, sessionID, productID string, qty int) (domain.Link, error) {
	p, err := s.Catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Link{}, fmt.Errorf("buy now %s: %w", productID, err)
	}
	if qty < 1 {
		qty = 1
	}

	item := cartdomain.LineItem{ID: p.ID, Name: p.Name, Price: p.Amount, Quantity: qty}
	if err := s.Cart.Add(ctx, sessionID, item); err != nil {
		return domain.Link{}, err
	}

	link := s.recipient.NewLink(s.composer.Purchase(item))
	s.metrics.CheckoutLink(KindBuyNow)
	s.log.InfoContext(ctx, "checkout link built",
		slog.String("session", sessionID),
		slog.String("kind", KindBuyNow),
		slog.String("product", p.ID),
	)
	return link, nil
}
