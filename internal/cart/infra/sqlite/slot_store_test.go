package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/logger"
	pkgsqlite "github.com/dwikikusuma/storefront/pkg/sqlite"
)

func newStore(t *testing.T) *SlotStore {
	t.Helper()
	db, err := pkgsqlite.Open(filepath.Join(t.TempDir(), "slots.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	s, err := NewSlotStore(context.Background(), db)
	if err != nil {
		t.Fatalf("new slot store: %v", err)
	}
	return s
}

func newCart(s *SlotStore, slot string) *cartapp.Service {
	cart := cartapp.NewService(s, slot, nil, cartapp.WithLogger(logger.Discard()))
	cart.Load(context.Background())
	return cart
}

func TestSlotStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	const value = `[{"id":"x","name":"X","price":5,"quantity":1}]`

	if _, ok, err := s.Get(ctx, "devkisteel_cart:a"); err != nil || ok {
		t.Fatalf("missing key: got (ok=%v, err=%v)", ok, err)
	}

	if err := s.Set(ctx, "devkisteel_cart:a", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "devkisteel_cart:a", value); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	v, ok, err := s.Get(ctx, "devkisteel_cart:a")
	if err != nil || !ok || v != value {
		t.Fatalf("got (%q,%v,%v)", v, ok, err)
	}

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestSlotStoreCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	cart := newCart(s, "devkisteel_cart:b")
	cart.Add(ctx, domain.LineItem{ID: "a", Name: "A", Price: 1000, Quantity: 2})
	cart.Add(ctx, domain.LineItem{ID: "b", Name: "B", Price: 500, Quantity: 3})

	reloaded := newCart(s, "devkisteel_cart:b")

	if !reflect.DeepEqual(cart.Lines(), reloaded.Lines()) {
		t.Fatalf("expected %+v, got %+v", cart.Lines(), reloaded.Lines())
	}
	if got := reloaded.Total(); got != 3500 {
		t.Fatalf("expected total 3500, got %d", got)
	}
}

func TestSlotStoreCartKeepsChangeFromCancelledRequest(t *testing.T) {
	s := newStore(t)
	cart := newCart(s, "devkisteel_cart:c")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cart.Add(ctx, domain.LineItem{ID: "p1", Name: "P1", Price: 1000, Quantity: 2})

	if got := newCart(s, "devkisteel_cart:c").ItemCount(); got != 2 {
		t.Fatalf("expected reloaded count 2, got %d", got)
	}
}
