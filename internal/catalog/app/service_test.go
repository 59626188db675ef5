package app

import (
	"context"
	"errors"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

type fakeSource struct {
	products []domain.Product
	err      error
}

func (f fakeSource) Load(context.Context) ([]domain.Product, error) { return f.products, f.err }

func TestNewServiceValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id -> invalid", func(t *testing.T) {
		_, err := NewService(ctx, fakeSource{products: []domain.Product{{ID: "  ", Name: "Sheet"}}}, 8)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty name -> invalid", func(t *testing.T) {
		_, err := NewService(ctx, fakeSource{products: []domain.Product{{ID: "a", Name: " "}}}, 8)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("negative price -> invalid", func(t *testing.T) {
		_, err := NewService(ctx, fakeSource{products: []domain.Product{{ID: "a", Name: "Sheet", Price: -1}}}, 8)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("duplicate id -> invalid", func(t *testing.T) {
		_, err := NewService(ctx, fakeSource{products: []domain.Product{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}}, 8)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("source error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewService(ctx, fakeSource{err: boom}, 8)
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped boom, got %v", err)
		}
	})
}

func TestGetProduct(t *testing.T) {
	ctx := context.Background()
	svc, err := NewService(ctx, fakeSource{products: []domain.Product{{ID: "a", Name: "A", Price: 10}}}, 8)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		p, err := svc.GetProduct(ctx, " a ")
		if err != nil || p.Name != "A" {
			t.Fatalf("got (%+v, %v)", p, err)
		}
	})

	t.Run("blank id -> invalid", func(t *testing.T) {
		if _, err := svc.GetProduct(ctx, ""); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("unknown id -> not found", func(t *testing.T) {
		if _, err := svc.GetProduct(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	svc, err := NewService(context.Background(), fakeSource{products: []domain.Product{
		{ID: "1", Name: "a", Category: "roofing"},
		{ID: "2", Name: "b", Category: "gutters"},
		{ID: "3", Name: "c", Category: "roofing"},
		{ID: "4", Name: "d"},
		{ID: "5", Name: "e", Category: "accessories"},
	}}, 8)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	got := svc.Categories()
	want := []string{"roofing", "gutters", "accessories"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestServiceNewFilterUsesPageSize(t *testing.T) {
	products := make([]domain.Product, 0, 10)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		products = append(products, domain.Product{ID: id, Name: id})
	}
	svc, err := NewService(context.Background(), fakeSource{products: products}, 3)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	f := svc.NewFilter()
	if f.PageSize() != 3 || len(f.VisibleSlice()) != 3 || f.RemainingCount() != 7 {
		t.Fatalf("got page=%d visible=%d remaining=%d", f.PageSize(), len(f.VisibleSlice()), f.RemainingCount())
	}
}
