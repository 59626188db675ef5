package yamlfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

const sample = `
products:
  - id: box-profile-g30
    name: Box Profile Sheet
    description: Gauge 30 pre-painted roofing sheet
    category: roofing
    price: 950
  - id: ridge-cap
    name: Ridge Cap
    description: Plain ridge for box profile
    category: accessories
    price: 450
`

func TestLoadBytes(t *testing.T) {
	products, err := NewBytesSource("sample", []byte(sample)).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := []domain.Product{
		{ID: "box-profile-g30", Name: "Box Profile Sheet", Description: "Gauge 30 pre-painted roofing sheet", Category: "roofing", Price: 950},
		{ID: "ridge-cap", Name: "Ridge Cap", Description: "Plain ridge for box profile", Category: "accessories", Price: 450},
	}
	if !reflect.DeepEqual(products, want) {
		t.Fatalf("expected %+v, got %+v", want, products)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	products, err := NewFileSource(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml")).Load(context.Background())
		if !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("expected not-exist error, got %v", err)
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := NewBytesSource("bad", []byte("products:\n  - id: a\n    colour: red\n")).Load(context.Background())
		if err == nil {
			t.Fatalf("expected error for unknown field")
		}
	})

	t.Run("empty document", func(t *testing.T) {
		products, err := NewBytesSource("empty", nil).Load(context.Background())
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if len(products) != 0 {
			t.Fatalf("expected no products, got %d", len(products))
		}
	})
}

func TestShippedCatalogParses(t *testing.T) {
	products, err := NewFileSource(filepath.Join("..", "..", "..", "..", "configs", "catalog.yaml")).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) == 0 {
		t.Fatalf("expected shipped catalog to have products")
	}
}
