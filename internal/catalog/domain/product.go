package domain

import (
	"fmt"
	"strings"
)

// CategoryAll matches every product.
const CategoryAll = "all"

// Product is read-only for the lifetime of the process. Price is in minor
// currency units.
type Product struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Category    string `yaml:"category" json:"category"`
	Price       int64  `yaml:"price" json:"price"`
}

type SortKey string

const (
	SortNone      SortKey = "none"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
)

// ParseSortKey accepts the canonical keys and the storefront's select values
// (price-low, price-high, name, default).
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "default":
		return SortNone, nil
	case "price-asc", "price-low":
		return SortPriceAsc, nil
	case "price-desc", "price-high":
		return SortPriceDesc, nil
	case "name-asc", "name":
		return SortNameAsc, nil
	default:
		return "", fmt.Errorf("unknown sort key %q", s)
	}
}
