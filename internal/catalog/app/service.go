package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// Service owns the immutable catalog shared by every session.
type Service struct {
	products []domain.Product
	byID     map[string]int
	pageSize int
}

// NewService loads and validates the catalog from src.
func NewService(ctx context.Context, src ProductSource, pageSize int) (*Service, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := validate(products); err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}

	if pageSize < 1 {
		pageSize = 8
	}

	return &Service{
		products: products,
		byID:     byID,
		pageSize: pageSize,
	}, nil
}

func (s *Service) GetProduct(_ context.Context, id string) (domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Product{}, ErrInvalidInput
	}
	i, ok := s.byID[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return s.products[i], nil
}

// Products returns a copy of the catalog in source order.
func (s *Service) Products() []domain.Product {
	return slices.Clone(s.products)
}

// Categories lists distinct categories in first-seen order.
func (s *Service) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok || p.Category == "" {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// NewFilter starts a browsing session over the catalog.
func (s *Service) NewFilter() *Filter {
	return NewFilter(s.products, s.pageSize)
}

func validate(products []domain.Product) error {
	seen := make(map[string]struct{}, len(products))
	for i, p := range products {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("product %d: empty id: %w", i, ErrInvalidInput)
		}
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("product %s: empty name: %w", p.ID, ErrInvalidInput)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %s: negative price %d: %w", p.ID, p.Price, ErrInvalidInput)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("product %s: duplicate id: %w", p.ID, ErrInvalidInput)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
