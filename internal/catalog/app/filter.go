package app

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dwikikusuma/storefront/internal/catalog/domain"
)

// FilterState is the input side of the current view.
type FilterState struct {
	SearchTerm string
	Category   string
	SortKey    domain.SortKey
}

// Filter holds the working list of one browsing session over an immutable
// source. Every ApplyFilters call recomputes from the full source.
// Not safe for concurrent use.
type Filter struct {
	source   []domain.Product
	pageSize int

	state        FilterState
	filtered     []domain.Product
	visibleCount int

	fold     cases.Caser
	collator *collate.Collator
}

// NewFilter shows the whole source in source order, first page visible.
// pageSize < 1 is treated as 1.
func NewFilter(source []domain.Product, pageSize int) *Filter {
	if pageSize < 1 {
		pageSize = 1
	}
	f := &Filter{
		source:   slices.Clone(source),
		pageSize: pageSize,
		state:    FilterState{Category: domain.CategoryAll, SortKey: domain.SortNone},
		fold:     cases.Fold(),
		collator: collate.New(language.English),
	}
	f.filtered = slices.Clone(f.source)
	f.resetVisible()
	return f
}

// ApplyFilters recomputes the filtered list. The visible count goes back to
// the first page when the search term or category differs from the last
// call; a sort-only change keeps it.
func (f *Filter) ApplyFilters(searchTerm, category string, sortKey domain.SortKey) {
	if category == "" {
		category = domain.CategoryAll
	}
	if sortKey == "" {
		sortKey = domain.SortNone
	}

	reset := searchTerm != f.state.SearchTerm || category != f.state.Category
	f.state = FilterState{SearchTerm: searchTerm, Category: category, SortKey: sortKey}

	needle := f.fold.String(searchTerm)
	out := make([]domain.Product, 0, len(f.source))
	for _, p := range f.source {
		if f.matchesText(p, needle) && matchesCategory(p, category) {
			out = append(out, p)
		}
	}
	f.sort(out, sortKey)
	f.filtered = out

	if reset {
		f.resetVisible()
		return
	}
	f.visibleCount = min(f.visibleCount, len(f.filtered))
}

// LoadMore reveals one more page, never past the end of the filtered list.
func (f *Filter) LoadMore() {
	f.visibleCount = min(f.visibleCount+f.pageSize, len(f.filtered))
}

// VisibleSlice is the prefix of the filtered list meant to be shown.
func (f *Filter) VisibleSlice() []domain.Product {
	return slices.Clone(f.filtered[:f.visibleCount])
}

// Filtered is the full filtered and sorted list, visible or not.
func (f *Filter) Filtered() []domain.Product {
	return slices.Clone(f.filtered)
}

func (f *Filter) RemainingCount() int {
	return max(0, len(f.filtered)-f.visibleCount)
}

func (f *Filter) MatchCount() int {
	return len(f.filtered)
}

func (f *Filter) VisibleCount() int {
	return f.visibleCount
}

func (f *Filter) PageSize() int {
	return f.pageSize
}

func (f *Filter) State() FilterState {
	return f.state
}

func (f *Filter) resetVisible() {
	f.visibleCount = min(f.pageSize, len(f.filtered))
}

func (f *Filter) matchesText(p domain.Product, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(f.fold.String(p.Name), needle) ||
		strings.Contains(f.fold.String(p.Description), needle)
}

func matchesCategory(p domain.Product, category string) bool {
	return category == domain.CategoryAll || p.Category == category
}

func (f *Filter) sort(ps []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int { return cmp.Compare(a.Price, b.Price) })
	case domain.SortPriceDesc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int { return cmp.Compare(b.Price, a.Price) })
	case domain.SortNameAsc:
		slices.SortStableFunc(ps, func(a, b domain.Product) int { return f.collator.CompareString(a.Name, b.Name) })
	}
}
