package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/storefront/internal/catalog/app"
	"github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/platform/httputil"
	"github.com/dwikikusuma/storefront/internal/session"
	"github.com/dwikikusuma/storefront/pkg/money"
)

var errNoSession = errors.New("no session in request context")

type Metrics interface {
	FilterApplied()
}

type nopMetrics struct{}

func (nopMetrics) FilterApplied() {}

type Server struct {
	svc     *app.Service
	money   *money.Formatter
	log     *slog.Logger
	metrics Metrics
}

func NewServer(svc *app.Service, m *money.Formatter, log *slog.Logger, metrics Metrics) *Server {
	if log == nil {
		log = slog.Default()
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Server{svc: svc, money: m, log: log, metrics: metrics}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/catalog", s.GetCatalog)
	r.Post("/catalog/filter", s.ApplyFilter)
	r.Post("/catalog/more", s.LoadMore)
	r.Get("/catalog/categories", s.ListCategories)
}

type filterRequest struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

// GetCatalog renders the session's view. A category query parameter
// preselects that category and keeps the current search and sort.
func (s *Server) GetCatalog(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	if cat := r.URL.Query().Get("category"); cat != "" {
		st := sess.Filter.State()
		sess.Filter.ApplyFilters(st.SearchTerm, cat, st.SortKey)
		s.metrics.FilterApplied()
	}
	httputil.WriteJSON(w, http.StatusOK, toView(sess.Filter, s.money))
}

func (s *Server) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	var req filterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	key, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		httputil.WriteError(w, fmt.Errorf("%v: %w", err, httputil.ErrBadRequest))
		return
	}

	sess.Filter.ApplyFilters(req.Search, req.Category, key)
	s.metrics.FilterApplied()
	s.log.DebugContext(r.Context(), "catalog filtered",
		slog.String("session", sess.ID),
		slog.String("category", req.Category),
		slog.String("sort", string(key)),
		slog.Int("matches", sess.Filter.MatchCount()),
	)
	httputil.WriteJSON(w, http.StatusOK, toView(sess.Filter, s.money))
}

func (s *Server) LoadMore(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	sess.Filter.LoadMore()
	httputil.WriteJSON(w, http.StatusOK, toView(sess.Filter, s.money))
}

func (s *Server) ListCategories(w http.ResponseWriter, _ *http.Request) {
	cats := append([]string{domain.CategoryAll}, s.svc.Categories()...)
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"categories": cats})
}

type productView struct {
	domain.Product
	PriceLabel string `json:"price_label"`
}

type filterView struct {
	Search   string `json:"search"`
	Category string `json:"category"`
	Sort     string `json:"sort"`
}

type view struct {
	Products      []productView `json:"products"`
	MatchCount    int           `json:"match_count"`
	Remaining     int           `json:"remaining"`
	LoadMoreLabel string        `json:"load_more_label"`
	ShowLoadMore  bool          `json:"show_load_more"`
	Filter        filterView    `json:"filter"`
}

func toView(f *app.Filter, m *money.Formatter) view {
	visible := f.VisibleSlice()
	products := make([]productView, 0, len(visible))
	for _, p := range visible {
		products = append(products, productView{Product: p, PriceLabel: m.Format(p.Price)})
	}

	st := f.State()
	remaining := f.RemainingCount()
	return view{
		Products:      products,
		MatchCount:    f.MatchCount(),
		Remaining:     remaining,
		LoadMoreLabel: fmt.Sprintf("Load More (%d remaining)", remaining),
		ShowLoadMore:  remaining > 0,
		Filter: filterView{
			Search:   st.SearchTerm,
			Category: st.Category,
			Sort:     string(st.SortKey),
		},
	}
}
