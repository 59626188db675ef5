package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	"github.com/dwikikusuma/storefront/internal/platform/httputil"
	"github.com/dwikikusuma/storefront/internal/session"
	"github.com/dwikikusuma/storefront/pkg/money"
)

var errNoSession = errors.New("no session in request context")

type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
}

type Server struct {
	products ProductLookup
	money    *money.Formatter
	log      *slog.Logger
}

func NewServer(products ProductLookup, m *money.Formatter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{products: products, money: m, log: log}
}

func (s *Server) Register(r chi.Router) {
	r.Get("/cart", s.GetCart)
	r.Post("/cart/items", s.AddItem)
	r.Put("/cart/items/{id}", s.SetQuantity)
	r.Delete("/cart/items/{id}", s.RemoveItem)
	r.Delete("/cart", s.ClearCart)
}

type addItemRequest struct {
	ID       string            `json:"id"`
	Quantity httputil.Quantity `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity httputil.Quantity `json:"quantity"`
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ToView(sess.Frame.Take(), s.money))
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	var req addItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	p, err := s.products.GetProduct(r.Context(), req.ID)
	if err != nil {
		s.log.DebugContext(r.Context(), "add to cart rejected", slog.String("product", req.ID), slog.Any("err", err))
		httputil.WriteError(w, err)
		return
	}

	sess.Cart.Add(r.Context(), domain.LineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: req.Quantity.Int(),
	})
	httputil.WriteJSON(w, http.StatusOK, ToView(sess.Frame.Take(), s.money))
}

func (s *Server) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	var req setQuantityRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sess.Cart.SetQuantity(r.Context(), chi.URLParam(r, "id"), req.Quantity.Int())
	httputil.WriteJSON(w, http.StatusOK, ToView(sess.Frame.Take(), s.money))
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	sess.Cart.Remove(r.Context(), chi.URLParam(r, "id"))
	httputil.WriteJSON(w, http.StatusOK, ToView(sess.Frame.Take(), s.money))
}

// ClearCart is a no-op on an empty cart.
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	if !sess.Cart.IsEmpty() {
		sess.Cart.Clear(r.Context())
	}
	httputil.WriteJSON(w, http.StatusOK, ToView(sess.Frame.Take(), s.money))
}
