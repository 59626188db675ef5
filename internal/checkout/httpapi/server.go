package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	cartdomain "github.com/dwikikusuma/storefront/internal/cart/domain"
	carthttp "github.com/dwikikusuma/storefront/internal/cart/httpapi"
	"github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/checkout/domain"
	"github.com/dwikikusuma/storefront/internal/platform/httputil"
	"github.com/dwikikusuma/storefront/internal/session"
	"github.com/dwikikusuma/storefront/pkg/money"
)

const emptyCartMessage = "Your cart is empty"

var errNoSession = errors.New("no session in request context")

type Server struct {
	svc   *app.Service
	money *money.Formatter
	log   *slog.Logger
}

func NewServer(svc *app.Service, m *money.Formatter, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, money: m, log: log}
}

func (s *Server) Register(r chi.Router) {
	r.Post("/checkout", s.Checkout)
	r.Post("/checkout/buy-now", s.BuyNow)
}

type buyNowRequest struct {
	ID       string            `json:"id"`
	Quantity httputil.Quantity `json:"quantity"`
}

type linkResponse struct {
	domain.Link
	Cart carthttp.View `json:"cart"`
}

type emptyCartResponse struct {
	Error   string        `json:"error"`
	Message string        `json:"message"`
	Cart    carthttp.View `json:"cart"`
}

// Checkout links the whole cart. An empty cart answers 422 and raises the
// error notification instead of a link.
func (s *Server) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	link, err := s.svc.Checkout(r.Context(), sess.ID)
	if errors.Is(err, app.ErrEmptyCart) {
		sess.Frame.Notify(cartdomain.Notification{Type: cartdomain.NotifyError, Message: emptyCartMessage})
		httputil.WriteJSON(w, http.StatusUnprocessableEntity, emptyCartResponse{
			Error:   "EMPTY_CART",
			Message: emptyCartMessage,
			Cart:    carthttp.ToView(sess.Frame.Take(), s.money),
		})
		return
	}
	if err != nil {
		s.log.ErrorContext(r.Context(), "checkout failed", slog.String("session", sess.ID), slog.Any("err", err))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, linkResponse{Link: link, Cart: carthttp.ToView(sess.Frame.Take(), s.money)})
}

func (s *Server) BuyNow(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		httputil.WriteError(w, errNoSession)
		return
	}

	var req buyNowRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}

	link, err := s.svc.BuyNow(r.Context(), sess.ID, req.ID, req.Quantity.Int())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, linkResponse{Link: link, Cart: carthttp.ToView(sess.Frame.Take(), s.money)})
}
