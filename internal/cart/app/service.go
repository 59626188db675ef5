package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

const (
	OpAdd         = "add"
	OpRemove      = "remove"
	OpSetQuantity = "set_quantity"
	OpClear       = "clear"
)

// slotIOTimeout bounds slot access that runs detached from the request.
const slotIOTimeout = 5 * time.Second

// Service is the cart store of a single session. It is not safe for
// concurrent use; callers serialize access per session.
type Service struct {
	storage   SlotStorage
	slot      string
	presenter Presenter
	log       *slog.Logger
	metrics   Metrics

	lines domain.Lines
	// unread is set while the slot could not be read. Writes wait until a
	// read succeeds so the saved cart is not overwritten.
	unread bool
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

func NewService(storage SlotStorage, slot string, presenter Presenter, opts ...Option) *Service {
	if presenter == nil {
		presenter = nopPresenter{}
	}
	s := &Service{
		storage:   storage,
		slot:      slot,
		presenter: presenter,
		log:       slog.Default(),
		metrics:   nopMetrics{},
		lines:     domain.Lines{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load rehydrates the cart from its slot and publishes the initial badge and
// view. A missing, unreadable or corrupt slot yields an empty cart. An
// unreadable slot is read again before the next write.
func (s *Service) Load(ctx context.Context) {
	s.lines = domain.Lines{}
	s.unread = false

	raw, ok, err := s.storage.Get(ctx, s.slot)
	switch {
	case err != nil:
		s.unread = true
		s.log.WarnContext(ctx, "cart slot read failed", slog.String("slot", s.slot), slog.Any("err", err))
	case ok:
		lines, decodeErr := decodeLines(raw)
		if decodeErr != nil {
			s.log.DebugContext(ctx, "cart slot unparsable, starting empty", slog.String("slot", s.slot), slog.Any("err", decodeErr))
			break
		}
		s.lines = lines
	}

	s.presenter.BadgeChanged(s.lines.Count())
	s.presenter.Render(s.Lines(), s.lines.Total())
}

// Add merges item into the cart. A quantity below 1 counts as 1.
func (s *Service) Add(ctx context.Context, item domain.LineItem) {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	if i := s.lines.Index(item.ID); i >= 0 {
		s.lines[i].Quantity += qty
	} else {
		item.Quantity = qty
		s.lines = append(s.lines, item)
	}

	s.commit(ctx, OpAdd, &domain.Notification{
		Type:    domain.NotifySuccess,
		Message: fmt.Sprintf("%s added to cart!", item.Name),
	})
}

// Remove deletes the line with id. Unknown ids still persist and notify.
func (s *Service) Remove(ctx context.Context, id string) {
	kept := make(domain.Lines, 0, len(s.lines))
	for _, l := range s.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	s.lines = kept

	s.commit(ctx, OpRemove, &domain.Notification{
		Type:    domain.NotifyInfo,
		Message: "Item removed from cart",
	})
}

// SetQuantity replaces the quantity of an existing line. qty < 1 removes it.
// There is no upper bound here.
func (s *Service) SetQuantity(ctx context.Context, id string, qty int) {
	if qty < 1 {
		s.Remove(ctx, id)
		return
	}

	i := s.lines.Index(id)
	if i < 0 {
		return
	}
	s.lines[i].Quantity = qty

	s.commit(ctx, OpSetQuantity, nil)
}

func (s *Service) Clear(ctx context.Context) {
	s.lines = domain.Lines{}

	s.commit(ctx, OpClear, &domain.Notification{
		Type:    domain.NotifyInfo,
		Message: "Cart cleared",
	})
}

func (s *Service) Total() int64 {
	return s.lines.Total()
}

func (s *Service) ItemCount() int {
	return s.lines.Count()
}

func (s *Service) IsEmpty() bool {
	return len(s.lines) == 0
}

// Lines returns a copy of the current lines.
func (s *Service) Lines() domain.Lines {
	out := make(domain.Lines, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Service) BuildOrderMessage(t MessageTemplate) string {
	return t.Order(s.lines)
}

// commit runs the post-mutation sequence: persist, badge, render, notify.
func (s *Service) commit(ctx context.Context, op string, n *domain.Notification) {
	s.metrics.CartMutation(op)
	s.persist(ctx)
	s.presenter.BadgeChanged(s.lines.Count())
	s.presenter.Render(s.Lines(), s.lines.Total())
	if n != nil {
		s.presenter.Notify(*n)
	}
}

// persist writes the lines back to the slot. The write ignores ctx
// cancellation and is bounded by slotIOTimeout instead.
func (s *Service) persist(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), slotIOTimeout)
	defer cancel()

	if s.unread && !s.reread(ctx) {
		s.metrics.SlotWriteFailed()
		s.log.WarnContext(ctx, "cart slot still unreadable, write skipped", slog.String("slot", s.slot))
		return
	}

	raw, err := json.Marshal(s.lines)
	if err != nil {
		s.metrics.SlotWriteFailed()
		s.log.ErrorContext(ctx, "cart encode failed", slog.String("slot", s.slot), slog.Any("err", err))
		return
	}
	if err := s.storage.Set(ctx, s.slot, string(raw)); err != nil {
		s.metrics.SlotWriteFailed()
		s.log.WarnContext(ctx, "cart slot write failed", slog.String("slot", s.slot), slog.Any("err", err))
	}
}

// reread retries a slot read that failed during Load. Saved lines the
// session has not touched are kept ahead of the session's own lines.
func (s *Service) reread(ctx context.Context) bool {
	raw, ok, err := s.storage.Get(ctx, s.slot)
	if err != nil {
		return false
	}
	s.unread = false
	if !ok {
		return true
	}
	saved, err := decodeLines(raw)
	if err != nil {
		s.log.DebugContext(ctx, "cart slot unparsable, overwriting", slog.String("slot", s.slot), slog.Any("err", err))
		return true
	}

	merged := make(domain.Lines, 0, len(saved)+len(s.lines))
	for _, l := range saved {
		if s.lines.Index(l.ID) < 0 {
			merged = append(merged, l)
		}
	}
	s.lines = append(merged, s.lines...)
	return true
}

// decodeLines parses a slot value. Records without an id or with a
// non-positive quantity are dropped and repeated ids are merged.
func decodeLines(raw string) (domain.Lines, error) {
	var parsed []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, err
	}

	lines := make(domain.Lines, 0, len(parsed))
	for _, l := range parsed {
		if l.ID == "" || l.Quantity < 1 {
			continue
		}
		if i := lines.Index(l.ID); i >= 0 {
			lines[i].Quantity += l.Quantity
			continue
		}
		lines = append(lines, l)
	}
	return lines, nil
}

type nopPresenter struct{}

func (nopPresenter) BadgeChanged(int) {}
func (nopPresenter) Render(domain.Lines, int64) {}
func (nopPresenter) Notify(domain.Notification) {}
