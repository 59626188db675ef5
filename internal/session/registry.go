package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	cartapp "github.com/dwikikusuma/storefront/internal/cart/app"
	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
)

// Session is the per-visitor state. Handlers hold the session lock while
// they touch Cart or Filter.
type Session struct {
	ID     string
	Cart   *cartapp.Service
	Filter *catalogapp.Filter
	Frame  *Frame

	mu       sync.Mutex
	lastSeen atomic.Int64
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// FilterFactory hands out a fresh catalog filter per session.
type FilterFactory interface {
	NewFilter() *catalogapp.Filter
}

type Metrics interface {
	cartapp.Metrics
	SessionsActive(n int)
}

type Registry struct {
	storage cartapp.SlotStorage
	catalog FilterFactory
	slotKey string
	idleTTL time.Duration

	log     *slog.Logger
	metrics Metrics
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

type Option func(*Registry)

func WithLogger(log *slog.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

func WithMetrics(m Metrics) Option {
	return func(r *Registry) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithClock replaces time.Now; tests use it to age sessions.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

func NewRegistry(storage cartapp.SlotStorage, catalog FilterFactory, slotKey string, idleTTL time.Duration, opts ...Option) *Registry {
	r := &Registry{
		storage:  storage,
		catalog:  catalog,
		slotKey:  slotKey,
		idleTTL:  idleTTL,
		log:      slog.Default(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SlotFor is the storage key holding the cart of session id.
func (r *Registry) SlotFor(id string) string {
	return r.slotKey + ":" + id
}

// GetOrCreate returns the session for id, building and loading it on first
// sight. Concurrent first calls for one id agree on a single session.
func (r *Registry) GetOrCreate(ctx context.Context, id string) *Session {
	if s, ok := r.Get(id); ok {
		s.touch(r.now())
		return s
	}

	// Build outside the lock; the slot read may hit the network.
	fresh := r.build(ctx, id)

	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		s = fresh
		r.sessions[id] = s
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		r.log.DebugContext(ctx, "session created", slog.String("session", id))
		r.reportActive(n)
	}
	s.touch(r.now())
	return s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL as of now. Sessions in
// use are kept. Their carts stay in slot storage and reload on return.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}

	r.mu.Lock()
	dropped := 0
	for id, s := range r.sessions {
		if now.Sub(s.LastSeen()) <= r.idleTTL {
			continue
		}
		if !s.mu.TryLock() {
			continue
		}
		delete(r.sessions, id)
		s.mu.Unlock()
		dropped++
	}
	n := len(r.sessions)
	r.mu.Unlock()

	if dropped > 0 {
		r.log.Debug("sessions swept", slog.Int("dropped", dropped), slog.Int("active", n))
		r.reportActive(n)
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx ends.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			r.Sweep(r.now())
		}
	}
}

func (r *Registry) build(ctx context.Context, id string) *Session {
	frame := &Frame{}
	opts := []cartapp.Option{cartapp.WithLogger(r.log.With(slog.String("session", id)))}
	if r.metrics != nil {
		opts = append(opts, cartapp.WithMetrics(r.metrics))
	}

	s := &Session{
		ID:     id,
		Cart:   cartapp.NewService(r.storage, r.SlotFor(id), frame, opts...),
		Filter: r.catalog.NewFilter(),
		Frame:  frame,
	}
	s.Cart.Load(ctx)
	return s
}

func (r *Registry) reportActive(n int) {
	if r.metrics != nil {
		r.metrics.SessionsActive(n)
	}
}
