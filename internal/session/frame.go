package session

import (
	"sync"

	"github.com/dwikikusuma/storefront/internal/cart/domain"
)

// Frame is the presenter of one session. It keeps the latest derived reads
// of the cart and at most one pending notification.
type Frame struct {
	mu    sync.Mutex
	badge int
	lines domain.Lines
	total int64
	note  *domain.Notification
}

// Snapshot is a point-in-time copy of a Frame.
type Snapshot struct {
	Badge        int
	Lines        domain.Lines
	Total        int64
	Notification *domain.Notification
}

func (f *Frame) BadgeChanged(count int) {
	f.mu.Lock()
	f.badge = count
	f.mu.Unlock()
}

func (f *Frame) Render(lines domain.Lines, total int64) {
	f.mu.Lock()
	f.lines = lines
	f.total = total
	f.mu.Unlock()
}

// Notify replaces any notification not yet shown.
func (f *Frame) Notify(n domain.Notification) {
	f.mu.Lock()
	f.note = &n
	f.mu.Unlock()
}

// Take returns the current frame and consumes its notification.
func (f *Frame) Take() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Badge:        f.badge,
		Lines:        append(domain.Lines(nil), f.lines...),
		Total:        f.total,
		Notification: f.note,
	}
	f.note = nil
	return s
}
