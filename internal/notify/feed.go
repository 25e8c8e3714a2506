// Package notify holds the ephemeral toast messages produced by store mutations.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Veraticus/unroll/internal/model"
)

// DefaultTTL is how long a notification stays visible without being dismissed.
const DefaultTTL = 3 * time.Second

// Feed is an ordered list of notifications, each removed after a fixed delay
// or on explicit dismissal, whichever happens first.
type Feed struct {
	now     func() time.Time
	timers  map[string]*time.Timer
	onPush  func(model.Notification)
	items   []model.Notification
	ttl     time.Duration
	mu      sync.Mutex
	stopped bool
}

// Option configures a Feed.
type Option func(*Feed)

// WithTTL overrides the auto-expiry delay. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(f *Feed) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// WithClock overrides the clock used to stamp notifications.
func WithClock(now func() time.Time) Option {
	return func(f *Feed) {
		f.now = now
	}
}

// WithPushHook registers a callback invoked after every push.
func WithPushHook(fn func(model.Notification)) Option {
	return func(f *Feed) {
		f.onPush = fn
	}
}

// NewFeed creates an empty feed.
func NewFeed(opts ...Option) *Feed {
	f := &Feed{
		ttl:    DefaultTTL,
		now:    time.Now,
		timers: make(map[string]*time.Timer),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// TTL returns the configured expiry delay.
func (f *Feed) TTL() time.Duration {
	return f.ttl
}

// Push appends a notification and schedules its removal.
func (f *Feed) Push(message string, kind model.NotificationKind) model.Notification {
	if kind == "" {
		kind = model.KindSuccess
	}
	n := model.Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: f.now(),
	}

	f.mu.Lock()
	f.items = append(f.items, n)
	if !f.stopped {
		id := n.ID
		f.timers[id] = time.AfterFunc(f.ttl, func() { f.expire(id) })
	}
	hook := f.onPush
	f.mu.Unlock()

	if hook != nil {
		hook(n)
	}
	return n
}

// Dismiss removes the notification immediately. It reports whether it was present.
func (f *Feed) Dismiss(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if t, ok := f.timers[id]; ok {
		t.Stop()
		delete(f.timers, id)
	}
	return f.remove(id)
}

// List returns the current notifications in creation order.
func (f *Feed) List() []model.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of visible notifications.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// Close stops all pending expiry timers. Notifications already in the feed remain.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, t := range f.timers {
		t.Stop()
		delete(f.timers, id)
	}
	f.stopped = true
}

func (f *Feed) expire(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Already dismissed: the timer entry is gone and there is nothing to do.
	if _, ok := f.timers[id]; !ok {
		return
	}
	delete(f.timers, id)
	f.remove(id)
}

// remove must be called with mu held.
func (f *Feed) remove(id string) bool {
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}
