// Package nav models navigation state: an ordered stream of navigation
// lifecycle events and path-derived navigation/breadcrumb view models.
package nav

import "sync"

// EventKind classifies a navigation lifecycle event.
type EventKind int

const (
	// Start is emitted when a navigation begins.
	Start EventKind = iota + 1
	// End is emitted once a navigation has completed and the URL is current.
	End
	// Cancel is emitted when a navigation is abandoned before completion.
	Cancel
	// Error is emitted when a navigation fails.
	Error
)

func (k EventKind) String() string {
	switch k {
	case Start:
		return "start"
	case End:
		return "end"
	case Cancel:
		return "cancel"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a navigation notification. Events sharing an ID belong to the
// same navigation.
type Event struct {
	ID   int
	Kind EventKind
	URL  string
}

// Stream delivers navigation events to subscribers in emission order.
type Stream interface {
	Subscribe(fn func(Event)) Subscription
}

// Subscription is released with Unsubscribe. Releasing more than once is a
// no-op.
type Subscription interface {
	Unsubscribe()
}

// Router is an in-process Stream. Dispatch is synchronous: Navigate returns
// after every subscriber has seen both events. It is not safe for
// concurrent use.
type Router struct {
	subs    []*subscription
	lastID  int
	nextSub int
	current string
}

// NewRouter returns a router with no current URL.
func NewRouter() *Router {
	return &Router{}
}

// Subscribe implements Stream. A nil fn yields an inert subscription.
func (r *Router) Subscribe(fn func(Event)) Subscription {
	r.nextSub++
	sub := &subscription{id: r.nextSub, router: r, fn: fn}
	if fn != nil {
		r.subs = append(r.subs, sub)
	}
	return sub
}

// Subscribers reports the number of live subscriptions.
func (r *Router) Subscribers() int { return len(r.subs) }

// URL returns the URL of the last completed navigation.
func (r *Router) URL() string { return r.current }

// Navigate emits Start followed by End for url and makes it current.
func (r *Router) Navigate(url string) {
	id := r.begin(url)
	r.current = url
	r.Emit(Event{ID: id, Kind: End, URL: url})
}

// Cancel emits Start followed by Cancel; the current URL is unchanged.
func (r *Router) Cancel(url string) {
	id := r.begin(url)
	r.Emit(Event{ID: id, Kind: Cancel, URL: url})
}

// Fail emits Start followed by Error; the current URL is unchanged.
func (r *Router) Fail(url string) {
	id := r.begin(url)
	r.Emit(Event{ID: id, Kind: Error, URL: url})
}

// Emit delivers ev to every subscriber registered at the time of the call.
func (r *Router) Emit(ev Event) {
	snapshot := make([]*subscription, len(r.subs))
	copy(snapshot, r.subs)
	for _, sub := range snapshot {
		if sub.active() {
			sub.fn(ev)
		}
	}
}

func (r *Router) begin(url string) int {
	r.lastID++
	r.Emit(Event{ID: r.lastID, Kind: Start, URL: url})
	return r.lastID
}

func (r *Router) remove(id int) {
	for i, sub := range r.subs {
		if sub.id == id {
			r.subs = append(r.subs[:i], r.subs[i+1:]...)
			return
		}
	}
}

type subscription struct {
	id     int
	router *Router
	fn     func(Event)
	once   sync.Once
	done   bool
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.done = true
		s.router.remove(s.id)
	})
}

func (s *subscription) active() bool { return !s.done }
