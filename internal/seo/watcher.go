package seo

import (
	"github.com/gridatek/go-seo-toolkit/internal/nav"
)

// navigationWatcher forwards completed navigations to onEnd until stopped.
type navigationWatcher struct {
	sub     nav.Subscription
	onEnd   func(url string)
	stopped bool
}

func watchNavigation(stream nav.Stream, onEnd func(url string)) *navigationWatcher {
	w := &navigationWatcher{onEnd: onEnd}
	w.sub = stream.Subscribe(w.handle)
	return w
}

func (w *navigationWatcher) handle(ev nav.Event) {
	if w.stopped || ev.Kind != nav.End {
		return
	}
	w.onEnd(ev.URL)
}

// stop releases the subscription. Later calls are no-ops.
func (w *navigationWatcher) stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.sub.Unsubscribe()
}
