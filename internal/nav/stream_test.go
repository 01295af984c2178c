package nav

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterEmitsInOrder(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	var got []Event
	sub := r.Subscribe(func(ev Event) { got = append(got, ev) })
	defer sub.Unsubscribe()

	r.Navigate("/about")
	r.Cancel("/slow")
	r.Fail("/broken")

	require.Equal(t, []Event{
		{ID: 1, Kind: Start, URL: "/about"},
		{ID: 1, Kind: End, URL: "/about"},
		{ID: 2, Kind: Start, URL: "/slow"},
		{ID: 2, Kind: Cancel, URL: "/slow"},
		{ID: 3, Kind: Start, URL: "/broken"},
		{ID: 3, Kind: Error, URL: "/broken"},
	}, got)
	require.Equal(t, "/about", r.URL(), "only completed navigations become current")
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	calls := 0
	first := r.Subscribe(func(Event) { calls++ })
	second := r.Subscribe(func(Event) {})
	require.Equal(t, 2, r.Subscribers())

	first.Unsubscribe()
	first.Unsubscribe()
	require.Equal(t, 1, r.Subscribers(), "second unsubscribe must not remove another subscription")

	r.Navigate("/")
	require.Zero(t, calls)

	second.Unsubscribe()
	require.Zero(t, r.Subscribers())
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	t.Parallel()

	r := NewRouter()
	var sub Subscription
	seen := 0
	sub = r.Subscribe(func(ev Event) {
		seen++
		sub.Unsubscribe()
	})
	other := 0
	r.Subscribe(func(Event) { other++ })

	r.Navigate("/a")

	require.Equal(t, 1, seen, "no events after unsubscribing")
	require.Equal(t, 2, other)
}

func TestEventKindString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "end", End.String())
	require.Equal(t, "unknown", EventKind(0).String())
}
