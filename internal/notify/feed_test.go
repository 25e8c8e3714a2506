package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/unroll/internal/model"
)

func TestFeed_PushThenExpire(t *testing.T) {
	f := NewFeed(WithTTL(20 * time.Millisecond))
	defer f.Close()

	n := f.Push("saved", model.KindSuccess)
	require.Len(t, f.List(), 1)
	assert.Equal(t, n.ID, f.List()[0].ID)

	assert.Eventually(t, func() bool { return f.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestFeed_DefaultTTL(t *testing.T) {
	f := NewFeed()
	defer f.Close()
	assert.Equal(t, 3*time.Second, f.TTL())

	f = NewFeed(WithTTL(-1))
	defer f.Close()
	assert.Equal(t, DefaultTTL, f.TTL())
}

func TestFeed_DismissBeforeExpiry(t *testing.T) {
	f := NewFeed(WithTTL(20 * time.Millisecond))
	defer f.Close()

	first := f.Push("first", model.KindSuccess)
	second := f.Push("second", model.KindError)

	assert.True(t, f.Dismiss(first.ID))
	assert.False(t, f.Dismiss(first.ID), "second dismissal is a no-op")

	list := f.List()
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	assert.Eventually(t, func() bool { return f.Len() == 0 }, time.Second, 5*time.Millisecond)
}

func TestFeed_CreationOrderAndNoDedup(t *testing.T) {
	f := NewFeed(WithTTL(time.Hour))
	defer f.Close()

	a := f.Push("same", "")
	b := f.Push("same", model.KindSuccess)

	list := f.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, model.KindSuccess, list[0].Kind, "empty kind defaults to success")
}

func TestFeed_ClockAndHook(t *testing.T) {
	stamp := time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC)
	var pushed []string
	f := NewFeed(
		WithTTL(time.Hour),
		WithClock(func() time.Time { return stamp }),
		WithPushHook(func(n model.Notification) { pushed = append(pushed, n.Message) }),
	)
	defer f.Close()

	n := f.Push("hello", model.KindSuccess)
	assert.Equal(t, stamp, n.CreatedAt)
	assert.Equal(t, []string{"hello"}, pushed)
}

func TestFeed_CloseStopsExpiry(t *testing.T) {
	f := NewFeed(WithTTL(10 * time.Millisecond))
	f.Push("kept", model.KindSuccess)
	f.Close()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, f.Len())

	// Pushing after Close does not schedule a timer.
	f.Push("also kept", model.KindSuccess)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 2, f.Len())
}
