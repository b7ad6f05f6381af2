package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_DispatchInOrder(t *testing.T) {
	hub := NewHub()
	var got []string
	hub.SubscribePointer(func(ev PointerEvent) { got = append(got, "a:"+ev.Kind.String()) })
	hub.SubscribePointer(func(ev PointerEvent) { got = append(got, "b:"+ev.Kind.String()) })

	hub.DispatchPointer(PointerEvent{Kind: PointerDown})
	assert.Equal(t, []string{"a:down", "b:down"}, got)
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := NewHub()
	calls := 0
	sub := hub.SubscribePointer(func(PointerEvent) { calls++ })
	require.Equal(t, 1, hub.PointerListenerCount())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	assert.False(t, sub.Active())
	assert.Equal(t, 0, hub.ListenerCount())

	hub.DispatchPointer(PointerEvent{Kind: PointerMove})
	assert.Equal(t, 0, calls)

	var nilSub *Subscription
	assert.NoError(t, nilSub.Close())
}

// TestHub_UnsubscribeDuringDispatch 分发过程中取消订阅
func TestHub_UnsubscribeDuringDispatch(t *testing.T) {
	hub := NewHub()
	var second *Subscription
	firstCalls, secondCalls := 0, 0

	hub.SubscribePointer(func(PointerEvent) {
		firstCalls++
		second.Close()
	})
	second = hub.SubscribePointer(func(PointerEvent) { secondCalls++ })

	hub.DispatchPointer(PointerEvent{Kind: PointerUp})
	assert.Equal(t, 1, firstCalls)
	assert.Equal(t, 0, secondCalls, "listener closed earlier in the same dispatch must not fire")
	assert.Equal(t, 1, hub.ListenerCount())
}

func TestHub_SeparateChannels(t *testing.T) {
	hub := NewHub()
	var pointer, wheel, scroll int
	hub.SubscribePointer(func(PointerEvent) { pointer++ })
	hub.SubscribeWheel(func(WheelEvent) { wheel++ })
	hub.SubscribeScroll(func(ScrollEvent) { scroll++ })

	hub.DispatchWheel(WheelEvent{DeltaY: 1})
	hub.DispatchScroll(ScrollEvent{OffsetY: 10})
	hub.DispatchScroll(ScrollEvent{OffsetY: 20})

	assert.Equal(t, 0, pointer)
	assert.Equal(t, 1, wheel)
	assert.Equal(t, 2, scroll)
	assert.Equal(t, 1, hub.ScrollListenerCount())
}
