package systems

import (
	"testing"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newViewportFixture 视口 800x600，内容高度 2000，滚轮步长 50
func newViewportFixture(t *testing.T) (*ViewportSystem, *input.Hub, *[]input.ScrollEvent) {
	t.Helper()
	hub := input.NewHub()
	vs := NewViewportSystem(ecs.NewEntityManager(), hub, 800, 600, 2000, 50)
	var events []input.ScrollEvent
	sub := hub.SubscribeScroll(func(ev input.ScrollEvent) {
		events = append(events, ev)
	})
	t.Cleanup(func() {
		sub.Close()
		vs.Close()
	})
	return vs, hub, &events
}

func viewportOf(t *testing.T, vs *ViewportSystem) *components.ViewportComponent {
	t.Helper()
	vp, ok := ecs.GetComponent[*components.ViewportComponent](vs.entityManager, vs.Viewport())
	require.True(t, ok)
	return vp
}

func TestViewportSystem_WheelScrollsDown(t *testing.T) {
	vs, hub, events := newViewportFixture(t)

	hub.DispatchWheel(input.WheelEvent{DeltaY: -2})

	assert.Equal(t, 100.0, viewportOf(t, vs).ScrollY)
	require.Len(t, *events, 1)
	assert.Equal(t, 100.0, (*events)[0].OffsetY)
	assert.Equal(t, 100.0, (*events)[0].DeltaY)
	assert.Equal(t, 600.0, (*events)[0].ViewportHeight)
}

func TestViewportSystem_ClampsToContent(t *testing.T) {
	vs, _, events := newViewportFixture(t)

	vs.ScrollTo(5000)
	assert.Equal(t, 1400.0, viewportOf(t, vs).ScrollY)

	vs.ScrollBy(-9000)
	assert.Equal(t, 0.0, viewportOf(t, vs).ScrollY)

	// 已在顶部，不再分发
	vs.ScrollBy(-10)
	assert.Len(t, *events, 2)
}

func TestViewportSystem_EveryTickDispatches(t *testing.T) {
	vs, _, events := newViewportFixture(t)

	for i := 0; i < 10; i++ {
		vs.ScrollBy(1)
	}
	assert.Len(t, *events, 10)
}

// TestViewportSystem_RefreshRedispatches 位置不变也分发，DeltaY 为 0
func TestViewportSystem_RefreshRedispatches(t *testing.T) {
	vs, _, events := newViewportFixture(t)
	vs.ScrollTo(1400)

	vs.Refresh()
	vs.Refresh()

	require.Len(t, *events, 3)
	last := (*events)[2]
	assert.Equal(t, 1400.0, last.OffsetY)
	assert.Equal(t, 0.0, last.DeltaY)
	assert.Equal(t, 600.0, last.ViewportHeight)
}

func TestViewportSystem_CloseReleasesWheel(t *testing.T) {
	hub := input.NewHub()
	vs := NewViewportSystem(ecs.NewEntityManager(), hub, 800, 600, 2000, 50)
	require.Equal(t, 1, hub.ListenerCount())

	require.NoError(t, vs.Close())
	require.NoError(t, vs.Close())
	assert.Equal(t, 0, hub.ListenerCount())
}
