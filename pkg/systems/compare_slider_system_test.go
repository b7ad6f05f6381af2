package systems

import (
	"testing"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/motion"
)

// sliderFixture 一个视口 + 一个滑块，输入由 mock 控制
type sliderFixture struct {
	em       *ecs.EntityManager
	hub      *input.Hub
	src      *input.MockSource
	poller   *input.Poller
	viewport *ViewportSystem
	system   *CompareSliderSystem
	slider   ecs.EntityID
}

func newSliderFixture(t *testing.T) *sliderFixture {
	t.Helper()
	em := ecs.NewEntityManager()
	hub := input.NewHub()
	src := &input.MockSource{}
	vs := NewViewportSystem(em, hub, 800, 600, 2000, 40)
	sys := NewCompareSliderSystem(em, hub, vs.Viewport())

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 100, Y: 300})
	ecs.AddComponent(em, id, &components.SizeComponent{Width: 400, Height: 200})
	ecs.AddComponent(em, id, &components.CompareSliderComponent{Slider: motion.NewSlider(50)})

	return &sliderFixture{
		em: em, hub: hub, src: src,
		poller:   input.NewPoller(src, hub),
		viewport: vs,
		system:   sys,
		slider:   id,
	}
}

func (f *sliderFixture) component() *components.CompareSliderComponent {
	c, _ := ecs.GetComponent[*components.CompareSliderComponent](f.em, f.slider)
	return c
}

func (f *sliderFixture) step(x, y int, pressed bool) {
	f.src.X, f.src.Y, f.src.Pressed = x, y, pressed
	f.poller.Poll()
}

// TestCompareSlider_DragScenario 按下 → 拖动 → 在滑槽外释放
func TestCompareSlider_DragScenario(t *testing.T) {
	f := newSliderFixture(t)
	baseline := f.hub.PointerListenerCount()

	f.step(150, 350, false)
	f.step(150, 350, true) // 在滑槽内按下
	if !f.system.IsDragging(f.slider) || !f.component().Slider.IsDragging() {
		t.Fatal("pressing inside the track should start a drag")
	}
	if f.hub.PointerListenerCount() != baseline+1 {
		t.Errorf("drag should acquire one pointer subscription, have %d (baseline %d)", f.hub.PointerListenerCount(), baseline)
	}
	// 按下本身不改变位置
	if f.component().Slider.Position != 50 {
		t.Errorf("Position after press = %v, want 50", f.component().Slider.Position)
	}

	f.step(300, 350, true)
	if got := f.component().Slider.Position; got != 50 {
		t.Errorf("Position = %v, want 50 ((300-100)/400*100)", got)
	}

	f.step(200, 10, true) // 指针离开滑槽仍然跟随
	if got := f.component().Slider.Position; got != 25 {
		t.Errorf("Position = %v, want 25", got)
	}

	f.step(-50, 900, true) // 越界饱和
	if got := f.component().Slider.Position; got != 0 {
		t.Errorf("Position = %v, want 0", got)
	}

	f.step(-50, 900, false) // 在滑槽外释放
	if f.system.IsDragging(f.slider) || f.component().Slider.IsDragging() {
		t.Fatal("releasing anywhere should end the drag")
	}
	if f.hub.PointerListenerCount() != baseline {
		t.Errorf("drag subscription leaked: %d listeners, want %d", f.hub.PointerListenerCount(), baseline)
	}

	// 释放后移动不再影响位置
	f.step(400, 350, false)
	if got := f.component().Slider.Position; got != 0 {
		t.Errorf("Position after release = %v, want 0", got)
	}
}

func TestCompareSlider_PressOutsideTrack(t *testing.T) {
	f := newSliderFixture(t)
	f.step(50, 50, false)
	f.step(50, 50, true)
	if f.system.IsDragging(f.slider) {
		t.Error("pressing outside the track should not start a drag")
	}
}

// TestCompareSlider_CancelReleasesSubscription 失焦时释放订阅
func TestCompareSlider_CancelReleasesSubscription(t *testing.T) {
	f := newSliderFixture(t)
	baseline := f.hub.PointerListenerCount()

	f.step(150, 350, true)
	if !f.system.IsDragging(f.slider) {
		t.Fatal("drag should start")
	}
	f.src.Unfocused = true
	f.poller.Poll()

	if f.system.IsDragging(f.slider) {
		t.Error("pointer cancel should end the drag")
	}
	if f.hub.PointerListenerCount() != baseline {
		t.Errorf("listeners = %d, want %d", f.hub.PointerListenerCount(), baseline)
	}
}

// TestCompareSlider_CloseReleasesEverything 系统关闭时释放全部订阅
func TestCompareSlider_CloseReleasesEverything(t *testing.T) {
	f := newSliderFixture(t)
	released := -1.0
	f.component().OnRelease = func(p float64) { released = p }

	f.step(150, 350, true)
	f.step(500, 350, true)
	if err := f.system.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if f.hub.PointerListenerCount() != 0 {
		t.Errorf("pointer listeners after Close = %d, want 0", f.hub.PointerListenerCount())
	}
	if f.component().Slider.IsDragging() {
		t.Error("slider still dragging after Close")
	}
	if released != 100 {
		t.Errorf("OnRelease got %v, want 100", released)
	}
}

// TestCompareSlider_TrackFollowsScroll 拖拽中滚动页面，滑槽几何每次重新读取
func TestCompareSlider_TrackFollowsScroll(t *testing.T) {
	f := newSliderFixture(t)
	changes := 0
	f.component().OnPositionChange = func(float64) { changes++ }

	f.step(150, 350, true)
	f.viewport.ScrollBy(100) // 滑槽屏幕位置上移 100，X 不变
	f.step(400, 250, true)
	if got := f.component().Slider.Position; got != 75 {
		t.Errorf("Position = %v, want 75", got)
	}
	if changes != 1 {
		t.Errorf("OnPositionChange called %d times, want 1", changes)
	}

	// 滚动后在新的屏幕位置按下
	f.step(400, 250, false)
	f.step(300, 210, true)
	if !f.system.IsDragging(f.slider) {
		t.Error("press inside the scrolled track should start a drag")
	}
}

func TestCompareSlider_Hover(t *testing.T) {
	f := newSliderFixture(t)
	f.step(150, 350, false)
	f.step(151, 350, false)
	f.system.Update(1.0 / 60)
	if !f.component().IsHovered {
		t.Error("pointer over track should set IsHovered")
	}
	f.step(10, 10, false)
	f.system.Update(1.0 / 60)
	if f.component().IsHovered {
		t.Error("pointer outside track should clear IsHovered")
	}
}
