package systems

import (
	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/motion"
)

// ViewportSystem 页面滚动系统
// 把滚轮/键盘输入转换为视口滚动，并在每次滚动后同步分发 ScrollEvent
type ViewportSystem struct {
	entityManager *ecs.EntityManager
	hub           *input.Hub
	viewport      ecs.EntityID
	wheelSub      *input.Subscription
}

// NewViewportSystem 创建滚动系统并创建视口实体
func NewViewportSystem(em *ecs.EntityManager, hub *input.Hub, width, height, contentHeight, wheelStep float64) *ViewportSystem {
	vs := &ViewportSystem{
		entityManager: em,
		hub:           hub,
	}

	vs.viewport = em.CreateEntity()
	ecs.AddComponent(em, vs.viewport, &components.ViewportComponent{
		Width:         width,
		Height:        height,
		ContentHeight: contentHeight,
		WheelStep:     wheelStep,
	})

	vs.wheelSub = hub.SubscribeWheel(func(ev input.WheelEvent) {
		vp := vs.component()
		if vp == nil {
			return
		}
		// 滚轮向下为负值，页面向下滚动
		vs.ScrollBy(-ev.DeltaY * vp.WheelStep)
	})
	return vs
}

// Viewport 返回视口实体ID
func (vs *ViewportSystem) Viewport() ecs.EntityID {
	return vs.viewport
}

func (vs *ViewportSystem) component() *components.ViewportComponent {
	vp, _ := ecs.GetComponent[*components.ViewportComponent](vs.entityManager, vs.viewport)
	return vp
}

// ScrollBy 相对滚动
func (vs *ViewportSystem) ScrollBy(delta float64) {
	if vp := vs.component(); vp != nil {
		vs.ScrollTo(vp.ScrollY + delta)
	}
}

// ScrollTo 滚动到指定位置（限制在内容范围内）
// 位置变化时同步分发滚动事件，不做节流
func (vs *ViewportSystem) ScrollTo(offset float64) {
	vp := vs.component()
	if vp == nil {
		return
	}
	next := motion.Clamp(offset, 0, vp.MaxScroll())
	if next == vp.ScrollY {
		return
	}
	delta := next - vp.ScrollY
	vp.ScrollY = next
	vs.hub.DispatchScroll(input.ScrollEvent{OffsetY: next, DeltaY: delta, ViewportHeight: vp.Height})
}

// Refresh 以当前位置分发一次滚动事件（初始化、布局变化时使用）
func (vs *ViewportSystem) Refresh() {
	if vp := vs.component(); vp != nil {
		vs.hub.DispatchScroll(input.ScrollEvent{OffsetY: vp.ScrollY, ViewportHeight: vp.Height})
	}
}

// Close 释放滚轮订阅
func (vs *ViewportSystem) Close() error {
	return vs.wheelSub.Close()
}
