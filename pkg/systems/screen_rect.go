package systems

import (
	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/motion"
)

// ScreenRect 读取实体当前的屏幕矩形
// 内容坐标减去视口滚动位置；每次调用都重新读取，不做缓存
func ScreenRect(em *ecs.EntityManager, viewport, id ecs.EntityID) (motion.Rect, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return motion.Rect{}, false
	}
	size, ok := ecs.GetComponent[*components.SizeComponent](em, id)
	if !ok {
		return motion.Rect{}, false
	}
	scrollY := 0.0
	if vp, ok := ecs.GetComponent[*components.ViewportComponent](em, viewport); ok {
		scrollY = vp.ScrollY
	}
	content := motion.Rect{Left: pos.X, Top: pos.Y, Width: size.Width, Height: size.Height}
	return content.Offset(0, -scrollY), true
}
