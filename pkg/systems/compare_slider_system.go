package systems

import (
	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/motion"
)

// CompareSliderSystem 对比滑块交互系统
// 负责处理滑块的指针拖拽交互
//
// 职责：
//   - 在滑槽内按下指针时开始拖拽，并订阅全局的移动/释放事件
//   - 拖拽中把指针 X 坐标换算为 0~100 的分割位置
//   - 释放（无论释放发生在哪里）、取消或系统关闭时结束拖拽并释放订阅
type CompareSliderSystem struct {
	entityManager *ecs.EntityManager
	hub           *input.Hub
	viewport      ecs.EntityID

	downSub *input.Subscription
	// 拖拽中的滑块 -> 全局移动/释放订阅
	dragSubs map[ecs.EntityID]*input.Subscription

	// lastX/lastY 最近一次指针位置，用于悬停检测
	lastX, lastY float64
}

// NewCompareSliderSystem 创建对比滑块交互系统
// viewport 为视口实体，用于把内容坐标换算为屏幕坐标
func NewCompareSliderSystem(em *ecs.EntityManager, hub *input.Hub, viewport ecs.EntityID) *CompareSliderSystem {
	s := &CompareSliderSystem{
		entityManager: em,
		hub:           hub,
		viewport:      viewport,
		dragSubs:      make(map[ecs.EntityID]*input.Subscription),
	}
	s.downSub = hub.SubscribePointer(s.onPointer)
	return s
}

// TrackRect 返回滑槽当前的屏幕矩形
// 每次调用都重新读取位置和视口滚动，不做缓存
func (s *CompareSliderSystem) TrackRect(id ecs.EntityID) (motion.Rect, bool) {
	return ScreenRect(s.entityManager, s.viewport, id)
}

// onPointer 处理滑槽上的按下（相当于绑定在滑槽元素上的 mousedown）
func (s *CompareSliderSystem) onPointer(ev input.PointerEvent) {
	s.lastX, s.lastY = ev.X, ev.Y
	if ev.Kind != input.PointerDown {
		return
	}

	for _, id := range ecs.GetEntitiesWith1[*components.CompareSliderComponent](s.entityManager) {
		track, ok := s.TrackRect(id)
		if !ok || !track.Contains(ev.X, ev.Y) {
			continue
		}
		s.BeginDrag(id)
		return
	}
}

// BeginDrag 开始拖拽并获取全局移动/释放订阅
func (s *CompareSliderSystem) BeginDrag(id ecs.EntityID) {
	slider, ok := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, id)
	if !ok {
		return
	}
	if _, dragging := s.dragSubs[id]; dragging {
		return
	}

	slider.Slider.BeginDrag()
	s.dragSubs[id] = s.hub.SubscribePointer(func(ev input.PointerEvent) {
		s.onDragPointer(id, ev)
	})
	logging.Named("CompareSliderSystem").Debugf("drag started on entity %d at %.1f%%", id, slider.Slider.Position)
}

func (s *CompareSliderSystem) onDragPointer(id ecs.EntityID, ev input.PointerEvent) {
	switch ev.Kind {
	case input.PointerMove:
		s.UpdatePosition(id, ev.X)
	case input.PointerUp, input.PointerCancel:
		s.EndDrag(id)
	}
}

// UpdatePosition 拖拽中根据指针 X 坐标更新分割位置
func (s *CompareSliderSystem) UpdatePosition(id ecs.EntityID, pointerX float64) {
	slider, ok := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, id)
	if !ok {
		return
	}
	track, ok := s.TrackRect(id)
	if !ok {
		return
	}
	if slider.Slider.Update(pointerX, track) && slider.OnPositionChange != nil {
		slider.OnPositionChange(slider.Slider.Position)
	}
}

// EndDrag 结束拖拽并释放全局订阅
func (s *CompareSliderSystem) EndDrag(id ecs.EntityID) {
	sub, dragging := s.dragSubs[id]
	if !dragging {
		return
	}
	sub.Close()
	delete(s.dragSubs, id)

	slider, ok := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, id)
	if !ok {
		return
	}
	slider.Slider.EndDrag()
	if slider.OnRelease != nil {
		slider.OnRelease(slider.Slider.Position)
	}
	logging.Named("CompareSliderSystem").Debugf("drag ended on entity %d at %.1f%%", id, slider.Slider.Position)
}

// IsDragging 指定滑块是否正在拖拽
func (s *CompareSliderSystem) IsDragging(id ecs.EntityID) bool {
	_, dragging := s.dragSubs[id]
	return dragging
}

// Update 更新悬停状态
func (s *CompareSliderSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.CompareSliderComponent](s.entityManager) {
		slider, _ := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, id)
		track, ok := s.TrackRect(id)
		slider.IsHovered = ok && track.Contains(s.lastX, s.lastY)
	}
}

// Close 结束所有拖拽并释放全部订阅
func (s *CompareSliderSystem) Close() error {
	for id := range s.dragSubs {
		s.EndDrag(id)
	}
	return s.downSub.Close()
}
