package systems

import (
	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/motion"
)

// ModelFrameHook 外部 3D 渲染协作者的逐帧钩子
type ModelFrameHook interface {
	ApplyModelFrame(id ecs.EntityID, frame motion.ModelFrame)
}

// GeometryFunc 读取实体当前的屏幕矩形
type GeometryFunc func(id ecs.EntityID) (motion.Rect, bool)

// ScrollStageSystem 滚动驱动的动画系统
//
// 职责：
//   - 在整个生命周期内订阅一次滚动事件，销毁时释放
//   - 每次滚动都重新采样区块几何，计算滚动进度和分阶段参数
//   - 把模型区块的参数交给外部 3D 协作者
type ScrollStageSystem struct {
	entityManager *ecs.EntityManager
	viewport      ecs.EntityID
	scrollSub     *input.Subscription

	geometry GeometryFunc
	hooks    []ModelFrameHook
}

// NewScrollStageSystem 创建滚动动画系统
func NewScrollStageSystem(em *ecs.EntityManager, hub *input.Hub, viewport ecs.EntityID) *ScrollStageSystem {
	s := &ScrollStageSystem{
		entityManager: em,
		viewport:      viewport,
	}
	s.geometry = s.screenRect
	s.scrollSub = hub.SubscribeScroll(func(input.ScrollEvent) {
		s.Recompute()
	})
	return s
}

// SetGeometryFunc 替换几何采样函数（用于测试）
func (s *ScrollStageSystem) SetGeometryFunc(f GeometryFunc) {
	if f == nil {
		f = s.screenRect
	}
	s.geometry = f
}

// AddModelFrameHook 注册 3D 协作者钩子
func (s *ScrollStageSystem) AddModelFrameHook(h ModelFrameHook) {
	s.hooks = append(s.hooks, h)
}

// screenRect 默认几何采样
func (s *ScrollStageSystem) screenRect(id ecs.EntityID) (motion.Rect, bool) {
	return ScreenRect(s.entityManager, s.viewport, id)
}

func (s *ScrollStageSystem) viewportComponent() *components.ViewportComponent {
	vp, _ := ecs.GetComponent[*components.ViewportComponent](s.entityManager, s.viewport)
	return vp
}

func (s *ScrollStageSystem) viewportHeight() float64 {
	if vp := s.viewportComponent(); vp != nil {
		return vp.Height
	}
	return 0
}

// Recompute 重新计算所有滚动动画区块
// 由滚动事件同步触发，也可在初始化和布局变化时直接调用
func (s *ScrollStageSystem) Recompute() {
	vh := s.viewportHeight()

	for _, id := range ecs.GetEntitiesWith1[*components.ScrollStageComponent](s.entityManager) {
		stage, _ := ecs.GetComponent[*components.ScrollStageComponent](s.entityManager, id)
		rect, ok := s.geometry(id)
		if !ok {
			continue
		}
		p := motion.ComputeProgress(rect, vh)
		if stage.ReducedMotion {
			stage.Params = motion.RestParams(p)
			continue
		}
		stage.Params = stage.Curve.Evaluate(p)
	}

	for _, id := range ecs.GetEntitiesWith1[*components.ModelViewComponent](s.entityManager) {
		view, _ := ecs.GetComponent[*components.ModelViewComponent](s.entityManager, id)
		rect, ok := s.geometry(id)
		if !ok {
			continue
		}
		view.Frame, _ = view.Tracker.Observe(rect, vh, view.FinalStageProgress)
		for _, h := range s.hooks {
			h.ApplyModelFrame(id, view.Frame)
		}
	}
}

// SetCurve 替换所有区块的动画曲线（配置热加载）
// 非法曲线被忽略，返回校验错误
func (s *ScrollStageSystem) SetCurve(curve motion.StageCurve) error {
	if err := curve.Validate(); err != nil {
		return err
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollStageComponent](s.entityManager) {
		stage, _ := ecs.GetComponent[*components.ScrollStageComponent](s.entityManager, id)
		stage.Curve = curve
	}
	logging.Named("ScrollStageSystem").Infof("stage curve updated: entrance=%.2f exit=%.2f",
		curve.EntranceThreshold, curve.ExitThreshold)
	s.Recompute()
	return nil
}

// SetReducedMotion 切换减少动态效果
func (s *ScrollStageSystem) SetReducedMotion(enabled bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollStageComponent](s.entityManager) {
		stage, _ := ecs.GetComponent[*components.ScrollStageComponent](s.entityManager, id)
		stage.ReducedMotion = enabled
	}
	s.Recompute()
}

// Close 释放滚动订阅
func (s *ScrollStageSystem) Close() error {
	return s.scrollSub.Close()
}
