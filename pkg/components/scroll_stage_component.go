package components

import "github.com/decker502/timeleap/pkg/motion"

// ScrollStageComponent 滚动驱动的三阶段动画区块（行动号召卡片）
type ScrollStageComponent struct {
	Curve  motion.StageCurve
	Params motion.StageParams

	// ReducedMotion 用户偏好减少动态效果时，参数固定为静止值
	ReducedMotion bool

	Title    string
	Subtitle string
}
