package motion

import (
	"errors"
	"fmt"
)

// Phase 滚动进度所处的阶段
type Phase int

const (
	// PhaseEntrance 入场阶段：卡片从下方升起并淡入
	PhaseEntrance Phase = iota
	// PhaseSteady 驻留阶段：所有参数固定在静止值
	PhaseSteady
	// PhaseExit 退出阶段：卡片上移并部分淡出
	PhaseExit
)

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseEntrance:
		return "entrance"
	case PhaseSteady:
		return "steady"
	case PhaseExit:
		return "exit"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// 默认阶段阈值
const (
	DefaultEntranceThreshold = 0.3
	DefaultExitThreshold     = 0.7
)

// ErrInvalidCurve 阶段曲线参数不合法
var ErrInvalidCurve = errors.New("invalid stage curve")

// StageCurve 三阶段动画曲线
//
// 入场与退出的参数都以"偏离静止值的幅度"表示：
// 入场公式在 e=1 时、退出公式在 x=0 时幅度为 0，
// 因此两个阈值处与驻留阶段的静止值严格相等，不会出现跳变。
type StageCurve struct {
	EntranceThreshold float64 `yaml:"entranceThreshold"`
	ExitThreshold     float64 `yaml:"exitThreshold"`

	// 入场起点（e=0）时的偏移幅度
	EntranceOffsetVH     float64 `yaml:"entranceOffsetVH"`     // 卡片向下偏移（视口高度百分比）
	EntranceScaleDrop    float64 `yaml:"entranceScaleDrop"`    // 卡片缩小量
	EntranceBackdropGrow float64 `yaml:"entranceBackdropGrow"` // 背景放大量
	EntranceBackdropFade float64 `yaml:"entranceBackdropFade"` // 背景透明度降低量

	// 退出终点（x=1）时的偏移幅度
	ExitOffsetVH     float64 `yaml:"exitOffsetVH"`     // 卡片向上偏移（正数表示向上）
	ExitFade         float64 `yaml:"exitFade"`         // 卡片透明度降低量
	ExitScaleGrow    float64 `yaml:"exitScaleGrow"`    // 卡片放大量
	ExitBackdropGrow float64 `yaml:"exitBackdropGrow"` // 背景放大量
	ExitBackdropFade float64 `yaml:"exitBackdropFade"` // 背景透明度降低量
}

// DefaultStageCurve 返回唯一的规范曲线（0.3 / 0.7）
func DefaultStageCurve() StageCurve {
	return StageCurve{
		EntranceThreshold:    DefaultEntranceThreshold,
		ExitThreshold:        DefaultExitThreshold,
		EntranceOffsetVH:     60,
		EntranceScaleDrop:    0.04,
		EntranceBackdropGrow: 0.08,
		EntranceBackdropFade: 0.4,
		ExitOffsetVH:         18,
		ExitFade:             0.7,
		ExitScaleGrow:        0.02,
		ExitBackdropGrow:     0.05,
		ExitBackdropFade:     0.35,
	}
}

// Validate 检查曲线参数
// 要求 0 < entrance <= exit < 1，且所有幅度都是有限数
func (c StageCurve) Validate() error {
	values := []float64{
		c.EntranceThreshold, c.ExitThreshold,
		c.EntranceOffsetVH, c.EntranceScaleDrop, c.EntranceBackdropGrow, c.EntranceBackdropFade,
		c.ExitOffsetVH, c.ExitFade, c.ExitScaleGrow, c.ExitBackdropGrow, c.ExitBackdropFade,
	}
	for _, v := range values {
		if !finite(v) {
			return fmt.Errorf("%w: non-finite value", ErrInvalidCurve)
		}
	}
	if !(c.EntranceThreshold > 0) {
		return fmt.Errorf("%w: entranceThreshold %.3f must be > 0", ErrInvalidCurve, c.EntranceThreshold)
	}
	if c.ExitThreshold < c.EntranceThreshold {
		return fmt.Errorf("%w: exitThreshold %.3f < entranceThreshold %.3f", ErrInvalidCurve, c.ExitThreshold, c.EntranceThreshold)
	}
	if !(c.ExitThreshold < 1) {
		return fmt.Errorf("%w: exitThreshold %.3f must be < 1", ErrInvalidCurve, c.ExitThreshold)
	}
	return nil
}

// StageParams 某一进度下的动画参数
type StageParams struct {
	Progress float64 // 限制后的滚动进度 [0,1]
	Phase    Phase
	Local    float64 // 阶段内进度 [0,1]，驻留阶段为 0

	OffsetVH float64 // 卡片垂直偏移（视口高度百分比，正数向下）
	Opacity  float64 // 卡片透明度 [0,1]
	Scale    float64 // 卡片缩放

	BackdropScale   float64 // 背景缩放
	BackdropOpacity float64 // 背景透明度 [0,1]
}

// RestParams 返回驻留阶段的静止值
func RestParams(p float64) StageParams {
	return StageParams{
		Progress:        p,
		Phase:           PhaseSteady,
		OffsetVH:        0,
		Opacity:         1,
		Scale:           1,
		BackdropScale:   1,
		BackdropOpacity: 1,
	}
}

// Evaluate 计算进度 p 对应的动画参数
// p 先被限制到 [0,1]；非法曲线退回默认曲线。纯函数，相同输入总是得到相同输出
func (c StageCurve) Evaluate(p float64) StageParams {
	if c.Validate() != nil {
		c = DefaultStageCurve()
	}
	p = Clamp(p, 0, 1)

	switch {
	case p < c.EntranceThreshold:
		params := c.EntranceAt(p / c.EntranceThreshold)
		params.Progress = p
		return params
	case p < c.ExitThreshold:
		return RestParams(p)
	default:
		x := (p - c.ExitThreshold) / (1 - c.ExitThreshold)
		params := c.ExitAt(x)
		params.Progress = p
		return params
	}
}

// EntranceAt 入场公式，e 为阶段内进度
func (c StageCurve) EntranceAt(e float64) StageParams {
	e = Clamp(e, 0, 1)
	remaining := 1 - e
	return StageParams{
		Phase:           PhaseEntrance,
		Local:           e,
		OffsetVH:        c.EntranceOffsetVH * remaining,
		Opacity:         e,
		Scale:           1 - c.EntranceScaleDrop*remaining,
		BackdropScale:   1 + c.EntranceBackdropGrow*remaining,
		BackdropOpacity: 1 - c.EntranceBackdropFade*remaining,
	}
}

// ExitAt 退出公式，x 为阶段内进度
func (c StageCurve) ExitAt(x float64) StageParams {
	x = Clamp(x, 0, 1)
	return StageParams{
		Phase:           PhaseExit,
		Local:           x,
		OffsetVH:        -c.ExitOffsetVH * x,
		Opacity:         1 - c.ExitFade*x,
		Scale:           1 + c.ExitScaleGrow*x,
		BackdropScale:   1 + c.ExitBackdropGrow*x,
		BackdropOpacity: 1 - c.ExitBackdropFade*x,
	}
}

// Sample 在 [0,1] 上等距采样 steps+1 个点，steps 小于 1 时按 1 处理
func (c StageCurve) Sample(steps int) []StageParams {
	if steps < 1 {
		steps = 1
	}
	out := make([]StageParams, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, c.Evaluate(float64(i)/float64(steps)))
	}
	return out
}
