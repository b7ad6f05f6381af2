// Package motion 提供展示页交互的纯状态映射
//
// 两路连续输入（拖拽时的指针 X 坐标、被跟踪区块相对视口的滚动位置）
// 被映射为一小组有界的视觉状态：对比滑块的分割百分比 [0,100]，
// 以及滚动进度 [0,1] 和由它派生的分阶段动画参数。
//
// 本包不持有任何订阅或全局状态，所有函数都是输入的纯函数，
// 事件订阅与释放由 pkg/input 和 pkg/systems 负责。
package motion

import "math"

// Rect 元素的包围矩形（屏幕坐标）
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right 返回右边界
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom 返回下边界
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains 检测点是否落在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Offset 返回平移后的矩形
func (r Rect) Offset(dx, dy float64) Rect {
	r.Left += dx
	r.Top += dy
	return r
}

// Clamp 将 v 限制在 [lo, hi] 区间内（饱和，不回绕）
// NaN 返回 lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
