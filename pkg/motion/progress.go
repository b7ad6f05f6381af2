package motion

import "math"

// ComputeProgress 计算被跟踪区块的滚动进度
//
// 原始进度 p = 1 - element.Top / viewportHeight，限制到 [0,1]。
//
// 视口高度不大于 0（或不是有限数）时无法做除法，退回到最近阶段的边界值：
// 元素顶部在视口顶部或以上时返回 1（退出端），否则返回 0（入场端）。
// 结果永远不会是 NaN 或 Inf。
func ComputeProgress(element Rect, viewportHeight float64) float64 {
	top := element.Top
	if math.IsNaN(top) {
		return 0
	}
	if !(viewportHeight > 0) || !finite(viewportHeight) {
		if top <= 0 {
			return 1
		}
		return 0
	}
	return Clamp(1-top/viewportHeight, 0, 1)
}

// SectionVisible 区块是否与视口相交
// 顶部已进入视口底部，并且底部还没有离开视口顶部
func SectionVisible(element Rect, viewportHeight float64) bool {
	return element.Top < viewportHeight && element.Top > -element.Height
}
