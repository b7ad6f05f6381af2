package components

import (
	"github.com/decker502/timeleap/pkg/motion"
	"github.com/hajimehoshi/ebiten/v2"
)

// CompareSliderComponent 修复前/修复后对比滑块
// 两张图片叠放，before 图片在分割位置右侧被裁掉
type CompareSliderComponent struct {
	// 图片来源（站点数据中的 beforeImage / afterImage）
	BeforeURL string
	AfterURL  string

	// 已加载的图片，加载失败时为 nil（绘制占位图）
	BeforeImage *ebiten.Image
	AfterImage  *ebiten.Image

	// 分割位置与拖拽状态
	Slider motion.Slider

	// 状态
	IsHovered bool

	// 回调函数
	OnPositionChange func(position float64) // 分割位置改变时的回调
	OnRelease        func(position float64) // 拖拽结束时的回调
}
