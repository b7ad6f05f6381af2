package components

// ViewportComponent 页面视口
// 内容坐标减去 ScrollY 即为屏幕坐标
type ViewportComponent struct {
	ScrollY       float64 // 视口顶部在内容中的位置
	Width         float64 // 视口宽度
	Height        float64 // 视口高度
	ContentHeight float64 // 页面内容总高度
	WheelStep     float64 // 每格滚轮滚动的像素数
}

// MaxScroll 最大滚动位置
func (v *ViewportComponent) MaxScroll() float64 {
	if v.ContentHeight <= v.Height {
		return 0
	}
	return v.ContentHeight - v.Height
}
