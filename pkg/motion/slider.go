package motion

const (
	// SliderMin 分割百分比下限
	SliderMin = 0.0
	// SliderMax 分割百分比上限
	SliderMax = 100.0
	// DefaultSliderPosition 初始分割位置（居中）
	DefaultSliderPosition = 50.0
)

// DragState 拖拽状态
// 只由指针事件处理函数修改，归单个滑块实例所有
type DragState struct {
	IsDragging bool
}

// SliderPercent 根据指针 X 坐标计算分割百分比
//
// 计算公式：(pointerX - track.Left) / track.Width * 100，然后饱和到 [0,100]。
// 滑槽宽度不大于 0 或输入不是有限数时不做计算，返回（限制后的）prev。
//
// 参数：
//   - pointerX: 指针 X 坐标（屏幕坐标）
//   - track: 滑槽的包围矩形
//   - prev: 上一次的分割百分比
func SliderPercent(pointerX float64, track Rect, prev float64) float64 {
	if !(track.Width > 0) || !finite(track.Width) || !finite(track.Left) || !finite(pointerX) {
		return Clamp(prev, SliderMin, SliderMax)
	}
	percentage := (pointerX - track.Left) / track.Width * 100
	return Clamp(percentage, SliderMin, SliderMax)
}

// ClipInset 返回 before 图片右侧需要裁掉的百分比
func ClipInset(position float64) float64 {
	return SliderMax - Clamp(position, SliderMin, SliderMax)
}

// Slider 对比滑块的状态
type Slider struct {
	Position float64
	Drag     DragState
}

// NewSlider 创建滑块，初始位置会被限制到 [0,100]
func NewSlider(initial float64) Slider {
	if !finite(initial) {
		initial = DefaultSliderPosition
	}
	return Slider{Position: Clamp(initial, SliderMin, SliderMax)}
}

// BeginDrag 开始拖拽
func (s *Slider) BeginDrag() {
	s.Drag.IsDragging = true
}

// Update 拖拽中根据指针位置更新分割位置
// 未在拖拽时不做任何修改；返回位置是否发生变化
func (s *Slider) Update(pointerX float64, track Rect) bool {
	if !s.Drag.IsDragging {
		return false
	}
	next := SliderPercent(pointerX, track, s.Position)
	if next == s.Position {
		return false
	}
	s.Position = next
	return true
}

// EndDrag 结束拖拽
func (s *Slider) EndDrag() {
	s.Drag.IsDragging = false
}

// IsDragging 是否正在拖拽
func (s *Slider) IsDragging() bool {
	return s.Drag.IsDragging
}

// 提示音音高范围（Hz），分割位置 0 对应低音，100 对应高一个八度
const (
	ToneLow  = 440.0
	ToneHigh = 880.0
)

// SliderTone 分割位置对应的提示音音高
func SliderTone(position float64) float64 {
	if !finite(position) {
		position = DefaultSliderPosition
	}
	return ToneLow + (ToneHigh-ToneLow)*Clamp(position, SliderMin, SliderMax)/SliderMax
}
