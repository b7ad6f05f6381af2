package input

// Poller 把每帧轮询到的输入转换成事件
type Poller struct {
	source Source
	hub    *Hub

	pressed      bool
	lastX, lastY int
	initialized  bool

	// 失焦取消后，按键必须先松开一次才会产生新的按下
	suppressUntilRelease bool
}

// NewPoller 创建轮询器
func NewPoller(source Source, hub *Hub) *Poller {
	return &Poller{source: source, hub: hub}
}

// Poll 轮询一次输入并同步分发事件（每帧调用一次）
//
// 事件顺序：移动 → 按下/释放 → 滚轮。
// 按住期间窗口失焦会发出 PointerCancel，保证拖拽订阅一定会被释放；
// 之后重新获得焦点时如果仍按住，不算新的按下，直到松开为止。
func (p *Poller) Poll() {
	x, y := p.source.CursorPosition()
	pressed := p.source.IsPointerPressed()
	fx, fy := float64(x), float64(y)

	if p.pressed && !p.source.IsFocused() {
		p.pressed = false
		p.suppressUntilRelease = true
		p.remember(x, y)
		p.hub.DispatchPointer(PointerEvent{Kind: PointerCancel, X: fx, Y: fy})
		return
	}

	if p.suppressUntilRelease && !pressed {
		p.suppressUntilRelease = false
	}

	if p.initialized && (x != p.lastX || y != p.lastY) {
		p.hub.DispatchPointer(PointerEvent{Kind: PointerMove, X: fx, Y: fy})
	}
	p.remember(x, y)

	switch {
	case pressed && !p.pressed && !p.suppressUntilRelease:
		p.pressed = true
		p.hub.DispatchPointer(PointerEvent{Kind: PointerDown, X: fx, Y: fy})
	case !pressed && p.pressed:
		p.pressed = false
		p.hub.DispatchPointer(PointerEvent{Kind: PointerUp, X: fx, Y: fy})
	}

	if dx, dy := p.source.Wheel(); dx != 0 || dy != 0 {
		p.hub.DispatchWheel(WheelEvent{DeltaX: dx, DeltaY: dy})
	}
}

func (p *Poller) remember(x, y int) {
	p.lastX, p.lastY = x, y
	p.initialized = true
}
