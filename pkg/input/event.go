// Package input 提供指针与滚动事件的分发
//
// Ebitengine 每帧轮询一次输入，Poller 把轮询结果转换成边沿事件
// （按下/移动/释放/取消、滚轮），再由 Hub 同步分发给订阅者。
// 所有分发都发生在游戏循环所在的 goroutine 上。
package input

// PointerKind 指针事件类型
type PointerKind int

const (
	// PointerDown 指针按下
	PointerDown PointerKind = iota
	// PointerMove 指针移动
	PointerMove
	// PointerUp 指针释放（无论释放发生在哪里）
	PointerUp
	// PointerCancel 指针丢失（窗口失焦、触摸被系统取消）
	PointerCancel
)

// String 返回事件类型名称
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerEvent 指针事件（屏幕坐标）
type PointerEvent struct {
	Kind PointerKind
	X, Y float64
}

// WheelEvent 滚轮事件
type WheelEvent struct {
	DeltaX, DeltaY float64
}

// ScrollEvent 视口滚动事件
type ScrollEvent struct {
	OffsetY        float64 // 滚动后的视口顶部在内容中的位置
	DeltaY         float64 // 本次滚动量
	ViewportHeight float64
}

// PointerListener 指针事件监听函数
type PointerListener func(PointerEvent)

// WheelListener 滚轮事件监听函数
type WheelListener func(WheelEvent)

// ScrollListener 滚动事件监听函数
type ScrollListener func(ScrollEvent)
