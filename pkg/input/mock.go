package input

// MockSource 可手动控制的输入源，用于测试和无窗口环境
type MockSource struct {
	X, Y           int
	Pressed        bool
	WheelX, WheelY float64
	Unfocused      bool
}

// CursorPosition 返回设置的指针位置
func (m *MockSource) CursorPosition() (int, int) {
	return m.X, m.Y
}

// IsPointerPressed 返回设置的按下状态
func (m *MockSource) IsPointerPressed() bool {
	return m.Pressed
}

// Wheel 返回并清空滚轮偏移（与 Ebitengine 每帧重置的行为一致）
func (m *MockSource) Wheel() (float64, float64) {
	x, y := m.WheelX, m.WheelY
	m.WheelX, m.WheelY = 0, 0
	return x, y
}

// IsFocused 返回是否获得焦点
func (m *MockSource) IsFocused() bool {
	return !m.Unfocused
}
