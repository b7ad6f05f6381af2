package input

import "github.com/hajimehoshi/ebiten/v2"

// Source 每帧可轮询的输入源
// 用于依赖注入，支持测试时 mock
type Source interface {
	CursorPosition() (int, int)
	IsPointerPressed() bool
	Wheel() (float64, float64)
	IsFocused() bool
}

// EbitenSource Ebitengine 默认实现，同时支持鼠标和触摸
type EbitenSource struct{}

// CursorPosition 获取当前指针位置
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func (EbitenSource) CursorPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// IsPointerPressed 检查是否有指针按下（鼠标左键或触摸）
func (EbitenSource) IsPointerPressed() bool {
	if len(ebiten.AppendTouchIDs(nil)) > 0 {
		return true
	}
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

// Wheel 滚轮偏移
func (EbitenSource) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

// IsFocused 窗口是否获得焦点
func (EbitenSource) IsFocused() bool {
	return ebiten.IsFocused()
}
