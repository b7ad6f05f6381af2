package term

import (
	"github.com/decker502/timeleap/pkg/input"
	"github.com/gdamore/tcell/v2"
)

// wheelNotch 每格滚轮对应的偏移（与 Ebitengine 一致，向下为负）
const wheelNotch = 1.0

// EventSource 把 tcell 事件转换为可轮询的输入状态
// 同时实现 input.Source 和 input.Keyboard
type EventSource struct {
	x, y    int
	pressed bool
	wheelY  float64
	focused bool

	pending map[input.Action]bool
	quit    bool
}

// NewEventSource 创建事件源
func NewEventSource() *EventSource {
	return &EventSource{
		focused: true,
		pending: make(map[input.Action]bool),
	}
}

// HandleEvent 记录一个 tcell 事件
func (s *EventSource) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		s.x, s.y = ev.Position()
		buttons := ev.Buttons()
		s.pressed = buttons&tcell.Button1 != 0
		if buttons&tcell.WheelUp != 0 {
			s.wheelY += wheelNotch
		}
		if buttons&tcell.WheelDown != 0 {
			s.wheelY -= wheelNotch
		}
	case *tcell.EventFocus:
		s.focused = ev.Focused
	case *tcell.EventKey:
		s.handleKey(ev)
	}
}

func (s *EventSource) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.quit = true
	case tcell.KeyLeft:
		s.pending[input.ActionPrevSite] = true
	case tcell.KeyRight:
		s.pending[input.ActionNextSite] = true
	case tcell.KeyUp:
		s.pending[input.ActionScrollUp] = true
	case tcell.KeyDown:
		s.pending[input.ActionScrollDown] = true
	case tcell.KeyPgUp:
		s.pending[input.ActionPageUp] = true
	case tcell.KeyPgDn:
		s.pending[input.ActionPageDown] = true
	case tcell.KeyHome:
		s.pending[input.ActionHome] = true
	case tcell.KeyEnd:
		s.pending[input.ActionEnd] = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			s.quit = true
		case 'r', 'R':
			s.pending[input.ActionToggleReducedMotion] = true
		case 'm', 'M':
			s.pending[input.ActionToggleSound] = true
		case ' ':
			s.pending[input.ActionPageDown] = true
		}
	}
}

// Quit 是否请求退出
func (s *EventSource) Quit() bool {
	return s.quit
}

// CursorPosition 实现 input.Source
func (s *EventSource) CursorPosition() (int, int) {
	return s.x, s.y
}

// IsPointerPressed 实现 input.Source
func (s *EventSource) IsPointerPressed() bool {
	return s.pressed
}

// Wheel 返回并清空累计的滚轮偏移
func (s *EventSource) Wheel() (float64, float64) {
	y := s.wheelY
	s.wheelY = 0
	return 0, y
}

// IsFocused 实现 input.Source
func (s *EventSource) IsFocused() bool {
	return s.focused
}

// JustPressed 实现 input.Keyboard，每次按键只触发一次
func (s *EventSource) JustPressed(a input.Action) bool {
	if s.pending[a] {
		delete(s.pending, a)
		return true
	}
	return false
}

// Held 终端没有按键释放事件，方向键按一次视为按住一帧
func (s *EventSource) Held(a input.Action) bool {
	if a != input.ActionScrollUp && a != input.ActionScrollDown {
		return false
	}
	return s.JustPressed(a)
}
