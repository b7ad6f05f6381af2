package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Action 与具体按键无关的页面操作
type Action int

const (
	ActionNone Action = iota
	ActionPrevSite
	ActionNextSite
	ActionScrollUp
	ActionScrollDown
	ActionPageUp
	ActionPageDown
	ActionHome
	ActionEnd
	ActionToggleFullscreen
	ActionToggleReducedMotion
	ActionToggleSound
)

var actionNames = map[Action]string{
	ActionNone:                "none",
	ActionPrevSite:            "prev-site",
	ActionNextSite:            "next-site",
	ActionScrollUp:            "scroll-up",
	ActionScrollDown:          "scroll-down",
	ActionPageUp:              "page-up",
	ActionPageDown:            "page-down",
	ActionHome:                "home",
	ActionEnd:                 "end",
	ActionToggleFullscreen:    "toggle-fullscreen",
	ActionToggleReducedMotion: "toggle-reduced-motion",
	ActionToggleSound:         "toggle-sound",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Keyboard 每帧可轮询的操作源
type Keyboard interface {
	// JustPressed 本帧是否刚触发该操作
	JustPressed(a Action) bool
	// Held 该操作对应的按键是否处于按下状态（用于连续滚动）
	Held(a Action) bool
}

// DefaultKeyBindings 默认按键绑定
var DefaultKeyBindings = map[Action][]ebiten.Key{
	ActionPrevSite:            {ebiten.KeyArrowLeft},
	ActionNextSite:            {ebiten.KeyArrowRight},
	ActionScrollUp:            {ebiten.KeyArrowUp, ebiten.KeyW},
	ActionScrollDown:          {ebiten.KeyArrowDown, ebiten.KeyS},
	ActionPageUp:              {ebiten.KeyPageUp},
	ActionPageDown:            {ebiten.KeyPageDown, ebiten.KeySpace},
	ActionHome:                {ebiten.KeyHome},
	ActionEnd:                 {ebiten.KeyEnd},
	ActionToggleFullscreen:    {ebiten.KeyF11},
	ActionToggleReducedMotion: {ebiten.KeyR},
	ActionToggleSound:         {ebiten.KeyM},
}

// EbitenKeyboard Ebitengine 按键实现
type EbitenKeyboard struct {
	Bindings map[Action][]ebiten.Key
}

// NewEbitenKeyboard 使用默认绑定创建
func NewEbitenKeyboard() *EbitenKeyboard {
	return &EbitenKeyboard{Bindings: DefaultKeyBindings}
}

// JustPressed 任一绑定按键本帧刚按下
func (k *EbitenKeyboard) JustPressed(a Action) bool {
	for _, key := range k.Bindings[a] {
		if inpututil.IsKeyJustPressed(key) {
			return true
		}
	}
	return false
}

// Held 任一绑定按键处于按下状态
func (k *EbitenKeyboard) Held(a Action) bool {
	for _, key := range k.Bindings[a] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// MockKeyboard 可手动触发的操作源
// Press 的操作在下一次 JustPressed 查询后清除
type MockKeyboard struct {
	pending map[Action]bool
	held    map[Action]bool
}

// NewMockKeyboard 创建模拟操作源
func NewMockKeyboard() *MockKeyboard {
	return &MockKeyboard{
		pending: make(map[Action]bool),
		held:    make(map[Action]bool),
	}
}

// Press 触发一次操作
func (m *MockKeyboard) Press(a Action) {
	m.pending[a] = true
}

// SetHeld 设置按住状态
func (m *MockKeyboard) SetHeld(a Action, held bool) {
	m.held[a] = held
}

func (m *MockKeyboard) JustPressed(a Action) bool {
	if m.pending[a] {
		delete(m.pending, a)
		return true
	}
	return false
}

func (m *MockKeyboard) Held(a Action) bool {
	return m.held[a]
}
