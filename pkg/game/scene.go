package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 表示一个页面场景（例如展示页）
// 每个场景有独立的更新和绘制逻辑
type Scene interface {
	// Update 根据经过的时间更新场景逻辑，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Closable 是一个可选接口，场景持有订阅、监听器等需要释放的资源时实现
//
// 以下时机会调用 Close()：
//   - 切换到另一个场景
//   - 窗口关闭
//
// Close 必须可以重复调用
type Closable interface {
	Close() error
}
