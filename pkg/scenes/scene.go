package scenes

import (
	"github.com/decker502/timeleap/pkg/game"
)

// Scene 是 game.Scene 的别名，所有场景都实现 game.Scene 接口
type Scene = game.Scene
