//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译，构建前先把 data/ 复制到本目录：
//
//	cp -r ../data ./data
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.timeleap -o build/android/timeleap.aar -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/timeleap/pkg/app"
	"github.com/decker502/timeleap/pkg/embedded"
	"github.com/decker502/timeleap/pkg/logging"
	"go.uber.org/zap"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	if err := logging.Init(true); err != nil {
		panic(err)
	}

	showcase, err := app.NewApp(app.Config{})
	if err != nil {
		logging.L().Fatal("展示应用初始化失败", zap.Error(err))
	}

	mobile.SetGame(showcase)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
