// Package app 提供展示应用的核心包装器
//
// 该包把初始化逻辑从 main 包中提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 的 show 命令调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "timeleap"

// Config 定义应用启动配置
type Config struct {
	// ConfigPath 展示配置文件路径，为空使用 data/showcase.yaml
	ConfigPath string
	// SiteID 指定启动站点，为 0 则使用上次浏览的站点
	SiteID int
	// Fullscreen 强制全屏启动
	Fullscreen bool
	// Watch 监听配置文件变化并热更新动画曲线
	Watch bool
}

// App 是展示应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	settings     *game.SettingsManager
	audio        *game.AudioManager
	keyboard     input.Keyboard
	window       config.WindowConfig
	watcher      *config.Watcher

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化展示应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	log := logging.Named("App")

	configPath := cfg.ConfigPath
	if configPath == "" {
		configPath = config.DefaultShowcaseConfigPath
	}
	showcaseConfig, err := config.LoadShowcaseConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("展示配置加载失败: %w", err)
	}

	sites, err := config.LoadSites(showcaseConfig.SitesFile)
	if err != nil {
		return nil, fmt.Errorf("站点数据加载失败: %w", err)
	}
	log.Infof("加载 %d 个站点", len(sites.Sites))

	settings := game.OpenSettings(AppName)
	if cfg.Fullscreen {
		settings.SetFullscreen(true)
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		audio:        game.NewAudioManager(settings),
		keyboard:     input.NewEbitenKeyboard(),
		window:       showcaseConfig.Window,
	}

	var updates <-chan *config.ShowcaseConfig
	if cfg.Watch {
		watcher, err := config.NewWatcher(configPath)
		if err == nil {
			err = watcher.Start(context.Background())
		}
		if err != nil {
			// 热更新不可用时照常运行
			log.Warnf("配置监听不可用: %v", err)
		} else {
			a.watcher = watcher
			updates = watcher.Updates()
		}
	}

	deps := scenes.ShowcaseDeps{
		Config:       showcaseConfig,
		Sites:        sites,
		Resources:    game.NewResourceManager(nil),
		Settings:     settings,
		SceneManager: a.sceneManager,
		Keyboard:     a.keyboard,
		CurveUpdates: updates,
		OnSliderRelease: func(position float64) {
			a.audio.PlayTick(position)
		},
	}
	a.sceneManager.SetSceneFactory(func(siteID int) (game.Scene, error) {
		return scenes.NewShowcaseScene(deps, siteID)
	})

	siteID := cfg.SiteID
	if siteID == 0 {
		siteID = settings.GetSettings().LastSiteID
	}
	if err := a.sceneManager.LoadSite(siteID); err != nil {
		a.Close()
		return nil, fmt.Errorf("展示场景创建失败: %w", err)
	}
	log.Infof("Starting site: %d", siteID)

	return a, nil
}

// ApplyWindowSettings 应用窗口标题、尺寸和全屏设置（RunGame 之前调用）
func (a *App) ApplyWindowSettings() {
	ebiten.SetWindowTitle(a.window.Title)
	ebiten.SetWindowSize(a.window.Width, a.window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(a.settings.GetSettings().Fullscreen)
}

// Update 更新逻辑，每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.window.Width, a.window.Height)
			a.pendingWindowSizeReset = false
		}
	}

	if a.keyboard.JustPressed(input.ActionToggleFullscreen) {
		a.toggleFullscreen()
	}

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// toggleFullscreen F11 切换全屏并持久化
func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	}

	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		logging.Named("App").Warnf("保存全屏设置失败: %v", err)
	}
}

// Draw 绘制画面，每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.window.Width, a.window.Height
}

// Close 释放场景和配置监听，窗口关闭时调用
func (a *App) Close() error {
	err := a.sceneManager.Close()
	a.audio.Close()
	if a.watcher != nil {
		if stopErr := a.watcher.Stop(); stopErr != nil && err == nil {
			err = stopErr
		}
		a.watcher = nil
	}
	return err
}
