// Package term 终端预览
//
// 在没有图形环境时预览展示页：与桌面端共享同一个场景、输入中心和全部系统，
// 只是用 tcell 代替 Ebitengine 读取输入和绘制。
package term

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/scenes"
	"github.com/gdamore/tcell/v2"
)

// frameInterval 约 60 FPS
const frameInterval = 16 * time.Millisecond

// 终端中以字符为单位滚动
const (
	termWheelStep = 3.0
	termKeyStep   = 1.0
)

// Options 终端预览选项
type Options struct {
	Config   *config.ShowcaseConfig
	Sites    *config.SitesConfig
	Settings *game.SettingsManager
	Sound    Sound
	SiteID   int
}

// Preview 终端预览
type Preview struct {
	screen       tcell.Screen
	source       *EventSource
	renderer     *Renderer
	sceneManager *game.SceneManager
	opts         Options
}

// New 创建终端预览，screen 必须已经 Init
func New(screen tcell.Screen, opts Options) (*Preview, error) {
	if opts.Config == nil || opts.Sites == nil {
		return nil, errors.New("term preview requires config and sites")
	}
	if opts.Settings == nil {
		opts.Settings = game.NewSettingsManager(nil)
	}
	if opts.Sound == nil {
		opts.Sound = NopSound{}
	}

	p := &Preview{
		screen:       screen,
		source:       NewEventSource(),
		renderer:     NewRenderer(screen),
		sceneManager: game.NewSceneManager(),
		opts:         opts,
	}
	p.sceneManager.SetSceneFactory(p.newScene)

	siteID := opts.SiteID
	if siteID == 0 {
		siteID = opts.Settings.GetSettings().LastSiteID
	}
	if err := p.sceneManager.LoadSite(siteID); err != nil {
		return nil, err
	}
	return p, nil
}

// newScene 按当前终端尺寸创建场景，最后一行留给状态栏
func (p *Preview) newScene(siteID int) (game.Scene, error) {
	w, h := p.screen.Size()
	if w < 20 || h < 8 {
		return nil, fmt.Errorf("terminal too small: %dx%d", w, h)
	}

	cfg := *p.opts.Config
	cfg.Window.Width, cfg.Window.Height = w, h-1
	cfg.Scroll.WheelStep = termWheelStep
	cfg.Scroll.KeyStep = termKeyStep

	return scenes.NewShowcaseScene(scenes.ShowcaseDeps{
		Config:          &cfg,
		Sites:           p.opts.Sites,
		Settings:        p.opts.Settings,
		SceneManager:    p.sceneManager,
		Source:          p.source,
		Keyboard:        p.source,
		OnSliderRelease: p.tick,
		TextOnly:        true,
	}, siteID)
}

// tick 声音开启时播放释放提示音
func (p *Preview) tick(position float64) {
	if p.opts.Settings.GetSettings().SoundEnabled {
		p.opts.Sound.Tick(position)
	}
}

// Scene 当前场景
func (p *Preview) Scene() *scenes.ShowcaseScene {
	scene, _ := p.sceneManager.GetCurrentScene().(*scenes.ShowcaseScene)
	return scene
}

// HandleEvent 处理一个终端事件
func (p *Preview) HandleEvent(ev tcell.Event) {
	if _, ok := ev.(*tcell.EventResize); ok {
		p.screen.Sync()
		if scene := p.Scene(); scene != nil {
			// 布局依赖终端尺寸，重建当前站点
			if err := p.sceneManager.LoadSite(scene.Site().ID); err != nil {
				logging.Named("Term").Warnf("resize: %v", err)
			}
		}
		return
	}
	p.source.HandleEvent(ev)
}

// Step 更新并绘制一帧
func (p *Preview) Step() {
	scene := p.Scene()
	if scene == nil {
		return
	}
	scene.Update(frameInterval.Seconds())

	// 切换站点后使用新场景绘制
	scene = p.Scene()
	status := ""
	if scene != nil {
		status = fmt.Sprintf(" %s | ←/→ site  wheel/↑↓ scroll  drag to compare  r reduced motion  m sound  q quit", scene.Site().Name)
		p.renderer.Draw(scene.EntityManager(), scene.Viewport().Viewport(), status)
	}
}

// Quit 是否请求退出
func (p *Preview) Quit() bool {
	return p.source.Quit()
}

// Run 运行事件循环，直到按下 q/Esc 或 ctx 结束
func (p *Preview) Run(ctx context.Context) error {
	p.screen.EnableMouse()
	p.screen.EnableFocus()
	defer p.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	p.Step()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			p.HandleEvent(ev)
			if p.Quit() {
				return nil
			}
		case <-ticker.C:
			p.Step()
		}
	}
}

// Close 释放场景和声音
func (p *Preview) Close() error {
	p.opts.Sound.Close()
	return p.sceneManager.Close()
}
