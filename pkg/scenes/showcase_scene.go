package scenes

import (
	"context"
	"errors"
	"fmt"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/entities"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// pageStepRatio PageUp/PageDown 每次滚动的视口比例
const pageStepRatio = 0.9

// ShowcaseDeps 展示场景的外部依赖
type ShowcaseDeps struct {
	Config       *config.ShowcaseConfig
	Sites        *config.SitesConfig
	Resources    *game.ResourceManager
	Settings     *game.SettingsManager
	SceneManager *game.SceneManager

	// 输入源，测试时替换为 mock
	Source   input.Source
	Keyboard input.Keyboard

	// CurveUpdates 配置热更新，可为 nil
	CurveUpdates <-chan *config.ShowcaseConfig

	// OnSliderRelease 对比滑块拖拽结束时调用，可为 nil
	OnSliderRelease func(position float64)

	// TextOnly 不加载对比图片（终端预览没有图形上下文）
	TextOnly bool
}

// ShowcaseScene 单个站点的展示页
//
// 场景独占自己的输入中心、视口和所有系统；
// 切换站点时整个场景被替换，Close 释放全部订阅。
type ShowcaseScene struct {
	deps ShowcaseDeps
	site *config.HistoricalSite
	log  *zap.SugaredLogger

	entityManager *ecs.EntityManager
	hub           *input.Hub
	poller        *input.Poller
	page          entities.ShowcasePage

	viewportSystem *systems.ViewportSystem
	sliderSystem   *systems.CompareSliderSystem
	stageSystem    *systems.ScrollStageSystem
	renderSystem   *systems.ShowcaseRenderSystem
	wireframe      *systems.WireframeModel

	// 图片在后台解码，解码完成后在游戏循环中转换
	preloadCancel  context.CancelFunc
	preloadDone    chan struct{}
	imagesAttached bool

	closed bool
}

// NewShowcaseScene 创建站点展示场景
// siteID 为 0 或不存在时回退到第一个站点
func NewShowcaseScene(deps ShowcaseDeps, siteID int) (*ShowcaseScene, error) {
	if deps.Config == nil || deps.Sites == nil || len(deps.Sites.Sites) == 0 {
		return nil, errors.New("showcase scene requires config and at least one site")
	}
	if deps.Settings == nil {
		deps.Settings = game.NewSettingsManager(nil)
	}
	if deps.Resources == nil {
		deps.Resources = game.NewResourceManager(nil)
	}
	if deps.Source == nil {
		deps.Source = input.EbitenSource{}
	}
	if deps.Keyboard == nil {
		deps.Keyboard = input.NewEbitenKeyboard()
	}

	log := logging.Named("ShowcaseScene")
	site, err := deps.Sites.Find(siteID)
	if err != nil {
		if siteID != 0 {
			log.Warnf("站点 %d 不存在，使用第一个站点", siteID)
		}
		site = &deps.Sites.Sites[0]
	}

	s := &ShowcaseScene{
		deps:          deps,
		site:          site,
		log:           log,
		entityManager: ecs.NewEntityManager(),
		hub:           input.NewHub(),
		wireframe:     systems.NewWireframeModel(),
	}

	width := float64(deps.Config.Window.Width)
	height := float64(deps.Config.Window.Height)
	reduced := deps.Settings.GetSettings().ReducedMotion

	s.page, err = entities.NewShowcasePage(s.entityManager, site, deps.Config, width, height, reduced)
	if err != nil {
		return nil, fmt.Errorf("failed to build page for site %d: %w", site.ID, err)
	}

	s.viewportSystem = systems.NewViewportSystem(s.entityManager, s.hub, width, height, s.page.ContentHeight, deps.Config.Scroll.WheelStep)
	s.sliderSystem = systems.NewCompareSliderSystem(s.entityManager, s.hub, s.viewportSystem.Viewport())
	s.stageSystem = systems.NewScrollStageSystem(s.entityManager, s.hub, s.viewportSystem.Viewport())
	s.stageSystem.AddModelFrameHook(s.wireframe)
	s.renderSystem = systems.NewShowcaseRenderSystem(s.entityManager, s.viewportSystem.Viewport(), s.wireframe)
	s.poller = input.NewPoller(deps.Source, s.hub)

	if slider, ok := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, s.page.Slider); ok {
		slider.OnRelease = func(position float64) {
			s.log.Debugf("%s 对比位置: %.1f%%", s.site.Name, position)
			if deps.OnSliderRelease != nil {
				deps.OnSliderRelease(position)
			}
		}
	}

	if !deps.TextOnly {
		s.startPreload()
	}

	// 初始计算一次，首帧即为正确的动画状态
	s.viewportSystem.Refresh()

	log.Infof("站点 %d (%s) 已加载，内容高度 %.0f", site.ID, site.Name, s.page.ContentHeight)
	return s, nil
}

// startPreload 在后台并发解码对比图片
func (s *ShowcaseScene) startPreload() {
	ctx, cancel := context.WithCancel(context.Background())
	s.preloadCancel = cancel
	s.preloadDone = make(chan struct{})

	rm := s.deps.Resources
	before, after := s.site.BeforeImage, s.site.AfterImage
	go func() {
		defer close(s.preloadDone)
		if err := rm.Preload(ctx, before, after); err != nil {
			s.log.Debugf("preload stopped: %v", err)
		}
	}()
}

// attachImages 预加载完成后把图片交给对比滑块，失败的图片保持占位
func (s *ShowcaseScene) attachImages() {
	if s.imagesAttached || s.preloadDone == nil {
		return
	}
	select {
	case <-s.preloadDone:
	default:
		return
	}
	s.imagesAttached = true

	slider, ok := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, s.page.Slider)
	if !ok {
		return
	}
	rm := s.deps.Resources
	if rm.IsDecoded(slider.BeforeURL) {
		if img, err := rm.LoadImage(context.Background(), slider.BeforeURL); err == nil {
			slider.BeforeImage = img
		}
	}
	if rm.IsDecoded(slider.AfterURL) {
		if img, err := rm.LoadImage(context.Background(), slider.AfterURL); err == nil {
			slider.AfterImage = img
		}
	}
}

// Site 当前站点
func (s *ShowcaseScene) Site() *config.HistoricalSite {
	return s.site
}

// EntityManager 返回实体管理器（用于测试和调试）
func (s *ShowcaseScene) EntityManager() *ecs.EntityManager {
	return s.entityManager
}

// Page 返回页面实体
func (s *ShowcaseScene) Page() entities.ShowcasePage {
	return s.page
}

// Hub 返回输入中心
func (s *ShowcaseScene) Hub() *input.Hub {
	return s.hub
}

// Viewport 返回视口系统
func (s *ShowcaseScene) Viewport() *systems.ViewportSystem {
	return s.viewportSystem
}

// Update 每帧更新
func (s *ShowcaseScene) Update(deltaTime float64) {
	if s.closed {
		return
	}

	s.applyCurveUpdates()
	s.attachImages()

	// 切换站点会关闭当前场景，之后不能再访问任何系统
	if s.handleKeyboard() {
		return
	}

	s.poller.Poll()
	s.sliderSystem.Update(deltaTime)
}

// applyCurveUpdates 处理配置热更新
func (s *ShowcaseScene) applyCurveUpdates() {
	if s.deps.CurveUpdates == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-s.deps.CurveUpdates:
			if !ok {
				s.deps.CurveUpdates = nil
				return
			}
			if err := s.stageSystem.SetCurve(cfg.StageCurve); err != nil {
				s.log.Warnf("忽略无效的动画曲线: %v", err)
			}
		default:
			return
		}
	}
}

// handleKeyboard 处理按键，返回 true 表示场景已被替换
func (s *ShowcaseScene) handleKeyboard() bool {
	kb := s.deps.Keyboard

	if kb.JustPressed(input.ActionPrevSite) {
		return s.switchSite(-1)
	}
	if kb.JustPressed(input.ActionNextSite) {
		return s.switchSite(1)
	}

	if kb.JustPressed(input.ActionToggleReducedMotion) {
		settings := s.deps.Settings
		enabled := !settings.GetSettings().ReducedMotion
		settings.SetReducedMotion(enabled)
		s.saveSettings()
		s.stageSystem.SetReducedMotion(enabled)
		s.log.Infof("减少动态效果: %v", enabled)
	}

	if kb.JustPressed(input.ActionToggleSound) {
		settings := s.deps.Settings
		enabled := !settings.GetSettings().SoundEnabled
		settings.SetSoundEnabled(enabled)
		s.saveSettings()
		s.log.Infof("提示音: %v", enabled)
	}

	step := s.deps.Config.Scroll.KeyStep
	page := float64(s.deps.Config.Window.Height) * pageStepRatio
	switch {
	case kb.Held(input.ActionScrollDown):
		s.viewportSystem.ScrollBy(step)
	case kb.Held(input.ActionScrollUp):
		s.viewportSystem.ScrollBy(-step)
	}
	switch {
	case kb.JustPressed(input.ActionPageDown):
		s.viewportSystem.ScrollBy(page)
	case kb.JustPressed(input.ActionPageUp):
		s.viewportSystem.ScrollBy(-page)
	case kb.JustPressed(input.ActionHome):
		s.viewportSystem.ScrollTo(0)
	case kb.JustPressed(input.ActionEnd):
		s.viewportSystem.ScrollTo(s.page.ContentHeight)
	}
	return false
}

// switchSite 切换到相邻站点（循环）
func (s *ShowcaseScene) switchSite(delta int) bool {
	sites := s.deps.Sites.Sites
	if len(sites) < 2 || s.deps.SceneManager == nil {
		return false
	}
	index := s.deps.Sites.IndexOf(s.site.ID)
	next := sites[((index+delta)%len(sites)+len(sites))%len(sites)]

	s.deps.Settings.SetLastSiteID(next.ID)
	s.saveSettings()

	if err := s.deps.SceneManager.LoadSite(next.ID); err != nil {
		s.log.Warnf("切换站点失败: %v", err)
		return false
	}
	return true
}

func (s *ShowcaseScene) saveSettings() {
	if err := s.deps.Settings.Save(); err != nil {
		s.log.Warnf("保存设置失败: %v", err)
	}
}

// Draw 绘制页面
func (s *ShowcaseScene) Draw(screen *ebiten.Image) {
	if s.closed {
		return
	}
	s.renderSystem.Draw(screen)

	hint := fmt.Sprintf("%s  [</>] site  [wheel/arrows] scroll  [R] reduced motion  [M] sound  [F11] fullscreen", s.site.Name)
	ebitenutil.DebugPrintAt(screen, hint, 8, s.deps.Config.Window.Height-20)
}

// Close 释放场景持有的全部订阅和资源，可重复调用
func (s *ShowcaseScene) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if s.preloadCancel != nil {
		s.preloadCancel()
		<-s.preloadDone
	}

	err := errors.Join(
		s.sliderSystem.Close(),
		s.stageSystem.Close(),
		s.viewportSystem.Close(),
		s.renderSystem.Close(),
	)
	for _, id := range s.page.Entities() {
		s.wireframe.Forget(id)
	}
	s.page.Destroy(s.entityManager)

	s.log.Debugf("站点 %d 场景已释放，剩余订阅 %d", s.site.ID, s.hub.ListenerCount())
	return err
}
