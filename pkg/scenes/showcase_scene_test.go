package scenes

import (
	"testing"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/input"
	"github.com/decker502/timeleap/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testSitesYAML = `
sites:
  - id: 1
    name: Hampi
    beforeImage: testdata/missing_before.png
    afterImage: testdata/missing_after.png
    restorationStages:
      - {year: "1500", status: Intact, progress: 100}
      - {year: "Restored", status: Restored, progress: 85}
  - id: 2
    name: Colosseum
    beforeImage: testdata/missing_before.png
    afterImage: testdata/missing_after.png
  - id: 3
    name: Machu Picchu
    beforeImage: testdata/missing_before.png
    afterImage: testdata/missing_after.png
`

type sceneFixture struct {
	deps     ShowcaseDeps
	source   *input.MockSource
	keyboard *input.MockKeyboard
	updates  chan *config.ShowcaseConfig
}

// newSceneFixture 视口 1000x800：
// hero 0~800，模型 800~1600，对比 1600~2400（滑槽 100,1680 800x640），行动号召 2400~3200
func newSceneFixture(t *testing.T) *sceneFixture {
	t.Helper()
	sites, err := config.ParseSites([]byte(testSitesYAML))
	require.NoError(t, err)

	cfg := config.DefaultShowcaseConfig()
	cfg.Window.Width, cfg.Window.Height = 1000, 800

	f := &sceneFixture{
		source:   &input.MockSource{},
		keyboard: input.NewMockKeyboard(),
		updates:  make(chan *config.ShowcaseConfig, 4),
	}
	f.deps = ShowcaseDeps{
		Config:       cfg,
		Sites:        sites,
		Resources:    game.NewResourceManager(nil),
		Settings:     game.NewSettingsManager(nil),
		SceneManager: game.NewSceneManager(),
		Source:       f.source,
		Keyboard:     f.keyboard,
		CurveUpdates: f.updates,
	}
	f.deps.SceneManager.SetSceneFactory(func(siteID int) (game.Scene, error) {
		return NewShowcaseScene(f.deps, siteID)
	})
	t.Cleanup(func() { _ = f.deps.SceneManager.Close() })
	return f
}

func (f *sceneFixture) load(t *testing.T, siteID int) *ShowcaseScene {
	t.Helper()
	require.NoError(t, f.deps.SceneManager.LoadSite(siteID))
	scene, ok := f.deps.SceneManager.GetCurrentScene().(*ShowcaseScene)
	require.True(t, ok)
	return scene
}

func stageParams(s *ShowcaseScene) motion.StageParams {
	c, _ := ecs.GetComponent[*components.ScrollStageComponent](s.EntityManager(), s.Page().CallToAction)
	return c.Params
}

func sliderOf(s *ShowcaseScene) *components.CompareSliderComponent {
	c, _ := ecs.GetComponent[*components.CompareSliderComponent](s.EntityManager(), s.Page().Slider)
	return c
}

func scrollY(s *ShowcaseScene) float64 {
	vp, _ := ecs.GetComponent[*components.ViewportComponent](s.EntityManager(), s.Viewport().Viewport())
	return vp.ScrollY
}

func TestShowcaseSceneInitialState(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 0)

	assert.Equal(t, 1, scene.Site().ID, "未记录站点时使用第一个站点")
	assert.Equal(t, 3200.0, scene.Page().ContentHeight)

	// 构造时已计算一次：行动号召区块在视口下方，处于入场起点
	p := stageParams(scene)
	assert.Equal(t, motion.PhaseEntrance, p.Phase)
	assert.Zero(t, p.Opacity)
	assert.Equal(t, 60.0, p.OffsetVH)
}

func TestShowcaseSceneUnknownSiteFallsBack(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 42)
	assert.Equal(t, 1, scene.Site().ID)
}

// TestShowcaseSceneWheelScroll 滚轮滚动同步驱动行动号召动画
func TestShowcaseSceneWheelScroll(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)

	// 每格 60 像素，向下滚 30 格到 1800
	f.source.WheelY = -30
	scene.Update(1.0 / 60)
	assert.Equal(t, 1800.0, scrollY(scene))

	// 行动号召顶部在屏幕 600，p = 1 - 600/800 = 0.25
	p := stageParams(scene)
	assert.InDelta(t, 0.25, p.Progress, 1e-9)
	assert.Equal(t, motion.PhaseEntrance, p.Phase)

	// 滚到底部：顶部与视口顶部重合，p = 1
	f.source.WheelY = -100
	scene.Update(1.0 / 60)
	assert.Equal(t, 2400.0, scrollY(scene))
	assert.Equal(t, motion.PhaseExit, stageParams(scene).Phase)
	assert.InDelta(t, 1.0, stageParams(scene).Progress, 1e-9)
}

// TestShowcaseSceneDrag 按下开始拖拽，移动更新位置，释放后不再跟随
func TestShowcaseSceneDrag(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)
	scene.Viewport().ScrollTo(1600)

	// 滑槽屏幕矩形 (100, 80, 800, 640)
	f.source.X, f.source.Y, f.source.Pressed = 500, 400, true
	scene.Update(1.0 / 60)
	slider := sliderOf(scene)
	assert.True(t, slider.Slider.IsDragging())
	assert.Equal(t, 50.0, slider.Slider.Position, "按下本身不改变位置")

	f.source.X = 300
	scene.Update(1.0 / 60)
	assert.Equal(t, 25.0, slider.Slider.Position)

	// 拖出滑槽右侧，限制在 100
	f.source.X = 2000
	scene.Update(1.0 / 60)
	assert.Equal(t, 100.0, slider.Slider.Position)

	f.source.Pressed = false
	scene.Update(1.0 / 60)
	assert.False(t, slider.Slider.IsDragging())

	f.source.X = 200
	scene.Update(1.0 / 60)
	assert.Equal(t, 100.0, slider.Slider.Position)
}

func TestShowcaseSceneKeyboardScroll(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)

	f.keyboard.SetHeld(input.ActionScrollDown, true)
	scene.Update(1.0 / 60)
	scene.Update(1.0 / 60)
	assert.Equal(t, 80.0, scrollY(scene))
	f.keyboard.SetHeld(input.ActionScrollDown, false)

	f.keyboard.Press(input.ActionPageDown)
	scene.Update(1.0 / 60)
	assert.Equal(t, 80.0+720.0, scrollY(scene))

	f.keyboard.Press(input.ActionEnd)
	scene.Update(1.0 / 60)
	assert.Equal(t, 2400.0, scrollY(scene))

	f.keyboard.Press(input.ActionHome)
	scene.Update(1.0 / 60)
	assert.Zero(t, scrollY(scene))
}

// TestShowcaseSceneSwitchSite 切换站点替换场景并释放旧场景的全部订阅
func TestShowcaseSceneSwitchSite(t *testing.T) {
	f := newSceneFixture(t)
	first := f.load(t, 1)
	require.Positive(t, first.Hub().ListenerCount())

	f.keyboard.Press(input.ActionNextSite)
	first.Update(1.0 / 60)

	second, ok := f.deps.SceneManager.GetCurrentScene().(*ShowcaseScene)
	require.True(t, ok)
	assert.Equal(t, 2, second.Site().ID)
	assert.Zero(t, first.Hub().ListenerCount())
	assert.Equal(t, 2, f.deps.Settings.GetSettings().LastSiteID)

	// 从第一个站点向前切换会循环到最后一个
	f.load(t, 1)
	current := f.deps.SceneManager.GetCurrentScene().(*ShowcaseScene)
	f.keyboard.Press(input.ActionPrevSite)
	current.Update(1.0 / 60)
	last := f.deps.SceneManager.GetCurrentScene().(*ShowcaseScene)
	assert.Equal(t, 3, last.Site().ID)
}

// TestShowcaseSceneCloseDuringDrag 拖拽中关闭场景会释放全局订阅
func TestShowcaseSceneCloseDuringDrag(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)
	scene.Viewport().ScrollTo(1600)

	f.source.X, f.source.Y, f.source.Pressed = 500, 400, true
	scene.Update(1.0 / 60)
	require.True(t, sliderOf(scene).Slider.IsDragging())

	require.NoError(t, scene.Close())
	assert.Zero(t, scene.Hub().ListenerCount())
	assert.Zero(t, scene.EntityManager().EntityCount())

	// 重复关闭和关闭后更新都是安全的
	require.NoError(t, scene.Close())
	scene.Update(1.0 / 60)
	scene.Draw(nil)
}

func TestShowcaseSceneReducedMotion(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)

	f.keyboard.Press(input.ActionToggleReducedMotion)
	scene.Update(1.0 / 60)

	assert.True(t, f.deps.Settings.GetSettings().ReducedMotion)
	assert.Equal(t, motion.RestParams(0), stageParams(scene))

	// 新场景沿用设置
	f.keyboard.Press(input.ActionNextSite)
	scene.Update(1.0 / 60)
	next := f.deps.SceneManager.GetCurrentScene().(*ShowcaseScene)
	assert.Equal(t, 1.0, stageParams(next).Opacity)
}

// TestShowcaseSceneToggleSound M 键切换提示音并持久化
func TestShowcaseSceneToggleSound(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)
	require.True(t, f.deps.Settings.GetSettings().SoundEnabled)

	f.keyboard.Press(input.ActionToggleSound)
	scene.Update(1.0 / 60)
	assert.False(t, f.deps.Settings.GetSettings().SoundEnabled)

	f.keyboard.Press(input.ActionToggleSound)
	scene.Update(1.0 / 60)
	assert.True(t, f.deps.Settings.GetSettings().SoundEnabled)
}

// TestShowcaseSceneCurveUpdates 热更新的曲线立即生效，非法曲线被忽略
func TestShowcaseSceneCurveUpdates(t *testing.T) {
	f := newSceneFixture(t)
	scene := f.load(t, 1)
	scene.Viewport().ScrollTo(1800) // p = 0.25

	updated := config.DefaultShowcaseConfig()
	updated.StageCurve.EntranceThreshold = 0.2
	f.updates <- updated
	scene.Update(1.0 / 60)
	assert.Equal(t, motion.PhaseSteady, stageParams(scene).Phase)

	invalid := config.DefaultShowcaseConfig()
	invalid.StageCurve.EntranceThreshold = 0.9
	f.updates <- invalid
	scene.Update(1.0 / 60)
	assert.Equal(t, motion.PhaseSteady, stageParams(scene).Phase)

	close(f.updates)
	scene.Update(1.0 / 60)
}

func TestShowcaseSceneNoLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newSceneFixture(t)
	scene := f.load(t, 1)
	scene.Update(1.0 / 60)
	require.NoError(t, f.deps.SceneManager.Close())
	assert.Zero(t, scene.Hub().ListenerCount())
}

func TestNewShowcaseSceneRequiresSites(t *testing.T) {
	_, err := NewShowcaseScene(ShowcaseDeps{Config: config.DefaultShowcaseConfig()}, 1)
	assert.Error(t, err)
}

// TestShowcaseSceneSliderReleaseCallback 释放时通知宿主（终端预览用来播放提示音）
func TestShowcaseSceneSliderReleaseCallback(t *testing.T) {
	f := newSceneFixture(t)
	var released []float64
	f.deps.TextOnly = true
	f.deps.OnSliderRelease = func(position float64) { released = append(released, position) }

	scene := f.load(t, 1)
	scene.Viewport().ScrollTo(1600)

	f.source.X, f.source.Y, f.source.Pressed = 500, 400, true
	scene.Update(1.0 / 60)
	f.source.X = 700
	scene.Update(1.0 / 60)
	f.source.Pressed = false
	scene.Update(1.0 / 60)

	assert.Equal(t, []float64{75}, released)
}
