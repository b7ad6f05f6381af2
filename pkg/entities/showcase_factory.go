package entities

import (
	"fmt"
	"image/color"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/motion"
)

// 区块背景色
var (
	heroBackground    = color.RGBA{R: 24, G: 22, B: 20, A: 255}
	modelBackground   = color.RGBA{R: 16, G: 18, B: 24, A: 255}
	compareBackground = color.RGBA{R: 20, G: 20, B: 22, A: 255}
)

// sliderInset 对比滑块在所在区块内的边距比例
const sliderInset = 0.1

// ShowcasePage 展示页的实体集合
// 所有区块从上到下依次排列，每个区块高度为一个视口
type ShowcasePage struct {
	Hero          ecs.EntityID
	Model         ecs.EntityID
	Compare       ecs.EntityID
	Slider        ecs.EntityID
	CallToAction  ecs.EntityID
	ContentHeight float64
}

// Entities 返回页面的全部实体
func (p ShowcasePage) Entities() []ecs.EntityID {
	return []ecs.EntityID{p.Hero, p.Model, p.Compare, p.Slider, p.CallToAction}
}

// Destroy 销毁页面的全部实体
func (p ShowcasePage) Destroy(em *ecs.EntityManager) {
	for _, id := range p.Entities() {
		em.DestroyEntity(id)
	}
	em.RemoveMarkedEntities()
}

// NewSectionEntity 创建静态区块实体
func NewSectionEntity(em *ecs.EntityManager, y, width, height float64, title, subtitle string, bg color.RGBA) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 0, Y: y})
	ecs.AddComponent(em, id, &components.SizeComponent{Width: width, Height: height})
	ecs.AddComponent(em, id, &components.SectionComponent{
		Title:      title,
		Subtitle:   subtitle,
		Background: bg,
	})
	return id
}

// NewModelViewEntity 创建 3D 模型展示区块
func NewModelViewEntity(em *ecs.EntityManager, site *config.HistoricalSite, y, width, height float64) ecs.EntityID {
	id := NewSectionEntity(em, y, width, height, "3D RECONSTRUCTION", "Scroll to bring the model to life", modelBackground)

	modelURL := ""
	if site.Models != nil {
		modelURL = site.Models.After
	}
	ecs.AddComponent(em, id, &components.ModelViewComponent{
		FinalStageProgress: site.FinalStageProgress(),
		SiteName:           site.Name,
		Location:           site.Location,
		Built:              site.YearBuilt,
		ModelURL:           modelURL,
	})
	return id
}

// NewCompareSliderEntity 创建修复前/修复后对比滑块
// 滑槽矩形为 (x, y, width, height)，内容坐标
func NewCompareSliderEntity(em *ecs.EntityManager, site *config.HistoricalSite, x, y, width, height, initial float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.SizeComponent{Width: width, Height: height})
	ecs.AddComponent(em, id, &components.CompareSliderComponent{
		BeforeURL: site.BeforeImage,
		AfterURL:  site.AfterImage,
		Slider:    motion.NewSlider(initial),
	})
	return id
}

// NewCallToActionEntity 创建滚动驱动的行动号召区块
func NewCallToActionEntity(em *ecs.EntityManager, curve motion.StageCurve, y, width, height float64, reducedMotion bool) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: 0, Y: y})
	ecs.AddComponent(em, id, &components.SizeComponent{Width: width, Height: height})
	ecs.AddComponent(em, id, &components.ScrollStageComponent{
		Curve:         curve,
		Params:        motion.RestParams(0),
		ReducedMotion: reducedMotion,
		Title:         "Step Through Time",
		Subtitle:      "Upload your own photo and watch it rebuilt",
	})
	return id
}

// NewShowcasePage 创建站点展示页
//
// 参数：
//   - em: 实体管理器
//   - site: 当前站点
//   - cfg: 展示配置（动画曲线、滑块初始位置）
//   - width, viewportHeight: 视口尺寸
//   - reducedMotion: 是否减少动态效果
func NewShowcasePage(em *ecs.EntityManager, site *config.HistoricalSite, cfg *config.ShowcaseConfig, width, viewportHeight float64, reducedMotion bool) (ShowcasePage, error) {
	if site == nil {
		return ShowcasePage{}, fmt.Errorf("%w: nil site", config.ErrSiteNotFound)
	}
	if width <= 0 || viewportHeight <= 0 {
		return ShowcasePage{}, fmt.Errorf("invalid viewport %.0fx%.0f", width, viewportHeight)
	}

	var page ShowcasePage
	y := 0.0

	page.Hero = NewSectionEntity(em, y, width, viewportHeight,
		site.Name, fmt.Sprintf("%s · %s · %s", site.Location, site.Era, site.ArchitectureType), heroBackground)
	y += viewportHeight

	page.Model = NewModelViewEntity(em, site, y, width, viewportHeight)
	y += viewportHeight

	page.Compare = NewSectionEntity(em, y, width, viewportHeight, "BEFORE / AFTER", "Drag the divider to compare", compareBackground)
	page.Slider = NewCompareSliderEntity(em, site,
		width*sliderInset, y+viewportHeight*sliderInset,
		width*(1-2*sliderInset), viewportHeight*(1-2*sliderInset),
		cfg.Slider.InitialPosition)
	y += viewportHeight

	page.CallToAction = NewCallToActionEntity(em, cfg.StageCurve, y, width, viewportHeight, reducedMotion)
	y += viewportHeight

	page.ContentHeight = y
	return page, nil
}
