package entities

import (
	"testing"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSite() *config.HistoricalSite {
	return &config.HistoricalSite{
		ID:          1,
		Name:        "Hampi",
		Location:    "Karnataka, India",
		BeforeImage: "images/hampi_before.jpg",
		AfterImage:  "images/hampi_after.png",
		YearBuilt:   "14th century",
		RestorationStages: []config.RestorationStage{
			{Year: "1500", Progress: 100},
			{Year: "Today", Progress: 40},
			{Year: "Restored", Progress: 85},
		},
		Models: &config.SiteModels{After: "models/hampi_after.glb"},
	}
}

func TestNewShowcasePage(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultShowcaseConfig()
	cfg.Slider.InitialPosition = 30

	page, err := NewShowcasePage(em, testSite(), cfg, 1000, 800, true)
	require.NoError(t, err)
	assert.Equal(t, 3200.0, page.ContentHeight)
	assert.Equal(t, 5, em.EntityCount())

	// 区块依次排列
	for i, id := range []ecs.EntityID{page.Hero, page.Model, page.Compare, page.CallToAction} {
		pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
		require.True(t, ok)
		assert.Equal(t, float64(i)*800, pos.Y)
	}

	// 滑块位于对比区块内部
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, page.Slider)
	size, _ := ecs.GetComponent[*components.SizeComponent](em, page.Slider)
	assert.Equal(t, 100.0, pos.X)
	assert.Equal(t, 1680.0, pos.Y)
	assert.Equal(t, 800.0, size.Width)
	assert.Equal(t, 640.0, size.Height)

	slider, _ := ecs.GetComponent[*components.CompareSliderComponent](em, page.Slider)
	assert.Equal(t, 30.0, slider.Slider.Position)
	assert.False(t, slider.Slider.IsDragging())
	assert.Equal(t, "images/hampi_before.jpg", slider.BeforeURL)

	model, _ := ecs.GetComponent[*components.ModelViewComponent](em, page.Model)
	assert.Equal(t, 85.0, model.FinalStageProgress)
	assert.Equal(t, "models/hampi_after.glb", model.ModelURL)

	stage, _ := ecs.GetComponent[*components.ScrollStageComponent](em, page.CallToAction)
	assert.True(t, stage.ReducedMotion)
	assert.Equal(t, cfg.StageCurve, stage.Curve)

	page.Destroy(em)
	assert.Zero(t, em.EntityCount())
}

func TestNewShowcasePageInvalid(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultShowcaseConfig()

	_, err := NewShowcasePage(em, nil, cfg, 1000, 800, false)
	assert.ErrorIs(t, err, config.ErrSiteNotFound)

	_, err = NewShowcasePage(em, testSite(), cfg, 1000, 0, false)
	assert.Error(t, err)
	assert.Zero(t, em.EntityCount())
}

// TestNewModelViewEntityWithoutModels 没有模型的站点
func TestNewModelViewEntityWithoutModels(t *testing.T) {
	em := ecs.NewEntityManager()
	site := testSite()
	site.Models = nil
	site.RestorationStages = nil

	id := NewModelViewEntity(em, site, 0, 100, 100)
	model, ok := ecs.GetComponent[*components.ModelViewComponent](em, id)
	require.True(t, ok)
	assert.Empty(t, model.ModelURL)
	assert.Zero(t, model.FinalStageProgress)
}
