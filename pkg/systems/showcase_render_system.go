package systems

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/motion"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 展示页视觉常量
var (
	pageBackgroundColor = color.RGBA{R: 12, G: 12, B: 14, A: 255}

	// 对比滑块
	beforePlaceholderColor = color.RGBA{R: 92, G: 78, B: 60, A: 255}
	afterPlaceholderColor  = color.RGBA{R: 60, G: 92, B: 110, A: 255}
	dividerColor           = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	knobColor              = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	knobActiveColor        = color.RGBA{R: 245, G: 200, B: 90, A: 255}

	// 模型区块
	wireframeColor   = color.RGBA{R: 230, G: 190, B: 120, A: 255}
	glowColor        = color.RGBA{R: 245, G: 180, B: 80, A: 255}
	ringColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	progressBgColor  = color.RGBA{R: 60, G: 60, B: 66, A: 255}
	progressBarColor = color.RGBA{R: 245, G: 180, B: 80, A: 255}

	// 行动号召卡片
	backdropColor = color.RGBA{R: 40, G: 34, B: 28, A: 255}
	cardColor     = color.RGBA{R: 250, G: 246, B: 238, A: 255}
	cardEdgeColor = color.RGBA{R: 200, G: 170, B: 120, A: 255}
)

const (
	knobRadius       = 14.0
	knobHoverRadius  = 17.0
	dividerWidth     = 2.0
	cardWidthRatio   = 0.6
	cardHeightRatio  = 0.45
	debugLineHeight  = 16
	progressBarWidth = 240.0
)

// ShowcaseRenderSystem 展示页渲染系统
// 只读取组件状态，不修改任何交互状态
type ShowcaseRenderSystem struct {
	entityManager *ecs.EntityManager
	viewport      ecs.EntityID
	wireframe     *WireframeModel

	// 文字和卡片需要整体透明度/缩放，先画到离屏图片
	layers map[layerKey]*ebiten.Image
}

type layerKey struct {
	id   ecs.EntityID
	name string
}

// NewShowcaseRenderSystem 创建展示页渲染系统
// wireframe 为模型区块的线框替身，可为 nil（不绘制线框）
func NewShowcaseRenderSystem(em *ecs.EntityManager, viewport ecs.EntityID, wireframe *WireframeModel) *ShowcaseRenderSystem {
	return &ShowcaseRenderSystem{
		entityManager: em,
		viewport:      viewport,
		wireframe:     wireframe,
		layers:        make(map[layerKey]*ebiten.Image),
	}
}

// visibleRatio 修复前图片保留的比例：右侧 ClipInset% 被裁掉
func visibleRatio(position float64) float64 {
	return (motion.SliderMax - motion.ClipInset(position)) / motion.SliderMax
}

// SplitX 分割线的屏幕 X 坐标
func SplitX(track motion.Rect, position float64) float64 {
	return track.Left + track.Width*visibleRatio(position)
}

// CardLayout 行动号召卡片在屏幕上的位置
type CardLayout struct {
	CenterX, CenterY float64
	Width, Height    float64
	Scale            float64
	Alpha            float64
}

// StageCardLayout 根据动画参数计算卡片布局
// OffsetVH 以视口高度百分比为单位，卡片以中心为原点缩放
func StageCardLayout(section motion.Rect, params motion.StageParams, viewportHeight float64) CardLayout {
	return CardLayout{
		CenterX: section.Left + section.Width/2,
		CenterY: section.Top + section.Height/2 + params.OffsetVH*viewportHeight/100,
		Width:   section.Width * cardWidthRatio,
		Height:  section.Height * cardHeightRatio,
		Scale:   params.Scale,
		Alpha:   motion.Clamp(params.Opacity, 0, 1),
	}
}

// BeforeCrop 修复前图片的源裁剪宽度和对应的屏幕宽度
// srcWidth 为图片像素宽度
func BeforeCrop(track motion.Rect, srcWidth int, position float64) (int, float64) {
	keep := visibleRatio(position)
	return int(math.Round(float64(srcWidth) * keep)), track.Width * keep
}

// fade 按透明度缩放颜色（color.RGBA 为预乘 alpha）
func fade(c color.RGBA, alpha float64) color.RGBA {
	a := motion.Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

// intersectsScreen 矩形是否与视口有交集
func intersectsScreen(r motion.Rect, vp *components.ViewportComponent) bool {
	return r.Bottom() > 0 && r.Top < vp.Height && r.Right() > 0 && r.Left < vp.Width
}

// layer 取得（必要时创建）实体的离屏图层并清空
func (s *ShowcaseRenderSystem) layer(id ecs.EntityID, name string, w, h int) *ebiten.Image {
	key := layerKey{id: id, name: name}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img, ok := s.layers[key]
	if ok {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
		img.Deallocate()
	}
	img = ebiten.NewImage(w, h)
	s.layers[key] = img
	return img
}

// placeholder 图片尚未加载或加载失败时的纯色占位图，尺寸不变时复用
func (s *ShowcaseRenderSystem) placeholder(id ecs.EntityID, name string, w, h int, clr color.Color) *ebiten.Image {
	key := layerKey{id: id, name: "placeholder:" + name}
	if img, ok := s.layers[key]; ok {
		if b := img.Bounds(); b.Dx() == max(w, 1) && b.Dy() == max(h, 1) {
			return img
		}
		img.Deallocate()
	}
	img := game.Placeholder(w, h, clr)
	s.layers[key] = img
	return img
}

// Draw 绘制整个展示页
func (s *ShowcaseRenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(pageBackgroundColor)

	vp, ok := ecs.GetComponent[*components.ViewportComponent](s.entityManager, s.viewport)
	if !ok {
		return
	}

	for _, id := range ecs.GetEntitiesWith1[*components.SectionComponent](s.entityManager) {
		s.drawSection(screen, vp, id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ModelViewComponent](s.entityManager) {
		s.drawModelView(screen, vp, id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CompareSliderComponent](s.entityManager) {
		s.drawCompareSlider(screen, vp, id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollStageComponent](s.entityManager) {
		s.drawStage(screen, vp, id)
	}
}

func (s *ShowcaseRenderSystem) drawSection(screen *ebiten.Image, vp *components.ViewportComponent, id ecs.EntityID) {
	r, ok := ScreenRect(s.entityManager, s.viewport, id)
	if !ok || !intersectsScreen(r, vp) {
		return
	}
	section, _ := ecs.GetComponent[*components.SectionComponent](s.entityManager, id)

	vector.DrawFilledRect(screen, float32(r.Left), float32(r.Top), float32(r.Width), float32(r.Height), section.Background, false)
	ebitenutil.DebugPrintAt(screen, section.Title, int(r.Left)+40, int(r.Top)+40)
	ebitenutil.DebugPrintAt(screen, section.Subtitle, int(r.Left)+40, int(r.Top)+40+debugLineHeight)
}

// drawCompareSlider 修复后图片完整绘制，修复前图片裁剪到分割位置左侧
func (s *ShowcaseRenderSystem) drawCompareSlider(screen *ebiten.Image, vp *components.ViewportComponent, id ecs.EntityID) {
	track, ok := ScreenRect(s.entityManager, s.viewport, id)
	if !ok || !intersectsScreen(track, vp) {
		return
	}
	slider, _ := ecs.GetComponent[*components.CompareSliderComponent](s.entityManager, id)
	split := SplitX(track, slider.Slider.Position)

	// 修复后
	after := slider.AfterImage
	if after == nil {
		after = s.placeholder(id, "after", int(track.Width), int(track.Height), afterPlaceholderColor)
	}
	drawFitted(screen, after, track, 1)

	// 修复前，右侧 ClipInset% 被裁掉
	before := slider.BeforeImage
	if before == nil {
		before = s.placeholder(id, "before", int(track.Width), int(track.Height), beforePlaceholderColor)
	}
	b := before.Bounds()
	if srcW, screenW := BeforeCrop(track, b.Dx(), slider.Slider.Position); srcW > 0 && b.Dy() > 0 {
		sub := before.SubImage(image.Rect(b.Min.X, b.Min.Y, b.Min.X+srcW, b.Max.Y)).(*ebiten.Image)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(screenW/float64(srcW), track.Height/float64(b.Dy()))
		op.GeoM.Translate(track.Left, track.Top)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(sub, op)
	}

	// 分割线和把手
	vector.StrokeLine(screen, float32(split), float32(track.Top), float32(split), float32(track.Bottom()), dividerWidth, dividerColor, true)
	radius, clr := knobRadius, knobColor
	if slider.IsHovered {
		radius = knobHoverRadius
	}
	if slider.Slider.IsDragging() {
		radius, clr = knobHoverRadius, knobActiveColor
	}
	cy := track.Top + track.Height/2
	vector.DrawFilledCircle(screen, float32(split), float32(cy), float32(radius), clr, true)

	ebitenutil.DebugPrintAt(screen, "BEFORE", int(track.Left)+12, int(track.Top)+12)
	ebitenutil.DebugPrintAt(screen, "AFTER", int(track.Right())-52, int(track.Top)+12)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.0f%%", slider.Slider.Position), int(split)-12, int(track.Bottom())+8)
}

// drawFitted 把图片拉伸绘制到矩形
func drawFitted(dst, img *ebiten.Image, r motion.Rect, alpha float64) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.Width/float64(b.Dx()), r.Height/float64(b.Dy()))
	op.GeoM.Translate(r.Left, r.Top)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, op)
}

// drawModelView 绘制模型区块：光晕、旋转边框、线框、文案和修复进度条
func (s *ShowcaseRenderSystem) drawModelView(screen *ebiten.Image, vp *components.ViewportComponent, id ecs.EntityID) {
	r, ok := ScreenRect(s.entityManager, s.viewport, id)
	if !ok || !intersectsScreen(r, vp) {
		return
	}
	view, _ := ecs.GetComponent[*components.ModelViewComponent](s.entityManager, id)
	frame := view.Frame
	if s.wireframe != nil {
		if f, ok := s.wireframe.Frame(id); ok {
			frame = f
		}
	}

	// 模型位于左半部分，文案位于右半部分
	cx := r.Left + r.Width*0.3
	cy := r.Top + r.Height/2
	size := math.Min(r.Width, r.Height) * 0.18

	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(size*1.6+frame.GlowSpread), fade(glowColor, frame.GlowAlpha*0.4), true)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), float32(size*1.2+frame.GlowSpread/2), fade(glowColor, frame.GlowAlpha), true)

	ringRadius := size*2 + 10
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(ringRadius), 2, fade(ringColor, frame.RingOpacity), true)
	angle := frame.RingAngle * math.Pi / 180
	vector.DrawFilledCircle(screen,
		float32(cx+ringRadius*math.Cos(angle)), float32(cy+ringRadius*math.Sin(angle)),
		5, fade(ringColor, frame.RingOpacity), true)

	if s.wireframe != nil {
		for _, seg := range s.wireframe.Segments(frame, cx, cy, size) {
			vector.StrokeLine(screen, float32(seg.X1), float32(seg.Y1), float32(seg.X2), float32(seg.Y2), 2, wireframeColor, true)
		}
	}

	// 文案整体透明度和水平偏移
	textW, textH := int(r.Width*0.4), 6*debugLineHeight
	content := s.layer(id, "content", textW, textH)
	ebitenutil.DebugPrintAt(content, view.SiteName, 0, 0)
	ebitenutil.DebugPrintAt(content, view.Location, 0, debugLineHeight)
	ebitenutil.DebugPrintAt(content, "Built: "+view.Built, 0, 2*debugLineHeight)
	ebitenutil.DebugPrintAt(content, fmt.Sprintf("Restoration %.0f%%", frame.ProgressBar*100), 0, 4*debugLineHeight)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(r.Left+r.Width*0.55+frame.ContentShiftX, cy-float64(textH)/2)
	op.ColorScale.ScaleAlpha(float32(frame.ContentOpacity))
	screen.DrawImage(content, op)

	barX := r.Left + r.Width*0.55 + frame.ContentShiftX
	barY := cy + float64(textH)/2 + 8
	vector.DrawFilledRect(screen, float32(barX), float32(barY), progressBarWidth, 6, fade(progressBgColor, frame.ContentOpacity), false)
	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(progressBarWidth*frame.ProgressBar), 6, fade(progressBarColor, frame.ContentOpacity), false)
}

// drawStage 绘制行动号召区块：背景按 BackdropScale/BackdropOpacity，卡片按 StageCardLayout
func (s *ShowcaseRenderSystem) drawStage(screen *ebiten.Image, vp *components.ViewportComponent, id ecs.EntityID) {
	r, ok := ScreenRect(s.entityManager, s.viewport, id)
	if !ok || !intersectsScreen(r, vp) {
		return
	}
	stage, _ := ecs.GetComponent[*components.ScrollStageComponent](s.entityManager, id)
	params := stage.Params

	// 背景以区块中心缩放
	bw, bh := r.Width*params.BackdropScale, r.Height*params.BackdropScale
	bx := r.Left + (r.Width-bw)/2
	by := r.Top + (r.Height-bh)/2
	vector.DrawFilledRect(screen, float32(bx), float32(by), float32(bw), float32(bh), fade(backdropColor, params.BackdropOpacity), false)

	layout := StageCardLayout(r, params, vp.Height)
	if layout.Alpha <= 0 || layout.Scale <= 0 {
		return
	}
	card := s.layer(id, "card", int(layout.Width), int(layout.Height))
	cw, ch := float32(card.Bounds().Dx()), float32(card.Bounds().Dy())
	vector.DrawFilledRect(card, 0, 0, cw, ch, cardColor, false)
	vector.StrokeRect(card, 1, 1, cw-2, ch-2, 2, cardEdgeColor, false)
	ebitenutil.DebugPrintAt(card, stage.Title, 24, 24)
	ebitenutil.DebugPrintAt(card, stage.Subtitle, 24, 24+debugLineHeight)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(cw)/2, -float64(ch)/2)
	op.GeoM.Scale(layout.Scale, layout.Scale)
	op.GeoM.Translate(layout.CenterX, layout.CenterY)
	op.ColorScale.ScaleAlpha(float32(layout.Alpha))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(card, op)
}

// Close 释放离屏图层
func (s *ShowcaseRenderSystem) Close() error {
	for key, img := range s.layers {
		img.Deallocate()
		delete(s.layers, key)
	}
	return nil
}
