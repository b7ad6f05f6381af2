package term

import (
	"fmt"
	"math"

	"github.com/decker502/timeleap/pkg/components"
	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/motion"
	"github.com/decker502/timeleap/pkg/systems"
	"github.com/gdamore/tcell/v2"
)

// 终端样式
var (
	styleDefault  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTitle    = styleDefault.Bold(true).Foreground(tcell.NewRGBColor(245, 180, 80))
	styleBefore   = styleDefault.Foreground(tcell.NewRGBColor(160, 130, 95))
	styleAfter    = styleDefault.Foreground(tcell.NewRGBColor(95, 150, 175))
	styleDivider  = styleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleKnob     = styleDefault.Foreground(tcell.NewRGBColor(245, 200, 90)).Bold(true)
	styleCard     = styleDefault.Foreground(tcell.NewRGBColor(250, 246, 238))
	styleBackdrop = styleDefault.Foreground(tcell.NewRGBColor(90, 76, 60))
	styleStatus   = styleDefault.Reverse(true)
)

// shades 由淡到浓的填充字符
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Shade 把透明度映射为填充字符
func Shade(alpha float64) rune {
	a := motion.Clamp(alpha, 0, 1)
	return shades[int(math.Round(a*float64(len(shades)-1)))]
}

// spinner 模型旋转指示
var spinner = []rune{'|', '/', '-', '\\'}

// Renderer 把展示页的组件状态绘制到终端
// 页面坐标与字符单元一一对应
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer 创建终端渲染器
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

func (r *Renderer) text(x, y int, s string, style tcell.Style) {
	for _, c := range s {
		r.screen.SetContent(x, y, c, nil, style)
		x++
	}
}

func (r *Renderer) fill(rect motion.Rect, c rune, style tcell.Style) {
	w, h := r.screen.Size()
	x0 := max(0, int(math.Floor(rect.Left)))
	y0 := max(0, int(math.Floor(rect.Top)))
	x1 := min(w, int(math.Ceil(rect.Right())))
	y1 := min(h, int(math.Ceil(rect.Bottom())))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, c, nil, style)
		}
	}
}

// Draw 绘制一帧，status 显示在最后一行
func (r *Renderer) Draw(em *ecs.EntityManager, viewport ecs.EntityID, status string) {
	r.screen.Clear()
	r.screen.Fill(' ', styleDefault)

	for _, id := range ecs.GetEntitiesWith1[*components.SectionComponent](em) {
		rect, ok := systems.ScreenRect(em, viewport, id)
		if !ok {
			continue
		}
		section, _ := ecs.GetComponent[*components.SectionComponent](em, id)
		top := int(math.Floor(rect.Top))
		r.text(2, top+1, section.Title, styleTitle)
		r.text(2, top+2, section.Subtitle, styleDefault)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ModelViewComponent](em) {
		if rect, ok := systems.ScreenRect(em, viewport, id); ok {
			view, _ := ecs.GetComponent[*components.ModelViewComponent](em, id)
			r.drawModel(rect, view)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CompareSliderComponent](em) {
		if rect, ok := systems.ScreenRect(em, viewport, id); ok {
			slider, _ := ecs.GetComponent[*components.CompareSliderComponent](em, id)
			r.drawSlider(rect, slider)
		}
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ScrollStageComponent](em) {
		if rect, ok := systems.ScreenRect(em, viewport, id); ok {
			stage, _ := ecs.GetComponent[*components.ScrollStageComponent](em, id)
			vp, _ := ecs.GetComponent[*components.ViewportComponent](em, viewport)
			r.drawStage(rect, stage, vp.Height)
		}
	}

	w, h := r.screen.Size()
	r.fill(motion.Rect{Left: 0, Top: float64(h - 1), Width: float64(w), Height: 1}, ' ', styleStatus)
	r.text(0, h-1, status, styleStatus)
	r.screen.Show()
}

func (r *Renderer) drawModel(rect motion.Rect, view *components.ModelViewComponent) {
	frame := view.Frame
	cx := int(rect.Left + rect.Width*0.3)
	cy := int(rect.Top + rect.Height/2)

	glow := motion.Rect{Left: float64(cx) - 3, Top: float64(cy) - 1, Width: 7, Height: 3}
	r.fill(glow, Shade(frame.GlowAlpha), styleKnob)
	r.screen.SetContent(cx, cy, spinner[int(frame.RingAngle/90)%len(spinner)], nil, styleTitle)

	if frame.ContentOpacity < 0.1 {
		return
	}
	x := int(rect.Left+rect.Width*0.55) + int(frame.ContentShiftX/10)
	style := styleDefault
	if frame.ContentOpacity < 0.5 {
		style = style.Dim(true)
	}
	r.text(x, cy-2, view.SiteName, style.Bold(true))
	r.text(x, cy-1, view.Location, style)
	r.text(x, cy, "Built: "+view.Built, style)

	const barWidth = 20
	filled := int(math.Round(frame.ProgressBar * barWidth))
	for i := 0; i < barWidth; i++ {
		c := '·'
		if i < filled {
			c = '█'
		}
		r.screen.SetContent(x+i, cy+2, c, nil, style)
	}
	r.text(x+barWidth+1, cy+2, fmt.Sprintf("%.0f%%", frame.ProgressBar*100), style)
}

// drawSlider 分割线左侧为修复前，右侧为修复后
func (r *Renderer) drawSlider(track motion.Rect, slider *components.CompareSliderComponent) {
	split := int(math.Round(systems.SplitX(track, slider.Slider.Position)))
	left := int(math.Floor(track.Left))

	before := motion.Rect{Left: track.Left, Top: track.Top, Width: float64(split - left), Height: track.Height}
	r.fill(before, '▓', styleBefore)
	after := motion.Rect{Left: float64(split), Top: track.Top, Width: track.Right() - float64(split), Height: track.Height}
	r.fill(after, '░', styleAfter)
	r.fill(motion.Rect{Left: float64(split), Top: track.Top, Width: 1, Height: track.Height}, '│', styleDivider)

	knob := '◇'
	if slider.IsHovered || slider.Slider.IsDragging() {
		knob = '◆'
	}
	r.screen.SetContent(split, int(track.Top+track.Height/2), knob, nil, styleKnob)

	r.text(left+1, int(track.Top), "BEFORE", styleDivider)
	r.text(int(track.Right())-6, int(track.Top), "AFTER", styleDivider)
	r.text(split-1, int(track.Bottom()), fmt.Sprintf("%.0f%%", slider.Slider.Position), styleDivider)
}

func (r *Renderer) drawStage(rect motion.Rect, stage *components.ScrollStageComponent, viewportHeight float64) {
	params := stage.Params
	bw, bh := rect.Width*params.BackdropScale, rect.Height*params.BackdropScale
	r.fill(motion.Rect{
		Left: rect.Left + (rect.Width-bw)/2, Top: rect.Top + (rect.Height-bh)/2,
		Width: bw, Height: bh,
	}, Shade(params.BackdropOpacity*0.5), styleBackdrop)

	layout := systems.StageCardLayout(rect, params, viewportHeight)
	if layout.Alpha <= 0 {
		return
	}
	w, h := layout.Width*layout.Scale, layout.Height*layout.Scale
	card := motion.Rect{Left: layout.CenterX - w/2, Top: layout.CenterY - h/2, Width: w, Height: h}
	r.fill(card, Shade(layout.Alpha), styleCard)
	if layout.Alpha >= 0.5 {
		r.text(int(card.Left)+2, int(card.Top)+1, " "+stage.Title+" ", styleTitle.Reverse(true))
		r.text(int(card.Left)+2, int(card.Top)+2, " "+stage.Subtitle+" ", styleDefault)
	}
}
