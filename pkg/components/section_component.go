package components

import "image/color"

// SectionComponent 静态页面区块（标题、说明文字、背景色）
type SectionComponent struct {
	Title      string
	Subtitle   string
	Background color.RGBA
}
