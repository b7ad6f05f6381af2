package components

// PositionComponent 实体在页面内容中的位置（内容坐标，不随滚动变化）
type PositionComponent struct {
	X float64
	Y float64
}

// SizeComponent 实体的尺寸
type SizeComponent struct {
	Width  float64
	Height float64
}
