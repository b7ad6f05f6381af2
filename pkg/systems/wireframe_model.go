package systems

import (
	"math"

	"github.com/decker502/timeleap/pkg/ecs"
	"github.com/decker502/timeleap/pkg/motion"
)

// Segment 屏幕上的一条线段
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// cubeVertices 单位立方体的 8 个顶点
var cubeVertices = [8][3]float64{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// cubeEdges 立方体的 12 条棱（顶点索引）
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// baseTilt 线框的基础视角，让立方体在进度为 0 时也能看出立体感
const (
	baseTiltX = -0.45
	baseTiltY = 0.6
)

// WireframeModel 3D 模型的线框替身
// 作为 ModelFrameHook 接收每帧参数，绘制时按参数旋转
type WireframeModel struct {
	frames map[ecs.EntityID]motion.ModelFrame
}

// NewWireframeModel 创建线框替身
func NewWireframeModel() *WireframeModel {
	return &WireframeModel{frames: make(map[ecs.EntityID]motion.ModelFrame)}
}

// ApplyModelFrame 记录实体最新的模型参数
func (w *WireframeModel) ApplyModelFrame(id ecs.EntityID, frame motion.ModelFrame) {
	w.frames[id] = frame
}

// Frame 返回实体最近一次收到的参数
func (w *WireframeModel) Frame(id ecs.EntityID) (motion.ModelFrame, bool) {
	f, ok := w.frames[id]
	return f, ok
}

// Forget 移除实体的参数（实体销毁时调用）
func (w *WireframeModel) Forget(id ecs.EntityID) {
	delete(w.frames, id)
}

// Segments 把立方体投影到以 (cx, cy) 为中心、半边长为 size 的屏幕区域
func (w *WireframeModel) Segments(frame motion.ModelFrame, cx, cy, size float64) []Segment {
	ax := baseTiltX + frame.RotationX
	ay := baseTiltY + frame.RotationY
	sinX, cosX := math.Sincos(ax)
	sinY, cosY := math.Sincos(ay)

	var projected [8][2]float64
	for i, v := range cubeVertices {
		// 先绕 Y 轴，再绕 X 轴，正交投影
		x := v[0]*cosY + v[2]*sinY
		z := -v[0]*sinY + v[2]*cosY
		y := v[1]*cosX - z*sinX
		projected[i] = [2]float64{cx + x*size, cy + y*size}
	}

	segments := make([]Segment, 0, len(cubeEdges))
	for _, e := range cubeEdges {
		a, b := projected[e[0]], projected[e[1]]
		segments = append(segments, Segment{X1: a[0], Y1: a[1], X2: b[0], Y2: b[1]})
	}
	return segments
}
