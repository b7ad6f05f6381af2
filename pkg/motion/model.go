package motion

// ModelFrame 每帧交给外部 3D 渲染协作者的参数
// 本仓库只负责计算这些数值，不负责渲染
type ModelFrame struct {
	Progress float64

	RotationX float64 // 模型绕 X 轴旋转（弧度）
	RotationY float64 // 模型绕 Y 轴旋转（弧度）

	GlowBlur   float64 // 光晕模糊半径（像素）
	GlowSpread float64 // 光晕扩散（像素）
	GlowAlpha  float64 // 光晕透明度

	RingAngle   float64 // 旋转边框起始角度（度）
	RingOpacity float64 // 旋转边框透明度

	ContentOpacity float64 // 文案区透明度
	ContentShiftX  float64 // 文案区水平偏移（像素）

	ProgressBar float64 // 修复进度条填充比例 [0,1]
}

// ModelFrameAt 计算进度 p 对应的模型参数
// finalStageProgress 为站点最后一个修复阶段的进度百分比
func ModelFrameAt(p, finalStageProgress float64) ModelFrame {
	p = Clamp(p, 0, 1)
	return ModelFrame{
		Progress:       p,
		RotationX:      p * 0.1,
		RotationY:      p * 0.1,
		GlowBlur:       40 + p*80,
		GlowSpread:     10 + p*30,
		GlowAlpha:      0.2 + p*0.3,
		RingAngle:      p * 360,
		RingOpacity:    p * 0.6,
		ContentOpacity: p,
		ContentShiftX:  (1 - p) * 50,
		ProgressBar:    p * Clamp(finalStageProgress, 0, 100) / 100,
	}
}

// ModelTracker 跟踪模型区块的滚动进度
// 区块不在视口内时保留上一次的进度
type ModelTracker struct {
	Progress float64
}

// Observe 根据区块几何更新进度
// 返回当前帧参数，以及本次是否真正更新了进度
func (t *ModelTracker) Observe(element Rect, viewportHeight, finalStageProgress float64) (ModelFrame, bool) {
	updated := false
	if viewportHeight > 0 && SectionVisible(element, viewportHeight) {
		t.Progress = ComputeProgress(element, viewportHeight)
		updated = true
	}
	return ModelFrameAt(t.Progress, finalStageProgress), updated
}
