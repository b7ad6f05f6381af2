package components

import "github.com/decker502/timeleap/pkg/motion"

// ModelViewComponent 滚动驱动的 3D 模型展示区块
// Frame 每帧交给外部 3D 渲染协作者
type ModelViewComponent struct {
	Tracker motion.ModelTracker
	Frame   motion.ModelFrame

	// FinalStageProgress 站点最后一个修复阶段的进度（百分比）
	FinalStageProgress float64

	SiteName string
	Location string
	Built    string
	ModelURL string
}
