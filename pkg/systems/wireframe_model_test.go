package systems

import (
	"math"
	"testing"

	"github.com/decker502/timeleap/pkg/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireframeModelRecordsFrames(t *testing.T) {
	w := NewWireframeModel()
	_, ok := w.Frame(7)
	assert.False(t, ok)

	frame := motion.ModelFrameAt(0.5, 80)
	w.ApplyModelFrame(7, frame)
	got, ok := w.Frame(7)
	require.True(t, ok)
	assert.Equal(t, frame, got)

	w.Forget(7)
	_, ok = w.Frame(7)
	assert.False(t, ok)
}

// TestWireframeSegmentsBounded 投影结果保持在包围圆内
func TestWireframeSegmentsBounded(t *testing.T) {
	w := NewWireframeModel()
	const cx, cy, size = 300.0, 200.0, 50.0
	limit := size * math.Sqrt(3)

	for _, p := range []float64{0, 0.25, 0.5, 1} {
		segs := w.Segments(motion.ModelFrameAt(p, 100), cx, cy, size)
		require.Len(t, segs, 12)
		for _, s := range segs {
			assert.LessOrEqual(t, math.Hypot(s.X1-cx, s.Y1-cy), limit+1e-9)
			assert.LessOrEqual(t, math.Hypot(s.X2-cx, s.Y2-cy), limit+1e-9)
		}
	}
}

// TestWireframeRotatesWithProgress 进度变化时线框随之旋转
func TestWireframeRotatesWithProgress(t *testing.T) {
	w := NewWireframeModel()
	a := w.Segments(motion.ModelFrameAt(0, 100), 0, 0, 10)
	b := w.Segments(motion.ModelFrameAt(1, 100), 0, 0, 10)
	assert.NotEqual(t, a, b)

	// 相同参数投影结果一致
	assert.Equal(t, a, w.Segments(motion.ModelFrameAt(0, 100), 0, 0, 10))
}
