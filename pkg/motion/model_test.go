package motion

import "testing"

// TestModelFrameAt 测试模型参数映射
func TestModelFrameAt(t *testing.T) {
	f := ModelFrameAt(0, 85)
	if f.RotationX != 0 || f.GlowBlur != 40 || f.GlowSpread != 10 || f.ContentShiftX != 50 || f.ProgressBar != 0 {
		t.Errorf("ModelFrameAt(0) = %+v", f)
	}

	f = ModelFrameAt(1, 85)
	if f.RingAngle != 360 || f.GlowBlur != 120 || f.ContentOpacity != 1 || f.ContentShiftX != 0 {
		t.Errorf("ModelFrameAt(1) = %+v", f)
	}
	if f.ProgressBar != 0.85 {
		t.Errorf("ProgressBar = %v, want 0.85", f.ProgressBar)
	}

	// 超出范围的输入被限制
	if got := ModelFrameAt(3, 250); got.Progress != 1 || got.ProgressBar != 1 {
		t.Errorf("ModelFrameAt(3, 250) = %+v", got)
	}
}

// TestModelTracker_KeepsProgressOffscreen 区块离开视口后保留上一次进度
func TestModelTracker_KeepsProgressOffscreen(t *testing.T) {
	var tracker ModelTracker

	_, updated := tracker.Observe(Rect{Top: 400, Height: 800}, 1000, 100)
	if !updated || tracker.Progress != 0.6 {
		t.Fatalf("visible section: updated=%v progress=%v", updated, tracker.Progress)
	}

	// 仍在视口下方：不更新
	frame, updated := tracker.Observe(Rect{Top: 1200, Height: 800}, 1000, 100)
	if updated {
		t.Error("offscreen section below viewport should not update")
	}
	if frame.Progress != 0.6 {
		t.Errorf("frame.Progress = %v, want 0.6", frame.Progress)
	}

	// 已完全滚出视口上方：不更新
	if _, updated := tracker.Observe(Rect{Top: -900, Height: 800}, 1000, 100); updated {
		t.Error("section above viewport should not update")
	}

	// 零视口高度：不更新
	if _, updated := tracker.Observe(Rect{Top: 0, Height: 800}, 0, 100); updated {
		t.Error("zero viewport should not update")
	}
}

func TestRect(t *testing.T) {
	r := Rect{Left: 10, Top: 20, Width: 30, Height: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %v/%v", r.Right(), r.Bottom())
	}
	if !r.Contains(10, 20) || !r.Contains(40, 60) || r.Contains(41, 30) {
		t.Error("Contains() boundary mismatch")
	}
	if got := r.Offset(5, -5); got.Left != 15 || got.Top != 15 {
		t.Errorf("Offset() = %+v", got)
	}
}

// TestSectionVisible 测试区块可见性判断
func TestSectionVisible(t *testing.T) {
	tests := []struct {
		name    string
		top     float64
		visible bool
	}{
		{"below viewport", 800, false},
		{"entering from bottom", 799, true},
		{"fully inside", 100, true},
		{"leaving at top", -399, true},
		{"above viewport", -400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SectionVisible(Rect{Top: tt.top, Height: 400}, 800); got != tt.visible {
				t.Errorf("SectionVisible(top=%v) = %v, want %v", tt.top, got, tt.visible)
			}
		})
	}
}
