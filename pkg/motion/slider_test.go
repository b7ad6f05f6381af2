package motion

import (
	"math"
	"testing"
)

// TestSliderPercent 测试分割百分比计算
func TestSliderPercent(t *testing.T) {
	tests := []struct {
		name     string
		pointerX float64
		track    Rect
		prev     float64
		expected float64
	}{
		{name: "中间位置", pointerX: 300, track: Rect{Left: 100, Width: 400}, prev: 10, expected: 50},
		{name: "左边界", pointerX: 100, track: Rect{Left: 100, Width: 400}, prev: 10, expected: 0},
		{name: "右边界", pointerX: 500, track: Rect{Left: 100, Width: 400}, prev: 10, expected: 100},
		{name: "左侧越界饱和为0", pointerX: -50, track: Rect{Left: 0, Width: 500}, prev: 40, expected: 0},
		{name: "右侧越界饱和为100", pointerX: 9000, track: Rect{Left: 0, Width: 500}, prev: 40, expected: 100},
		{name: "零宽度保留上一次位置", pointerX: 300, track: Rect{Left: 100, Width: 0}, prev: 37, expected: 37},
		{name: "负宽度保留上一次位置", pointerX: 300, track: Rect{Left: 100, Width: -20}, prev: 37, expected: 37},
		{name: "零宽度时上一次位置也被限制", pointerX: 300, track: Rect{Left: 100, Width: 0}, prev: 180, expected: 100},
		{name: "NaN 指针保留上一次位置", pointerX: math.NaN(), track: Rect{Left: 0, Width: 100}, prev: 25, expected: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SliderPercent(tt.pointerX, tt.track, tt.prev)
			if got != tt.expected {
				t.Errorf("SliderPercent() = %v, want %v", got, tt.expected)
			}
		})
	}
}

// TestSliderPercent_Saturation 滑槽之外的任意指针位置只会得到 0 或 100
func TestSliderPercent_Saturation(t *testing.T) {
	track := Rect{Left: 120, Width: 333}
	for x := -2000.0; x < track.Left; x += 7.5 {
		if got := SliderPercent(x, track, 50); got != 0 {
			t.Fatalf("pointer %v left of track: got %v, want 0", x, got)
		}
	}
	for x := track.Right() + 0.5; x < 4000; x += 7.5 {
		if got := SliderPercent(x, track, 50); got != 100 {
			t.Fatalf("pointer %v right of track: got %v, want 100", x, got)
		}
	}
	for x := track.Left; x <= track.Right(); x += 1.25 {
		got := SliderPercent(x, track, 50)
		if got < 0 || got > 100 {
			t.Fatalf("pointer %v inside track: got %v out of range", x, got)
		}
	}
}

// TestSlider_DragLifecycle 测试拖拽生命周期
func TestSlider_DragLifecycle(t *testing.T) {
	track := Rect{Left: 100, Width: 400}
	s := NewSlider(DefaultSliderPosition)

	if s.Update(100, track) {
		t.Error("Update() before BeginDrag should be a no-op")
	}
	if s.Position != 50 {
		t.Errorf("Position = %v, want 50", s.Position)
	}

	s.BeginDrag()
	if !s.IsDragging() {
		t.Fatal("IsDragging() = false after BeginDrag")
	}
	if !s.Update(200, track) {
		t.Error("Update() during drag should report a change")
	}
	if s.Position != 25 {
		t.Errorf("Position = %v, want 25", s.Position)
	}
	if s.Update(200, track) {
		t.Error("Update() with same pointer should not report a change")
	}

	s.EndDrag()
	if s.IsDragging() {
		t.Fatal("IsDragging() = true after EndDrag")
	}
	s.Update(500, track)
	if s.Position != 25 {
		t.Errorf("Position changed after EndDrag: %v", s.Position)
	}
}

func TestNewSlider_ClampsInitial(t *testing.T) {
	if got := NewSlider(140).Position; got != 100 {
		t.Errorf("NewSlider(140).Position = %v, want 100", got)
	}
	if got := NewSlider(-3).Position; got != 0 {
		t.Errorf("NewSlider(-3).Position = %v, want 0", got)
	}
	if got := NewSlider(math.Inf(1)).Position; got != DefaultSliderPosition {
		t.Errorf("NewSlider(+Inf).Position = %v, want %v", got, DefaultSliderPosition)
	}
}

func TestClipInset(t *testing.T) {
	cases := map[float64]float64{0: 100, 25: 75, 100: 0, 130: 0, -10: 100}
	for pos, want := range cases {
		if got := ClipInset(pos); got != want {
			t.Errorf("ClipInset(%v) = %v, want %v", pos, got, want)
		}
	}
}

// TestSliderTone 测试提示音音高
func TestSliderTone(t *testing.T) {
	tests := []struct {
		position float64
		expected float64
	}{
		{0, 440},
		{50, 660},
		{100, 880},
		{250, 880},
		{-5, 440},
		{math.NaN(), 660},
	}
	for _, tt := range tests {
		if got := SliderTone(tt.position); got != tt.expected {
			t.Errorf("SliderTone(%v) = %v, want %v", tt.position, got, tt.expected)
		}
	}
}
