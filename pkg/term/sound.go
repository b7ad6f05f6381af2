package term

import (
	"sync"
	"time"

	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/motion"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	tickDuration = 60 * time.Millisecond
	tickVolume   = -2.0 // 以 2 为底的音量衰减
)

// Sound 拖拽释放时的提示音
type Sound interface {
	// Tick 播放一次提示音，position 为释放时的分割位置（0~100）
	Tick(position float64)
	Close()
}

// NopSound 静音实现
type NopSound struct{}

func (NopSound) Tick(float64) {}
func (NopSound) Close()       {}

// BeepSound 使用扬声器播放短促的正弦音
// 音高随分割位置从 440Hz 升到 880Hz
type BeepSound struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewBeepSound 初始化扬声器，没有音频设备时返回错误
func NewBeepSound() (*BeepSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, err
	}
	s := &BeepSound{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Tick 播放一次提示音
func (s *BeepSound) Tick(position float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	tone, err := generators.SineTone(sampleRate, motion.SliderTone(position))
	if err != nil {
		logging.Named("Sound").Debugf("tone generation failed: %v", err)
		return
	}
	streamer := &effects.Volume{
		Streamer: beep.Take(sampleRate.N(tickDuration), tone),
		Base:     2,
		Volume:   tickVolume,
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close 停止播放并关闭扬声器
func (s *BeepSound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
