package game

import (
	"math"
	"sync"
	"time"

	"github.com/decker502/timeleap/pkg/motion"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// 提示音参数
const (
	AudioSampleRate = 44100
	tickDuration    = 60 * time.Millisecond
	tickAmplitude   = 0.25
	bytesPerFrame   = 4 // 16 位立体声
)

// AudioManager 音频管理器
// 职责：
//   - 在滑块拖拽结束时播放短促的提示音（音高随分割位置变化）
//   - 与 SettingsManager 联动，声音关闭时不播放
type AudioManager struct {
	mu       sync.Mutex
	context  *audio.Context
	settings *SettingsManager
	players  []*audio.Player // 正在播放的提示音
	closed   bool
}

// NewAudioManager 创建音频管理器
// 进程内只能有一个 audio.Context，已存在时直接复用
func NewAudioManager(sm *SettingsManager) *AudioManager {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(AudioSampleRate)
	}
	return newAudioManager(ctx, sm)
}

func newAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	return &AudioManager{context: ctx, settings: sm}
}

// PlayTick 播放一次提示音
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlayTick(position float64) bool {
	am.mu.Lock()
	defer am.mu.Unlock()

	if am.closed || am.context == nil {
		return false
	}
	if am.settings != nil && !am.settings.GetSettings().SoundEnabled {
		return false // 声音已关闭
	}

	am.releaseFinished()
	player := am.context.NewPlayerFromBytes(TonePCM(motion.SliderTone(position), AudioSampleRate, tickDuration))
	player.Play()
	am.players = append(am.players, player)
	return true
}

// releaseFinished 关闭已经播放完的播放器
func (am *AudioManager) releaseFinished() {
	playing := am.players[:0]
	for _, p := range am.players {
		if p.IsPlaying() {
			playing = append(playing, p)
			continue
		}
		_ = p.Close()
	}
	am.players = playing
}

// Close 停止所有提示音
func (am *AudioManager) Close() {
	am.mu.Lock()
	defer am.mu.Unlock()
	if am.closed {
		return
	}
	am.closed = true
	for _, p := range am.players {
		_ = p.Close()
	}
	am.players = nil
}

// TonePCM 生成 16 位小端立体声正弦波
// 末尾线性淡出，避免截断时的爆音
func TonePCM(freq float64, sampleRate int, d time.Duration) []byte {
	frames := int(float64(sampleRate) * d.Seconds())
	if frames <= 0 || !(freq > 0) {
		return nil
	}
	buf := make([]byte, frames*bytesPerFrame)
	for i := 0; i < frames; i++ {
		envelope := 1 - float64(i)/float64(frames)
		v := int16(math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * tickAmplitude * envelope * math.MaxInt16)
		off := i * bytesPerFrame
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v)
		buf[off+3] = byte(v >> 8)
	}
	return buf
}
