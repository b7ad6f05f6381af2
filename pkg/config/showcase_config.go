package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/decker502/timeleap/pkg/embedded"
	"github.com/decker502/timeleap/pkg/motion"
	"gopkg.in/yaml.v3"
)

// DefaultShowcaseConfigPath 默认展示配置路径
const DefaultShowcaseConfigPath = "data/showcase.yaml"

// ErrInvalidConfig 配置不合法
var ErrInvalidConfig = errors.New("invalid showcase config")

// WindowConfig 窗口配置
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// SliderConfig 对比滑块配置
type SliderConfig struct {
	InitialPosition float64 `yaml:"initialPosition"` // 初始分割位置 0~100
}

// ScrollConfig 页面滚动配置
type ScrollConfig struct {
	WheelStep float64 `yaml:"wheelStep"` // 每格滚轮滚动的像素数
	KeyStep   float64 `yaml:"keyStep"`   // 方向键滚动的像素数
}

// ReconstructConfig 重建服务配置
type ReconstructConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Timeout time.Duration `yaml:"timeout"`
}

// ShowcaseConfig 展示页配置
type ShowcaseConfig struct {
	Window      WindowConfig      `yaml:"window"`
	StageCurve  motion.StageCurve `yaml:"stageCurve"`
	Slider      SliderConfig      `yaml:"slider"`
	Scroll      ScrollConfig      `yaml:"scroll"`
	SitesFile   string            `yaml:"sitesFile"`
	Reconstruct ReconstructConfig `yaml:"reconstruct"`
}

// DefaultShowcaseConfig 返回默认配置
func DefaultShowcaseConfig() *ShowcaseConfig {
	return &ShowcaseConfig{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "TimeLeap - Digital Heritage Reconstruction",
		},
		StageCurve: motion.DefaultStageCurve(),
		Slider:     SliderConfig{InitialPosition: motion.DefaultSliderPosition},
		Scroll:     ScrollConfig{WheelStep: 60, KeyStep: 40},
		SitesFile:  DefaultSitesPath,
		Reconstruct: ReconstructConfig{
			Timeout: 5 * time.Minute,
		},
	}
}

// Validate 校验配置
func (c *ShowcaseConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if err := c.StageCurve.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Slider.InitialPosition < motion.SliderMin || c.Slider.InitialPosition > motion.SliderMax {
		return fmt.Errorf("%w: slider.initialPosition %.2f out of [0,100]", ErrInvalidConfig, c.Slider.InitialPosition)
	}
	if c.Scroll.WheelStep <= 0 {
		return fmt.Errorf("%w: scroll.wheelStep must be > 0", ErrInvalidConfig)
	}
	if c.Reconstruct.Timeout < 0 {
		return fmt.Errorf("%w: reconstruct.timeout must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ParseShowcaseConfig 解析 YAML 配置
// 未出现的字段保留默认值
func ParseShowcaseConfig(data []byte) (*ShowcaseConfig, error) {
	cfg := DefaultShowcaseConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse showcase YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadShowcaseConfig 加载展示配置
// 优先读取磁盘文件（便于热加载），不存在时回退到嵌入数据
func LoadShowcaseConfig(path string) (*ShowcaseConfig, error) {
	data, err := readDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read showcase config: %w", err)
	}
	cfg, err := ParseShowcaseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// readDataFile 读取数据文件：磁盘优先，其次嵌入文件系统
func readDataFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) || !embedded.IsInitialized() {
		return nil, err
	}
	return embedded.ReadFile(path)
}
