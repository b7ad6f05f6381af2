package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultSitesPath 默认站点数据路径
const DefaultSitesPath = "data/sites.yaml"

// ErrSiteNotFound 站点不存在
var ErrSiteNotFound = errors.New("site not found")

// RestorationStage 修复阶段
type RestorationStage struct {
	Year     string  `yaml:"year"`
	Status   string  `yaml:"status"`
	Progress float64 `yaml:"progress"` // 百分比 0~100
}

// ModelScales 模型缩放
type ModelScales struct {
	Before float64 `yaml:"before"`
	After  float64 `yaml:"after"`
}

// SiteModels 站点的 3D 模型
type SiteModels struct {
	Before string      `yaml:"before"`
	After  string      `yaml:"after"`
	Scales ModelScales `yaml:"scales"`
}

// HistoricalSite 历史遗址记录
// 交互核心只使用 BeforeImage / AfterImage，其余字段用于页面展示
type HistoricalSite struct {
	ID                int                `yaml:"id"`
	Name              string             `yaml:"name"`
	Location          string             `yaml:"location"`
	Era               string             `yaml:"era"`
	ArchitectureType  string             `yaml:"architectureType"`
	Region            string             `yaml:"region"`
	Description       string             `yaml:"description"`
	Thumbnail         string             `yaml:"thumbnail"`
	BeforeImage       string             `yaml:"beforeImage"`
	AfterImage        string             `yaml:"afterImage"`
	Materials         []string           `yaml:"materials"`
	YearBuilt         string             `yaml:"yearBuilt"`
	YearDestroyed     string             `yaml:"yearDestroyed"`
	RestorationStages []RestorationStage `yaml:"restorationStages"`
	Models            *SiteModels        `yaml:"models,omitempty"`
}

// FinalStageProgress 最后一个修复阶段的进度，没有阶段时为 0
func (s *HistoricalSite) FinalStageProgress() float64 {
	if len(s.RestorationStages) == 0 {
		return 0
	}
	return s.RestorationStages[len(s.RestorationStages)-1].Progress
}

// SitesConfig 站点数据文件
type SitesConfig struct {
	Sites []HistoricalSite `yaml:"sites"`
}

// ParseSites 解析站点数据
func ParseSites(data []byte) (*SitesConfig, error) {
	var cfg SitesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse sites YAML: %w", err)
	}
	if err := validateSites(&cfg); err != nil {
		return nil, fmt.Errorf("invalid sites data: %w", err)
	}
	return &cfg, nil
}

// LoadSites 加载站点数据
func LoadSites(path string) (*SitesConfig, error) {
	data, err := readDataFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}
	return ParseSites(data)
}

// validateSites 校验站点数据
func validateSites(cfg *SitesConfig) error {
	if len(cfg.Sites) == 0 {
		return errors.New("no sites defined")
	}
	seen := make(map[int]bool, len(cfg.Sites))
	for i := range cfg.Sites {
		site := &cfg.Sites[i]
		if seen[site.ID] {
			return fmt.Errorf("duplicate site id %d", site.ID)
		}
		seen[site.ID] = true
		if site.BeforeImage == "" || site.AfterImage == "" {
			return fmt.Errorf("site %d (%s): beforeImage and afterImage are required", site.ID, site.Name)
		}
		for _, stage := range site.RestorationStages {
			if stage.Progress < 0 || stage.Progress > 100 {
				return fmt.Errorf("site %d (%s): stage progress %.1f out of [0,100]", site.ID, site.Name, stage.Progress)
			}
		}
	}
	return nil
}

// Find 根据 ID 查找站点
func (c *SitesConfig) Find(id int) (*HistoricalSite, error) {
	for i := range c.Sites {
		if c.Sites[i].ID == id {
			return &c.Sites[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrSiteNotFound, id)
}

// IndexOf 返回站点在列表中的下标，找不到时返回 0
func (c *SitesConfig) IndexOf(id int) int {
	for i := range c.Sites {
		if c.Sites[i].ID == id {
			return i
		}
	}
	return 0
}
