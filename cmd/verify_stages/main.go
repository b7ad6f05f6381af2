// verify_stages - 展示配置验证程序
// 检查 showcase.yaml 的阶段曲线和 sites.yaml 的站点数据：
// 阈值处连续、进度有界、滑块饱和、修复进度单调
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/motion"
)

const epsilon = 1e-9

// ValidationReport 单项验证结果
type ValidationReport struct {
	TestName string
	Passed   bool
	Message  string
}

var validationReports []ValidationReport

func addReport(testName string, passed bool, message string) {
	validationReports = append(validationReports, ValidationReport{
		TestName: testName,
		Passed:   passed,
		Message:  message,
	})
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	log.Printf("%s | %-28s | %s", status, testName, message)
}

// validateContinuity 阈值两侧的参数必须一致
func validateContinuity(curve motion.StageCurve) {
	for _, edge := range []struct {
		name string
		p    float64
	}{
		{"entrance→steady", curve.EntranceThreshold},
		{"steady→exit", curve.ExitThreshold},
	} {
		before := curve.Evaluate(edge.p - 1e-7)
		at := curve.Evaluate(edge.p)
		gap := math.Max(
			math.Max(math.Abs(before.OffsetVH-at.OffsetVH), math.Abs(before.Opacity-at.Opacity)),
			math.Max(math.Abs(before.Scale-at.Scale), math.Abs(before.BackdropOpacity-at.BackdropOpacity)),
		)
		addReport("continuity "+edge.name, gap < 1e-4, fmt.Sprintf("p=%.2f max gap %.2e", edge.p, gap))
	}
}

// validateSamples 采样点上透明度和进度都在 [0,1] 内
func validateSamples(curve motion.StageCurve, steps int) {
	bad := 0
	for _, s := range curve.Sample(steps) {
		if s.Opacity < -epsilon || s.Opacity > 1+epsilon || s.Progress < 0 || s.Progress > 1 {
			bad++
		}
	}
	addReport("bounded samples", bad == 0, fmt.Sprintf("%d/%d samples out of range", bad, steps+1))
}

// validateProgress 视口外、视口内、零高度视口
func validateProgress() {
	cases := []struct {
		top, vh, want float64
	}{
		{800, 800, 0},
		{400, 800, 0.5},
		{-100, 800, 1},
		{10, 0, 0},
		{0, 0, 1},
	}
	passed := 0
	for _, c := range cases {
		if got := motion.ComputeProgress(motion.Rect{Top: c.top, Height: c.vh}, c.vh); math.Abs(got-c.want) < epsilon {
			passed++
		}
	}
	addReport("scroll progress", passed == len(cases), fmt.Sprintf("%d/%d cases", passed, len(cases)))
}

// validateSlider 越界指针饱和，零宽度滑槽保持原值
func validateSlider(initial float64) {
	track := motion.Rect{Left: 100, Width: 400}
	ok := motion.SliderPercent(50, track, initial) == motion.SliderMin &&
		motion.SliderPercent(900, track, initial) == motion.SliderMax &&
		motion.SliderPercent(300, motion.Rect{Left: 100}, initial) == initial
	addReport("slider clamp", ok, fmt.Sprintf("initial %.1f", initial))
}

// validateSites 修复阶段进度必须在 [0,100] 内且不下降
func validateSites(sites *config.SitesConfig) {
	for _, site := range sites.Sites {
		prev := 0.0
		ok := true
		for _, stage := range site.RestorationStages {
			if stage.Progress < prev || stage.Progress > 100 {
				ok = false
			}
			prev = stage.Progress
		}
		addReport("site "+site.Name, ok, fmt.Sprintf("%d stages, final %.0f%%", len(site.RestorationStages), site.FinalStageProgress()))
	}
}

func main() {
	configPath := flag.String("config", config.DefaultShowcaseConfigPath, "showcase config file")
	steps := flag.Int("steps", 200, "number of curve samples")
	flag.Parse()

	log.Println("========== TimeLeap 展示配置验证 ==========")

	cfg, err := config.LoadShowcaseConfig(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	sites, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		log.Fatalf("加载站点失败: %v", err)
	}

	validateContinuity(cfg.StageCurve)
	validateSamples(cfg.StageCurve, *steps)
	validateProgress()
	validateSlider(cfg.Slider.InitialPosition)
	validateSites(sites)

	failed := 0
	for _, r := range validationReports {
		if !r.Passed {
			failed++
		}
	}
	log.Printf("========== %d 项通过，%d 项失败 ==========", len(validationReports)-failed, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
