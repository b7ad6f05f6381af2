// TimeLeap 数字遗产展示
//
// 默认打开 Ebitengine 窗口；term 子命令在终端中预览同一个展示页，
// reconstruct 子命令把照片上传到重建服务，stages 打印三阶段动画曲线。
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/decker502/timeleap/pkg/app"
	"github.com/decker502/timeleap/pkg/config"
	"github.com/decker502/timeleap/pkg/embedded"
	"github.com/decker502/timeleap/pkg/game"
	"github.com/decker502/timeleap/pkg/logging"
	"github.com/decker502/timeleap/pkg/reconstruct"
	"github.com/decker502/timeleap/pkg/term"
	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	// 全局参数
	verbose    bool
	configPath string

	// show
	siteID     int
	fullscreen bool
	watch      bool

	// reconstruct
	outDir  string
	baseURL string

	// stages
	steps int
)

var rootCmd = &cobra.Command{
	Use:   "timeleap",
	Short: "TimeLeap - digital heritage reconstruction showcase",
	Long: `TimeLeap shows a historical site as a scroll-driven page:
a rotating model view, a before/after comparison slider and a
three-phase call-to-action card.

Run without a subcommand to open the desktop window.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		embedded.Init(dataFS)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runShow,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Open the showcase window",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Preview the showcase in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runTerm,
}

var reconstructCmd = &cobra.Command{
	Use:   "reconstruct <image>",
	Short: "Upload a photo to the reconstruction service and save the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runReconstruct,
}

var stagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Print the call-to-action stage curve",
	Args:  cobra.NoArgs,
	RunE:  runStages,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultShowcaseConfigPath, "Showcase config file")

	for _, cmd := range []*cobra.Command{rootCmd, showCmd} {
		cmd.Flags().IntVar(&siteID, "site", 0, "Site to open (0 = last viewed)")
		cmd.Flags().BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen")
		cmd.Flags().BoolVar(&watch, "watch", false, "Reload the stage curve when the config file changes")
	}
	termCmd.Flags().IntVar(&siteID, "site", 0, "Site to open (0 = last viewed)")

	reconstructCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory for the reconstructed views and model")
	reconstructCmd.Flags().StringVar(&baseURL, "base-url", "", "Reconstruction service URL (default from config)")

	stagesCmd.Flags().IntVar(&steps, "steps", 20, "Number of sampling intervals")

	rootCmd.AddCommand(showCmd, termCmd, reconstructCmd, stagesCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := app.NewApp(app.Config{
		ConfigPath: configPath,
		SiteID:     siteID,
		Fullscreen: fullscreen,
		Watch:      watch,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	a.ApplyWindowSettings()
	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// loadShowcase 读取展示配置和站点数据
func loadShowcase() (*config.ShowcaseConfig, *config.SitesConfig, error) {
	cfg, err := config.LoadShowcaseConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	sites, err := config.LoadSites(cfg.SitesFile)
	if err != nil {
		return nil, nil, err
	}
	return cfg, sites, nil
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, sites, err := loadShowcase()
	if err != nil {
		return err
	}
	settings := game.OpenSettings(app.AppName)

	var sound term.Sound = term.NopSound{}
	if settings.GetSettings().SoundEnabled {
		if s, err := term.NewBeepSound(); err != nil {
			logging.Named("Term").Warnf("声音不可用: %v", err)
		} else {
			sound = s
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		sound.Close()
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		sound.Close()
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	preview, err := term.New(screen, term.Options{
		Config:   cfg,
		Sites:    sites,
		Settings: settings,
		Sound:    sound,
		SiteID:   siteID,
	})
	if err != nil {
		sound.Close()
		return err
	}
	defer preview.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := preview.Run(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	return nil
}

func runReconstruct(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadShowcaseConfig(configPath)
	if err != nil {
		return err
	}
	url := baseURL
	if url == "" {
		url = cfg.Reconstruct.BaseURL
	}
	if url == "" {
		return errors.New("no reconstruction service configured, pass --base-url")
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	out := cmd.ErrOrStderr()
	tracker := reconstruct.NewTracker(func(s reconstruct.Snapshot) {
		fmt.Fprintf(out, "%-10s %3d%%\n", s.Status, s.Progress)
	})
	client := reconstruct.NewClient(url, cfg.Reconstruct.Timeout)
	result, err := tracker.Run(cmd.Context(), client, filepath.Base(path), f)
	if err != nil {
		if apiErr, ok := reconstruct.IsAPIError(err); ok {
			return fmt.Errorf("reconstruction service returned %d: %s", apiErr.StatusCode, apiErr.Message)
		}
		return err
	}

	saved, err := result.Save(outDir)
	if err != nil {
		return err
	}
	for _, p := range saved {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

func runStages(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadShowcaseConfig(configPath)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PROGRESS\tPHASE\tLOCAL\tOFFSET(VH)\tOPACITY\tSCALE\tBACKDROP SCALE\tBACKDROP OPACITY")
	for _, s := range cfg.StageCurve.Sample(steps) {
		fmt.Fprintf(w, "%.3f\t%s\t%.3f\t%.2f\t%.3f\t%.4f\t%.4f\t%.3f\n",
			s.Progress, s.Phase, s.Local, s.OffsetVH, s.Opacity, s.Scale, s.BackdropScale, s.BackdropOpacity)
	}
	return w.Flush()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
