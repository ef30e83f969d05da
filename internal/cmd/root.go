// Package cmd provides the entrypoint and CLI command configuration for the
// lazytimeline application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/lazytimeline/internal/config"
	"github.com/kpumuk/lazytimeline/internal/devtools"
	"github.com/kpumuk/lazytimeline/internal/store"
	"github.com/kpumuk/lazytimeline/internal/timeline"
	"github.com/kpumuk/lazytimeline/internal/ui"
	"github.com/kpumuk/lazytimeline/internal/ui/components/timelineview"
	"github.com/kpumuk/lazytimeline/internal/ui/views"
)

const (
	envRedis  = "LAZYTIMELINE_REDIS"
	envConfig = "LAZYTIMELINE_CONFIG"
)

// ErrInvalidWindow is returned when --start and --end do not form a window.
var ErrInvalidWindow = errors.New("invalid window")

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// loadEnv reads .env from the working directory. A missing file is ignored.
func loadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// Execute initializes and runs the lazytimeline terminal application.
func Execute(version, commit, date, builtBy string) error {
	if err := loadEnv(); err != nil {
		return err
	}

	rootCmd := newRootCmd(version)
	rootCmd.Version = buildVersion(version, commit, date, builtBy)
	rootCmd.SetVersionTemplate(`lazytimeline {{printf "version %s\n" .Version}}`)

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

func newRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazytimeline",
		Short: "A terminal timeline for grouped time ranges.",
		Long:  "A terminal timeline for grouped time ranges stored in a YAML file or in Redis.",
		Args:  cobra.NoArgs,
	}

	rootCmd.PersistentFlags().String(
		"config",
		os.Getenv(envConfig),
		"path to a YAML config file",
	)
	rootCmd.PersistentFlags().String(
		"data",
		"",
		"path to a YAML dataset (overrides --redis)",
	)
	rootCmd.PersistentFlags().String(
		"redis",
		os.Getenv(envRedis),
		"redis URL (default "+store.DefaultRedisURL+")",
	)
	rootCmd.PersistentFlags().String(
		"prefix",
		"",
		"redis key prefix (default "+config.DefaultKeyPrefix+")",
	)

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)
	rootCmd.Flags().String(
		"debug-log",
		"",
		"write debug log to file",
	)
	rootCmd.Flags().String(
		"start",
		"",
		"start of the initial window (RFC3339)",
	)
	rootCmd.Flags().String(
		"end",
		"",
		"end of the initial window (RFC3339)",
	)
	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for lazytimeline",
	)

	normalize := func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		name = strings.ReplaceAll(name, "_", "-")
		switch name {
		case "file", "dataset":
			name = "data"
		}
		return pflag.NormalizedName(name)
	}
	rootCmd.SetGlobalNormalizationFunc(normalize)

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runUI(cmd, version)
	}

	rootCmd.AddCommand(newLayoutCmd(), newSeedCmd())
	return rootCmd
}

func runUI(cmd *cobra.Command, version string) error {
	flags := cmd.Flags()
	cpuprofile, err := flags.GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("parse cpuprofile flag: %w", err)
	}
	debugLog, err := flags.GetString("debug-log")
	if err != nil {
		return fmt.Errorf("parse debug-log flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	steps, err := cfg.Steps()
	if err != nil {
		return err
	}
	window, err := windowFlags(cmd)
	if err != nil {
		return err
	}

	tracker := devtools.NewTracker()
	source, name, err := openSource(cmd, cfg, tracker)
	if err != nil {
		return err
	}
	defer func() {
		_ = source.Close()
	}()

	if debugLog != "" {
		f, err := tea.LogToFile(debugLog, "lazytimeline")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
	}

	var profileFile *os.File
	if cpuprofile != "" {
		file, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("create cpuprofile file: %w", err)
		}
		profileFile = file
		if err := pprof.StartCPUProfile(profileFile); err != nil {
			_ = profileFile.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = profileFile.Close()
		}()
	}

	minZoom, maxZoom := cfg.ZoomLimits()
	app := ui.New(source,
		ui.WithTracker(tracker),
		ui.WithSourceName(name),
		ui.WithBrand("lazytimeline "+version),
		ui.WithTimelineOptions(
			views.WithInitialWindow(window),
			views.WithZoomLimits(minZoom, maxZoom),
			views.WithChartOptions(
				timelineview.WithLayout(cfg.TerminalLayout()),
				timelineview.WithSteps(steps),
			),
		),
	)
	p := tea.NewProgram(app)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run lazytimeline: %w", err)
	}

	return nil
}

// loadConfig reads --config over the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("parse config flag: %w", err)
	}
	return config.Load(path)
}

// openSource picks the dataset file when one is set, else Redis. Flags take
// precedence over the config file. The returned name labels the source in
// the UI.
func openSource(cmd *cobra.Command, cfg config.Config, tracker *devtools.Tracker) (store.Source, string, error) {
	flags := cmd.Flags()
	dataPath, err := flags.GetString("data")
	if err != nil {
		return nil, "", fmt.Errorf("parse data flag: %w", err)
	}
	if dataPath == "" {
		dataPath = cfg.Source.File
	}
	if dataPath != "" {
		ds, err := store.LoadDataset(dataPath)
		if err != nil {
			return nil, "", err
		}
		return store.NewFileSource(ds), dataPath, nil
	}

	rdb, err := openRedis(cmd, cfg, tracker)
	if err != nil {
		return nil, "", err
	}
	return rdb, rdb.DisplayRedisURL(), nil
}

func openRedis(cmd *cobra.Command, cfg config.Config, tracker *devtools.Tracker) (*store.RedisSource, error) {
	flags := cmd.Flags()
	redisURL, err := flags.GetString("redis")
	if err != nil {
		return nil, fmt.Errorf("parse redis flag: %w", err)
	}
	prefix, err := flags.GetString("prefix")
	if err != nil {
		return nil, fmt.Errorf("parse prefix flag: %w", err)
	}
	if redisURL == "" {
		redisURL = cfg.Source.Redis
	}
	if prefix == "" {
		prefix = cfg.Source.KeyPrefix
	}

	rdb, err := store.NewRedisSource(redisURL, prefix, tracker)
	if err != nil {
		return nil, fmt.Errorf("create redis client: %w", err)
	}
	return rdb, nil
}

// windowFlags reads --start and --end. Both empty yields a zero window.
func windowFlags(cmd *cobra.Command) (timeline.TimeWindow, error) {
	start, err := cmd.Flags().GetString("start")
	if err != nil {
		return timeline.TimeWindow{}, fmt.Errorf("parse start flag: %w", err)
	}
	end, err := cmd.Flags().GetString("end")
	if err != nil {
		return timeline.TimeWindow{}, fmt.Errorf("parse end flag: %w", err)
	}
	return parseWindow(start, end)
}

func parseWindow(start, end string) (timeline.TimeWindow, error) {
	if start == "" && end == "" {
		return timeline.TimeWindow{}, nil
	}
	if start == "" || end == "" {
		return timeline.TimeWindow{}, fmt.Errorf("--start and --end go together: %w", ErrInvalidWindow)
	}
	from, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return timeline.TimeWindow{}, fmt.Errorf("parse --start: %w", err)
	}
	to, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return timeline.TimeWindow{}, fmt.Errorf("parse --end: %w", err)
	}
	w := timeline.WindowOf(from, to)
	if !w.Valid() {
		return timeline.TimeWindow{}, fmt.Errorf("%s is not after %s: %w", end, start, ErrInvalidWindow)
	}
	return w, nil
}
