package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/mediasort/internal/config"
	"github.com/Nomadcxx/mediasort/internal/logger"
	"github.com/Nomadcxx/mediasort/internal/matcher"
	"github.com/Nomadcxx/mediasort/internal/media"
	"github.com/Nomadcxx/mediasort/internal/planner"
	"github.com/Nomadcxx/mediasort/internal/reporter"
	"github.com/Nomadcxx/mediasort/internal/scanner"
	"github.com/Nomadcxx/mediasort/internal/ui"
)

var (
	cfgFile string

	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

type scanFlags struct {
	json      bool
	save      bool
	threshold float64
	workers   int
	year      int
}

var (
	scanOpts  scanFlags
	parseRoot string
	parseJSON bool
	planMedia string
	planJSON  bool
	forceInit bool
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "mediasort",
		Short:         "Sort downloaded TV episodes and movies into a media library",
		Long:          getLongDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/mediasort/config.toml)")

	scanCmd := &cobra.Command{
		Use:   "scan [roots...]",
		Short: "Scan directories and group media files by title",
		RunE:  runScan,
	}
	scanCmd.Flags().BoolVar(&scanOpts.json, "json", false, "print the report as JSON")
	scanCmd.Flags().BoolVar(&scanOpts.save, "save", false, "save the report to the reports directory")
	scanCmd.Flags().Float64Var(&scanOpts.threshold, "threshold", 0, "title similarity needed to share a group (0-1)")
	scanCmd.Flags().IntVar(&scanOpts.workers, "workers", 0, "number of classification workers")
	scanCmd.Flags().IntVar(&scanOpts.year, "year", 0, "reference year for bare episode numbers (default: current year)")

	parseCmd := &cobra.Command{
		Use:   "parse <path>",
		Short: "Show what mediasort infers from a single path",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	parseCmd.Flags().StringVar(&parseRoot, "root", "", "scan root the path belongs to (default: its directory)")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "print the result as JSON")

	reviewCmd := &cobra.Command{
		Use:   "review [report.json]",
		Short: "Review a scan report and choose which files to organize",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReview,
	}

	planCmd := &cobra.Command{
		Use:   "plan [report.json]",
		Short: "Show where the selected files of a report would be organized to",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlan,
	}
	planCmd.Flags().StringVar(&planMedia, "media", "", "media library root (default: paths.media from config)")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the plan as JSON")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration file location and contents",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	configInitCmd.Flags().BoolVar(&forceInit, "force", false, "overwrite an existing config file")
	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd, configPathCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mediasort %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
		},
	}

	rootCmd.AddCommand(scanCmd, parseCmd, reviewCmd, planCmd, configCmd, versionCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.FormatStatusFail(err.Error()))
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Exit code 130 for SIGINT
		}
		os.Exit(1)
	}
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.ConfigPath()
}

// loadConfig loads the config and sets up logging from it
func loadConfig() (*config.Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	logger.Configure(logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = cfg.Roots()
	}
	if len(roots) == 0 {
		return fmt.Errorf("no scan roots: pass directories or set paths.downloads in %s", cfgFileOrDefault())
	}

	opts := cfg.ScanOptions()
	if cmd.Flags().Changed("threshold") {
		opts.Threshold = scanOpts.threshold
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = scanOpts.workers
	}
	if cmd.Flags().Changed("year") {
		opts.Year = scanOpts.year
	}
	if opts.Threshold <= 0 || opts.Threshold > 1 {
		return fmt.Errorf("invalid threshold %v: must be in (0, 1]", opts.Threshold)
	}

	// Cancel on Ctrl+C
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Get()
	ctx = logger.WithCtx(ctx, log)

	progressCh := make(chan scanner.ScanProgress, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for p := range progressCh {
			log.Debugw(p.Message, "stage", p.Stage, "current", p.Current, "total", p.Total, "percent", int(p.Percentage))
		}
	}()

	result, err := scanner.Scan(ctx, roots, opts, progressCh)
	close(progressCh)
	<-done
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report := reporter.New(result, time.Now())
	out := cmd.OutOrStdout()
	if scanOpts.json {
		if err := writeJSON(out, report); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, reporter.BuildText(report, time.Now()))
	}

	if scanOpts.save {
		jsonPath, textPath, err := reporter.Generate(report, cfg.Paths.Reports)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatusOK("Report saved to "+jsonPath))
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatusOK("Summary saved to "+textPath))
		fmt.Fprintf(cmd.ErrOrStderr(), "Review it with: mediasort review %s\n", jsonPath)
	}

	return nil
}

func cfgFileOrDefault() string {
	path, err := configPath()
	if err != nil {
		return "the config file"
	}
	return path
}

func runParse(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	root := parseRoot
	if root == "" {
		root = filepath.Dir(path)
	}
	if root, err = filepath.Abs(root); err != nil {
		return err
	}

	f := media.NewClassifier(matcher.Default()).Classify(path, root)

	out := cmd.OutOrStdout()
	if parseJSON {
		return writeJSON(out, f)
	}

	fmt.Fprintf(out, "Path:     %s\n", f.Path)
	fmt.Fprintf(out, "Type:     %s\n", f.Type)
	fmt.Fprintf(out, "Title:    %s\n", f.Title)
	if f.Marker != "" {
		fmt.Fprintf(out, "Marker:   %s\n", f.Marker)
	}
	switch {
	case f.IsExtras():
		fmt.Fprintf(out, "Season:   extras\n")
	case f.Season != nil:
		fmt.Fprintf(out, "Season:   %d\n", *f.Season)
	}
	if f.Episode != nil {
		fmt.Fprintf(out, "Episode:  %s\n", f.Episode)
	}
	if f.Year != "" {
		fmt.Fprintf(out, "Year:     %s\n", f.Year)
	}
	if f.TopFolder != "" {
		fmt.Fprintf(out, "Folder:   %s\n", f.TopFolder)
	}
	fmt.Fprintf(out, "Rename:   %s\n", f.Rename)
	return nil
}

// reportPath picks the report named on the command line or the newest saved one
func reportPath(cfg *config.Config, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return reporter.Latest(cfg.Paths.Reports)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := reportPath(cfg, args)
	if err != nil {
		return err
	}

	report, err := reporter.Load(path)
	if err != nil {
		return err
	}

	p := tea.NewProgram(ui.NewModel(report), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	m, ok := finalModel.(ui.Model)
	if !ok || !m.ShouldSave() {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatusWarn("Selection not saved"))
		return nil
	}

	if err := reporter.Save(m.Report(), path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatStatusOK(fmt.Sprintf("Saved %d selected files to %s", m.Report().Selected(), path)))
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := reportPath(cfg, args)
	if err != nil {
		return err
	}

	report, err := reporter.Load(path)
	if err != nil {
		return err
	}

	mediaRoot := planMedia
	if mediaRoot == "" {
		mediaRoot = cfg.Paths.Media
	}

	plan, err := planner.Build(report.Containers, mediaRoot)
	if err != nil {
		return err
	}
	plan.SkipExisting(func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	})

	logger.Get().Debugw("planned organize", "report", path, "moves", len(plan.Moves()), "operations", len(plan.Operations))

	if planJSON {
		return writeJSON(cmd.OutOrStdout(), plan)
	}
	fmt.Fprint(cmd.OutOrStdout(), reporter.BuildPlanText(plan))
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file: %s\n\n", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(out, "Config file does not exist. Create it with:")
		fmt.Fprintln(out, "\n  mediasort config init")
		return nil
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return err
	}
	return toml.NewEncoder(out).Encode(cfg)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveTo(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.FormatStatusOK("Wrote default config to "+path))
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

func getLongDescription() string {
	return ui.FormatASCIIHeader() + "\n\n" +
		"mediasort recognises TV episodes and movies from their file names,\n" +
		"groups them by title and plans where they belong in a media library."
}
