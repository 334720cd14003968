// Package main provides the CLI entrypoint for text_analyzer.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/verte-zerg/textcalc/internal/config"
	"github.com/verte-zerg/textcalc/internal/model"
	"github.com/verte-zerg/textcalc/internal/stats"
)

const (
	exitSuccess = 0
	exitFailure = 1
)

const (
	defaultMode  = model.ModeBasic
	defaultColor = "auto"
)

var errMissingText = errors.New("please provide text to analyze")

type options struct {
	mode       string
	top        int
	wpm        int
	color      string
	json       bool
	configPath string
	initConfig bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit code. Failures are
// reported on stdout as a single "Error:" line.
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil.
		args = []string{}
	}
	cmd := newRootCmd()
	cmd.InitDefaultHelpFlag()
	cmd.SetArgs(separateFlags(cmd.Flags(), args))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		if _, werr := fmt.Fprintf(stdout, "Error: %v\n", err); werr != nil {
			logErrf(stderr, "failed to write error: %v\n", werr)
		}
		return exitFailure
	}
	return exitSuccess
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:           "text_analyzer <text> [basic|detailed]",
		Short:         "Report word, character, sentence and paragraph statistics",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	rootCmd.Flags().IntVar(&opts.top, "top", stats.DefaultTop, "number of most common words to show")
	rootCmd.Flags().IntVar(&opts.wpm, "wpm", stats.DefaultWordsPerMinute, "reading speed in words per minute")
	rootCmd.Flags().StringVar(&opts.color, "color", defaultColor, "colorize output: auto, always or never")
	rootCmd.Flags().BoolVar(&opts.json, "json", false, "print results as JSON")
	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "config file path (default: $XDG_CONFIG_HOME/textcalc/config.toml)")
	rootCmd.Flags().BoolVar(&opts.initConfig, "init-config", false, "write a config template if none exists and print its path")

	return rootCmd
}

// separateFlags moves registered flags (and their values) ahead of a "--" and
// keeps every other argument, in order, behind it. Text such as "- item" or
// "-5 degrees" is therefore never mistaken for a flag.
func separateFlags(flags *pflag.FlagSet, args []string) []string {
	var flagArgs, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		flag := lookupFlag(flags, arg)
		if flag == nil {
			positional = append(positional, arg)
			continue
		}
		flagArgs = append(flagArgs, arg)
		if flag.NoOptDefVal == "" && !strings.Contains(arg, "=") && i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return append(append(flagArgs, "--"), positional...)
}

// lookupFlag returns the flag named by arg, or nil when flags has none.
// Shorthands only match on their own ("-h" or "-h=value").
func lookupFlag(flags *pflag.FlagSet, arg string) *pflag.Flag {
	name, _, _ := strings.Cut(arg, "=")
	switch {
	case strings.HasPrefix(name, "--"):
		return flags.Lookup(name[2:])
	case strings.HasPrefix(name, "-") && len(name) == 2:
		return flags.ShorthandLookup(name[1:])
	}
	return nil
}

func runAnalyze(cmd *cobra.Command, args []string, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if opts.initConfig {
		return runInitConfig(cmd.OutOrStdout(), path)
	}

	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.mode = string(defaultMode)
	if fileCfg.Analyzer.Mode != nil {
		opts.mode = *fileCfg.Analyzer.Mode
	}
	applyIntConfig(cmd, "top", &opts.top, fileCfg.Analyzer.Top)
	applyIntConfig(cmd, "wpm", &opts.wpm, fileCfg.Analyzer.WPM)
	applyStringConfig(cmd, "color", &opts.color, fileCfg.Analyzer.Color)
	applyBoolConfig(cmd, "json", &opts.json, fileCfg.Analyzer.JSON)

	if len(args) == 0 {
		return errMissingText
	}
	text := args[0]
	if len(args) > 1 {
		opts.mode = args[1]
	}

	cfg := model.AnalyzerConfig{
		Mode:  model.Mode(opts.mode),
		Top:   opts.top,
		WPM:   opts.wpm,
		Color: opts.color,
		JSON:  opts.json,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !cfg.Mode.Known() {
		logErrf(cmd.ErrOrStderr(), "unknown analysis mode %q, showing basic statistics\n", cfg.Mode)
	}

	result, err := stats.Analyze(text, cfg.Mode, stats.Options{Top: cfg.Top, WordsPerMinute: cfg.WPM})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.JSON {
		return stats.RenderJSON(out, result)
	}
	if err := stats.Render(out, result, stats.NewStyle(out, shouldUseColor(out, cfg.Color))); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runInitConfig(w io.Writer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	if _, err := fmt.Fprintln(w, path); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# text_analyzer configuration
# Uncomment a value to enable it. CLI arguments and flags override config values.

[analyzer]
# mode = %q          # Analysis mode when none is given (basic or detailed)
# top = %d               # Number of most common words to show
# wpm = %d             # Reading speed in words per minute
# color = %q         # auto, always or never
# json = false          # Print results as JSON
`,
		defaultMode,
		stats.DefaultTop,
		stats.DefaultWordsPerMinute,
		defaultColor,
	)
}

func validateConfig(cfg model.AnalyzerConfig) error {
	if cfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	if cfg.WPM <= 0 {
		return fmt.Errorf("--wpm must be > 0")
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("--color must be one of auto, always, never")
	}
	return nil
}

// shouldUseColor resolves the --color setting for w. NO_COLOR disables color
// even when it is forced; in auto mode color is used only on a terminal.
func shouldUseColor(w io.Writer, choice string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	switch choice {
	case "always":
		return true
	case "never":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func logErrf(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
