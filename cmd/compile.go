package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"promptcompile/pkg/compile"
	"promptcompile/pkg/config"
	"promptcompile/pkg/ignore"
	"promptcompile/pkg/logging"
	"promptcompile/pkg/report"
	"promptcompile/pkg/version"
	"promptcompile/pkg/viewer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// compileCmd is the explicit form of the default root action.
var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Merge the prompt files of a directory into one document",
	Args:  cobra.NoArgs,
	RunE:  runCompile,
}

// newOpener is swapped in tests.
var newOpener = func() viewer.Opener { return viewer.Default() }

func init() {
	bindCompileFlags(compileCmd)
	RootCmd.AddCommand(compileCmd)
}

func bindCompileFlags(c *cobra.Command) {
	c.Flags().StringP("dir", "d", "", "Directory to scan (default: the directory of the executable)")
	c.Flags().StringP("config", "c", "", "Config file (default: <dir>/"+config.FileName+")")
	c.Flags().StringP("output", "o", "", "Output document name inside the directory")
	c.Flags().StringSliceP("exclude", "x", nil, "Gitignore-style pattern of files to leave out (repeatable)")
	c.Flags().Bool("no-open", false, "Do not open the output document after writing it")
	c.Flags().String("color", "", "Console colors: auto, always or never")
	c.Flags().Bool("debug", false, "Enable debug logging")
}

// runCompile resolves configuration and runs one compile. Every failure is
// reported on the console and the command still succeeds.
func runCompile(c *cobra.Command, _ []string) (err error) {
	out := c.OutOrStdout()
	rep := report.New(out, false)

	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("Recovered from panic", zap.Any("panic", r))
			rep.Unexpected(fmt.Errorf("%v", r))
			err = nil
		}
	}()

	cfg, err := resolveConfig(c)
	if err != nil {
		rep.Unexpected(err)
		return nil
	}
	rep = report.New(out, useColor(cfg.Color))

	logger, logErr := logging.Setup(cfg.Debug, "promptcompile", version.Version)
	if logErr != nil {
		logger.Warn("Failed to initialize logger, using fallback", zap.Error(logErr))
	}

	matcher, err := ignore.Load(filepath.Join(cfg.Directory, cfg.IgnoreFile), logger)
	if err != nil {
		rep.Unexpected(fmt.Errorf("failed to load ignore file: %w", err))
		return nil
	}
	matcher.CompileLines(cfg.Exclude...)

	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	compiler := compile.New(compile.Options{
		Directory:     cfg.Directory,
		Extension:     cfg.Extension,
		OutputName:    cfg.OutputName,
		ExcludedNames: cfg.ExcludedNames,
		Title:         cfg.Title,
		HeadingSuffix: cfg.HeadingSuffix,
		Open:          cfg.Open,
		Matcher:       matcher,
	}, rep, newOpener(), logger)

	if _, err := compiler.Compile(ctx); err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			rep.Cancelled()
		default:
			logger.Error("Compile failed", zap.Error(err))
			rep.Unexpected(err)
		}
	}
	return nil
}

// resolveConfig layers defaults, the config file and explicitly set flags.
func resolveConfig(c *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	flags := c.Flags()

	dir, _ := flags.GetString("dir")
	if dir == "" {
		dir = config.ResolveDirectory()
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return cfg, fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}
	cfg.Directory = absDir

	cfgPath, _ := flags.GetString("config")
	if cfgPath == "" {
		cfgPath = filepath.Join(cfg.Directory, config.FileName)
	}
	if _, err := config.LoadFile(cfgPath, &cfg); err != nil {
		return cfg, err
	}

	if flags.Changed("output") {
		cfg.OutputName, _ = flags.GetString("output")
	}
	if flags.Changed("exclude") {
		patterns, _ := flags.GetStringSlice("exclude")
		cfg.Exclude = append(cfg.Exclude, patterns...)
	}
	if flags.Changed("no-open") {
		noOpen, _ := flags.GetBool("no-open")
		cfg.Open = !noOpen
	}
	if flags.Changed("color") {
		color, _ := flags.GetString("color")
		cfg.Color = config.ColorMode(color)
	}
	if flags.Changed("debug") {
		cfg.Debug, _ = flags.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func useColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}
