// Package main provides the sdml binary entry point.
// sdml loads SDML module documents and lowers them to RDF graphs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/c360studio/sdml/config"
	"github.com/c360studio/sdml/export"
	"github.com/c360studio/sdml/publish"
)

var (
	Version   = "0.1.0"
	BuildTime = "dev"
)

const appName = "sdml"

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
}

// setup loads configuration and installs the default logger.
func (g *globalFlags) setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.NewLoader(slog.Default()).Load(g.configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.Log.Level = g.logLevel
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func rootCmd() *cobra.Command {
	var global globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Lower SDML modules to RDF",
		Long: `sdml loads SDML module documents (YAML) into a module cache and
lowers a module to an RDF graph, written as Turtle, N-Triples or JSON-LD.

Configuration is layered: defaults, ~/.config/sdml/config.yaml, the nearest
sdml.yaml, then --config. When nats.url is set every converted graph is
also published to JetStream.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&global.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&global.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(convertCmd(&global))
	cmd.AddCommand(watchCmd(&global))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// outputFlags are the conversion flags shared by convert and watch.
type outputFlags struct {
	format           string
	sourceLocation   bool
	sequenceEncoding string
	output           string
	color            bool
	modules          []string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.format, "format", "f", "", "Output format ("+strings.Join(export.FormatNames(), ", ")+")")
	flags.BoolVar(&f.sourceLocation, "source-location", false, "Emit source span triples")
	flags.StringVar(&f.sequenceEncoding, "sequence-encoding", "", "Sequence encoding (positional, list)")
	flags.StringVarP(&f.output, "output", "o", "", "Output file (default stdout)")
	flags.BoolVar(&f.color, "color", false, "Colorize Turtle output (default: only on a terminal)")
	flags.StringSliceVarP(&f.modules, "modules", "m", nil, "Module document glob patterns")
}

// apply overlays explicitly set flags on cfg.
func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if flags.Changed("source-location") {
		cfg.Generate.IncludeSourceLocation = f.sourceLocation
	}
	if flags.Changed("sequence-encoding") {
		cfg.Generate.SequenceEncoding = f.sequenceEncoding
	}
	if flags.Changed("color") {
		color := f.color
		cfg.Output.Color = &color
	}
	if flags.Changed("modules") {
		cfg.Modules.Paths = f.modules
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// resolveFormat prefers an explicit --format, then the output file
// extension, then the configured format.
func (f *outputFlags) resolveFormat(cmd *cobra.Command, cfg *config.Config) (export.Format, error) {
	if !cmd.Flags().Changed("format") && f.output != "" {
		if format, ok := export.FormatForPath(f.output); ok {
			return format, nil
		}
	}
	return cfg.Format()
}

// useColor reports whether Turtle output should carry ANSI colors.
func (f *outputFlags) useColor(cfg *config.Config) bool {
	if cfg.Output.Color != nil {
		return *cfg.Output.Color
	}
	if f.output != "" && f.output != "-" {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func convertCmd(global *globalFlags) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "convert MODULE_NAME",
		Short: "Lower a module and write its RDF graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := global.setup()
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			stream, err := connectStream(ctx, cfg, logger)
			if err != nil {
				return err
			}
			if stream != nil {
				defer stream.Close()
			}

			app := NewApp(cfg, logger, streamOrNil(stream))
			return convertOnce(ctx, cmd, app, &flags, cfg, args[0])
		},
	}
	flags.register(cmd)
	return cmd
}

// convertOnce runs one conversion into the configured destination.
func convertOnce(ctx context.Context, cmd *cobra.Command, app *App, flags *outputFlags, cfg *config.Config, name string) error {
	format, err := flags.resolveFormat(cmd, cfg)
	if err != nil {
		return err
	}
	color := flags.useColor(cfg)

	return withOutput(cmd.OutOrStdout(), flags.output, func(w io.Writer) error {
		_, err := app.Convert(ctx, name, format, color, w)
		return err
	})
}

// withOutput runs write against stdout, or against path when one is given.
// A failed write removes the partial file.
func withOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" || path == "-" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	return nil
}

// connectStream dials NATS when publishing is configured.
func connectStream(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*publish.JetStream, error) {
	if cfg.NATS.URL == "" {
		return nil, nil
	}

	subjects := []string{cfg.NATS.Subject}
	if cfg.PublishEntities() {
		subjects = append(subjects, publish.GraphIngestSubject)
	}
	stream, err := publish.Connect(ctx, cfg.NATS.URL, cfg.NATS.Stream, subjects...)
	if err != nil {
		return nil, err
	}
	logger.Info("Connected to NATS", "url", cfg.NATS.URL, "stream", cfg.NATS.Stream)
	return stream, nil
}

// streamOrNil avoids handing NewApp a typed nil inside a non-nil interface.
func streamOrNil(stream *publish.JetStream) publish.StreamPublisher {
	if stream == nil {
		return nil
	}
	return stream
}
