package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-structfmt/internal/fixtures"
	"github.com/goliatone/go-structfmt/pkg/config"
	"github.com/goliatone/go-structfmt/pkg/orchestrator"
	"github.com/goliatone/go-structfmt/pkg/prompt"
	"github.com/goliatone/go-structfmt/pkg/render"
)

// app carries the state shared by the commands. Tests swap driver and
// newLogger.
type app struct {
	configPath  string
	renderer    string
	title       string
	output      string
	nested      bool
	maxDepth    int
	color       bool
	interactive bool
	verbose     bool
	fields      []string
	levels      []string

	logger    *zap.Logger
	driver    prompt.Driver
	newLogger func(level zapcore.Level) (*zap.Logger, error)
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	if a.newLogger == nil {
		a.newLogger = productionLogger
	}

	root := &cobra.Command{
		Use:   "structfmt",
		Short: "Render Go values as structural strings",
		Long: `structfmt prints the fields of a value grouped by its embedding chain:
most-derived type first, each level sorted by field name.

Built-in sample values are listed by "structfmt fixtures".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "JSON or YAML configuration file")

	root.AddCommand(newRenderCmd(a), newFixturesCmd(), newRenderersCmd(a))
	return root
}

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [fixture]",
		Short: "Render a sample value",
		Example: `  structfmt render shark
  structfmt render pet --nested --renderer console --color
  structfmt render pet --levels Animal
  structfmt render --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runRender,
	}
	flags := cmd.Flags()
	flags.StringVarP(&a.renderer, "renderer", "r", "", "renderer name (defaults to the configured renderer)")
	flags.StringVar(&a.title, "title", "", "heading for document-style renderers")
	flags.StringVarP(&a.output, "output", "o", "", "write to file instead of stdout")
	flags.BoolVar(&a.nested, "nested", false, "render struct-valued fields recursively")
	flags.IntVar(&a.maxDepth, "max-depth", 0, "nesting bound when --nested is set")
	flags.BoolVar(&a.color, "color", false, "colour console output")
	flags.BoolVarP(&a.interactive, "interactive", "i", false, "pick fixture and renderer from prompts")
	flags.StringSliceVar(&a.fields, "fields", nil, "only render the named fields")
	flags.StringSliceVar(&a.levels, "levels", nil, "only render fields declared by the named types")
	return cmd
}

func newFixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "List the sample values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range fixtures.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newRenderersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "renderers",
		Short: "List the available renderers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			orch := orchestrator.New(orchestrator.WithConfig(cfg), orchestrator.WithLogger(a.logger))
			for _, name := range orch.Registry().List() {
				marker := ""
				if name == orch.DefaultRenderer() {
					marker = " (default)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", name, marker)
			}
			return nil
		},
	}
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("nested") {
		cfg.Nested = a.nested
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = a.maxDepth
	}
	if flags.Changed("color") {
		cfg.Color = a.color
	}
	if a.renderer != "" {
		cfg.Renderer = a.renderer
	}

	name := "pet"
	if len(args) == 1 {
		name = strings.TrimSpace(args[0])
	}

	if a.interactive {
		driver := a.driver
		if driver == nil {
			driver = prompt.NewSurveyDriver()
		}
		registry, err := orchestrator.DefaultRegistry()
		if err != nil {
			return fmt.Errorf("render: default renderers: %w", err)
		}
		selection, err := prompt.Choose(ctx, driver, prompt.Choices{
			Fixtures:        fixtures.Names(),
			Renderers:       registry.List(),
			DefaultRenderer: cfg.Renderer,
			Nested:          cfg.Nested,
		})
		if err != nil {
			return err
		}
		name, cfg.Renderer, cfg.Nested = selection.Fixture, selection.Renderer, selection.Nested
	}

	value, ok := fixtures.Get(name)
	if !ok {
		return fmt.Errorf("unknown fixture %q (known: %s)", name, strings.Join(fixtures.Names(), ", "))
	}

	orch := orchestrator.New(
		orchestrator.WithConfig(cfg),
		orchestrator.WithLogger(a.logger),
	)
	a.logger.Debug("rendering fixture",
		zap.String("fixture", name),
		zap.String("renderer", cfg.Renderer),
		zap.Bool("nested", cfg.Nested),
	)

	out, err := orch.Generate(ctx, orchestrator.Request{
		Object:        value,
		RenderOptions: render.RenderOptions{
			Title:  a.title,
			Subset: render.FieldSubset{Fields: a.fields, Levels: a.levels},
		},
	})
	if err != nil {
		return err
	}

	if a.output != "" {
		if err := os.WriteFile(a.output, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		a.logger.Info("output written", zap.String("path", a.output), zap.Int("bytes", len(out)))
		return nil
	}

	w := cmd.OutOrStdout()
	if _, err := w.Write(out); err != nil {
		return err
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		_, err = fmt.Fprintln(w)
	}
	return err
}

func (a *app) initLogger() error {
	level := zapcore.InfoLevel
	if a.verbose {
		level = zapcore.DebugLevel
	} else if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		if parsed, err := cfg.Level(); err == nil {
			level = parsed
		}
	}

	logger, err := a.newLogger(level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func productionLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}
