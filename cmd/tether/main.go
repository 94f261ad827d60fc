package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/vango-dev/tether/internal/config"
	"github.com/vango-dev/tether/internal/errors"
	"github.com/vango-dev/tether/internal/logging"
	"github.com/vango-dev/tether/pkg/engine"
	"github.com/vango-dev/tether/pkg/live"
	"github.com/vango-dev/tether/pkg/loader"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds state shared by all commands, set up before any command runs.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func main() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		errors.DisableColors()
	}

	a := &app{stdout: os.Stdout, stderr: os.Stderr}
	if err := newRootCmd(a).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tether",
		Short: "Render, hydrate and preview live-bound HTML templates",
		Long: `Tether renders templates to HTML markup or to live node trees whose
dynamic parts stay bound to data, and re-attaches those bindings to
server-rendered markup.

Templates are YAML files; data files are YAML or JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to "+config.ConfigFileName+" (default: search upward from the working directory)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	rootCmd.AddCommand(
		renderCmd(a),
		checkCmd(a),
		serveCmd(a),
		versionCmd(),
	)

	return rootCmd
}

// setup loads the configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logging.New(a.stderr, level, cfg.Log.Format)
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		return config.LoadFile(a.configPath)
	}
	root, err := config.FindProjectRoot(".")
	if err != nil {
		// No tether.json anywhere: run with defaults.
		return config.New(), nil
	}
	return config.Load(root)
}

func (a *app) engine() *engine.Engine {
	return engine.New(
		engine.WithLogger(a.logger),
		engine.WithNamespace(a.cfg.Metrics.Namespace),
		engine.WithSubsystem(a.cfg.Metrics.Subsystem),
		engine.WithTracerName(a.cfg.Tracing.TracerName),
	)
}

// load reads the template and the data file. An empty dataPath falls back
// to the configured data file.
func (a *app) load(templatePath, dataPath string) (*live.Template, any, error) {
	tmpl, err := loader.LoadTemplateFile(templatePath)
	if err != nil {
		return nil, nil, err
	}
	if dataPath == "" {
		dataPath = a.cfg.DataPath()
	}
	data, err := loader.LoadDataFile(dataPath)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("loaded template",
		"template", templatePath,
		"data", dataPath,
		"nodes", len(tmpl.Nodes))
	return tmpl, data, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}
