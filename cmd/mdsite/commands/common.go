package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdsite/internal/config"
	ferrors "git.home.luguber.info/inful/mdsite/internal/foundation/errors"
	"git.home.luguber.info/inful/mdsite/internal/logfields"
	"git.home.luguber.info/inful/mdsite/internal/metrics"
)

// Global carries state shared by every subcommand.
type Global struct {
	Logger   *slog.Logger
	Config   *config.Config
	BuildID  string
	Recorder metrics.Recorder

	registry    *prom.Registry
	metricsFile string
	verbose     bool
}

// logOutput receives every log line and error report.
var logOutput io.Writer = os.Stderr

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: mdsite.yaml when present)" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `name:"log-format" help:"Log output format (text, json)"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics to this file after the run" type:"path"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Pages PagesCmd `cmd:"" help:"Render each Markdown file to its own page"`
	Index IndexCmd `cmd:"" help:"Render all Markdown files into one index page"`
	Rss   RssCmd   `cmd:"" name:"rss" help:"Build an RSS feed of all Markdown files"`
}

// AfterApply runs after flag parsing; setup logging once from flags alone.
// Setup refines it once the configuration file is known.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(newLogger(logOutput, level, config.LogFormat(c.LogFormat)))
	return nil
}

// Setup loads the configuration file, configures logging and metrics, and
// assigns the build ID for this invocation.
func Setup(c *CLI) (*Global, error) {
	path, explicit := c.Config, true
	if path == "" {
		path, explicit = config.DefaultPath, false
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}

	levelName := cfg.Log.Level
	if c.Verbose {
		levelName = string(config.LogLevelDebug)
	}
	level, err := config.ParseLogLevel(levelName)
	if err != nil {
		return nil, err
	}
	format, err := config.ParseLogFormat(config.String(c.LogFormat, cfg.Log.Format))
	if err != nil {
		return nil, err
	}

	g := &Global{
		Config:      cfg,
		BuildID:     uuid.NewString(),
		Recorder:    metrics.NoopRecorder{},
		metricsFile: c.MetricsFile,
		verbose:     c.Verbose,
	}
	g.Logger = newLogger(logOutput, level.SlogLevel(), format).With(logfields.BuildID(g.BuildID))
	slog.SetDefault(g.Logger)

	if g.metricsFile != "" {
		g.registry = prom.NewRegistry()
		g.Recorder = metrics.NewPrometheusRecorder(g.registry)
	}

	slog.Debug("Configuration loaded", logfields.Path(path), slog.Bool("explicit", explicit))
	return g, nil
}

// ErrorAdapter reports run errors through the configured logger, so verbose
// error logs carry the build ID and the configured log format.
func (g *Global) ErrorAdapter() *ferrors.CLIErrorAdapter {
	return ferrors.NewCLIErrorAdapter(g.verbose, g.Logger)
}

// Close writes the metrics file when one was requested.
func (g *Global) Close() error {
	if g == nil || g.registry == nil {
		return nil
	}
	if err := metrics.WriteTextfile(g.registry, g.metricsFile); err != nil {
		return err
	}
	slog.Debug("Wrote metrics", logfields.Output(g.metricsFile))
	return nil
}

func newLogger(w io.Writer, level slog.Level, format config.LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
