// Package cli implements the opfgo command-line interface.
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hupe1980/opfgo"
	"github.com/hupe1980/opfgo/metrics"
	"github.com/hupe1980/opfgo/resource"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath  string
	metricsFile string

	cfg        Config
	controller *resource.Controller
	prom       *metrics.PrometheusCollector
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
		cfg: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "opfgo",
		Short:        "opfgo inspects, converts and stores OPF datasets",
		Long:         `opfgo works with Optimum-Path Forest datasets: it prints summaries, converts between the binary and text layouts, extracts prototypes and moves datasets between local files and blob storage.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("opfgo %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&c.metricsFile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")

	root.AddCommand(c.infoCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.pushCommand())
	root.AddCommand(c.pullCommand())
	root.AddCommand(c.listCommand())

	return root
}

func (c *CLI) setup() error {
	if c.configPath != "" {
		cfg, err := LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}
	c.controller = c.cfg.Limits.Controller()
	if c.metricsFile != "" {
		c.prom = metrics.NewPrometheusCollector(nil)
	}
	limits := c.controller.Config()
	c.Logger.Debug("configuration loaded",
		"backend", c.cfg.Storage.Backend,
		"config", c.configPath,
		"memory_bytes", limits.MemoryLimitBytes,
		"io_bytes_per_sec", limits.IOLimitBytesPerSec,
		"workers", limits.MaxWorkers,
	)
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.prom == nil {
		return nil
	}
	if err := c.prom.WriteTextfile(c.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	c.Logger.Debug("metrics written", "path", c.metricsFile)
	return nil
}

// options returns the library options shared by all commands.
func (c *CLI) options() []opfgo.Option {
	opts := []opfgo.Option{
		// charmbracelet/log loggers are slog handlers.
		opfgo.WithLogger(opfgo.NewLogger(c.Logger)),
		opfgo.WithController(c.controller),
		opfgo.WithConcurrency(c.cfg.Limits.Concurrency),
	}
	if c.prom != nil {
		opts = append(opts, opfgo.WithMetrics(c.prom))
	}
	return opts
}
