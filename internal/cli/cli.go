// Package cli implements the bpmnlayout command-line interface.
//
// # Commands
//
//   - layout: lay out a BPMN document and write BPMN, JSON, SVG, PDF or PNG
//   - serve: run the HTTP API
//   - cache: inspect and clear the layout cache
//   - completion: generate shell completion scripts
//
// All commands accept --config (TOML or YAML) and --verbose (-v).
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/buildinfo"
	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/config"
	"github.com/matzehuels/bpmnlayout/pkg/observability"
	"github.com/matzehuels/bpmnlayout/pkg/pipeline"
)

const appName = "bpmnlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "bpmnlayout computes diagram layout for BPMN 2.0 documents",
		Long: `bpmnlayout reads a BPMN 2.0 document, computes coordinates for every flow
node, lane and pool, routes the sequence flows and writes the document back
with a fresh BPMNDiagram section.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetPipelineHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (.toml, .yaml)")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or returns the defaults when it is unset.
func (c *CLI) loadConfig() (config.File, error) {
	if c.configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.File{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath)
	return cfg, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.File, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, cfg.Cache.Prefix), c.Logger)
	if cfg.Cache.TTL > 0 {
		r.TTL = cfg.Cache.TTL
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Cache, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return rc, nil
	default:
		dir, err := cacheDir(cfg)
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// cacheDir returns the configured file cache directory or the per-user
// default ($XDG_CACHE_HOME/bpmnlayout on Linux).
func cacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}
