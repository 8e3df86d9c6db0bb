package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bpmnlayout/pkg/cache"
	"github.com/matzehuels/bpmnlayout/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the layout cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runCacheClear(cmd.Context())
		},
	}
}

func (c *CLI) runCacheClear(ctx context.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	switch cfg.Cache.Backend {
	case config.BackendNone:
		printInfo("Caching is disabled")
		return nil
	case config.BackendFile:
		dir, err := cacheDir(cfg.Cache)
		if err != nil {
			return fmt.Errorf("get cache dir: %w", err)
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			printInfo("Cache is empty")
			return nil
		}
	}

	store, err := c.newCache(ctx, cfg.Cache, false)
	if err != nil {
		return err
	}
	defer store.Close()

	clearer, ok := store.(cache.Clearer)
	if !ok {
		return fmt.Errorf("cache backend %q cannot be cleared", cfg.Cache.Backend)
	}
	if err := clearer.Clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cache cleared")
	if fc, ok := store.(*cache.FileCache); ok {
		printDetail("Directory: %s", fc.Dir())
	}
	return nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendRedis {
				printKeyValue("redis", cfg.Cache.RedisURL)
				return nil
			}
			dir, err := cacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
