package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the fetched-range cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			switch cfg.Cache.Backend {
			case config.BackendNone:
				printInfo("Caching is disabled")
				return nil
			case config.BackendRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), redisConfig(cfg.Cache))
				if err != nil {
					return err
				}
				defer rc.Close()
				if err := rc.Clear(cmd.Context()); err != nil {
					return fmt.Errorf("clear redis cache: %w", err)
				}
				printSuccess("Cleared cached ranges")
				printDetail("Redis: %s", cfg.Cache.Redis.Addr)
				return nil
			}

			dir, err := fileCacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			count := 0
			filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
				if err == nil && !d.IsDir() {
					count++
				}
				return nil
			})

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == config.BackendRedis {
				fmt.Println("redis://" + cfg.Cache.Redis.Addr)
				return nil
			}
			dir, err := fileCacheDir(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// fileCacheDir returns the configured directory or the XDG default.
func fileCacheDir(cfg config.Cache) (string, error) {
	if cfg.Dir != "" {
		return cfg.Dir, nil
	}
	return cacheDir()
}

func redisConfig(cfg config.Cache) cache.RedisConfig {
	return cache.RedisConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	}
}
