package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bigcalc/internal/cache"
	"bigcalc/internal/config"
)

// loadConfig resolves bigcalc.toml from --config or the working directory.
func (a *app) loadConfig(cmd *cobra.Command) error {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	cfg, path, err := config.Resolve(explicit, wd)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.cfgPath = path
	return nil
}

// openCache returns the configured factorial cache, or nil when caching is off.
func (a *app) openCache() (*cache.FactorialCache, error) {
	if !a.cfg.Cache.Enabled {
		return nil, nil
	}
	dir := a.cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir("bigcalc"); err != nil {
			return nil, fmt.Errorf("cache: %w", err)
		}
	}
	return cache.Open(dir, a.cfg.Cache.MemoryTTL)
}

func quiet(cmd *cobra.Command) bool {
	q, err := cmd.Root().PersistentFlags().GetBool("quiet")
	return err == nil && q
}
