// Package config loads bigcalc.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"bigcalc/internal/bignum"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "bigcalc.toml"

// Config is the decoded bigcalc.toml.
type Config struct {
	Factorial FactorialConfig `toml:"factorial"`
	Prime     PrimeConfig     `toml:"prime"`
	Cache     CacheConfig     `toml:"cache"`
}

// FactorialConfig controls the parallel range product.
type FactorialConfig struct {
	Jobs          int    `toml:"jobs"`
	ForkThreshold uint64 `toml:"fork_threshold"`
	MaxInput      uint64 `toml:"max_input"`
}

// PrimeConfig bounds the trial-division primality test.
type PrimeConfig struct {
	Timeout time.Duration `toml:"timeout"`
}

// CacheConfig controls the factorial result cache.
type CacheConfig struct {
	Enabled   bool          `toml:"enabled"`
	Dir       string        `toml:"dir"`
	MemoryTTL time.Duration `toml:"memory_ttl"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Factorial: FactorialConfig{
			ForkThreshold: bignum.DefaultForkThreshold,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 10 * time.Minute,
		},
	}
}

// Bignum converts the [factorial] section into the engine's configuration.
func (c FactorialConfig) Bignum() bignum.FactorialConfig {
	return bignum.FactorialConfig{
		Jobs:          c.Jobs,
		ForkThreshold: c.ForkThreshold,
		MaxInput:      c.MaxInput,
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path on top of Default. Unknown keys and out-of-range values
// are errors.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("factorial", "fork_threshold") && cfg.Factorial.ForkThreshold == 0 {
		return Config{}, fmt.Errorf("%s: [factorial].fork_threshold must be positive", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads explicitPath when set, otherwise the nearest FileName above
// startDir, otherwise Default. It returns the path that was loaded, if any.
func Resolve(explicitPath, startDir string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := Load(explicitPath)
		return cfg, explicitPath, err
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func (c Config) validate() error {
	if c.Factorial.Jobs < 0 {
		return fmt.Errorf("[factorial].jobs must not be negative, got %d", c.Factorial.Jobs)
	}
	if c.Prime.Timeout < 0 {
		return fmt.Errorf("[prime].timeout must not be negative, got %s", c.Prime.Timeout)
	}
	if c.Cache.MemoryTTL < 0 {
		return fmt.Errorf("[cache].memory_ttl must not be negative, got %s", c.Cache.MemoryTTL)
	}
	return nil
}
