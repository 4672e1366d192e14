// Package cache stores factorial results so repeated invocations of
// "bigcalc fact" do not recompute them.
//
// Results live in two tiers: an in-process TTL cache and msgpack files on
// disk. Writes are atomic (temp file + rename), so concurrent bigcalc
// processes never observe a partial entry.
package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/internal/bignum"
)

// Current schema version - increment when Payload changes.
const schemaVersion uint16 = 1

// Payload is the on-disk form of one cached factorial.
type Payload struct {
	Schema uint16
	N      uint64
	Value  bignum.BigInt
}

// FactorialCache maps n to n!. A nil *FactorialCache is a valid cache that
// never hits and drops every write.
type FactorialCache struct {
	mu  sync.RWMutex
	dir string
	mem *gocache.Cache
}

// DefaultDir returns $XDG_CACHE_HOME/<app>, falling back to ~/.cache/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, app), nil
}

// Open creates the cache directory if needed. memoryTTL <= 0 keeps memory
// entries until the process exits.
func Open(dir string, memoryTTL time.Duration) (*FactorialCache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "fact"), 0o755); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}
	ttl := memoryTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &FactorialCache{
		dir: dir,
		mem: gocache.New(ttl, time.Minute),
	}, nil
}

// Dir returns the cache root.
func (c *FactorialCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *FactorialCache) pathFor(n uint64) string {
	return filepath.Join(c.dir, "fact", strconv.FormatUint(n, 10)+".mp")
}

func memKey(n uint64) string {
	return strconv.FormatUint(n, 10)
}

// Get returns n! if it is cached. Entries written with another schema, or
// for another n, are treated as misses.
func (c *FactorialCache) Get(n uint64) (bignum.BigInt, bool, error) {
	if c == nil {
		return bignum.BigInt{}, false, nil
	}
	if v, ok := c.mem.Get(memKey(n)); ok {
		return v.(bignum.BigInt), true, nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(n))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return bignum.BigInt{}, false, nil
		}
		return bignum.BigInt{}, false, err
	}
	defer f.Close()

	var payload Payload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return bignum.BigInt{}, false, fmt.Errorf("cache: decode %s: %w", f.Name(), err)
	}
	if payload.Schema != schemaVersion || payload.N != n {
		return bignum.BigInt{}, false, nil
	}
	c.mem.SetDefault(memKey(n), payload.Value)
	return payload.Value, true, nil
}

// Put stores n! in both tiers.
func (c *FactorialCache) Put(n uint64, v bignum.BigInt) (err error) {
	if c == nil {
		return nil
	}
	c.mem.SetDefault(memKey(n), v)

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(n)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		// Removing after a successful rename fails with ErrNotExist, which is fine.
		if rmErr := os.Remove(tmp); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = errors.Join(err, rmErr)
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&Payload{Schema: schemaVersion, N: n, Value: v}); err != nil {
		_ = f.Close()
		return fmt.Errorf("cache: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}

// Purge removes every entry from both tiers.
func (c *FactorialCache) Purge() error {
	if c == nil {
		return nil
	}
	c.mem.Flush()

	c.mu.Lock()
	defer c.mu.Unlock()
	dir := filepath.Join(c.dir, "fact")
	if err := os.RemoveAll(dir); err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}
