package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bigcalc/internal/bignum"
)

func TestPutGet(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir, time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := bignum.MustParse("2432902008176640000")
	if err := c.Put(20, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get(20)
	if err != nil || !ok {
		t.Fatalf("Get(20) = %v, %v, %v", got, ok, err)
	}
	if !got.Equal(want) {
		t.Fatalf("Get(20) = %s, want %s", got, want)
	}

	if _, err := os.Stat(filepath.Join(dir, "fact", "20.mp")); err != nil {
		t.Fatalf("disk entry missing: %v", err)
	}
}

func TestDiskTierSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(dir, time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := bignum.MustParse("-123456789123456789123456789")
	if err := first.Put(7, want); err != nil {
		t.Fatalf("Put: %v", err)
	}

	second, err := Open(dir, 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	got, ok, err := second.Get(7)
	if err != nil || !ok {
		t.Fatalf("Get(7) after reopen = %v, %v, %v", got, ok, err)
	}
	if !got.Equal(want) {
		t.Fatalf("Get(7) = %s, want %s", got, want)
	}
}

func TestMiss(t *testing.T) {
	c, err := Open(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if v, ok, err := c.Get(5); ok || err != nil {
		t.Fatalf("Get(5) on empty cache = %v, %v, %v", v, ok, err)
	}
}

func TestSchemaMismatchIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir, time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := msgpack.Marshal(&Payload{Schema: schemaVersion + 1, N: 3, Value: bignum.FromInt64(6)})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fact", "3.mp"), data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if v, ok, err := c.Get(3); ok || err != nil {
		t.Fatalf("Get(3) with stale schema = %v, %v, %v", v, ok, err)
	}
}

func TestCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(dir, time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "fact", "4.mp"), []byte{0xc1}, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok, err := c.Get(4); ok || err == nil {
		t.Fatalf("Get(4) on corrupt entry: ok=%v err=%v, want error", ok, err)
	}
}

func TestPurge(t *testing.T) {
	c, err := Open(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := c.Put(1, bignum.One()); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.Purge(); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, ok, _ := c.Get(1); ok {
		t.Fatalf("Get(1) hit after Purge")
	}
}

func TestNilCache(t *testing.T) {
	var c *FactorialCache
	if err := c.Put(1, bignum.One()); err != nil {
		t.Fatalf("nil Put: %v", err)
	}
	if _, ok, err := c.Get(1); ok || err != nil {
		t.Fatalf("nil Get: ok=%v err=%v", ok, err)
	}
	if err := c.Purge(); err != nil {
		t.Fatalf("nil Purge: %v", err)
	}
}
