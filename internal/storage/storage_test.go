package storage

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(Options{Dir: t.TempDir(), Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache(t *testing.T) {
	c := openTestCache(t)
	rec := Record{
		FEN:    "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		Depth:  2,
		Nodes:  400,
		Divide: map[string]int64{"e2e4": 20, "g1f3": 20},
	}

	t.Run("Miss", func(t *testing.T) {
		if _, ok, err := c.Get(0x463b96181691fc9c, 2); err != nil || ok {
			t.Fatalf("Get on empty cache = %v, %v", ok, err)
		}
	})

	t.Run("PutGet", func(t *testing.T) {
		if err := c.Put(0x463b96181691fc9c, rec); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, ok, err := c.Get(0x463b96181691fc9c, 2)
		if err != nil || !ok {
			t.Fatalf("Get = %v, %v", ok, err)
		}
		if diff := cmp.Diff(rec, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("DepthIsPartOfKey", func(t *testing.T) {
		if _, ok, _ := c.Get(0x463b96181691fc9c, 3); ok {
			t.Error("record found for a different depth")
		}
		if n, err := c.Len(); err != nil || n != 1 {
			t.Errorf("Len() = %d, %v, want 1", n, err)
		}
	})
}

func TestCacheInMemory(t *testing.T) {
	c, err := Open(Options{InMemory: true, Logger: zerolog.Nop()})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if err := c.Put(1, Record{Depth: 1, Nodes: 20}); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if got, ok, err := c.Get(1, 1); err != nil || !ok || got.Nodes != 20 {
		t.Errorf("Get = %+v, %v, %v", got, ok, err)
	}
	// 257 and 1 agree in the low byte.
	if got, ok, err := c.Get(1, 257); err != nil || ok {
		t.Errorf("Get(depth 257) = %+v, %v, %v, want miss", got, ok, err)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir, err := GetCacheDir()
	if err != nil {
		t.Fatalf("GetCacheDir failed: %v", err)
	}
	if dir == "" {
		t.Error("GetCacheDir returned empty path")
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("Cache directory was not created: %s", dir)
	}
}
