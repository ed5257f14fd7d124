package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestDiagramKey(t *testing.T) {
	type opts struct{ Direction string }

	k := DiagramKey("[0,0]", "svg", opts{Direction: "TB"})
	if k != Key(DiagramKind, "[0,0]", "svg", opts{Direction: "TB"}) {
		t.Errorf("DiagramKey = %q, want the diagram Key", k)
	}
	if !strings.HasPrefix(k, "diagram:") {
		t.Errorf("DiagramKey = %q, want prefix diagram:", k)
	}
	// kind, colon, 64 hex chars
	if len(k) != len("diagram:")+64 {
		t.Errorf("len(DiagramKey) = %d, want %d", len(k), len("diagram:")+64)
	}
}

func TestFileCacheArbitraryKeys(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	keys := []string{"a/b", "../escape", "diagram:[0,(0)]", "with space"}
	for i, key := range keys {
		if err := c.Set(ctx, key, []byte{byte(i)}, 0); err != nil {
			t.Fatalf("Set(%q): %v", key, err)
		}
	}
	for i, key := range keys {
		data, ok, err := c.Get(ctx, key)
		if err != nil || !ok || len(data) != 1 || data[0] != byte(i) {
			t.Errorf("Get(%q) = %v, %v, %v", key, data, ok, err)
		}
	}
}

func TestKey(t *testing.T) {
	type opts struct {
		Detailed  bool
		Direction string
	}

	k1 := Key("diagram", "[0,0]", "svg", opts{Direction: "TB"})
	k2 := Key("diagram", "[0,0]", "svg", opts{Direction: "TB"})
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}

	others := []string{
		Key("diagram", "[0,(0)]", "svg", opts{Direction: "TB"}),
		Key("diagram", "[0,0]", "png", opts{Direction: "TB"}),
		Key("diagram", "[0,0]", "svg", opts{Direction: "BT"}),
		Key("diagram", "[0,0]", "svg", opts{Direction: "TB", Detailed: true}),
		Key("other", "[0,0]", "svg", opts{Direction: "TB"}),
	}
	for i, k := range others {
		if k == k1 {
			t.Errorf("variant %d produced the same key", i)
		}
	}

	if got := k1[:len("diagram:")]; got != "diagram:" {
		t.Errorf("key prefix = %q", got)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	if err := c.Set(ctx, "k", []byte("x"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry missed")
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry hit")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry file not removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}

	gone := &FileCache{dir: filepath.Join(t.TempDir(), "absent"), now: time.Now}
	if n, err := gone.Clear(); n != 0 || err != nil {
		t.Errorf("Clear on missing dir = %d, %v", n, err)
	}
}
