package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/render"
	"github.com/matzehuels/fractal/pkg/tree"
)

func TestCachePath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "fractal") + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)

	fc, err := cache.NewFileCache(filepath.Join(dir, "fractal"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "a", []byte("a"), 0)
	_ = fc.Set(ctx, "b", []byte("b"), 0)

	out, err := execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cleared 2 cached diagrams") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "", "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestRenderDiagramUsesCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(&bytes.Buffer{}, LogInfo)
	ctx := context.Background()
	tr := tree.MustParse("[0,(0)]")
	opts := c.diagramOptions()

	// Seed the entry a real render would produce; the hit must skip Graphviz.
	dc := c.openCache(false)
	if err := dc.Set(ctx, diagramKey(tr, render.FormatSVG, opts), []byte("<svg>cached</svg>"), 0); err != nil {
		t.Fatal(err)
	}

	data, err := c.renderDiagram(ctx, tr, render.FormatSVG, opts, false)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<svg>cached</svg>" {
		t.Errorf("renderDiagram = %q, want cached entry", data)
	}
}

func TestDiagramKey(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	tr := tree.MustParse("[0,0]")
	opts := c.diagramOptions()

	base := diagramKey(tr, render.FormatSVG, opts)
	if base != diagramKey(tree.MustParse("[[],[]]"), render.FormatSVG, opts) {
		t.Error("equal trees should share a key")
	}
	if base == diagramKey(tr, render.FormatPNG, opts) {
		t.Error("format should change the key")
	}
	opts.Marks = map[string]string{"0": "#FF0000"}
	if base == diagramKey(tr, render.FormatSVG, opts) {
		t.Error("marks should change the key")
	}
}

func TestOpenCacheDisabled(t *testing.T) {
	c := New(&bytes.Buffer{}, LogInfo)
	if _, ok := c.openCache(true).(cache.NullCache); !ok {
		t.Error("--no-cache should use a NullCache")
	}
}
