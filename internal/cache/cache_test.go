package cache

import (
	"path/filepath"
	"testing"

	"github.com/yusufdanis/hidden-character-detector/internal/detector"
)

func TestLookupMiss(t *testing.T) {
	c := New()
	if _, ok := c.Lookup("a.go", HashContent([]byte("x"))); ok {
		t.Fatal("expected miss on empty cache")
	}
}

func TestStoreAndLookup(t *testing.T) {
	c := New()
	hash := HashContent([]byte("content"))
	findings := detector.Scan("a​b")

	c.Store("a.go", hash, findings)

	got, ok := c.Lookup("a.go", hash)
	if !ok {
		t.Fatal("expected hit after store")
	}
	if len(got) != 1 || got[0].Category != detector.CategoryZeroWidth {
		t.Fatalf("unexpected findings: %v", got)
	}
}

func TestHashChangeInvalidates(t *testing.T) {
	c := New()
	c.Store("a.go", HashContent([]byte("old")), nil)

	if _, ok := c.Lookup("a.go", HashContent([]byte("new"))); ok {
		t.Fatal("changed content must miss the cache")
	}
}

func TestInvalidate(t *testing.T) {
	c := New()
	hash := HashContent([]byte("x"))
	c.Store("a.go", hash, nil)
	c.Invalidate("a.go")

	if _, ok := c.Lookup("a.go", hash); ok {
		t.Fatal("expected miss after invalidate")
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := New()
	hash := HashContent([]byte("doc"))
	c.Store("doc.md", hash, detector.Scan("x‮y"))
	if err := c.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	got, ok := loaded.Lookup("doc.md", hash)
	if !ok {
		t.Fatal("expected hit after reload")
	}
	if len(got) != 1 || got[0].Category != detector.CategoryBidiControl {
		t.Fatalf("unexpected findings after reload: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing cache file should not error, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatal("expected empty cache")
	}
}
