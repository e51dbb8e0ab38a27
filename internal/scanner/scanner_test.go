package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/yusufdanis/hidden-character-detector/internal/cache"
	"github.com/yusufdanis/hidden-character-detector/internal/detector"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
)

func newTestScanner(t *testing.T, cfg *config.Config, resultCache *cache.Cache, exclude []string) *Scanner {
	t.Helper()
	if cfg == nil {
		cfg = &config.Config{}
	}
	return New(cfg, hclog.NewNullLogger(), resultCache, exclude)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScanPathsFindsHiddenCharacters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "clean.go", "package main\n")
	dirty := writeFile(t, dir, "dirty.go", "package main // tricky‮comment\n")

	s := newTestScanner(t, nil, nil, nil)
	result, err := s.ScanPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ScannedFiles != 2 {
		t.Errorf("expected 2 scanned files, got %d", result.ScannedFiles)
	}
	if len(result.Files) != 1 || result.Files[0].Path != dirty {
		t.Fatalf("expected findings only in %q, got %+v", dirty, result.Files)
	}
	if result.Files[0].Findings[0].Category != detector.CategoryBidiControl {
		t.Errorf("unexpected category: %v", result.Files[0].Findings[0].Category)
	}
	if result.TotalFindings != 1 {
		t.Errorf("expected 1 total finding, got %d", result.TotalFindings)
	}
}

func TestScanPathsSingleFileTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "note.md", "hello​world")

	s := newTestScanner(t, nil, nil, nil)
	result, err := s.ScanPaths(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Files) != 1 || len(result.Files[0].Findings) != 1 {
		t.Fatalf("expected one finding, got %+v", result.Files)
	}
}

func TestScanPathsHonorsExcludeGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.min.js", "x​y")
	writeFile(t, dir, "vendor/lib.go", "x​y")
	hit := writeFile(t, dir, "main.go", "x​y")

	s := newTestScanner(t, nil, nil, []string{"*.min.js", "vendor/*"})
	result, err := s.ScanPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Path != hit {
		t.Fatalf("exclusions not honored: %+v", result.Files)
	}
}

func TestScanPathsSkipsBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	bin := append([]byte{0x7F, 'E', 'L', 'F', 0x00}, []byte("​​")...)
	if err := os.WriteFile(filepath.Join(dir, "blob"), bin, 0644); err != nil {
		t.Fatal(err)
	}

	s := newTestScanner(t, nil, nil, nil)
	result, err := s.ScanPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SkippedFiles != 1 {
		t.Errorf("expected 1 skipped file, got %d", result.SkippedFiles)
	}
	if len(result.Files) != 0 {
		t.Errorf("binary files must not be scanned: %+v", result.Files)
	}
}

func TestScanPathsSkipsGitDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".git/objects/pack/data", "x​y")
	writeFile(t, dir, "tracked.txt", "clean")

	s := newTestScanner(t, nil, nil, nil)
	result, err := s.ScanPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ScannedFiles != 1 {
		t.Errorf("expected only the tracked file to be scanned, got %d", result.ScannedFiles)
	}
}

func TestScanFilesUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "x​y")

	resultCache := cache.New()
	s := newTestScanner(t, nil, resultCache, nil)

	first, err := s.ScanFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resultCache.Len() != 1 {
		t.Fatalf("expected cache entry after scan, got %d", resultCache.Len())
	}

	second, err := s.ScanFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Files) != len(first.Files) || second.TotalFindings != first.TotalFindings {
		t.Errorf("cached scan must reproduce results: %+v vs %+v", second, first)
	}
}

func TestScanFilesCancelledContext(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := 0; i < 50; i++ {
		paths = append(paths, writeFile(t, dir, filepath.Join("files", string(rune('a'+i%26))+".txt"), "clean"))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, nil, nil, nil)
	if _, err := s.ScanFiles(ctx, paths); err == nil {
		t.Fatal("expected context error for cancelled scan")
	}
}

func TestScanFilesUnreadableFileRecoverable(t *testing.T) {
	s := newTestScanner(t, nil, nil, nil)
	result, err := s.ScanFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.txt")})
	if err != nil {
		t.Fatalf("unreadable files must not fail the scan: %v", err)
	}
	if result.ErrorFiles != 1 {
		t.Errorf("expected 1 errored file, got %d", result.ErrorFiles)
	}
}

func TestScanFilesUnreadableFileInvalidatesCache(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doc.txt", "hello​world")

	resultCache := cache.New()
	s := newTestScanner(t, nil, resultCache, nil)

	if _, err := s.ScanFiles(context.Background(), []string{path}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resultCache.Len() != 1 {
		t.Fatalf("expected cache entry after scan, got %d", resultCache.Len())
	}

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	result, err := s.ScanFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unreadable files must not fail the scan: %v", err)
	}
	if result.ErrorFiles != 1 {
		t.Errorf("expected 1 errored file, got %d", result.ErrorFiles)
	}
	if resultCache.Len() != 0 {
		t.Errorf("expected stale cache entry to be dropped, got %d entries", resultCache.Len())
	}
}

func TestMaxFileSizeSkip(t *testing.T) {
	cfg := &config.Config{}
	cfg.Scanner.MaxFileSize = 4

	dir := t.TempDir()
	writeFile(t, dir, "big.txt", "this is longer than four bytes​")

	s := newTestScanner(t, cfg, nil, nil)
	result, err := s.ScanPaths(context.Background(), []string{dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SkippedFiles != 1 || result.ScannedFiles != 0 {
		t.Errorf("oversized file should be skipped: %+v", result)
	}
}
