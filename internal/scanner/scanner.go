// Package scanner orchestrates detector runs over a file corpus: path
// traversal, glob exclusion, binary-file skipping, a bounded worker pool and
// the per-document result cache. Cancellation granularity is per file; a
// single document scan is never interrupted midway.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/yusufdanis/hidden-character-detector/internal/cache"
	"github.com/yusufdanis/hidden-character-detector/internal/detector"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/config"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

// FileResult pairs a scanned path with its findings.
type FileResult struct {
	Path     string             `json:"path"`
	Findings []detector.Finding `json:"findings"`
}

// Result aggregates one corpus scan. Files holds only documents that
// produced findings, sorted by path.
type Result struct {
	StartedAt     time.Time    `json:"started_at"`
	FinishedAt    time.Time    `json:"finished_at"`
	Files         []FileResult `json:"files"`
	ScannedFiles  int          `json:"scanned_files"`
	SkippedFiles  int          `json:"skipped_files"`
	ErrorFiles    int          `json:"error_files"`
	TotalFindings int          `json:"total_findings"`
}

type Scanner struct {
	logger      hclog.Logger
	cache       *cache.Cache
	threads     int
	exclude     []string
	maxFileSize int64
}

// New builds a Scanner from config. A nil cache disables result reuse.
func New(cfg *config.Config, logger hclog.Logger, resultCache *cache.Cache, extraExclude []string) *Scanner {
	exclude := append([]string{}, cfg.Scanner.Exclude...)
	exclude = append(exclude, extraExclude...)

	return &Scanner{
		logger:      logger,
		cache:       resultCache,
		threads:     config.SetThen(cfg.Scanner.Threads, config.DefaultScanThreads),
		exclude:     exclude,
		maxFileSize: config.SetThen(cfg.Scanner.MaxFileSize, int64(config.DefaultMaxFileSize)),
	}
}

// ScanPaths walks every root (files are taken as-is, directories are
// traversed) and scans the collected corpus.
func (s *Scanner) ScanPaths(ctx context.Context, roots []string) (*Result, error) {
	var targets []string
	for _, root := range roots {
		expanded, err := files.ExpandPath(root)
		if err != nil {
			return nil, fmt.Errorf("failed to expand path %q: %w", root, err)
		}

		info, err := os.Stat(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to stat target %q: %w", expanded, err)
		}
		if !info.IsDir() {
			targets = append(targets, expanded)
			continue
		}

		collected, err := s.collectFiles(expanded)
		if err != nil {
			return nil, err
		}
		targets = append(targets, collected...)
	}

	return s.ScanFiles(ctx, targets)
}

// ScanFiles scans an explicit list of files with the configured worker pool.
func (s *Scanner) ScanFiles(ctx context.Context, paths []string) (*Result, error) {
	result := &Result{StartedAt: time.Now()}

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < s.threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				fileResult, status := s.scanOne(path)
				mu.Lock()
				switch status {
				case statusScanned:
					result.ScannedFiles++
					if len(fileResult.Findings) > 0 {
						result.Files = append(result.Files, fileResult)
						result.TotalFindings += len(fileResult.Findings)
					}
				case statusSkipped:
					result.SkippedFiles++
				case statusError:
					result.ErrorFiles++
				}
				mu.Unlock()
			}
		}()
	}

	var cancelled bool
feed:
	for _, path := range paths {
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	result.FinishedAt = time.Now()

	if cancelled {
		return result, ctx.Err()
	}
	return result, nil
}

type scanStatus int

const (
	statusScanned scanStatus = iota
	statusSkipped
	statusError
)

// scanOne reads and scans a single document. Read failures are recoverable:
// the file is reported as errored and its cached result is invalidated, so a
// stale entry never outlives the content it was computed from.
func (s *Scanner) scanOne(path string) (FileResult, scanStatus) {
	info, err := os.Stat(path)
	if err != nil {
		s.logger.Warn("skipping unreadable file", "path", path, "error", err)
		s.invalidate(path)
		return FileResult{}, statusError
	}
	if info.Size() > s.maxFileSize {
		s.logger.Debug("skipping oversized file", "path", path, "size", info.Size())
		return FileResult{}, statusSkipped
	}

	content, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("failed to read file", "path", path, "error", err)
		s.invalidate(path)
		return FileResult{}, statusError
	}
	if !files.IsLikelyText(content) {
		s.logger.Debug("skipping binary file", "path", path)
		return FileResult{}, statusSkipped
	}

	hash := cache.HashContent(content)
	if s.cache != nil {
		if findings, ok := s.cache.Lookup(path, hash); ok {
			return FileResult{Path: path, Findings: findings}, statusScanned
		}
	}

	findings := detector.Scan(string(content))
	if s.cache != nil {
		s.cache.Store(path, hash, findings)
	}
	return FileResult{Path: path, Findings: findings}, statusScanned
}

func (s *Scanner) invalidate(path string) {
	if s.cache != nil {
		s.cache.Invalidate(path)
	}
}

// collectFiles gathers regular files under root, honoring exclusion globs
// and skipping VCS internals.
func (s *Scanner) collectFiles(root string) ([]string, error) {
	var collected []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("walk error", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		if d.IsDir() {
			if d.Name() == ".git" || s.excluded(rel, true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.excluded(rel, false) {
			return nil
		}

		collected = append(collected, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	return collected, nil
}

// excluded matches rel (slash-separated, relative to the scan root) against
// the exclusion globs. Patterns match either the full relative path or the
// base name; a pattern matching a directory prunes the whole subtree.
func (s *Scanner) excluded(rel string, isDir bool) bool {
	slashed := filepath.ToSlash(rel)
	base := filepath.Base(rel)

	for _, pattern := range s.exclude {
		if ok, err := filepath.Match(pattern, slashed); err == nil && ok {
			return true
		}
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
		if isDir {
			// "vendor/*" should prune the vendor directory itself.
			if ok, err := filepath.Match(pattern, slashed+"/*"); err == nil && ok {
				return true
			}
		}
	}
	return false
}
