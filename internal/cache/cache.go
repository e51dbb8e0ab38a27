// Package cache keeps per-document scan results keyed by path and content
// hash so unchanged files are not rescanned between runs. The detector itself
// is stateless; all result retention lives here, owned by the orchestration
// layer.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"sync"

	"github.com/yusufdanis/hidden-character-detector/internal/detector"
	"github.com/yusufdanis/hidden-character-detector/pkg/shared/files"
)

type Entry struct {
	Hash     string             `json:"hash"`
	Findings []detector.Finding `json:"findings"`
}

// Cache is safe for concurrent use by scan workers.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

// HashContent fingerprints document content for cache keying.
func HashContent(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// Lookup returns the cached findings for path if the stored content hash
// still matches.
func (c *Cache) Lookup(path, hash string) ([]detector.Finding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok || entry.Hash != hash {
		return nil, false
	}
	return entry.Findings, true
}

func (c *Cache) Store(path, hash string, findings []detector.Finding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = Entry{Hash: hash, Findings: findings}
}

// Invalidate drops the entry for path, e.g. after a failed re-read.
func (c *Cache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Save persists the cache as JSON at path.
func (c *Cache) Save(path string) error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c.entries, "", "    ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	return files.WriteFileAtomic(path, data)
}

// Load reads a previously saved cache. A missing file yields an empty cache.
func Load(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}
