// Package writecache tracks outputs already written to disk so that
// re-writing identical content can be skipped. Skipping a write keeps the
// file's modification time stable, which avoids spurious rebuilds in
// downstream tools watching the output directory.
//
// The cache is intentionally conservative: a write is skipped only when the
// content hash and byte-order-mark flag match the previous write for that
// name AND the file's on-disk modification time is unchanged since then. Any
// doubt means the write happens.
package writecache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"
)

type entry struct {
	hash    string
	bom     bool
	modTime time.Time
}

// Cache remembers, per output path, what the last write put on disk.
// Not safe for concurrent use; guard it externally if writes can race.
type Cache struct {
	entries map[string]entry
}

// New creates an empty write cache.
func New() *Cache {
	return &Cache{entries: make(map[string]entry)}
}

// HashText computes the SHA-256 hex digest of text.
func HashText(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// ShouldSkip reports whether writing text to path can be skipped: the
// previous write for path had identical content and byte-order-mark flag,
// and the file on disk has not been touched since.
func (c *Cache) ShouldSkip(path string, text string, bom bool) bool {
	e, ok := c.entries[path]
	if !ok {
		return false
	}
	if e.bom != bom || e.hash != HashText(text) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.ModTime().Equal(e.modTime)
}

// Record stores the outcome of a successful write. Call it after the bytes
// are on disk so the recorded modification time matches the file.
func (c *Cache) Record(path string, text string, bom bool) {
	info, err := os.Stat(path)
	if err != nil {
		// Without a trustworthy mtime the entry could mask a concurrent
		// modification; forget the path instead.
		delete(c.entries, path)
		return
	}
	c.entries[path] = entry{
		hash:    HashText(text),
		bom:     bom,
		modTime: info.ModTime(),
	}
}
