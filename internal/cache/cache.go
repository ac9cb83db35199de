// Package cache memoizes expensive document extraction keyed by the
// SHA-256 of the file content, so renamed or moved files still hit.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Cache is a content-addressed result store backed by a single JSON map
// file: 64-char hex hash → JSON-serialized result. The whole map is
// loaded at construction and rewritten on every update. Entries never
// expire; the only eviction is Clear. Single-process use only.
type Cache struct {
	path    string
	entries map[string]string
}

// Load reads the cache map file, creating an empty cache if the file
// does not exist.
func Load(path string) (*Cache, error) {
	c := &Cache{path: path, entries: make(map[string]string)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing cache file %s: %w", path, err)
	}
	return c, nil
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Clear drops every entry and rewrites an empty map.
func (c *Cache) Clear() error {
	c.entries = make(map[string]string)
	return c.save()
}

// Hash computes the SHA-256 content hash of a file.
func (c *Cache) Hash(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", filePath, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", filePath, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func (c *Cache) put(hash, serialized string) error {
	c.entries[hash] = serialized
	return c.save()
}

func (c *Cache) save() error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	data, err := json.MarshalIndent(c.entries, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	return nil
}

// GetOrProcess returns the cached result for filePath's content if one
// exists, otherwise runs process and stores its result. The cache is
// not self-describing, so the result type comes from the caller. On a
// hit, onFound (if non-nil) may rebind paths inside the result — the
// usual case is a proof document that was renamed without content
// change. process is never invoked on a hit.
func GetOrProcess[T any](c *Cache, filePath string, process func(string) (T, error), onFound func(*T, string)) (T, error) {
	var zero T

	hash, err := c.Hash(filePath)
	if err != nil {
		return zero, err
	}

	if serialized, ok := c.entries[hash]; ok {
		var result T
		if err := json.Unmarshal([]byte(serialized), &result); err != nil {
			return zero, fmt.Errorf("decoding cached result for %s: %w", filePath, err)
		}
		if onFound != nil {
			onFound(&result, filePath)
		}
		return result, nil
	}

	result, err := process(filePath)
	if err != nil {
		return zero, err
	}
	data, err := json.Marshal(result)
	if err != nil {
		return zero, fmt.Errorf("encoding result for %s: %w", filePath, err)
	}
	if err := c.put(hash, string(data)); err != nil {
		return zero, err
	}
	return result, nil
}
