// Package cache persists the output of completion rule commands so slow
// commands are not re-run on every keypress.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is one cached command output
type Entry struct {
	Key       string    `json:"key"`
	Rule      string    `json:"rule,omitempty"`
	Lines     []string  `json:"lines"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache is a JSON file of entries keyed by Key
type Cache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// DefaultPath returns $XDG_CACHE_HOME/rlcomplete/commands.json
func DefaultPath() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "rlcomplete", "commands.json"), nil
}

// Key derives a stable entry key from the inputs of a command run
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		// Length prefix keeps ("ab","c") and ("a","bc") apart
		fmt.Fprintf(h, "%d:%s;", len(p), p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// New opens the cache at path, creating its directory. A corrupt file is
// treated as empty and overwritten on the next write.
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil && !os.IsNotExist(err) {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr) {
			return nil, err
		}
		c.entries = make(map[string]*Entry)
	}

	return c, nil
}

// Path returns the backing file
func (c *Cache) Path() string {
	return c.path
}

// Get returns the lines stored under key if they are younger than ttl
func (c *Cache) Get(key string, ttl time.Duration) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	if !found || c.now().Sub(entry.Timestamp) >= ttl {
		return nil, false
	}
	return entry.Lines, true
}

// Set stores lines under key and persists the cache
func (c *Cache) Set(key, rule string, lines []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if lines == nil {
		lines = []string{}
	}
	c.entries[key] = &Entry{
		Key:       key,
		Rule:      rule,
		Lines:     lines,
		Timestamp: c.now(),
	}
	return c.persist()
}

// Delete removes an entry
func (c *Cache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return c.persist()
}

// Clear removes all entries
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	return c.persist()
}

// Prune drops entries older than maxAge and returns how many were removed
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.now().Sub(entry.Timestamp) >= maxAge {
			delete(c.entries, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, c.persist()
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if entries != nil {
		c.entries = entries
	}
	return nil
}

// persist replaces the file in one rename so a concurrent reader never
// sees a partial document
func (c *Cache) persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), ".commands-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.path)
}
