package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *time.Time) {
	t.Helper()
	c, err := New(filepath.Join(t.TempDir(), "nested", "commands.json"))
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "commands.json")
	c, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path())
	assert.Equal(t, 0, c.Len())
	assert.DirExists(t, filepath.Dir(path))
}

func TestNew_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "commands.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	c, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())

	require.NoError(t, c.Set("k", "rule", []string{"x"}))
	reopened, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reopened.Len())
}

func TestCache_GetRespectsTTL(t *testing.T) {
	c, now := newTestCache(t)
	require.NoError(t, c.Set("key", "hosts", []string{"@alpha", "@beta"}))

	lines, ok := c.Get("key", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []string{"@alpha", "@beta"}, lines)

	*now = now.Add(59 * time.Second)
	_, ok = c.Get("key", time.Minute)
	assert.True(t, ok)

	*now = now.Add(time.Second)
	_, ok = c.Get("key", time.Minute)
	assert.False(t, ok)

	_, ok = c.Get("missing", time.Hour)
	assert.False(t, ok)
}

func TestCache_EmptyOutputIsCached(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.Set("key", "quiet", nil))

	lines, ok := c.Get("key", time.Minute)
	require.True(t, ok)
	assert.Empty(t, lines)
	assert.NotNil(t, lines)
}

func TestCache_Persistence(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.Set("key", "hosts", []string{"@alpha"}))

	reopened, err := New(c.Path())
	require.NoError(t, err)
	reopened.now = c.now

	lines, ok := reopened.Get("key", time.Minute)
	require.True(t, ok)
	assert.Equal(t, []string{"@alpha"}, lines)
}

func TestCache_DeleteAndClear(t *testing.T) {
	c, _ := newTestCache(t)
	require.NoError(t, c.Set("a", "r", []string{"1"}))
	require.NoError(t, c.Set("b", "r", []string{"2"}))

	require.NoError(t, c.Delete("a"))
	assert.Equal(t, 1, c.Len())

	require.NoError(t, c.Clear())
	assert.Equal(t, 0, c.Len())

	reopened, err := New(c.Path())
	require.NoError(t, err)
	assert.Equal(t, 0, reopened.Len())
}

func TestCache_Prune(t *testing.T) {
	c, now := newTestCache(t)
	require.NoError(t, c.Set("old", "r", []string{"1"}))
	*now = now.Add(2 * time.Hour)
	require.NoError(t, c.Set("new", "r", []string{"2"}))

	removed, err := c.Prune(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, c.Len())

	removed, err = c.Prune(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.NotEqual(t, Key("a"), Key("a", ""))
	assert.Len(t, Key(), 64)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/var/cache/test")
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/test/rlcomplete/commands.json", path)

	t.Setenv("XDG_CACHE_HOME", "")
	t.Setenv("HOME", "/home/tester")
	path, err = DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.cache/rlcomplete/commands.json", path)
}
