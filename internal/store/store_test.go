package store

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autocompare/autocompare/internal/logging"
)

type record struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

func discard() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tempStore(t *testing.T) (*Store[record], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.json")
	return New[record](path, discard()), path
}

func TestLoad_MissingFileStartsEmpty(t *testing.T) {
	s, _ := tempStore(t)
	s.Load(context.Background())
	assert.Equal(t, 0, s.Len())
}

func TestLoad_MalformedDocumentStartsEmpty(t *testing.T) {
	s, path := tempStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s.Load(context.Background())
	assert.Equal(t, 0, s.Len())
}

func TestLoad_ReplacesCollectionWholesale(t *testing.T) {
	ctx := context.Background()
	s, path := tempStore(t)
	s.Add(ctx, record{Name: "kept on disk"})

	other := New[record](path, discard())
	other.Add(ctx, record{Name: "overwrites"})

	// Reloading discards anything only held in memory.
	s.Load(ctx)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, "overwrites", s.All()[0].Name)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, path := tempStore(t)

	want := []record{
		{Name: "first", Tags: []string{"a", "b"}},
		{Name: "second"},
	}
	for _, r := range want {
		s.Add(ctx, r)
	}

	reloaded := New[record](path, discard())
	reloaded.Load(ctx)
	assert.Equal(t, want, reloaded.All())
}

func TestAdd_WritesThrough(t *testing.T) {
	ctx := context.Background()
	s, path := tempStore(t)
	s.Add(ctx, record{Name: "x"})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x"`)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s, path := tempStore(t)
	s.Add(ctx, record{Name: "a"})
	s.Add(ctx, record{Name: "b"})

	removed := s.Remove(ctx, record{Name: "a"})
	require.True(t, removed)
	require.Equal(t, 1, s.Len())

	// Persisted document has one fewer entry.
	reloaded := New[record](path, discard())
	reloaded.Load(ctx)
	assert.Equal(t, 1, reloaded.Len())

	// Removing an absent record changes nothing and reports false.
	assert.False(t, s.Remove(ctx, record{Name: "missing"}))
	reloaded.Load(ctx)
	assert.Equal(t, 1, reloaded.Len())
}

func TestFind_ReturnsMutablePointer(t *testing.T) {
	ctx := context.Background()
	s, path := tempStore(t)
	s.Add(ctx, record{Name: "before"})

	got := s.Find(func(r *record) bool { return r.Name == "before" })
	require.NotNil(t, got)

	got.Name = "after"
	s.Save(ctx)

	reloaded := New[record](path, discard())
	reloaded.Load(ctx)
	assert.Equal(t, "after", reloaded.All()[0].Name)
}

func TestFind_NoMatch(t *testing.T) {
	s, _ := tempStore(t)
	assert.Nil(t, s.Find(func(r *record) bool { return true }))
}

func TestSave_FaultIsSwallowed(t *testing.T) {
	ctx := context.Background()
	s := New[record](filepath.Join(t.TempDir(), "no", "such", "dir", "f.json"), discard())

	// Must not panic or error; the in-memory state stays authoritative.
	s.Add(ctx, record{Name: "kept in memory"})
	assert.Equal(t, 1, s.Len())
}
