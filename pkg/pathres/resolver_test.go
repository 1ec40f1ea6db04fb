package pathres

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()

	r, err := NewWithDir(t.TempDir())
	require.NoError(t, err)
	return r
}

func TestResolve_Valid(t *testing.T) {
	r := newTestResolver(t)

	abs, ok := r.Resolve("saves/slot1.json")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(r.BaseDir(), "saves", "slot1.json"), abs)
}

func TestResolve_Invalid(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name    string
		logical string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"absolute", "/etc/passwd"},
		{"traversal", "../outside.json"},
		{"nested traversal", "saves/../../outside.json"},
		{"dot", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.Resolve(tt.logical)
			assert.False(t, ok)
		})
	}
}

func TestResolve_InternalDotDotStaysInside(t *testing.T) {
	r := newTestResolver(t)

	// ".." that does not escape the base is cleaned away and stays valid.
	abs, ok := r.Resolve("saves/deep/../slot1.json")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(r.BaseDir(), "saves", "slot1.json"), abs)
}

func TestResolveDir_CreatesDirectory(t *testing.T) {
	r := newTestResolver(t)

	abs, dir, ok := r.ResolveDir("nested/deeply/slot.json")
	require.True(t, ok)
	assert.Equal(t, filepath.Dir(abs), dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNew_RequiresBaseDir(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNew_CreatesBase(t *testing.T) {
	base := filepath.Join(t.TempDir(), "store")
	r, err := NewWithDir(base)
	require.NoError(t, err)

	info, err := os.Stat(r.BaseDir())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
