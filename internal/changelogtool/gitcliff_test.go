package changelogtool

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasMarker(t *testing.T) {
	dir := t.TempDir()
	g := GitCliff{}
	assert.False(t, g.HasMarker(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "cliff.toml"), []byte("[changelog]\n"), 0o644))
	assert.True(t, g.HasMarker(dir))
}

func TestHasMarker_CustomName(t *testing.T) {
	dir := t.TempDir()
	g := GitCliff{Marker: "changelog.toml"}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "changelog.toml"), []byte(""), 0o644))
	assert.True(t, g.HasMarker(dir))
	assert.False(t, GitCliff{}.HasMarker(dir))
}

func TestNextVersion_MissingBinary(t *testing.T) {
	g := GitCliff{Bin: "git-cliff-does-not-exist"}
	_, err := g.NextVersion(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestRender_MissingBinary(t *testing.T) {
	g := GitCliff{Bin: "git-cliff-does-not-exist"}
	_, err := g.Render(context.Background(), t.TempDir(), "v1.0.0")
	assert.Error(t, err)
}
