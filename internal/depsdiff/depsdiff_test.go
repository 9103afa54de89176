package depsdiff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftship/driftship/internal/pipeline"
)

type fakeLockfileReader struct {
	diff string
	err  error
}

func (f *fakeLockfileReader) LockfileDiff(ctx context.Context, path, fromRef, toRef string) (string, error) {
	return f.diff, f.err
}

func TestDiff_UnknownEcosystemReturnsNil(t *testing.T) {
	d := New(&fakeLockfileReader{})
	changes, err := d.Diff(context.Background(), "/repo", "unknown-ecosystem", "v1.0.0", "HEAD")
	require.NoError(t, err)
	assert.Nil(t, changes)
}

func TestDiff_GoSum_AddedUpdatedRemoved(t *testing.T) {
	diff := `--- a/go.sum
+++ b/go.sum
-github.com/old/dep v1.0.0 h1:aaaa=
-github.com/old/dep v1.0.0/go.mod h1:bbbb=
+github.com/old/dep v1.1.0 h1:cccc=
+github.com/old/dep v1.1.0/go.mod h1:dddd=
+github.com/new/dep v2.0.0 h1:eeee=
+github.com/new/dep v2.0.0/go.mod h1:ffff=
-github.com/gone/dep v3.0.0 h1:gggg=
-github.com/gone/dep v3.0.0/go.mod h1:hhhh=
`
	d := New(&fakeLockfileReader{diff: diff})
	changes, err := d.Diff(context.Background(), "/repo", "go", "v1.0.0", "HEAD")
	require.NoError(t, err)
	byName := map[string]pipeline.DepChange{}
	for _, c := range changes {
		byName[c.Name] = c
	}
	require.Contains(t, byName, "github.com/old/dep")
	assert.Equal(t, "v1.0.0", byName["github.com/old/dep"].From)
	assert.Equal(t, "v1.1.0", byName["github.com/old/dep"].To)

	require.Contains(t, byName, "github.com/new/dep")
	assert.Empty(t, byName["github.com/new/dep"].From)
	assert.Equal(t, "v2.0.0", byName["github.com/new/dep"].To)

	require.Contains(t, byName, "github.com/gone/dep")
	assert.Equal(t, "v3.0.0", byName["github.com/gone/dep"].From)
	assert.Empty(t, byName["github.com/gone/dep"].To)
}

func TestDiff_NoEntryWhenFromEqualsTo(t *testing.T) {
	diff := `-github.com/same/dep v1.0.0 h1:aaaa=
+github.com/same/dep v1.0.0 h1:aaaa=
`
	d := New(&fakeLockfileReader{diff: diff})
	changes, err := d.Diff(context.Background(), "/repo", "go", "v1.0.0", "HEAD")
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiff_CargoLock(t *testing.T) {
	diff := `-name = "serde"
-version = "1.0.1"
+name = "serde"
+version = "1.0.2"
+name = "newcrate"
+version = "0.1.0"
`
	d := New(&fakeLockfileReader{diff: diff})
	changes, err := d.Diff(context.Background(), "/repo", "rust", "v1.0.0", "HEAD")
	require.NoError(t, err)
	require.Len(t, changes, 2)
}

func TestDiff_SortedByName(t *testing.T) {
	diff := `-name = "zeta"
-version = "1.0.0"
+name = "zeta"
+version = "2.0.0"
+name = "alpha"
+version = "1.0.0"
`
	d := New(&fakeLockfileReader{diff: diff})
	changes, err := d.Diff(context.Background(), "/repo", "rust", "v1.0.0", "HEAD")
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "alpha", changes[0].Name)
	assert.Equal(t, "zeta", changes[1].Name)
}

func TestDiff_PropagatesGitError(t *testing.T) {
	d := New(&fakeLockfileReader{err: assertErr{}})
	_, err := d.Diff(context.Background(), "/repo", "go", "v1.0.0", "HEAD")
	assert.Error(t, err)
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
