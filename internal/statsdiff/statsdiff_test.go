package statsdiff

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftship/driftship/internal/pipeline"
)

type fakeGitStats struct {
	count                                int
	insertions, deletions, filesChanged  int
	contributors                         []pipeline.Contributor
	countErr, shortStatErr, shortlogErr  error
}

func (f *fakeGitStats) CommitCount(ctx context.Context, fromRef, toRef string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeGitStats) ShortStat(ctx context.Context, fromRef, toRef string) (int, int, int, error) {
	return f.insertions, f.deletions, f.filesChanged, f.shortStatErr
}

func (f *fakeGitStats) Shortlog(ctx context.Context, fromRef, toRef string) ([]pipeline.Contributor, error) {
	return f.contributors, f.shortlogErr
}

func TestCollect_Success(t *testing.T) {
	git := &fakeGitStats{
		count: 12, insertions: 100, deletions: 40, filesChanged: 8,
		contributors: []pipeline.Contributor{{Name: "alice", Count: 9}, {Name: "bob", Count: 3}},
	}
	c := New(git)
	stats, err := c.Collect(context.Background(), "/repo", "v1.0.0", "HEAD")
	require.NoError(t, err)
	assert.Equal(t, 12, stats.CommitCount)
	assert.Equal(t, 8, stats.FilesChanged)
	assert.Equal(t, 100, stats.Insertions)
	assert.Equal(t, 40, stats.Deletions)
	assert.Len(t, stats.Contributors, 2)
}

func TestCollect_PropagatesCommitCountError(t *testing.T) {
	git := &fakeGitStats{countErr: errors.New("boom")}
	c := New(git)
	_, err := c.Collect(context.Background(), "/repo", "v1.0.0", "HEAD")
	assert.Error(t, err)
}

func TestCollect_PropagatesShortStatError(t *testing.T) {
	git := &fakeGitStats{shortStatErr: errors.New("boom")}
	c := New(git)
	_, err := c.Collect(context.Background(), "/repo", "v1.0.0", "HEAD")
	assert.Error(t, err)
}

func TestCollect_PropagatesShortlogError(t *testing.T) {
	git := &fakeGitStats{shortlogErr: errors.New("boom")}
	c := New(git)
	_, err := c.Collect(context.Background(), "/repo", "v1.0.0", "HEAD")
	assert.Error(t, err)
}
