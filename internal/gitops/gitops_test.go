package gitops

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerRepo(t *testing.T) {
	cases := map[string]struct{ owner, repo string }{
		"https://github.com/acme/widget.git": {"acme", "widget"},
		"https://github.com/acme/widget":     {"acme", "widget"},
		"git@github.com:acme/widget.git":     {"acme", "widget"},
		"ssh://git@github.com/acme/widget":   {"acme", "widget"},
	}
	for url, want := range cases {
		owner, repo, err := parseOwnerRepo(url)
		require.NoError(t, err, url)
		assert.Equal(t, want.owner, owner, url)
		assert.Equal(t, want.repo, repo, url)
	}
}

func TestParseOwnerRepo_Malformed(t *testing.T) {
	_, _, err := parseOwnerRepo("not-a-url")
	assert.Error(t, err)
}

func TestParseShortstat(t *testing.T) {
	ins, del, files, err := parseShortstat(" 3 files changed, 12 insertions(+), 4 deletions(-)")
	require.NoError(t, err)
	assert.Equal(t, 12, ins)
	assert.Equal(t, 4, del)
	assert.Equal(t, 3, files)
}

func TestParseShortstat_Empty(t *testing.T) {
	ins, del, files, err := parseShortstat("")
	require.NoError(t, err)
	assert.Zero(t, ins)
	assert.Zero(t, del)
	assert.Zero(t, files)
}

func initTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available on PATH")
	}
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	run("init", "-q", "-b", "main")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o644))
	run("add", "-A")
	run("commit", "-q", "-m", "initial")
	return dir
}

func TestRepository_IsRepoAndClean(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)

	isRepo, err := repo.IsRepo(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, isRepo)

	clean, err := repo.IsClean(context.Background())
	require.NoError(t, err)
	assert.True(t, clean)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("x"), 0o644))
	clean, err = repo.IsClean(context.Background())
	require.NoError(t, err)
	assert.False(t, clean)
}

func TestRepository_IsRepo_NotARepo(t *testing.T) {
	dir := t.TempDir()
	repo := Open(dir)
	isRepo, err := repo.IsRepo(context.Background(), dir)
	require.NoError(t, err)
	assert.False(t, isRepo)
}

func TestRepository_CurrentBranchAndCommit(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)

	branch, err := repo.CurrentBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "main", branch)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("content"), 0o644))
	hash, err := repo.CommitAll(context.Background(), "chore: release 1.0.0")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	clean, err := repo.IsClean(context.Background())
	require.NoError(t, err)
	assert.True(t, clean)
}

func TestRepository_CreateTagAndLatestVersionTag(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)

	require.NoError(t, repo.CreateTag(context.Background(), "v1.0.0", "Release 1.0.0"))
	// Reopen so go-git's tag iterator picks up the tag created via CLI.
	repo = Open(dir)

	tag, found, err := repo.LatestVersionTag(context.Background(), "v")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v1.0.0", tag)
}

func TestRepository_CommitsSince(t *testing.T) {
	dir := initTestRepo(t)
	repo := Open(dir)

	commits, err := repo.CommitsSince(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, commits, 1)
	assert.Equal(t, "initial", commits[0].Message)
}
