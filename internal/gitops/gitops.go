// Package gitops implements ship.GitRepository: repository reads via go-git
// and mutations via the git CLI, grounded on the teacher's
// internal/infrastructure/git adapter and internal/service/git service
// (go-git-backed inspection) translated to spec.md §4.1/§4.5/§4.7's narrower
// surface. Mutations (commit/tag/push) shell out to the git binary instead
// of using go-git's own transport, because only the ambient git credential
// helper/SSH agent configuration (not go-git's auth types) can be relied on
// to authenticate a push in an arbitrary caller's environment.
package gitops

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/driftship/driftship/internal/pipeline"
	"github.com/driftship/driftship/internal/ship"
)

// Repository implements ship.GitRepository for a single working tree.
type Repository struct {
	root string
	repo *git.Repository
}

// Open opens the git repository rooted at root. It does not fail if root is
// not a repository; callers should call IsRepo to check, matching
// preflight's check ordering in spec.md §4.1.
func Open(root string) *Repository {
	repo, _ := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	return &Repository{root: root, repo: repo}
}

var _ ship.GitRepository = (*Repository)(nil)

// IsRepo reports whether root is (inside) a git repository.
func (r *Repository) IsRepo(ctx context.Context, root string) (bool, error) {
	if r.repo != nil {
		return true, nil
	}
	_, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err == git.ErrRepositoryNotExists {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsClean reports whether the working tree has no uncommitted changes.
func (r *Repository) IsClean(ctx context.Context) (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, err
	}
	status, err := wt.Status()
	if err != nil {
		return false, err
	}
	return status.IsClean(), nil
}

// CurrentBranch returns the branch HEAD points at.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached")
	}
	return head.Name().Short(), nil
}

// DefaultBranch reports the remote's advertised HEAD branch, falling back to
// whichever of main/master exists locally.
func (r *Repository) DefaultBranch(ctx context.Context) (string, error) {
	if out, err := r.git(ctx, "symbolic-ref", "refs/remotes/origin/HEAD"); err == nil {
		name := strings.TrimPrefix(strings.TrimSpace(out), "refs/remotes/origin/")
		if name != "" {
			return name, nil
		}
	}
	for _, candidate := range []string{"main", "master"} {
		if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(candidate), true); err == nil {
			return candidate, nil
		}
	}
	return "main", nil
}

// InSync reports whether branch has no unfetched commits on the remote and
// no unpushed local commits, per spec.md §4.1 check 4. It fetches first so
// "unfetched" is evaluated against current remote state.
func (r *Repository) InSync(ctx context.Context, branch string) (bool, error) {
	_, _ = r.git(ctx, "fetch", "--quiet", "origin", branch)

	localOut, err := r.git(ctx, "rev-parse", branch)
	if err != nil {
		return false, err
	}
	remoteOut, err := r.git(ctx, "rev-parse", "origin/"+branch)
	if err != nil {
		// No remote-tracking branch yet; treat as in sync (nothing to
		// compare against) rather than failing preflight on a brand-new
		// branch.
		return true, nil
	}
	return strings.TrimSpace(localOut) == strings.TrimSpace(remoteOut), nil
}

// OwnerRepo parses the origin remote URL into owner/repo.
func (r *Repository) OwnerRepo(ctx context.Context) (owner, repo string, err error) {
	url, err := r.RepoURL(ctx)
	if err != nil {
		return "", "", err
	}
	return parseOwnerRepo(url)
}

// RepoURL returns the origin remote's URL.
func (r *Repository) RepoURL(ctx context.Context) (string, error) {
	remote, err := r.repo.Remote("origin")
	if err != nil {
		return "", err
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL configured")
	}
	return urls[0], nil
}

func parseOwnerRepo(rawURL string) (owner, repo string, err error) {
	s := strings.TrimSuffix(strings.TrimSpace(rawURL), ".git")
	switch {
	case strings.HasPrefix(s, "git@"):
		// git@github.com:owner/repo
		s = strings.TrimPrefix(s, "git@")
		parts := strings.SplitN(s, ":", 2)
		if len(parts) != 2 {
			return "", "", fmt.Errorf("cannot parse ssh remote %q", rawURL)
		}
		s = parts[1]
	default:
		for _, prefix := range []string{"https://", "http://", "ssh://git@", "ssh://"} {
			if strings.HasPrefix(s, prefix) {
				s = strings.TrimPrefix(s, prefix)
				break
			}
		}
		if idx := strings.Index(s, "/"); idx >= 0 {
			s = s[idx+1:]
		}
	}
	parts := strings.Split(strings.Trim(s, "/"), "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote %q", rawURL)
	}
	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// LatestVersionTag returns the highest semver tag matching prefix, if any.
func (r *Repository) LatestVersionTag(ctx context.Context, prefix string) (tag string, found bool, err error) {
	tagsIter, err := r.repo.Tags()
	if err != nil {
		return "", false, err
	}
	var best *semver.Version
	var bestTag string
	err = tagsIter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			return nil
		}
		v, verr := semver.NewVersion(strings.TrimPrefix(name, prefix))
		if verr != nil {
			return nil
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestTag = name
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	if best == nil {
		return "", false, nil
	}
	return bestTag, true, nil
}

// CommitsSince returns every commit reachable from HEAD but not from ref (or
// every commit if ref is empty, meaning there is no previous tag yet).
func (r *Repository) CommitsSince(ctx context.Context, ref string) ([]ship.CommitSummary, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, err
	}
	logIter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, err
	}
	defer logIter.Close()

	var stopAt plumbing.Hash
	if ref != "" {
		h, err := r.repo.ResolveRevision(plumbing.Revision(ref))
		if err == nil && h != nil {
			stopAt = *h
		}
	}

	var commits []ship.CommitSummary
	err = logIter.ForEach(func(c *object.Commit) error {
		if !stopAt.IsZero() && c.Hash == stopAt {
			return errStop
		}
		commits = append(commits, ship.CommitSummary{
			Hash:    c.Hash.String(),
			Message: strings.SplitN(c.Message, "\n", 2)[0],
			Author:  c.Author.Name,
		})
		return nil
	})
	if err != nil && err != errStop {
		return nil, err
	}
	return commits, nil
}

var errStop = fmt.Errorf("gitops: stop iteration")

// CommitAll stages the full working tree and commits it, shelling out so
// the commit picks up the caller's configured identity and signing setup
// exactly as an interactive `git commit -a` would.
func (r *Repository) CommitAll(ctx context.Context, message string) (string, error) {
	if _, err := r.git(ctx, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := r.git(ctx, "commit", "-m", message); err != nil {
		return "", err
	}
	out, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// CreateTag creates an annotated tag at HEAD.
func (r *Repository) CreateTag(ctx context.Context, name, message string) error {
	_, err := r.git(ctx, "tag", "-a", name, "-m", message)
	return err
}

// Push pushes branch to origin.
func (r *Repository) Push(ctx context.Context, branch string) error {
	_, err := r.git(ctx, "push", "origin", branch)
	return err
}

// PushTag pushes a single tag to origin. Only the tag this run created is
// ever pushed; stray local tags are never propagated (spec.md §9's open
// question, preserved as-is).
func (r *Repository) PushTag(ctx context.Context, name string) error {
	_, err := r.git(ctx, "push", "origin", name)
	return err
}

// LockfileDiff returns the unified diff of path between fromRef and toRef,
// feeding internal/depsdiff. An empty fromRef diffs from the repository's
// root commit.
func (r *Repository) LockfileDiff(ctx context.Context, path, fromRef, toRef string) (string, error) {
	rangeArg := toRef
	if fromRef != "" {
		rangeArg = fromRef + ".." + toRef
	}
	out, err := r.git(ctx, "diff", rangeArg, "--", path)
	if err != nil {
		return "", err
	}
	return out, nil
}

// ShortStat returns insertions/deletions/files-changed between two refs.
func (r *Repository) ShortStat(ctx context.Context, fromRef, toRef string) (insertions, deletions, filesChanged int, err error) {
	rangeArg := toRef
	if fromRef != "" {
		rangeArg = fromRef + ".." + toRef
	}
	out, err := r.git(ctx, "diff", "--shortstat", rangeArg)
	if err != nil {
		return 0, 0, 0, err
	}
	return parseShortstat(out)
}

func parseShortstat(line string) (insertions, deletions, filesChanged int, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, 0, 0, nil
	}
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		fields := strings.Fields(part)
		if len(fields) < 2 {
			continue
		}
		n, convErr := strconv.Atoi(fields[0])
		if convErr != nil {
			continue
		}
		switch {
		case strings.Contains(part, "file"):
			filesChanged = n
		case strings.Contains(part, "insertion"):
			insertions = n
		case strings.Contains(part, "deletion"):
			deletions = n
		}
	}
	return insertions, deletions, filesChanged, nil
}

// CommitCount counts commits in fromRef..toRef.
func (r *Repository) CommitCount(ctx context.Context, fromRef, toRef string) (int, error) {
	rangeArg := toRef
	if fromRef != "" {
		rangeArg = fromRef + ".." + toRef
	}
	out, err := r.git(ctx, "rev-list", "--count", rangeArg)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(out))
}

// Shortlog returns a ranked contributor list for fromRef..toRef.
func (r *Repository) Shortlog(ctx context.Context, fromRef, toRef string) ([]pipeline.Contributor, error) {
	rangeArg := toRef
	if fromRef != "" {
		rangeArg = fromRef + ".." + toRef
	}
	out, err := r.git(ctx, "shortlog", "-sn", "--no-merges", rangeArg)
	if err != nil {
		return nil, err
	}
	var contributors []pipeline.Contributor
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", 2)
		if len(fields) != 2 {
			continue
		}
		count, convErr := strconv.Atoi(strings.TrimSpace(fields[0]))
		if convErr != nil {
			continue
		}
		contributors = append(contributors, pipeline.Contributor{Name: strings.TrimSpace(fields[1]), Count: count})
	}
	sort.SliceStable(contributors, func(i, j int) bool { return contributors[i].Count > contributors[j].Count })
	return contributors, nil
}

func (r *Repository) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &ship.ExternalProcessError{Program: "git " + strings.Join(args, " "), Cause: fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))}
	}
	return stdout.String(), nil
}
