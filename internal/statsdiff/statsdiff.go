// Package statsdiff implements ship.StatsCollector, assembling
// pipeline.ReleaseStats from a git collaborator's commit count, short-stat
// totals, and ranked contributor list for a commit range, per spec.md §4.7.
// Grounded on internal/service/git's stats-gathering style (GetDiffStats,
// GetCommitsBetween).
package statsdiff

import (
	"context"

	"github.com/driftship/driftship/internal/pipeline"
)

// GitStats is the narrow git collaborator this package depends on;
// internal/gitops.Repository satisfies it.
type GitStats interface {
	CommitCount(ctx context.Context, fromRef, toRef string) (int, error)
	ShortStat(ctx context.Context, fromRef, toRef string) (insertions, deletions, filesChanged int, err error)
	Shortlog(ctx context.Context, fromRef, toRef string) ([]pipeline.Contributor, error)
}

// Collector implements ship.StatsCollector.
type Collector struct {
	Git GitStats
}

// New returns a Collector backed by git.
func New(git GitStats) *Collector {
	return &Collector{Git: git}
}

// Collect satisfies ship.StatsCollector. Any failure is the caller's to
// swallow (spec.md §4.7: "stats is never fatal"); Collect reports errors
// honestly rather than hiding them.
func (c *Collector) Collect(ctx context.Context, root, fromRef, toRef string) (*pipeline.ReleaseStats, error) {
	count, err := c.Git.CommitCount(ctx, fromRef, toRef)
	if err != nil {
		return nil, err
	}
	insertions, deletions, filesChanged, err := c.Git.ShortStat(ctx, fromRef, toRef)
	if err != nil {
		return nil, err
	}
	contributors, err := c.Git.Shortlog(ctx, fromRef, toRef)
	if err != nil {
		return nil, err
	}
	return &pipeline.ReleaseStats{
		CommitCount:  count,
		FilesChanged: filesChanged,
		Insertions:   insertions,
		Deletions:    deletions,
		Contributors: contributors,
	}, nil
}
