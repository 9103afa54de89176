// Package pipeline defines the serializable data spine that every ship phase
// contributes to and that filter hooks may replace wholesale between phases.
package pipeline

import "sort"

// Context is the accumulator passed through every phase and hook barrier.
// It is deliberately a plain, JSON-tagged value: filter hooks serialize it to
// a subprocess's stdin and replace it wholesale with whatever valid JSON the
// subprocess writes back, so Context must round-trip through encoding/json
// without any custom marshaling that would narrow its shape.
type Context struct {
	// Version block. Strings, not parsed numerics, so a context round-tripped
	// through a filter hook need not obey any parsed version grammar.
	Version         string `json:"version"`
	PreviousVersion string `json:"previous_version"`
	Tag             string `json:"tag"`
	PreviousTag     string `json:"previous_tag"`
	Date            string `json:"date"`

	// Repository.
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	RepoURL  string `json:"repo_url,omitempty"`
	Branch   string `json:"branch,omitempty"`

	// Project.
	Ecosystem string `json:"ecosystem"`

	// Stats, populated by internal/statsdiff unless no_stats is set.
	Stats *ReleaseStats `json:"stats,omitempty"`

	// Dependencies, populated by internal/depsdiff unless no_deps is set.
	// Always kept sorted by Name.
	Dependencies []DepChange `json:"dependencies"`

	// Bump.
	ChangelogUpdated bool     `json:"changelog_updated"`
	ChangelogPath    string   `json:"changelog_path,omitempty"`
	ModifiedFiles    []string `json:"modified_files"`

	// Git.
	CommitHash string `json:"commit_hash,omitempty"`

	// Release.
	ReleaseURL string   `json:"release_url,omitempty"`
	Assets     []string `json:"assets"`

	// Extensible. Arbitrary JSON-representable values; round-trips exactly
	// through filter hooks regardless of shape.
	Metadata map[string]any `json:"metadata"`

	// Control.
	DryRun bool `json:"dry_run"`
}

// ReleaseStats summarizes the commit range feeding a release.
type ReleaseStats struct {
	CommitCount  int           `json:"commit_count"`
	FilesChanged int           `json:"files_changed"`
	Insertions   int           `json:"insertions"`
	Deletions    int           `json:"deletions"`
	Contributors []Contributor `json:"contributors"`
}

// Contributor is a ranked contributor entry within ReleaseStats.
type Contributor struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DepChange records a single dependency's change between two releases.
// Added entries have no From; removed entries have no To; updated entries
// have both, and From must differ from To.
type DepChange struct {
	Name string `json:"name"`
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`

	// Ecosystem names the lockfile this change was sourced from (e.g.
	// "go.sum", "package-lock.json"). Additive beyond spec.md's shape; see
	// SPEC_FULL.md §9.
	Ecosystem string `json:"ecosystem,omitempty"`
}

// New returns an empty Context with all slice/map fields initialized so that
// JSON serialization never emits null for them.
func New() *Context {
	return &Context{
		Dependencies:  []DepChange{},
		ModifiedFiles: []string{},
		Assets:        []string{},
		Metadata:      map[string]any{},
	}
}

// SortDependencies sorts Dependencies by Name in place, satisfying the
// "dependencies is sorted by name" invariant.
func (c *Context) SortDependencies() {
	sort.Slice(c.Dependencies, func(i, j int) bool {
		return c.Dependencies[i].Name < c.Dependencies[j].Name
	})
}

// ResolvedTag returns the context's tag, computing it from Version as
// "v"+version when Tag has not been set explicitly (an external tag prefix
// override is applied by the caller before this is reached).
func (c *Context) ResolvedTag() string {
	if c.Tag != "" {
		return c.Tag
	}
	return "v" + c.Version
}

// HookContext derives the six-field view used for {var} interpolation in
// hook commands. It is derived fresh every time a hook batch runs so that
// prior phases' mutations are visible to subsequent hooks.
func (c *Context) HookContext() HookContext {
	return HookContext{
		Version:       c.Version,
		PrevVersion:   c.PreviousVersion,
		Tag:           c.ResolvedTag(),
		ChangelogPath: c.ChangelogPath,
		Owner:         c.Owner,
		Repo:          c.Repo,
	}
}

// HookContext is the six-field derived view of Context used for {var}
// interpolation in hook commands (see internal/hook).
type HookContext struct {
	Version       string
	PrevVersion   string
	Tag           string
	ChangelogPath string
	Owner         string
	Repo          string
}

// AsMap returns the interpolation variables keyed by their {name} token,
// for use by internal/hook's interpolator.
func (h HookContext) AsMap() map[string]string {
	return map[string]string{
		"version":        h.Version,
		"prev_version":   h.PrevVersion,
		"tag":            h.Tag,
		"changelog_path": h.ChangelogPath,
		"owner":          h.Owner,
		"repo":           h.Repo,
	}
}
