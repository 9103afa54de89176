// Package ship implements the ship planner and phase runner: the
// plan/execute split, the seven-phase linear sequence, skip semantics,
// dry-run projection, and the release driver.
package ship

// Options carries every flag that controls a single ship run.
type Options struct {
	NoTest      bool
	NoChangelog bool
	NoPublish   bool
	NoPush      bool
	NoTag       bool
	NoGit       bool
	NoRelease   bool
	NoDeps      bool
	NoStats     bool
	NoNotes     bool
	DryRun      bool

	// ExplicitVersion, when non-empty, selects the Explicit version
	// resolution strategy. A leading "v" is optional.
	ExplicitVersion string

	// DraftOverride, when non-nil, takes precedence over configuration and
	// the default true (CLI override > config > default true).
	DraftOverride *bool

	// TagPrefix overrides the default "v" tag prefix.
	TagPrefix string
}

// tagPrefix returns the configured tag prefix, defaulting to "v".
func (o Options) tagPrefix() string {
	if o.TagPrefix != "" {
		return o.TagPrefix
	}
	return "v"
}
