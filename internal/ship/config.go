package ship

import "github.com/driftship/driftship/internal/phase"

// Config is the resolved configuration value the orchestrator consumes.
// Configuration discovery and file parsing are out of scope for the core;
// internal/config's loader builds this from a caller-supplied
// *viper.Viper.
type Config struct {
	ReleaseBranch string // project.release_branch; default: detected
	ProjectType   string // project.type; forces ecosystem; default: detected

	VersionStrategy string // version.strategy: conventional-commits | interactive | explicit

	TestCmd    string // commands.test
	BuildCmd   string // commands.build
	PublishCmd string // commands.publish
	CleanCmd   string // commands.clean

	GithubRelease *bool // release.github_release; default true
	Draft         *bool // release.draft; default true
	Title         string // release.title; {var} template; default bare tag
	DiscussionCategory string // release.discussion_category
	Assets        []string // release.assets
	NotesTemplate string // release.notes_template
	ChangelogTool string // release.changelog_tool; overrides detected tool

	// Hooks maps each of the named hook points to its configured command
	// list (hooks.<phase>).
	Hooks map[phase.HookPoint][]string
}

// HookCommands returns the configured commands for point, or nil if none
// are configured.
func (c Config) HookCommands(point phase.HookPoint) []string {
	if c.Hooks == nil {
		return nil
	}
	return c.Hooks[point]
}

// githubReleaseEnabled reports whether the release phase should run at all,
// per release.github_release (default true).
func (c Config) githubReleaseEnabled() bool {
	if c.GithubRelease == nil {
		return true
	}
	return *c.GithubRelease
}

// DetectedTools is the resolved ecosystem/tool record the orchestrator
// receives; ecosystem detection itself is out of scope for the core.
type DetectedTools struct {
	Ecosystem  string
	TestCmd    string
	BuildCmd   string
	PublishCmd string
	CleanCmd   string
	// RequiredPATH lists external binaries the selected phases require to be
	// present on PATH (preflight check 6).
	RequiredPATH []string
}
