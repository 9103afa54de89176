// Package config loads the resolved configuration value ship.Config needs
// from a .driftship.{yaml,yml,json,toml} file. File discovery and parsing
// live here so that internal/ship stays free of any file-format concern;
// the core only ever sees the already-resolved ship.Config.
package config

// Config is the on-disk configuration shape. Every field is optional;
// Resolve (in loader.go) applies the documented defaults and folds this
// into a ship.Config.
type Config struct {
	Project  ProjectConfig       `mapstructure:"project" json:"project,omitempty"`
	Version  VersionConfig       `mapstructure:"version" json:"version,omitempty"`
	Commands CommandsConfig      `mapstructure:"commands" json:"commands,omitempty"`
	Release  ReleaseConfig       `mapstructure:"release" json:"release,omitempty"`
	Hooks    map[string][]string `mapstructure:"hooks" json:"hooks,omitempty"`
	Ship     ShipConfig          `mapstructure:"ship" json:"ship,omitempty"`
}

// ProjectConfig configures project-level detection overrides.
type ProjectConfig struct {
	// ReleaseBranch is the branch preflight must match; default: detected
	// (main or master).
	ReleaseBranch string `mapstructure:"release_branch" json:"release_branch,omitempty"`
	// Type forces the ecosystem instead of detecting it.
	Type string `mapstructure:"type" json:"type,omitempty"`
}

// VersionConfig configures version resolution.
type VersionConfig struct {
	// Strategy is one of conventional-commits, interactive, explicit;
	// default: detected from the presence of a changelog-tool marker file.
	Strategy string `mapstructure:"strategy" json:"strategy,omitempty"`
}

// CommandsConfig overrides the ecosystem-detected test/build/publish/clean
// commands.
type CommandsConfig struct {
	Test    string `mapstructure:"test" json:"test,omitempty"`
	Build   string `mapstructure:"build" json:"build,omitempty"`
	Publish string `mapstructure:"publish" json:"publish,omitempty"`
	Clean   string `mapstructure:"clean" json:"clean,omitempty"`
}

// ReleaseConfig configures the release phase.
type ReleaseConfig struct {
	// GithubRelease enables the release phase; default true.
	GithubRelease *bool `mapstructure:"github_release" json:"github_release,omitempty"`
	// Draft is the default draft state; default true.
	Draft *bool `mapstructure:"draft" json:"draft,omitempty"`
	// Title is a {var}-interpolated title template; default: bare tag.
	Title string `mapstructure:"title" json:"title,omitempty"`
	// DiscussionCategory attaches the release to a discussions category on
	// the create path only.
	DiscussionCategory string `mapstructure:"discussion_category" json:"discussion_category,omitempty"`
	// Assets lists relative paths to upload as release assets.
	Assets []string `mapstructure:"assets" json:"assets,omitempty"`
	// NotesTemplate overrides the release-notes template path.
	NotesTemplate string `mapstructure:"notes_template" json:"notes_template,omitempty"`
	// ChangelogTool overrides the detected changelog tool binary name.
	ChangelogTool string `mapstructure:"changelog_tool" json:"changelog_tool,omitempty"`
}

// ShipConfig configures the interactive CLI layer; these fields are
// consumed by the CLI, not the orchestrator core.
type ShipConfig struct {
	// Confirm controls whether the CLI prompts before publishing.
	Confirm *bool `mapstructure:"confirm" json:"confirm,omitempty"`
}

// ConfigFileNames to search for. Only .driftship.{yaml,yml,json,toml} is
// supported, matching Go-ecosystem convention (.goreleaser.yaml,
// .golangci.yml).
var ConfigFileNames = []string{".driftship"}

// ConfigFileExtensions supported by viper.
var ConfigFileExtensions = []string{"yaml", "yml", "json", "toml"}
