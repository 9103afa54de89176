// Package detect resolves a project's ecosystem and its default
// test/build/publish/clean commands from file presence in the project
// root, producing the ship.DetectedTools value PlanShip's preflight gate
// and bump phase consume. Ecosystem detection is explicitly out of scope
// for internal/ship itself (spec.md §1); this is the caller-side piece
// that fills the gap, narrowed from the teacher's much broader
// internal/cli/templates.Detector (which also fingerprints platform,
// CI provider, and monorepo layout for its init wizard) down to the single
// ecosystem/command signal the orchestrator needs.
package detect

import (
	"os"
	"path/filepath"

	"github.com/driftship/driftship/internal/ship"
)

// ecosystemProbe names the marker file that identifies an ecosystem and the
// default commands and required PATH binaries for it.
type ecosystemProbe struct {
	ecosystem    string
	marker       string
	testCmd      string
	buildCmd     string
	publishCmd   string
	cleanCmd     string
	requiredPATH []string
}

// probes are checked in order; the first marker file found wins.
var probes = []ecosystemProbe{
	{
		ecosystem:    "go",
		marker:       "go.mod",
		testCmd:      "go test ./...",
		buildCmd:     "go build ./...",
		publishCmd:   "",
		cleanCmd:     "go clean",
		requiredPATH: []string{"go", "git"},
	},
	{
		ecosystem:    "npm",
		marker:       "package.json",
		testCmd:      "npm test",
		buildCmd:     "npm run build",
		publishCmd:   "npm publish",
		cleanCmd:     "rm -rf dist",
		requiredPATH: []string{"npm", "git"},
	},
	{
		ecosystem:    "cargo",
		marker:       "Cargo.toml",
		testCmd:      "cargo test",
		buildCmd:     "cargo build --release",
		publishCmd:   "cargo publish",
		cleanCmd:     "cargo clean",
		requiredPATH: []string{"cargo", "git"},
	},
	{
		ecosystem:    "python",
		marker:       "pyproject.toml",
		testCmd:      "pytest",
		buildCmd:     "python -m build",
		publishCmd:   "twine upload dist/*",
		cleanCmd:     "rm -rf dist build",
		requiredPATH: []string{"python", "git"},
	},
	{
		ecosystem:    "maven",
		marker:       "pom.xml",
		testCmd:      "mvn test",
		buildCmd:     "mvn package",
		publishCmd:   "mvn deploy",
		cleanCmd:     "mvn clean",
		requiredPATH: []string{"mvn", "git"},
	},
	{
		ecosystem:    "gradle",
		marker:       "build.gradle.kts",
		testCmd:      "gradle test",
		buildCmd:     "gradle build",
		publishCmd:   "gradle publish",
		cleanCmd:     "gradle clean",
		requiredPATH: []string{"gradle", "git"},
	},
	{
		ecosystem:    "gradle",
		marker:       "build.gradle",
		testCmd:      "gradle test",
		buildCmd:     "gradle build",
		publishCmd:   "gradle publish",
		cleanCmd:     "gradle clean",
		requiredPATH: []string{"gradle", "git"},
	},
	{
		ecosystem:    "composer",
		marker:       "composer.json",
		testCmd:      "composer test",
		buildCmd:     "",
		publishCmd:   "",
		cleanCmd:     "",
		requiredPATH: []string{"composer", "git"},
	},
	{
		ecosystem:    "gem",
		marker:       "Gemfile",
		testCmd:      "bundle exec rspec",
		buildCmd:     "gem build *.gemspec",
		publishCmd:   "gem push *.gem",
		cleanCmd:     "rm -f *.gem",
		requiredPATH: []string{"gem", "git"},
	},
}

// Ecosystem detects the project ecosystem from marker files in root, or ""
// if none match.
func Ecosystem(root string) string {
	for _, p := range probes {
		if fileExists(filepath.Join(root, p.marker)) {
			return p.ecosystem
		}
	}
	return ""
}

// Tools detects the project's ecosystem and default commands in root.
// requiresPublish controls whether the publish-phase binary is added to
// RequiredPATH (no_publish skips that check per spec.md §4.1 check 6).
func Tools(root string, requiresPublish bool) ship.DetectedTools {
	for _, p := range probes {
		if !fileExists(filepath.Join(root, p.marker)) {
			continue
		}
		tools := ship.DetectedTools{
			Ecosystem:    p.ecosystem,
			TestCmd:      p.testCmd,
			BuildCmd:     p.buildCmd,
			PublishCmd:   p.publishCmd,
			CleanCmd:     p.cleanCmd,
			RequiredPATH: append([]string{}, p.requiredPATH...),
		}
		if !requiresPublish {
			tools.PublishCmd = ""
		}
		if changelogBin, ok := changelogBinary(root); ok {
			tools.RequiredPATH = append(tools.RequiredPATH, changelogBin)
		}
		return tools
	}
	return ship.DetectedTools{RequiredPATH: []string{"git"}}
}

// changelogBinary reports the changelog tool binary the project needs on
// PATH, detected from the presence of a cliff.toml marker per spec.md
// §4.1 step 2.
func changelogBinary(root string) (string, bool) {
	if fileExists(filepath.Join(root, "cliff.toml")) {
		return "git-cliff", true
	}
	return "", false
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
