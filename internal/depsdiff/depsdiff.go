// Package depsdiff implements ship.DepsDiffer: it asks a git collaborator
// for the unified diff of the ecosystem's primary lockfile and parses it
// into pipeline.DepChange records. The orchestrator core never parses
// lockfile formats directly; this package narrows that work to the minimum
// needed per ecosystem.
package depsdiff

import (
	"bufio"
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/driftship/driftship/internal/pipeline"
)

// LockfileReader is the narrow git collaborator this package depends on;
// internal/gitops.Repository satisfies it.
type LockfileReader interface {
	LockfileDiff(ctx context.Context, path, fromRef, toRef string) (string, error)
}

// Differ implements ship.DepsDiffer.
type Differ struct {
	Git LockfileReader
}

// New returns a Differ backed by git.
func New(git LockfileReader) *Differ {
	return &Differ{Git: git}
}

// lockfileFor maps an ecosystem tag to its primary lockfile.
var lockfileFor = map[string]string{
	"go":        "go.sum",
	"gomod":     "go.sum",
	"npm":       "package-lock.json",
	"node":      "package-lock.json",
	"yarn":      "yarn.lock",
	"rust":      "Cargo.lock",
	"crates":    "Cargo.lock",
	"python":    "poetry.lock",
	"pypi":      "poetry.lock",
	"ruby":      "Gemfile.lock",
	"rubygems":  "Gemfile.lock",
	"php":       "composer.lock",
	"packagist": "composer.lock",
}

// Diff satisfies ship.DepsDiffer. Any failure is the caller's to swallow —
// deps collection is never fatal; Diff itself simply reports errors
// honestly.
func (d *Differ) Diff(ctx context.Context, root, ecosystem, fromRef, toRef string) ([]pipeline.DepChange, error) {
	path, ok := lockfileFor[ecosystem]
	if !ok {
		return nil, nil
	}
	diffText, err := d.Git.LockfileDiff(ctx, path, fromRef, toRef)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(diffText) == "" {
		return nil, nil
	}

	var changes []pipeline.DepChange
	switch path {
	case "go.sum":
		changes = parseGoSum(diffText)
	case "Cargo.lock":
		changes = parseCargoLock(diffText)
	case "package-lock.json":
		changes = parseNamedVersionLock(diffText, npmNamePattern, versionPattern)
	case "Gemfile.lock":
		changes = parseGemfileLock(diffText)
	case "poetry.lock", "composer.lock":
		changes = parseCargoLock(diffText) // TOML-like [[package]] name/version blocks
	default:
		changes = nil
	}
	for i := range changes {
		changes[i].Ecosystem = path
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Name < changes[j].Name })
	return changes, nil
}

// diffLine is one +/- line from a unified diff, with its sign stripped.
type diffLine struct {
	added bool
	text  string
}

func diffLines(diffText string) []diffLine {
	var lines []diffLine
	scanner := bufio.NewScanner(strings.NewReader(diffText))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			continue
		case strings.HasPrefix(line, "+"):
			lines = append(lines, diffLine{added: true, text: line[1:]})
		case strings.HasPrefix(line, "-"):
			lines = append(lines, diffLine{added: false, text: line[1:]})
		}
	}
	return lines
}

// parseGoSum parses a go.sum diff. go.sum lines look like
// "module version[/go.mod] h1:hash=". Module+version pairs appear twice
// (the module hash and the go.mod hash); dedupe by module.
func parseGoSum(diffText string) []pipeline.DepChange {
	added := map[string]string{}
	removed := map[string]string{}
	for _, l := range diffLines(diffText) {
		fields := strings.Fields(l.text)
		if len(fields) < 2 {
			continue
		}
		module := fields[0]
		version := strings.TrimSuffix(fields[1], "/go.mod")
		if l.added {
			added[module] = version
		} else {
			removed[module] = version
		}
	}
	return mergeAddedRemoved(added, removed)
}

var (
	cargoNamePattern    = regexp.MustCompile(`^name\s*=\s*"([^"]+)"`)
	cargoVersionPattern = regexp.MustCompile(`^version\s*=\s*"([^"]+)"`)
	npmNamePattern      = regexp.MustCompile(`"([^"/]+(?:/[^"/]+)?)":\s*\{`)
	versionPattern      = regexp.MustCompile(`"version":\s*"([^"]+)"`)
)

// parseCargoLock parses diffs of TOML "[[package]]" blocks (Cargo.lock,
// and structurally similar poetry.lock/composer.lock sections): each
// added/removed name line is paired with the version line that follows it
// in the same diff hunk.
func parseCargoLock(diffText string) []pipeline.DepChange {
	added := map[string]string{}
	removed := map[string]string{}
	var pendingName string
	var pendingAdded bool
	for _, l := range diffLines(diffText) {
		if m := cargoNamePattern.FindStringSubmatch(l.text); m != nil {
			pendingName = m[1]
			pendingAdded = l.added
			continue
		}
		if m := cargoVersionPattern.FindStringSubmatch(l.text); m != nil && pendingName != "" {
			if pendingAdded && l.added {
				added[pendingName] = m[1]
			} else if !pendingAdded && !l.added {
				removed[pendingName] = m[1]
			}
			pendingName = ""
		}
	}
	return mergeAddedRemoved(added, removed)
}

// parseNamedVersionLock parses lock formats where a dependency's name and
// version appear as separate JSON-ish lines within the same block (e.g.
// npm's package-lock.json "node_modules/x": { ... "version": "1.2.3" }).
func parseNamedVersionLock(diffText string, namePattern, versionPattern *regexp.Regexp) []pipeline.DepChange {
	added := map[string]string{}
	removed := map[string]string{}
	var pendingName string
	var pendingAdded bool
	for _, l := range diffLines(diffText) {
		if m := namePattern.FindStringSubmatch(l.text); m != nil {
			pendingName = m[1]
			pendingAdded = l.added
			continue
		}
		if m := versionPattern.FindStringSubmatch(l.text); m != nil && pendingName != "" {
			if pendingAdded && l.added {
				added[pendingName] = m[1]
			} else if !pendingAdded && !l.added {
				removed[pendingName] = m[1]
			}
			pendingName = ""
		}
	}
	return mergeAddedRemoved(added, removed)
}

var gemfileLine = regexp.MustCompile(`^\s{4}([A-Za-z0-9_.-]+)\s+\(([^)]+)\)`)

// parseGemfileLock parses Gemfile.lock's "    name (version)" entries.
func parseGemfileLock(diffText string) []pipeline.DepChange {
	added := map[string]string{}
	removed := map[string]string{}
	for _, l := range diffLines(diffText) {
		m := gemfileLine.FindStringSubmatch(l.text)
		if m == nil {
			continue
		}
		if l.added {
			added[m[1]] = m[2]
		} else {
			removed[m[1]] = m[2]
		}
	}
	return mergeAddedRemoved(added, removed)
}

// mergeAddedRemoved turns parallel added/removed name->version maps into
// DepChange records: present in both with different versions is an update;
// added-only is an add; removed-only is a removal. No entry is ever emitted
// where from == to.
func mergeAddedRemoved(added, removed map[string]string) []pipeline.DepChange {
	var changes []pipeline.DepChange
	seen := map[string]bool{}
	for name, to := range added {
		seen[name] = true
		if from, ok := removed[name]; ok {
			if from != to {
				changes = append(changes, pipeline.DepChange{Name: name, From: from, To: to})
			}
			continue
		}
		changes = append(changes, pipeline.DepChange{Name: name, To: to})
	}
	for name, from := range removed {
		if seen[name] {
			continue
		}
		changes = append(changes, pipeline.DepChange{Name: name, From: from})
	}
	return changes
}
