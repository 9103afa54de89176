// Package versionwriter implements ship.VersionWriter, rewriting the
// on-disk version field for the ecosystem detected during preflight
// (npm's package.json, Cargo.toml, pyproject.toml/setup.py/__version__.py,
// pom.xml, build.gradle(.kts), composer.json, *.gemspec, *.csproj) per
// spec.md §4.5's bump phase. go.mod is deliberately absent: Go modules
// version from git tags, matching the teacher's own GoModuleVersionWriter
// which treats the Go ecosystem as a no-op write.
//
// Grounded on the teacher's internal/application/monorepo/version_writers.go,
// narrowed from a CanHandle/ReadVersion/WriteVersion/Files registry (built
// for per-package monorepo discovery, which is out of scope here) down to
// the single WriteVersion operation ship.VersionWriter needs, keyed by the
// ecosystem name preflight already resolved rather than rediscovered.
package versionwriter

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/driftship/driftship/internal/fileutil"
	"github.com/driftship/driftship/internal/ship"
)

// maxVersionFileSize bounds how much of a version/manifest file is read
// before rewriting it. These files are a handful of lines in every real
// ecosystem; a multi-megabyte "package.json" is a sign something is wrong,
// not a file this writer should buffer in full.
const maxVersionFileSize = 10 << 20 // 10 MiB

// Writer implements ship.VersionWriter.
type Writer struct{}

var _ ship.VersionWriter = Writer{}

type ecosystemWriter func(root, version string) ([]string, error)

var writers = map[string]ecosystemWriter{
	"npm":      writeNPM,
	"cargo":    writeCargo,
	"python":   writePython,
	"maven":    writeMaven,
	"gradle":   writeGradle,
	"composer": writeComposer,
	"gem":      writeGem,
	"nuget":    writeNuGet,
	"go":       writeGoModule,
}

// WriteVersion implements ship.VersionWriter.
func (Writer) WriteVersion(_ context.Context, projectRoot, ecosystem, version string) ([]string, error) {
	w, ok := writers[ecosystem]
	if !ok {
		return nil, fmt.Errorf("versionwriter: unsupported ecosystem %q", ecosystem)
	}
	return w(projectRoot, version)
}

// writeGoModule is a deliberate no-op: Go modules are versioned by git tag,
// not an on-disk field, mirroring the teacher's GoModuleVersionWriter
// semantics for repositories with no internal/version/version.go file.
func writeGoModule(root, version string) ([]string, error) {
	path := filepath.Join(root, "internal", "version", "version.go")
	data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
	if err != nil {
		return nil, nil
	}
	re := regexp.MustCompile(`(?m)^(\s*(?:const\s+)?(?:Version|version)\s*(?:string\s*)?=\s*)"[^"]+"`)
	if !re.Match(data) {
		return nil, nil
	}
	out := re.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
	if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	return []string{path}, nil
}

func writeNPM(root, version string) ([]string, error) {
	path := filepath.Join(root, "package.json")
	data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading package.json: %w", err)
	}
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing package.json: %w", err)
	}
	pkg["version"] = version
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling package.json: %w", err)
	}
	out = append(out, '\n')
	if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing package.json: %w", err)
	}
	return []string{path}, nil
}

var cargoVersionRe = regexp.MustCompile(`(?m)^(\s*version\s*=\s*)"[^"]+"`)

func writeCargo(root, version string) ([]string, error) {
	path := filepath.Join(root, "Cargo.toml")
	data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading Cargo.toml: %w", err)
	}
	if !cargoVersionRe.Match(data) {
		return nil, fmt.Errorf("version field not found in Cargo.toml")
	}
	out := cargoVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
	if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing Cargo.toml: %w", err)
	}
	return []string{path}, nil
}

var (
	pyprojectVersionRe = regexp.MustCompile(`(?m)^(\s*version\s*=\s*)"[^"]+"`)
	setupPyVersionRe   = regexp.MustCompile(`(version\s*=\s*)["'][^"']+["']`)
	dunderVersionRe    = regexp.MustCompile(`(__version__\s*=\s*)["'][^"']+["']`)
)

func writePython(root, version string) ([]string, error) {
	var modified []string

	pyproject := filepath.Join(root, "pyproject.toml")
	if data, err := fileutil.ReadFileLimited(pyproject, maxVersionFileSize); err == nil && pyprojectVersionRe.Match(data) {
		out := pyprojectVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(pyproject, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing pyproject.toml: %w", err)
		}
		modified = append(modified, pyproject)
	}

	setupPy := filepath.Join(root, "setup.py")
	if data, err := fileutil.ReadFileLimited(setupPy, maxVersionFileSize); err == nil && setupPyVersionRe.Match(data) {
		out := setupPyVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(setupPy, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing setup.py: %w", err)
		}
		modified = append(modified, setupPy)
	}

	dunder := filepath.Join(root, "__version__.py")
	if data, err := fileutil.ReadFileLimited(dunder, maxVersionFileSize); err == nil && dunderVersionRe.Match(data) {
		out := dunderVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(dunder, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing __version__.py: %w", err)
		}
		modified = append(modified, dunder)
	}

	if len(modified) == 0 {
		return nil, fmt.Errorf("no Python version files found to update")
	}
	return modified, nil
}

var mavenVersionRe = regexp.MustCompile(`(?s)(<project[^>]*>.*?<version>)[^<]+(</version>)`)

func writeMaven(root, version string) ([]string, error) {
	path := filepath.Join(root, "pom.xml")
	data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading pom.xml: %w", err)
	}
	if !mavenVersionRe.Match(data) {
		return nil, fmt.Errorf("version element not found in pom.xml")
	}
	out := mavenVersionRe.ReplaceAll(data, []byte(fmt.Sprintf("${1}%s${2}", version)))
	if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing pom.xml: %w", err)
	}
	return []string{path}, nil
}

var (
	gradleKtsVersionRe    = regexp.MustCompile(`(?m)^(\s*version\s*=\s*)"[^"]+"`)
	gradleGroovyVersionRe = regexp.MustCompile(`(?m)^(\s*version\s*[=:]\s*)['"]?[^'"]+['"]?`)
)

func writeGradle(root, version string) ([]string, error) {
	kts := filepath.Join(root, "build.gradle.kts")
	if data, err := fileutil.ReadFileLimited(kts, maxVersionFileSize); err == nil && gradleKtsVersionRe.Match(data) {
		out := gradleKtsVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(kts, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing build.gradle.kts: %w", err)
		}
		return []string{kts}, nil
	}

	groovy := filepath.Join(root, "build.gradle")
	if data, err := fileutil.ReadFileLimited(groovy, maxVersionFileSize); err == nil && gradleGroovyVersionRe.Match(data) {
		out := gradleGroovyVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}'%s'`, version)))
		if err := fileutil.AtomicWriteFile(groovy, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing build.gradle: %w", err)
		}
		return []string{groovy}, nil
	}

	return nil, fmt.Errorf("no Gradle build file found to update")
}

func writeComposer(root, version string) ([]string, error) {
	path := filepath.Join(root, "composer.json")
	data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
	if err != nil {
		return nil, fmt.Errorf("reading composer.json: %w", err)
	}
	var pkg map[string]any
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing composer.json: %w", err)
	}
	pkg["version"] = version
	out, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling composer.json: %w", err)
	}
	out = append(out, '\n')
	if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing composer.json: %w", err)
	}
	return []string{path}, nil
}

var (
	gemspecVersionRe = regexp.MustCompile(`(\.version\s*=\s*)["'][^"']+["']`)
	versionRbRe      = regexp.MustCompile(`(VERSION\s*=\s*)["'][^"']+["']`)
)

func writeGem(root, version string) ([]string, error) {
	var modified []string

	gemspecs, _ := filepath.Glob(filepath.Join(root, "*.gemspec"))
	for _, path := range gemspecs {
		data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
		if err != nil || !gemspecVersionRe.Match(data) {
			continue
		}
		out := gemspecVersionRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		modified = append(modified, path)
	}

	versionRbFiles, _ := filepath.Glob(filepath.Join(root, "lib", "*", "version.rb"))
	for _, path := range versionRbFiles {
		data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
		if err != nil || !versionRbRe.Match(data) {
			continue
		}
		out := versionRbRe.ReplaceAll(data, []byte(fmt.Sprintf(`${1}"%s"`, version)))
		if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		modified = append(modified, path)
	}

	if len(modified) == 0 {
		return nil, fmt.Errorf("no gem version files found to update")
	}
	return modified, nil
}

var csprojVersionRe = regexp.MustCompile(`(?s)(<Version>)[^<]+(</Version>)`)

func writeNuGet(root, version string) ([]string, error) {
	var candidates []string
	for _, pattern := range []string{"*.csproj", "*.fsproj"} {
		matches, _ := filepath.Glob(filepath.Join(root, pattern))
		candidates = append(candidates, matches...)
	}

	var modified []string
	for _, path := range candidates {
		data, err := fileutil.ReadFileLimited(path, maxVersionFileSize)
		if err != nil || !csprojVersionRe.Match(data) {
			continue
		}
		out := csprojVersionRe.ReplaceAll(data, []byte(fmt.Sprintf("${1}%s${2}", version)))
		if err := fileutil.AtomicWriteFile(path, out, 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
		modified = append(modified, path)
	}

	if len(modified) == 0 {
		return nil, fmt.Errorf("no NuGet project files found to update")
	}
	return modified, nil
}
