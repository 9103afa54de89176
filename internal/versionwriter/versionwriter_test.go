package versionwriter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVersion_UnsupportedEcosystem(t *testing.T) {
	w := Writer{}
	_, err := w.WriteVersion(context.Background(), t.TempDir(), "cobol", "1.0.0")
	assert.Error(t, err)
}

func TestWriteVersion_NPM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"widget","version":"1.0.0","private":true}`), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "npm", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version": "1.1.0"`)
	assert.Contains(t, string(data), `"name": "widget"`)
}

func TestWriteVersion_Cargo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Cargo.toml")
	require.NoError(t, os.WriteFile(path, []byte("[package]\nname = \"widget\"\nversion = \"0.1.0\"\n"), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "cargo", "0.2.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `version = "0.2.0"`)
}

func TestWriteVersion_Cargo_MissingVersionField(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[package]\nname = \"widget\"\n"), 0o644))

	w := Writer{}
	_, err := w.WriteVersion(context.Background(), dir, "cargo", "0.2.0")
	assert.Error(t, err)
}

func TestWriteVersion_Python_MultipleFiles(t *testing.T) {
	dir := t.TempDir()
	pyproject := filepath.Join(dir, "pyproject.toml")
	dunder := filepath.Join(dir, "__version__.py")
	require.NoError(t, os.WriteFile(pyproject, []byte("[project]\nversion = \"1.0.0\"\n"), 0o644))
	require.NoError(t, os.WriteFile(dunder, []byte(`__version__ = "1.0.0"`), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "python", "1.1.0")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{pyproject, dunder}, modified)

	data, err := os.ReadFile(dunder)
	require.NoError(t, err)
	assert.Equal(t, `__version__ = "1.1.0"`, string(data))
}

func TestWriteVersion_Python_NoFilesFound(t *testing.T) {
	w := Writer{}
	_, err := w.WriteVersion(context.Background(), t.TempDir(), "python", "1.1.0")
	assert.Error(t, err)
}

func TestWriteVersion_Maven(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pom.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<project><version>1.0.0</version></project>`), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "maven", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<version>1.1.0</version>")
}

func TestWriteVersion_Gradle_KotlinDSL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.gradle.kts")
	require.NoError(t, os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "gradle", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)
}

func TestWriteVersion_Composer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "composer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"name":"acme/widget","version":"1.0.0"}`), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "composer", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)
}

func TestWriteVersion_Gem(t *testing.T) {
	dir := t.TempDir()
	gemspec := filepath.Join(dir, "widget.gemspec")
	require.NoError(t, os.WriteFile(gemspec, []byte("Gem::Specification.new do |s|\n  s.version = \"1.0.0\"\nend\n"), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "gem", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{gemspec}, modified)
}

func TestWriteVersion_NuGet(t *testing.T) {
	dir := t.TempDir()
	csproj := filepath.Join(dir, "Widget.csproj")
	require.NoError(t, os.WriteFile(csproj, []byte("<Project><PropertyGroup><Version>1.0.0</Version></PropertyGroup></Project>"), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "nuget", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{csproj}, modified)
}

func TestWriteVersion_GoModule_NoVersionFile(t *testing.T) {
	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), t.TempDir(), "go", "1.1.0")
	require.NoError(t, err)
	assert.Nil(t, modified)
}

func TestWriteVersion_GoModule_RewritesVersionFile(t *testing.T) {
	dir := t.TempDir()
	versionDir := filepath.Join(dir, "internal", "version")
	require.NoError(t, os.MkdirAll(versionDir, 0o755))
	path := filepath.Join(versionDir, "version.go")
	require.NoError(t, os.WriteFile(path, []byte("package version\n\nconst Version = \"1.0.0\"\n"), 0o644))

	w := Writer{}
	modified, err := w.WriteVersion(context.Background(), dir, "go", "1.1.0")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, modified)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `const Version = "1.1.0"`)
}
