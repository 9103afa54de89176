package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	assert.NoError(t, Validate(&Config{}))
}

func TestValidate_InvalidVersionStrategy(t *testing.T) {
	err := Validate(&Config{Version: VersionConfig{Strategy: "yolo"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version.strategy")
}

func TestValidate_UnbalancedTitleTemplate(t *testing.T) {
	err := Validate(&Config{Release: ReleaseConfig{Title: "Release {version"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release.title")
}

func TestValidate_MissingNotesTemplateFile(t *testing.T) {
	err := Validate(&Config{Release: ReleaseConfig{NotesTemplate: "/no/such/template.tmpl"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release.notes_template")
}

func TestValidate_NotesTemplateExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{.Tag}}"), 0o644))
	assert.NoError(t, Validate(&Config{Release: ReleaseConfig{NotesTemplate: path}}))
}

func TestValidate_AbsoluteAssetPathRejected(t *testing.T) {
	err := Validate(&Config{Release: ReleaseConfig{Assets: []string{"/etc/passwd"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "release.assets[0]")
}

func TestValidate_UnknownHookPoint(t *testing.T) {
	err := Validate(&Config{Hooks: map[string][]string{"pre_launch": {"echo hi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hooks.pre_launch")
}

func TestValidate_EmptyHookCommandRejected(t *testing.T) {
	err := Validate(&Config{Hooks: map[string][]string{"pre_ship": {""}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hooks.pre_ship[0]")
}

func TestValidate_AccumulatesMultipleErrors(t *testing.T) {
	err := Validate(&Config{
		Version: VersionConfig{Strategy: "bogus"},
		Hooks:   map[string][]string{"nope": {"x"}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version.strategy")
	assert.Contains(t, err.Error(), "hooks.nope")
}
