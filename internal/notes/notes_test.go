package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftship/driftship/internal/pipeline"
)

func TestRender_DefaultTemplate(t *testing.T) {
	pctx := pipeline.New()
	pctx.Tag = "v1.2.3"
	pctx.Date = "2026-07-31"
	pctx.Dependencies = []pipeline.DepChange{
		{Name: "left-pad", From: "1.0.0", To: "1.1.0"},
		{Name: "new-dep", To: "2.0.0"},
	}

	r := Renderer{}
	path, cleanup, err := r.Render(pctx, "")
	require.NoError(t, err)
	defer cleanup()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(content)
	assert.Contains(t, body, "v1.2.3")
	assert.Contains(t, body, "left-pad: 1.0.0 → 1.1.0")
	assert.Contains(t, body, "new-dep: added 2.0.0")

	_, statErr := os.Stat(path)
	require.NoError(t, statErr)
	cleanup()
	_, statErr = os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender_CustomTemplate(t *testing.T) {
	dir := t.TempDir()
	tmplPath := filepath.Join(dir, "notes.tmpl")
	require.NoError(t, os.WriteFile(tmplPath, []byte("Release {{.Tag}} by {{.Owner}}/{{.Repo}}"), 0o644))

	pctx := pipeline.New()
	pctx.Tag = "v2.0.0"
	pctx.Owner = "acme"
	pctx.Repo = "widget"

	r := Renderer{}
	path, cleanup, err := r.Render(pctx, tmplPath)
	require.NoError(t, err)
	defer cleanup()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Release v2.0.0 by acme/widget", string(content))
}

func TestRender_MissingTemplateFile(t *testing.T) {
	pctx := pipeline.New()
	r := Renderer{}
	_, _, err := r.Render(pctx, "/no/such/template.tmpl")
	assert.Error(t, err)
}
