// Package notes renders release notes to a temporary file for the release
// driver to hand to the release CLI via --notes-file, per spec.md §4.6 step
// 2 and §6's "filesystem artifacts" (a temporary release-notes file written
// before the release phase and deleted after the release CLI consumes it).
// Grounded on internal/infrastructure/template's text/template wrapper,
// narrowed from a general multi-template service to the single release-notes
// document this package renders.
package notes

import (
	"context"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/driftship/driftship/internal/fileutil"
	"github.com/driftship/driftship/internal/pipeline"
	"github.com/driftship/driftship/internal/ship"
)

// maxTemplateSize bounds how much of a custom notes template is read. A
// release-notes template is a handful of lines; this is a safety bound
// against a misconfigured release.notes_template pointing at an unrelated,
// arbitrarily large file.
const maxTemplateSize = 1 << 20 // 1 MiB

// defaultTemplate mirrors the shape of a typical hand-written release body:
// a title, the date, and grouped dependency/stat summaries when present.
const defaultTemplate = `## {{.Tag}} ({{.Date}})
{{if .Stats}}
{{.Stats.CommitCount}} commits, {{.Stats.FilesChanged}} files changed, +{{.Stats.Insertions}}/-{{.Stats.Deletions}}
{{end}}
{{if .Dependencies}}
### Dependencies
{{range .Dependencies}}{{if and .From .To}}- {{.Name}}: {{.From}} → {{.To}}
{{else if .To}}- {{.Name}}: added {{.To}}
{{else}}- {{.Name}}: removed {{.From}}
{{end}}{{end}}{{end}}`

// executionTimeout bounds template execution, mirroring the teacher's
// template service's DoS-resistant timeout for user-supplied templates.
const executionTimeout = 5 * time.Second

// Renderer implements ship.NotesRenderer by executing a text/template
// (custom templatePath, or a sane default) against the pipeline context and
// writing the result to a temporary file.
type Renderer struct{}

var _ ship.NotesRenderer = Renderer{}

// Render implements ship.NotesRenderer.
func (Renderer) Render(pctx *pipeline.Context, templatePath string) (string, func(), error) {
	body, err := templateFuncsRender(templatePath, pctx)
	if err != nil {
		return "", nil, err
	}

	f, err := os.CreateTemp("", "driftship-notes-*.md")
	if err != nil {
		return "", nil, err
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, err
	}

	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }
	return path, cleanup, nil
}

func templateFuncsRender(templatePath string, pctx *pipeline.Context) (string, error) {
	raw := defaultTemplate
	if templatePath != "" {
		content, err := fileutil.ReadFileLimited(templatePath, maxTemplateSize)
		if err != nil {
			return "", err
		}
		raw = string(content)
	}

	tmpl, err := template.New("notes").Funcs(template.FuncMap{
		"upper": strings.ToUpper,
	}).Parse(raw)
	if err != nil {
		return "", err
	}

	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		var b strings.Builder
		err := tmpl.Execute(&b, pctx)
		done <- result{body: b.String(), err: err}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), executionTimeout)
	defer cancel()
	select {
	case r := <-done:
		return r.body, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
