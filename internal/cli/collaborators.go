package cli

import (
	"github.com/driftship/driftship/internal/changelogtool"
	"github.com/driftship/driftship/internal/depsdiff"
	"github.com/driftship/driftship/internal/detect"
	"github.com/driftship/driftship/internal/gitops"
	"github.com/driftship/driftship/internal/notes"
	"github.com/driftship/driftship/internal/releasecli"
	"github.com/driftship/driftship/internal/ship"
	"github.com/driftship/driftship/internal/statsdiff"
	"github.com/driftship/driftship/internal/versionwriter"
)

// buildCollaborators wires the concrete process-and-filesystem backed
// collaborators ship.PlanShip needs, grounded on the teacher's
// container.NewInitializedDDDContainer (internal/container), narrowed from
// a dependency-injection container wiring the whole domain/application
// layer down to the seven narrow interfaces SPEC_FULL.md §1 names.
func buildCollaborators(root string, requiresPublish bool) ship.Collaborators {
	repo := gitops.Open(root)

	return ship.Collaborators{
		Repo:      repo,
		Changelog: changelogtool.GitCliff{},
		Release:   releasecli.GH{},
		Deps:      depsdiff.New(repo),
		Stats:     statsdiff.New(repo),
		Notes:     notes.Renderer{},
		Versions:  versionwriter.Writer{},
		Tools:     detect.Tools(root, requiresPublish),
	}
}
