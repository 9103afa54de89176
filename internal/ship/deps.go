package ship

import (
	"context"

	"github.com/driftship/driftship/internal/pipeline"
)

// collectDeps is a silent contributor to the pipeline context: any
// failure is swallowed and ctx.dependencies is left empty, never fatal.
func collectDeps(ctx context.Context, root string, differ DepsDiffer, opts Options, pctx *pipeline.Context) {
	if opts.NoDeps || differ == nil {
		return
	}
	changes, err := differ.Diff(ctx, root, pctx.Ecosystem, pctx.PreviousTag, "HEAD")
	if err != nil {
		return
	}
	pctx.Dependencies = changes
	pctx.SortDependencies()
}
