package ship

import (
	"context"

	"github.com/driftship/driftship/internal/pipeline"
)

// collectStats is a silent contributor to the pipeline context: any
// failure leaves ctx.stats unset.
func collectStats(ctx context.Context, root string, collector StatsCollector, opts Options, pctx *pipeline.Context) {
	if opts.NoStats || collector == nil {
		return
	}
	stats, err := collector.Collect(ctx, root, pctx.PreviousTag, "HEAD")
	if err != nil || stats == nil {
		return
	}
	pctx.Stats = stats
}
