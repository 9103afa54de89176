package hook_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftship/driftship/internal/hook"
	"github.com/driftship/driftship/internal/pipeline"
)

func TestInterpolate_KnownTokens(t *testing.T) {
	hc := pipeline.HookContext{
		Version: "1.2.3",
		Tag:     "v1.2.3",
		Owner:   "acme",
		Repo:    "widgets",
	}
	got := hook.Interpolate("gen-card --v {version} --tag {tag} for {owner}/{repo}", hc)
	assert.Equal(t, "gen-card --v 1.2.3 --tag v1.2.3 for acme/widgets", got)
}

func TestInterpolate_UnknownTokenLeftVerbatim(t *testing.T) {
	hc := pipeline.HookContext{Version: "1.2.3"}
	got := hook.Interpolate("echo {version} {not_a_var}", hc)
	assert.Equal(t, "echo 1.2.3 {not_a_var}", got)
}

func TestInterpolate_UnterminatedBraceLeftVerbatim(t *testing.T) {
	hc := pipeline.HookContext{Version: "1.2.3"}
	got := hook.Interpolate("echo {version} {oops", hc)
	assert.Equal(t, "echo 1.2.3 {oops", got)
}
