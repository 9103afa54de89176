package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/driftship/driftship/internal/pipeline"
)

func TestContext_Validate_MissingFields(t *testing.T) {
	ctx := pipeline.New()
	err := ctx.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "version")
	assert.Contains(t, err.Error(), "owner")
	assert.Contains(t, err.Error(), "repo")
}

func TestContext_Validate_Complete(t *testing.T) {
	ctx := pipeline.New()
	ctx.Version = "1.0.0"
	ctx.Date = "2026-07-31"
	ctx.Owner = "acme"
	ctx.Repo = "widgets"
	assert.NoError(t, ctx.Validate())
}
