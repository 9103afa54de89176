package releasecli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftship/driftship/internal/ship"
)

func TestExists_MissingBinaryIsExternalError(t *testing.T) {
	g := GH{Bin: "gh-does-not-exist"}
	_, err := g.Exists(context.Background(), t.TempDir(), "v1.0.0")
	require.Error(t, err)
	var extErr *ship.ExternalProcessError
	assert.ErrorAs(t, err, &extErr)
}

func TestDeleteAsset_NeverFails(t *testing.T) {
	g := GH{Bin: "gh-does-not-exist"}
	err := g.DeleteAsset(context.Background(), t.TempDir(), "v1.0.0", "asset.tar.gz")
	assert.NoError(t, err)
}

func TestCreate_MissingBinary(t *testing.T) {
	g := GH{Bin: "gh-does-not-exist"}
	_, err := g.Create(context.Background(), t.TempDir(), ship.CreateArgs{Tag: "v1.0.0", GenerateNotes: true})
	assert.Error(t, err)
}
