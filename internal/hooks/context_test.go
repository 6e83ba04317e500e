package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/annotate"
)

func TestWritePendingContext_RoundtripsThroughGatherAuthorContext(t *testing.T) {
	dir := t.TempDir()
	reasoning := "switching to channels for backpressure"

	require.NoError(t, WritePendingContext(dir, annotate.PendingContext{
		Reasoning: &reasoning,
		Tags:      []string{"perf"},
	}))

	ctx := annotate.GatherAuthorContext(dir)
	require.NotNil(t, ctx)
	require.NotNil(t, ctx.Reasoning)
	assert.Equal(t, reasoning, *ctx.Reasoning)
	assert.Equal(t, []string{"perf"}, ctx.Tags)
}

func TestDeletePendingContext_RemovesFile(t *testing.T) {
	dir := t.TempDir()
	task := "ship the thing"
	require.NoError(t, WritePendingContext(dir, annotate.PendingContext{Task: &task}))

	require.NoError(t, DeletePendingContext(dir))

	assert.Nil(t, annotate.GatherAuthorContext(dir))
}

func TestDeletePendingContext_MissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, DeletePendingContext(dir))
}
