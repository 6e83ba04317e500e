package annotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/vcs"
)

func TestGatherAuthorContext_NoneSetReturnsNil(t *testing.T) {
	assert.Nil(t, GatherAuthorContext(t.TempDir()))
}

func TestGatherAuthorContext_ReadsPendingContextFile(t *testing.T) {
	dir := t.TempDir()
	chronicleDir := filepath.Join(dir, "chronicle")
	require.NoError(t, os.MkdirAll(chronicleDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(chronicleDir, "pending-context.json"),
		[]byte(`{"task":"fix the flaky test","tags":["ci","flaky"]}`),
		0o644,
	))

	ctx := GatherAuthorContext(dir)
	require.NotNil(t, ctx)
	require.NotNil(t, ctx.Task)
	assert.Equal(t, "fix the flaky test", *ctx.Task)
	assert.Equal(t, []string{"ci", "flaky"}, ctx.Tags)
}

func TestGatherAuthorContext_EnvOverridesPendingContext(t *testing.T) {
	dir := t.TempDir()
	chronicleDir := filepath.Join(dir, "chronicle")
	require.NoError(t, os.MkdirAll(chronicleDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(chronicleDir, "pending-context.json"),
		[]byte(`{"task":"from file"}`),
		0o644,
	))

	t.Setenv("CHRONICLE_TASK", "from env")
	ctx := GatherAuthorContext(dir)
	require.NotNil(t, ctx)
	require.NotNil(t, ctx.Task)
	assert.Equal(t, "from env", *ctx.Task)
}

func TestBuildContext_AssemblesFromBackend(t *testing.T) {
	backend := vcs.NewMockBackend().
		WithCommit(vcs.CommitInfo{SHA: "abc123", Message: "fix bug", AuthorName: "A"}).
		WithDiffs("abc123", []vcs.FileDiff{{Path: "main.go"}})

	ctx, err := BuildContext(backend, t.TempDir(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", ctx.CommitSHA)
	assert.Equal(t, "fix bug", ctx.CommitMessage)
	assert.Len(t, ctx.Diffs, 1)
}
