package hooks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/annotate"
)

const squashMsgFixture = "Squashed commit of the following:\n\n" +
	"commit abc1234567890abcdef1234567890abcdef123456\n" +
	"Author: Test User <test@example.com>\n" +
	"Date:   Mon Dec 15 10:30:00 2025 +0000\n\n" +
	"    First commit message\n\n" +
	"commit def4567890abcdef1234567890abcdef123456ab\n" +
	"Author: Test User <test@example.com>\n" +
	"Date:   Mon Dec 15 10:35:00 2025 +0000\n\n" +
	"    Second commit message\n"

func TestParseSquashMsgCommits(t *testing.T) {
	shas := parseSquashMsgCommits(squashMsgFixture)
	require.Len(t, shas, 2)
	assert.Equal(t, "abc1234567890abcdef1234567890abcdef123456", shas[0])
	assert.Equal(t, "def4567890abcdef1234567890abcdef123456ab", shas[1])
}

func TestParseSquashMsgCommits_NoCommits(t *testing.T) {
	shas := parseSquashMsgCommits("Just a regular commit message\nwith no commit lines\n")
	assert.Empty(t, shas)
}

func TestParseSquashSourcesEnv_CommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"abc123", "def456", "ghi789"}, parseSquashSourcesEnv("abc123,def456,ghi789"))
}

func TestParseSquashSourcesEnv_WithSpaces(t *testing.T) {
	assert.Equal(t, []string{"abc123", "def456", "ghi789"}, parseSquashSourcesEnv("abc123 , def456 , ghi789"))
}

func TestParseSquashSourcesEnv_Empty(t *testing.T) {
	assert.Empty(t, parseSquashSourcesEnv(""))
}

func TestDetectSquash_HookArg(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SQUASH_MSG"), []byte(squashMsgFixture), 0o644))

	source := "squash"
	shas, ok := detectSquash(&source, dir)
	require.True(t, ok)
	assert.Len(t, shas, 2)
}

func TestDetectSquash_MessageArgNoSquashMsg(t *testing.T) {
	dir := t.TempDir()
	source := "message"
	_, ok := detectSquash(&source, dir)
	assert.False(t, ok)
}

func TestDetectSquash_NoSignals(t *testing.T) {
	dir := t.TempDir()
	_, ok := detectSquash(nil, dir)
	assert.False(t, ok)
}

func TestDetectSquash_SquashMsgFileWithoutHookArg(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SQUASH_MSG"), []byte(squashMsgFixture), 0o644))

	shas, ok := detectSquash(nil, dir)
	require.True(t, ok)
	assert.Len(t, shas, 2)
}

func TestDetectSquash_EnvVar(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(squashSourcesEnvVar, "abc123,def456")

	shas, ok := detectSquash(nil, dir)
	require.True(t, ok)
	assert.Equal(t, []string{"abc123", "def456"}, shas)
}

func TestHandlePrepareCommitMsg_WritesPending(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "SQUASH_MSG"), []byte(squashMsgFixture), 0o644))

	source := "squash"
	require.NoError(t, HandlePrepareCommitMsg(dir, &source))

	store := annotate.NewPendingSquashStore(dir)
	pending, err := store.Read()
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Len(t, pending.SourceCommits, 2)
}

func TestHandlePrepareCommitMsg_NoSquashWritesNothing(t *testing.T) {
	dir := t.TempDir()
	source := "message"
	require.NoError(t, HandlePrepareCommitMsg(dir, &source))

	store := annotate.NewPendingSquashStore(dir)
	pending, err := store.Read()
	require.NoError(t, err)
	assert.Nil(t, pending)
}
