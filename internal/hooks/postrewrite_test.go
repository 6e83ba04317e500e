package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestParseRewriteMappings_Single(t *testing.T) {
	mappings := ParseRewriteMappings("abc123 def456\n")
	require.Len(t, mappings, 1)
	assert.Equal(t, "abc123", mappings[0].OldSHA)
	assert.Equal(t, "def456", mappings[0].NewSHA)
}

func TestParseRewriteMappings_Multiple(t *testing.T) {
	mappings := ParseRewriteMappings("abc123 def456\nghi789 jkl012\nmno345 pqr678\n")
	require.Len(t, mappings, 3)
	assert.Equal(t, "ghi789", mappings[1].OldSHA)
	assert.Equal(t, "pqr678", mappings[2].NewSHA)
}

func TestParseRewriteMappings_Empty(t *testing.T) {
	assert.Empty(t, ParseRewriteMappings(""))
}

func TestParseRewriteMappings_BlankLines(t *testing.T) {
	mappings := ParseRewriteMappings("abc123 def456\n\nghi789 jkl012\n")
	assert.Len(t, mappings, 2)
}

func TestParseRewriteMappings_ExtraFields(t *testing.T) {
	mappings := ParseRewriteMappings("abc123 def456 extra info\n")
	require.Len(t, mappings, 1)
	assert.Equal(t, "abc123", mappings[0].OldSHA)
	assert.Equal(t, "def456", mappings[0].NewSHA)
}

func TestParseRewriteMappings_MalformedLineSkipped(t *testing.T) {
	mappings := ParseRewriteMappings("only_one_sha\nabc123 def456\n")
	require.Len(t, mappings, 1)
	assert.Equal(t, "abc123", mappings[0].OldSHA)
}

func TestHandlePostRewrite_RebaseSkipped(t *testing.T) {
	backend := vcs.NewMockBackend()
	err := HandlePostRewrite(backend, "rebase", []RewriteMapping{{OldSHA: "a", NewSHA: "b"}})
	require.NoError(t, err)
	assert.Empty(t, backend.WrittenNotes())
}

func TestHandlePostRewrite_MessageOnlyAmendMigratesAnnotation(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithCommit(vcs.CommitInfo{SHA: "new_sha", Message: "Fixed typo in message"})
	backend.WithDiffs("old_sha", []vcs.FileDiff{{Path: "a.go", Status: vcs.DiffModified}})
	backend.WithDiffs("new_sha", []vcs.FileDiff{{Path: "a.go", Status: vcs.DiffModified}})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "old_sha",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "original message"},
	})

	err := HandlePostRewrite(backend, "amend", []RewriteMapping{{OldSHA: "old_sha", NewSHA: "new_sha"}})
	require.NoError(t, err)

	content, ok, err := backend.NoteRead("new_sha")
	require.NoError(t, err)
	require.True(t, ok)
	ann, err := schema.Parse([]byte(content))
	require.NoError(t, err)
	assert.Equal(t, "Fixed typo in message", ann.Narrative.Summary)
	assert.Equal(t, schema.ProvenanceAmend, ann.Provenance.Source)
}

func TestHandlePostRewrite_NoOldAnnotationSkipsQuietly(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithCommit(vcs.CommitInfo{SHA: "new_sha", Message: "msg"})

	err := HandlePostRewrite(backend, "amend", []RewriteMapping{{OldSHA: "old_sha", NewSHA: "new_sha"}})
	require.NoError(t, err)
	assert.Empty(t, backend.WrittenNotes())
}

func TestHandlePostRewrite_ContinuesAfterOneMappingFails(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithCommit(vcs.CommitInfo{SHA: "new_sha_2", Message: "second"})

	// missing_old has a note but missing_new has no commit info, so the
	// first mapping's migration fails at CommitInfo.
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "missing_old",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "first original"},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "old_sha_2",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "second original"},
	})

	err := HandlePostRewrite(backend, "amend", []RewriteMapping{
		{OldSHA: "missing_old", NewSHA: "missing_new"},
		{OldSHA: "old_sha_2", NewSHA: "new_sha_2"},
	})
	require.NoError(t, err)

	_, ok, err := backend.NoteRead("new_sha_2")
	require.NoError(t, err)
	assert.True(t, ok)
}

func writeAnnotation(t *testing.T, backend *vcs.MockBackend, ann schema.Annotation) {
	t.Helper()
	if ann.Schema == "" {
		ann.Schema = schema.CurrentSchema
	}
	data, err := schema.Serialize(&ann)
	require.NoError(t, err)
	require.NoError(t, backend.NoteWrite(ann.Commit, string(data)))
}
