package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// writeAnnotation serializes ann and writes it as the note on ann.Commit.
func writeAnnotation(t *testing.T, backend *vcs.MockBackend, ann schema.Annotation) {
	t.Helper()
	if ann.Schema == "" {
		ann.Schema = schema.CurrentSchema
	}
	data, err := schema.Serialize(&ann)
	require.NoError(t, err)
	require.NoError(t, backend.NoteWrite(ann.Commit, string(data)))
}

func strPtr(s string) *string { return &s }
