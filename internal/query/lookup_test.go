package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestLookup_CollectsFollowUps(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"c2", "c1"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s", FollowUp: strPtr("add retry backoff"), FilesChanged: []string{"svc.go"}},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c2",
		Timestamp: "2024-01-02T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s", FilesChanged: []string{"svc.go"}},
	})

	out, err := Lookup(backend, "svc.go", "")
	require.NoError(t, err)
	require.Len(t, out.OpenFollowUps, 1)
	assert.Equal(t, "c1", out.OpenFollowUps[0].Commit)
	assert.Equal(t, "add retry backoff", out.OpenFollowUps[0].FollowUp)
}

func TestLookup_AssemblesContractsDecisionsHistoryAndStaleness(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"c1"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "initial version", FilesChanged: []string{"svc.go"}},
		Decisions: []schema.Decision{{What: "use channels", Why: "simpler backpressure", Stability: schema.StabilityPermanent}},
		Markers: []schema.CodeMarker{
			{File: "svc.go", Kind: schema.Contract("must not block callers", schema.ContractAuthor)},
		},
	})

	out, err := Lookup(backend, "svc.go", "")
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
	require.Len(t, out.Decisions, 1)
	require.Len(t, out.RecentHistory, 1)
	require.Len(t, out.Staleness, 1)
	assert.Equal(t, "c1", out.Staleness[0].AnnotationCommit)
	assert.False(t, out.Staleness[0].Stale)
}

func TestLookup_KnowledgeOmittedWhenEmpty(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", nil)

	out, err := Lookup(backend, "svc.go", "")
	require.NoError(t, err)
	assert.Nil(t, out.Knowledge)
}

func TestLookup_KnowledgeScopedToFile(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("internal/auth/login.go", nil)

	store := schema.NewKnowledgeStore()
	store.Conventions = []schema.Convention{
		{ID: "c1", Scope: "internal/auth/", Rule: "never log raw tokens", Stability: schema.StabilityPermanent},
	}
	require.NoError(t, WriteKnowledgeStore(backend, store))

	out, err := Lookup(backend, "internal/auth/login.go", "")
	require.NoError(t, err)
	require.NotNil(t, out.Knowledge)
	require.Len(t, out.Knowledge.Conventions, 1)
	assert.Equal(t, "never log raw tokens", out.Knowledge.Conventions[0].Rule)
}
