package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestDecisions_DedupKeepsNewest(t *testing.T) {
	backend := vcs.NewMockBackend()

	// Write oldest first so ListAnnotatedCommits (newest-written-first) sees
	// "new" before "old".
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "old",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Decisions: []schema.Decision{{What: "use JSON", Why: "simplicity", Stability: schema.StabilityProvisional}},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "new",
		Timestamp: "2024-02-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Decisions: []schema.Decision{{What: "use JSON", Why: "simplicity", Stability: schema.StabilityPermanent}},
	})

	out, err := Decisions(backend, DecisionsQuery{})
	require.NoError(t, err)
	require.Len(t, out.Decisions, 1)
	assert.Equal(t, "new", out.Decisions[0].Commit)
	assert.Equal(t, "permanent", out.Decisions[0].Stability)
}

func TestDecisions_ScopeFilter(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("internal/auth/login.go", []string{"c1", "c2"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Decisions: []schema.Decision{
			{What: "sessions expire in 24h", Why: "security", Stability: schema.StabilityPermanent, Scope: []string{"internal/auth/"}},
		},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c2",
		Timestamp: "2024-01-02T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Decisions: []schema.Decision{
			{What: "use gzip", Why: "bandwidth", Stability: schema.StabilityProvisional, Scope: []string{"internal/storage/"}},
		},
	})

	out, err := Decisions(backend, DecisionsQuery{File: "internal/auth/login.go"})
	require.NoError(t, err)
	require.Len(t, out.Decisions, 1)
	assert.Equal(t, "sessions expire in 24h", out.Decisions[0].What)
}

func TestDecisions_EmptyScopeIsRepoWide(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("any/file.go", []string{"c1"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Decisions: []schema.Decision{{What: "go 1.24", Why: "generics maturity", Stability: schema.StabilityPermanent}},
	})

	out, err := Decisions(backend, DecisionsQuery{File: "any/file.go"})
	require.NoError(t, err)
	require.Len(t, out.Decisions, 1)
}

func TestDecisions_RejectedAlternativesDedupAndSort(t *testing.T) {
	backend := vcs.NewMockBackend()

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{
			Summary:              "s",
			RejectedAlternatives: []schema.RejectedAlternative{{Approach: "use XML", Reason: "too verbose"}},
		},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c2",
		Timestamp: "2024-03-01T00:00:00Z",
		Narrative: schema.Narrative{
			Summary:              "s",
			RejectedAlternatives: []schema.RejectedAlternative{{Approach: "use protobuf", Reason: "overkill for this size"}},
		},
	})

	out, err := Decisions(backend, DecisionsQuery{})
	require.NoError(t, err)
	require.Len(t, out.RejectedAlternatives, 2)
	assert.Equal(t, "use protobuf", out.RejectedAlternatives[0].Approach)
	assert.Equal(t, "use XML", out.RejectedAlternatives[1].Approach)
}
