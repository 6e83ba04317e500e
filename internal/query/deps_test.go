package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestDependents_FindsDependency(t *testing.T) {
	backend := vcs.NewMockBackend()

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "consumer.go", Kind: schema.Dependency("producer.go", "Emit", "assumes Emit never blocks")},
		},
	})

	out, err := Dependents(backend, DepsQuery{File: "producer.go"})
	require.NoError(t, err)
	require.Len(t, out.Dependents, 1)
	assert.Equal(t, "consumer.go", out.Dependents[0].File)
	assert.Equal(t, "assumes Emit never blocks", out.Dependents[0].Nature)
	assert.Equal(t, "linear", out.Stats.ScanMethod)
}

func TestDependents_UnqualifiedAnchorMatch(t *testing.T) {
	backend := vcs.NewMockBackend()

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "consumer.go", Kind: schema.Dependency("producer.go", "Producer::Emit", "needs Emit semantics")},
		},
	})

	out, err := Dependents(backend, DepsQuery{File: "producer.go", Anchor: "Emit"})
	require.NoError(t, err)
	require.Len(t, out.Dependents, 1)
}

func TestDependents_MaxResultsCap(t *testing.T) {
	backend := vcs.NewMockBackend()

	for i, commit := range []string{"c1", "c2", "c3"} {
		writeAnnotation(t, backend, schema.Annotation{
			Commit:    commit,
			Timestamp: "2024-01-0" + string(rune('1'+i)) + "T00:00:00Z",
			Narrative: schema.Narrative{Summary: "s"},
			Markers: []schema.CodeMarker{
				{File: "consumer" + string(rune('A'+i)) + ".go", Kind: schema.Dependency("producer.go", "", "dep")},
			},
		})
	}

	out, err := Dependents(backend, DepsQuery{File: "producer.go", MaxResults: 2})
	require.NoError(t, err)
	assert.Len(t, out.Dependents, 2)
	assert.Equal(t, 2, out.Stats.DependenciesFound)
}

func TestDependents_NoMatchWhenTargetDiffers(t *testing.T) {
	backend := vcs.NewMockBackend()

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "consumer.go", Kind: schema.Dependency("other.go", "", "unrelated")},
		},
	})

	out, err := Dependents(backend, DepsQuery{File: "producer.go"})
	require.NoError(t, err)
	assert.Empty(t, out.Dependents)
}
