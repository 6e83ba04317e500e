package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestContracts_DedupKeepsNewest(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("api.go", []string{"new", "old"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "old",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "initial contract"},
		Markers: []schema.CodeMarker{
			{File: "api.go", Kind: schema.Contract("must stay backwards compatible", schema.ContractAuthor)},
		},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "new",
		Timestamp: "2024-02-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "refined contract"},
		Markers: []schema.CodeMarker{
			{File: "api.go", Kind: schema.Contract("must stay backwards compatible", schema.ContractInferred)},
		},
	})

	out, err := Contracts(backend, ContractsQuery{File: "api.go"})
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
	assert.Equal(t, "new", out.Contracts[0].Commit)
	assert.Equal(t, schema.ContractInferred, out.Contracts[0].Source)
}

func TestContracts_FilePathNormalization(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("./api.go", []string{"c1"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "api.go", Kind: schema.Contract("no breaking changes", schema.ContractAuthor)},
		},
	})

	out, err := Contracts(backend, ContractsQuery{File: "./api.go"})
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
}

func TestContracts_MixedContractsAndDeps(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("core.go", []string{"c1"})

	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "core.go", Kind: schema.Contract("stable wire format", schema.ContractAuthor)},
			{File: "core.go", Kind: schema.Dependency("util.go", "Parse", "expects Parse to be pure")},
		},
	})

	out, err := Contracts(backend, ContractsQuery{File: "core.go"})
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
	require.Len(t, out.Dependencies, 1)
	assert.Equal(t, "util.go", out.Dependencies[0].TargetFile)
	assert.Equal(t, "expects Parse to be pure", out.Dependencies[0].Assumption)
}

func TestContracts_EmptyWhenNoAnnotations(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("lonely.go", nil)

	out, err := Contracts(backend, ContractsQuery{File: "lonely.go"})
	require.NoError(t, err)
	assert.Empty(t, out.Contracts)
	assert.Empty(t, out.Dependencies)
}

func TestContracts_SkipsMalformedAnnotation(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("api.go", []string{"bad", "good"})
	require.NoError(t, backend.NoteWrite("bad", "not json"))
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "good",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "api.go", Kind: schema.Contract("works", schema.ContractAuthor)},
		},
	})

	out, err := Contracts(backend, ContractsQuery{File: "api.go"})
	require.NoError(t, err)
	require.Len(t, out.Contracts, 1)
	assert.Equal(t, "good", out.Contracts[0].Commit)
}
