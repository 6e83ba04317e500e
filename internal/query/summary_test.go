package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

func TestSummary_NewestCommitWinsWholeGroup(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"new", "old"})

	anchor := schema.AstAnchor{UnitType: "function", Name: "Handle"}
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "old",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "old summary"},
		Markers: []schema.CodeMarker{
			{File: "svc.go", Anchor: &anchor, Lines: &schema.LineRange{Start: 10, End: 20},
				Kind: schema.Contract("old constraint", schema.ContractAuthor)},
		},
	})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "new",
		Timestamp: "2024-02-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "new summary"},
		Markers: []schema.CodeMarker{
			{File: "svc.go", Anchor: &anchor, Lines: &schema.LineRange{Start: 12, End: 25},
				Kind: schema.Contract("new constraint", schema.ContractAuthor)},
		},
	})

	out, err := Summary(backend, SummaryQuery{File: "svc.go"})
	require.NoError(t, err)
	require.Len(t, out.Units, 1)
	unit := out.Units[0]
	assert.Equal(t, []string{"new constraint"}, unit.Constraints)
	assert.Equal(t, "new summary", unit.Intent)
	assert.Equal(t, uint32(12), unit.Lines.Start)
	assert.Equal(t, uint32(25), unit.Lines.End)
}

func TestSummary_WidensLinesWithinSingleCommit(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"c1"})

	anchor := schema.AstAnchor{UnitType: "function", Name: "Handle"}
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "svc.go", Anchor: &anchor, Lines: &schema.LineRange{Start: 10, End: 15}, Kind: schema.Contract("a", schema.ContractAuthor)},
			{File: "svc.go", Anchor: &anchor, Lines: &schema.LineRange{Start: 5, End: 12}, Kind: schema.Hazard("risky")},
		},
	})

	out, err := Summary(backend, SummaryQuery{File: "svc.go"})
	require.NoError(t, err)
	require.Len(t, out.Units, 1)
	assert.Equal(t, uint32(5), out.Units[0].Lines.Start)
	assert.Equal(t, uint32(15), out.Units[0].Lines.End)
	require.NotNil(t, out.Units[0].RiskNotes)
	assert.Equal(t, "risky", *out.Units[0].RiskNotes)
}

func TestSummary_MultipleAnchorsSortedByLineStart(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"c1"})

	second := schema.AstAnchor{UnitType: "function", Name: "Second"}
	first := schema.AstAnchor{UnitType: "function", Name: "First"}
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
		Markers: []schema.CodeMarker{
			{File: "svc.go", Anchor: &second, Lines: &schema.LineRange{Start: 50, End: 60}, Kind: schema.Contract("c2", schema.ContractAuthor)},
			{File: "svc.go", Anchor: &first, Lines: &schema.LineRange{Start: 1, End: 10}, Kind: schema.Contract("c1", schema.ContractAuthor)},
		},
	})

	out, err := Summary(backend, SummaryQuery{File: "svc.go"})
	require.NoError(t, err)
	require.Len(t, out.Units, 2)
	gotNames := []string{out.Units[0].Anchor.Name, out.Units[1].Anchor.Name}
	if diff := cmp.Diff([]string{"First", "Second"}, gotNames); diff != "" {
		t.Errorf("anchor order mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary_EmptyWhenNoMarkers(t *testing.T) {
	backend := vcs.NewMockBackend()
	backend.WithLogForFile("svc.go", []string{"c1"})
	writeAnnotation(t, backend, schema.Annotation{
		Commit:    "c1",
		Timestamp: "2024-01-01T00:00:00Z",
		Narrative: schema.Narrative{Summary: "s"},
	})

	out, err := Summary(backend, SummaryQuery{File: "svc.go"})
	require.NoError(t, err)
	assert.Empty(t, out.Units)
	assert.Equal(t, 1, out.Stats.CommitsExamined)
}
