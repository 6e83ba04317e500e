package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func makeV1Annotation() AnnotationV1 {
	return AnnotationV1{
		Schema:       "chronicle/v1",
		Commit:       "abc123",
		Timestamp:    "2025-01-01T00:00:00Z",
		Task:         strPtr("TASK-42"),
		Summary:      "Add reconnect logic",
		ContextLevel: ContextLevelEnhanced,
		Regions: []RegionAnnotationV1{
			{
				File: "src/mqtt/reconnect.rs",
				AstAnchor: AstAnchor{
					UnitType:  "function",
					Name:      "attempt_reconnect",
					Signature: strPtr("fn attempt_reconnect(&mut self)"),
				},
				Lines:     LineRange{Start: 10, End: 30},
				Intent:    "Handle reconnection with exponential backoff",
				Reasoning: strPtr("Broker rate-limits rapid reconnects"),
				Constraints: []ConstraintV1{
					{Text: "Must not exceed 60s backoff", Source: ConstraintAuthorV1},
				},
				SemanticDependencies: []SemanticDependencyV1{
					{File: "src/tls/session.rs", Anchor: "TlsSessionCache::max_sessions", Nature: "assumes max_sessions is 4"},
				},
				Tags:      []string{"mqtt"},
				RiskNotes: strPtr("Backoff timer is not persisted across restarts"),
			},
		},
		CrossCutting: []CrossCuttingConcernV1{
			{
				Description: "All reconnect paths must use exponential backoff",
				Regions:     []CrossCuttingRegionRefV1{{File: "src/mqtt/reconnect.rs", Anchor: "attempt_reconnect"}},
			},
		},
		Provenance: ProvenanceV1{Operation: ProvenanceOperationInitial},
	}
}

func TestMigrateV1ToV2_Basic(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	assert.Equal(t, CurrentSchema, v2.Schema)
	assert.Equal(t, "abc123", v2.Commit)
	assert.Equal(t, "2025-01-01T00:00:00Z", v2.Timestamp)
	assert.Equal(t, "Add reconnect logic", v2.Narrative.Summary)
	assert.Equal(t, []string{"src/mqtt/reconnect.rs"}, v2.Narrative.FilesChanged)
}

func TestMigrateV1ToV2_Markers(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	require.Len(t, v2.Markers, 3)

	assert.Equal(t, MarkerContract, v2.Markers[0].Kind.Type)
	assert.Equal(t, "Must not exceed 60s backoff", v2.Markers[0].Kind.Description)

	assert.Equal(t, MarkerHazard, v2.Markers[1].Kind.Type)
	assert.Contains(t, v2.Markers[1].Kind.Description, "not persisted")

	assert.Equal(t, MarkerDependency, v2.Markers[2].Kind.Type)
	assert.Equal(t, "src/tls/session.rs", v2.Markers[2].Kind.TargetFile)
	assert.Equal(t, "TlsSessionCache::max_sessions", v2.Markers[2].Kind.TargetAnchor)
	assert.Equal(t, "assumes max_sessions is 4", v2.Markers[2].Kind.Assumption)
}

func TestMigrateV1ToV2_Decisions(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	require.Len(t, v2.Decisions, 1)
	assert.Equal(t, "All reconnect paths must use exponential backoff", v2.Decisions[0].What)
	assert.Equal(t, StabilityPermanent, v2.Decisions[0].Stability)
}

func TestMigrateV1ToV2_Effort(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	require.NotNil(t, v2.Effort)
	assert.Equal(t, "TASK-42", v2.Effort.ID)
}

func TestMigrateV1ToV2_Provenance(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	assert.Equal(t, ProvenanceMigratedV1, v2.Provenance.Source)
}

func TestMigrateV1ToV2_Validates(t *testing.T) {
	v2 := MigrateV1ToV2(makeV1Annotation())
	assert.NoError(t, v2.Validate())
}

func TestMigrateV1ToV2_EmptyRegions(t *testing.T) {
	v1 := AnnotationV1{
		Schema:       "chronicle/v1",
		Commit:       "abc123",
		Timestamp:    "2025-01-01T00:00:00Z",
		Summary:      "Simple commit",
		ContextLevel: ContextLevelInferred,
		Provenance:   ProvenanceV1{Operation: ProvenanceOperationInitial},
	}
	v2 := MigrateV1ToV2(v1)
	assert.Empty(t, v2.Markers)
	assert.Empty(t, v2.Decisions)
	assert.Nil(t, v2.Effort)
	assert.NoError(t, v2.Validate())
}
