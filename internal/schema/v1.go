package schema

// The v1 types below exist solely as the migration source for Parse — no
// writer ever produces v1 documents anymore. Kept faithful to the historical
// wire format so old notes still parse.

// AnnotationV1 is the pre-marker, region-based document shape.
type AnnotationV1 struct {
	Schema       string                  `json:"schema"`
	Commit       string                  `json:"commit"`
	Timestamp    string                  `json:"timestamp"`
	Task         *string                 `json:"task,omitempty"`
	Summary      string                  `json:"summary"`
	ContextLevel ContextLevelV1          `json:"context_level"`
	Regions      []RegionAnnotationV1    `json:"regions"`
	CrossCutting []CrossCuttingConcernV1 `json:"cross_cutting"`
	Provenance   ProvenanceV1            `json:"provenance"`
}

type ContextLevelV1 string

const (
	ContextLevelInferred ContextLevelV1 = "inferred"
	ContextLevelEnhanced ContextLevelV1 = "enhanced"
)

// RegionAnnotationV1 is a single annotated code region.
type RegionAnnotationV1 struct {
	File                  string                   `json:"file"`
	AstAnchor             AstAnchor                `json:"ast_anchor"`
	Lines                 LineRange                `json:"lines"`
	Intent                string                   `json:"intent"`
	Reasoning             *string                  `json:"reasoning,omitempty"`
	Constraints           []ConstraintV1           `json:"constraints"`
	SemanticDependencies  []SemanticDependencyV1   `json:"semantic_dependencies"`
	RelatedAnnotations    []string                 `json:"related_annotations"`
	Tags                  []string                 `json:"tags"`
	RiskNotes             *string                  `json:"risk_notes,omitempty"`
	Corrections           []interface{}            `json:"corrections"`
}

type ConstraintV1 struct {
	Text   string               `json:"text"`
	Source ConstraintSourceV1   `json:"source"`
}

type ConstraintSourceV1 string

const (
	ConstraintAuthorV1   ConstraintSourceV1 = "author"
	ConstraintInferredV1 ConstraintSourceV1 = "inferred"
)

type SemanticDependencyV1 struct {
	File   string `json:"file"`
	Anchor string `json:"anchor"`
	Nature string `json:"nature"`
}

type CrossCuttingConcernV1 struct {
	Description string                     `json:"description"`
	Regions     []CrossCuttingRegionRefV1  `json:"regions"`
	Tags        []string                  `json:"tags"`
}

type CrossCuttingRegionRefV1 struct {
	File   string `json:"file"`
	Anchor string `json:"anchor"`
}

type ProvenanceV1 struct {
	Operation                     ProvenanceOperationV1 `json:"operation"`
	DerivedFrom                   []string              `json:"derived_from"`
	OriginalAnnotationsPreserved  bool                  `json:"original_annotations_preserved"`
	SynthesisNotes                *string               `json:"synthesis_notes,omitempty"`
}

type ProvenanceOperationV1 string

const (
	ProvenanceOperationInitial ProvenanceOperationV1 = "initial"
	ProvenanceOperationSquash  ProvenanceOperationV1 = "squash"
	ProvenanceOperationAmend   ProvenanceOperationV1 = "amend"
)
