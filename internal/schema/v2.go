package schema

import "fmt"

// CurrentSchema is the schema tag every live annotation must carry.
const CurrentSchema = "chronicle/v2"

// Annotation is the document attached to a commit.
type Annotation struct {
	Schema    string     `json:"schema"`
	Commit    string     `json:"commit"`
	Timestamp string     `json:"timestamp"`
	Narrative Narrative  `json:"narrative"`
	Decisions []Decision `json:"decisions,omitempty"`
	Markers   []CodeMarker `json:"markers,omitempty"`
	Effort    *EffortLink  `json:"effort,omitempty"`
	Provenance Provenance  `json:"provenance"`
}

// Validate checks structural correctness (spec.md §3 invariants).
func (a *Annotation) Validate() error {
	if a.Schema != CurrentSchema {
		return fmt.Errorf("unsupported schema version: %s", a.Schema)
	}
	if a.Commit == "" {
		return fmt.Errorf("commit SHA is empty")
	}
	if a.Narrative.Summary == "" {
		return fmt.Errorf("narrative summary is empty")
	}
	for i, m := range a.Markers {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("marker[%d]: %w", i, err)
		}
	}
	return nil
}

// Narrative is the commit-level story: what and why.
type Narrative struct {
	Summary              string                `json:"summary"`
	Motivation           *string               `json:"motivation,omitempty"`
	RejectedAlternatives []RejectedAlternative `json:"rejected_alternatives,omitempty"`
	FollowUp             *string               `json:"follow_up,omitempty"`
	FilesChanged         []string              `json:"files_changed,omitempty"`
}

// RejectedAlternative records an approach considered and not taken.
type RejectedAlternative struct {
	Approach string `json:"approach"`
	Reason   string `json:"reason"`
}

// Decision is a design decision attached to the commit, with a scope of
// files/anchors it applies to.
type Decision struct {
	What         string    `json:"what"`
	Why          string    `json:"why"`
	Stability    Stability `json:"stability"`
	RevisitWhen  *string   `json:"revisit_when,omitempty"`
	Scope        []string  `json:"scope,omitempty"`
}

// Stability classifies how settled a Decision is.
type Stability string

const (
	StabilityPermanent    Stability = "permanent"
	StabilityProvisional  Stability = "provisional"
	StabilityExperimental Stability = "experimental"
)

// CodeMarker is a code-level annotation pinned to a file and, optionally, an
// anchor and line range.
type CodeMarker struct {
	File   string     `json:"file"`
	Anchor *AstAnchor `json:"anchor,omitempty"`
	Lines  *LineRange `json:"lines,omitempty"`
	Kind   MarkerKind `json:"kind"`
}

// Validate checks a single marker's structural invariants.
func (m *CodeMarker) Validate() error {
	if m.File == "" {
		return fmt.Errorf("file is empty")
	}
	if m.Lines != nil && m.Lines.Start > m.Lines.End {
		return fmt.Errorf("invalid line range: start (%d) > end (%d)", m.Lines.Start, m.Lines.End)
	}
	return nil
}

// MarkerKindTag discriminates the MarkerKind tagged union.
type MarkerKindTag string

const (
	MarkerContract   MarkerKindTag = "contract"
	MarkerHazard     MarkerKindTag = "hazard"
	MarkerDependency MarkerKindTag = "dependency"
	MarkerUnstable   MarkerKindTag = "unstable"
)

// MarkerKind is the closed tagged union of code-marker variants. Exactly one
// of the variant-specific field groups is populated, selected by Type.
// Go's encoding/json has no native tagged-union support, so this struct
// inlines every variant's fields (all but Type optional) and marshals/
// unmarshals them via the Type discriminant, matching the wire shape of the
// Rust reference's `#[serde(tag = "type")]` enum exactly.
type MarkerKind struct {
	Type MarkerKindTag `json:"type"`

	// Contract / Hazard / Unstable share Description.
	Description string `json:"description,omitempty"`

	// Contract only.
	Source ContractSource `json:"source,omitempty"`

	// Dependency only.
	TargetFile   string `json:"target_file,omitempty"`
	TargetAnchor string `json:"target_anchor,omitempty"`
	Assumption   string `json:"assumption,omitempty"`

	// Unstable only.
	RevisitWhen string `json:"revisit_when,omitempty"`
}

// ContractSource classifies who asserted a Contract marker.
type ContractSource string

const (
	ContractAuthor   ContractSource = "author"
	ContractInferred ContractSource = "inferred"
)

func Contract(description string, source ContractSource) MarkerKind {
	return MarkerKind{Type: MarkerContract, Description: description, Source: source}
}

func Hazard(description string) MarkerKind {
	return MarkerKind{Type: MarkerHazard, Description: description}
}

func Dependency(targetFile, targetAnchor, assumption string) MarkerKind {
	return MarkerKind{Type: MarkerDependency, TargetFile: targetFile, TargetAnchor: targetAnchor, Assumption: assumption}
}

func Unstable(description, revisitWhen string) MarkerKind {
	return MarkerKind{Type: MarkerUnstable, Description: description, RevisitWhen: revisitWhen}
}

// EffortLink ties an annotation to a broader unit of work.
type EffortLink struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Phase       EffortPhase `json:"phase"`
}

// EffortPhase tracks progress against an EffortLink.
type EffortPhase string

const (
	EffortStart      EffortPhase = "start"
	EffortInProgress EffortPhase = "in_progress"
	EffortComplete   EffortPhase = "complete"
)

// Provenance records how an annotation came into existence.
type Provenance struct {
	Source      ProvenanceSource `json:"source"`
	DerivedFrom []string         `json:"derived_from,omitempty"`
	Notes       *string          `json:"notes,omitempty"`
}

// ProvenanceSource is the closed set of write-pipeline origins.
type ProvenanceSource string

const (
	ProvenanceLive       ProvenanceSource = "live"
	ProvenanceBatch      ProvenanceSource = "batch"
	ProvenanceBackfill   ProvenanceSource = "backfill"
	ProvenanceSquash     ProvenanceSource = "squash"
	ProvenanceAmend      ProvenanceSource = "amend"
	ProvenanceMigratedV1 ProvenanceSource = "migrated_v1"
)
