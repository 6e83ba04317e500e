package annotate

import (
	"time"
	"unicode/utf8"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
	"github.com/codenerd/chronicle/internal/world"
)

// minSummaryCodePoints is the quality-warning threshold for a live write's
// narrative summary. Short summaries still write; they just warn.
const minSummaryCodePoints = 20

// LiveInput is what a caller supplies for a live write: the commit being
// annotated plus the narrative, decisions, and markers authored for it.
type LiveInput struct {
	Commit               string
	Summary              string
	Motivation           *string
	RejectedAlternatives []schema.RejectedAlternative
	FollowUp             *string
	Decisions            []schema.Decision
	Markers              []schema.CodeMarker
	Effort               *schema.EffortLink
}

// ResolutionTier records which anchor-resolution outcome a marker got during
// a live write, mirroring world.AnchorTier plus the unresolved case.
type ResolutionTier string

const (
	ResolutionExact      ResolutionTier = "exact"
	ResolutionQualified  ResolutionTier = "qualified"
	ResolutionFuzzy      ResolutionTier = "fuzzy"
	ResolutionUnresolved ResolutionTier = "unresolved"
)

// ResolutionOutcome is the per-marker record of what the anchor resolver did.
type ResolutionOutcome struct {
	Tier         ResolutionTier
	ResolvedName string // only set when Tier == ResolutionFuzzy
	Distance     uint32 // only meaningful when Tier == ResolutionFuzzy
}

// LiveResult is what a live write produces: the written annotation, any
// non-blocking quality warnings, and the per-marker resolution outcomes in
// input order.
type LiveResult struct {
	Annotation  schema.Annotation
	Warnings    []string
	Resolutions []ResolutionOutcome
}

// Live runs the live write pipeline (spec.md §4.5.1): resolve the commit,
// compute quality warnings, populate files_changed from the commit's diff,
// resolve each marker's anchor against the file as it existed at commit,
// drain the staging log into provenance.notes, and write the assembled
// annotation. Resolution failures are recorded as warnings; they never fail
// the write. Validation and write failures are fatal.
func Live(backend vcs.Backend, staging *Staging, input LiveInput) (*LiveResult, error) {
	commit, err := backend.ResolveRef(input.Commit)
	if err != nil {
		return nil, err
	}

	var warnings []string
	if utf8.RuneCountInString(input.Summary) < minSummaryCodePoints {
		warnings = append(warnings, "summary is shorter than 20 code points")
	}

	diffs, err := backend.Diff(commit)
	if err != nil {
		return nil, err
	}
	filesChanged := dedupInOrder(diffs)

	markers := make([]schema.CodeMarker, len(input.Markers))
	resolutions := make([]ResolutionOutcome, len(input.Markers))
	for i, m := range input.Markers {
		markers[i] = m
		resolutions[i] = resolveMarkerAnchor(&markers[i], backend, commit)
	}

	staged, err := staging.Drain()
	if err != nil {
		return nil, err
	}
	var notes *string
	if len(staged) > 0 {
		formatted := FormatForProvenance(staged)
		notes = &formatted
	}

	ann := schema.Annotation{
		Schema:    schema.CurrentSchema,
		Commit:    commit,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Narrative: schema.Narrative{
			Summary:              input.Summary,
			Motivation:           input.Motivation,
			RejectedAlternatives: input.RejectedAlternatives,
			FollowUp:             input.FollowUp,
			FilesChanged:         filesChanged,
		},
		Decisions: input.Decisions,
		Markers:   markers,
		Effort:    input.Effort,
		Provenance: schema.Provenance{
			Source: schema.ProvenanceLive,
			Notes:  notes,
		},
	}

	if err := ann.Validate(); err != nil {
		return nil, chronicleerr.ValidationErr(err.Error())
	}

	data, err := schema.Serialize(&ann)
	if err != nil {
		return nil, chronicleerr.JsonErr("serializing annotation", err)
	}
	if err := backend.NoteWrite(commit, string(data)); err != nil {
		return nil, err
	}

	return &LiveResult{Annotation: ann, Warnings: warnings, Resolutions: resolutions}, nil
}

// resolveMarkerAnchor attempts to re-resolve a marker's anchor against the
// file as it stood at commit, mutating marker's Anchor/Lines in place on a
// match. Any failure along the way — unsupported language, missing file,
// parse error, no match — leaves marker untouched and reports unresolved.
func resolveMarkerAnchor(marker *schema.CodeMarker, backend vcs.Backend, commit string) ResolutionOutcome {
	if marker.Anchor == nil {
		return ResolutionOutcome{Tier: ResolutionUnresolved}
	}

	lang := world.DetectLanguage(marker.File)
	if lang == world.LangUnsupported {
		return ResolutionOutcome{Tier: ResolutionUnresolved}
	}

	content, err := backend.FileAtCommit(marker.File, commit)
	if err != nil {
		return ResolutionOutcome{Tier: ResolutionUnresolved}
	}

	outline, err := world.ExtractOutline([]byte(content), lang)
	if err != nil {
		return ResolutionOutcome{Tier: ResolutionUnresolved}
	}

	match, ok := world.ResolveAnchor(outline, marker.Anchor.UnitType, marker.Anchor.Name)
	if !ok {
		return ResolutionOutcome{Tier: ResolutionUnresolved}
	}

	sig := match.Entry.Signature
	marker.Anchor = &schema.AstAnchor{
		UnitType:  string(match.Entry.Kind),
		Name:      match.Entry.QualifiedName,
		Signature: &sig,
	}
	lines := match.Entry.Lines
	marker.Lines = &lines

	switch match.Tier {
	case world.TierExact:
		return ResolutionOutcome{Tier: ResolutionExact}
	case world.TierQualifiedSuffix:
		return ResolutionOutcome{Tier: ResolutionQualified}
	default:
		return ResolutionOutcome{
			Tier:         ResolutionFuzzy,
			ResolvedName: match.Entry.QualifiedName,
			Distance:     match.Distance,
		}
	}
}

// dedupInOrder returns the distinct file paths touched by diffs, in first-
// seen order, matching spec.md's "deduplicated, insertion order" contract
// for files_changed.
func dedupInOrder(diffs []vcs.FileDiff) []string {
	seen := make(map[string]bool, len(diffs))
	var out []string
	for _, d := range diffs {
		if d.Path != "" && !seen[d.Path] {
			seen[d.Path] = true
			out = append(out, d.Path)
		}
	}
	return out
}
