package schema

import "fmt"

// MigrateV1ToV2 upgrades a v1, region-based annotation to the canonical v2,
// marker-based shape. This is the only place v1 documents are interpreted;
// every other reader only ever sees v2.Annotation (via Parse).
func MigrateV1ToV2(ann AnnotationV1) Annotation {
	var markers []CodeMarker
	var filesChanged []string
	seenFiles := make(map[string]bool)

	for _, region := range ann.Regions {
		if !seenFiles[region.File] {
			seenFiles[region.File] = true
			filesChanged = append(filesChanged, region.File)
		}

		anchor := region.AstAnchor
		lines := region.Lines

		for _, c := range region.Constraints {
			var source ContractSource
			switch c.Source {
			case ConstraintInferredV1:
				source = ContractInferred
			default:
				source = ContractAuthor
			}
			markers = append(markers, CodeMarker{
				File:   region.File,
				Anchor: &anchor,
				Lines:  &lines,
				Kind:   Contract(c.Text, source),
			})
		}

		if region.RiskNotes != nil {
			markers = append(markers, CodeMarker{
				File:   region.File,
				Anchor: &anchor,
				Lines:  &lines,
				Kind:   Hazard(*region.RiskNotes),
			})
		}

		for _, dep := range region.SemanticDependencies {
			markers = append(markers, CodeMarker{
				File:   region.File,
				Anchor: &anchor,
				Lines:  &lines,
				Kind:   Dependency(dep.File, dep.Anchor, dep.Nature),
			})
		}
	}

	// The narrative summary carries forward only the top-level v1 summary:
	// per-region reasoning was never folded into it even in multi-region
	// annotations, only ever used to compute a discarded intermediate value.
	summary := ann.Summary

	decisions := make([]Decision, 0, len(ann.CrossCutting))
	for _, cc := range ann.CrossCutting {
		scope := make([]string, 0, len(cc.Regions))
		for _, r := range cc.Regions {
			scope = append(scope, fmt.Sprintf("%s:%s", r.File, r.Anchor))
		}
		decisions = append(decisions, Decision{
			What:      cc.Description,
			Why:       "Migrated from v1 cross-cutting concern",
			Stability: StabilityPermanent,
			Scope:     scope,
		})
	}

	provenance := Provenance{
		Source:      ProvenanceMigratedV1,
		DerivedFrom: ann.Provenance.DerivedFrom,
		Notes:       ann.Provenance.SynthesisNotes,
	}

	var effort *EffortLink
	if ann.Task != nil {
		effort = &EffortLink{ID: *ann.Task, Description: *ann.Task, Phase: EffortInProgress}
	}

	return Annotation{
		Schema:    CurrentSchema,
		Commit:    ann.Commit,
		Timestamp: ann.Timestamp,
		Narrative: Narrative{
			Summary:      summary,
			FilesChanged: filesChanged,
		},
		Decisions:  decisions,
		Markers:    markers,
		Effort:     effort,
		Provenance: provenance,
	}
}
