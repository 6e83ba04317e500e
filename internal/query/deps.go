package query

import (
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// DepsQuery runs a dependency-inversion scan: who depends on this file (and
// optionally this anchor)?
type DepsQuery struct {
	File       string
	Anchor     string
	MaxResults int
	ScanLimit  int
}

// DependentEntry is one commit's claim of a dependency on the queried
// file/anchor.
type DependentEntry struct {
	File         string
	Anchor       string
	Nature       string
	Commit       string
	Timestamp    string
	ContextLevel string
}

// DepsStats reports how much of the annotated history the scan covered.
type DepsStats struct {
	CommitsScanned    int
	DependenciesFound int
	ScanMethod        string
}

// DepsOutput is the result of Dependents.
type DepsOutput struct {
	Query      DepsQuery
	Dependents []DependentEntry
	Stats      DepsStats
}

type dependentKey struct{ file, anchor string }

// Dependents scans the scan_limit most recently annotated commits
// (newest first) for Dependency markers whose target matches the query,
// keeping the newest per (file, anchor) and truncating to max_results
// (spec.md §4.6.4).
func Dependents(backend vcs.Backend, q DepsQuery) (DepsOutput, error) {
	shas, err := backend.ListAnnotatedCommits(q.ScanLimit)
	if err != nil {
		return DepsOutput{}, err
	}
	commitsScanned := len(shas)

	var dependents []DependentEntry
	seen := make(map[dependentKey]bool)

	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}

		for _, m := range ann.Markers {
			if m.Kind.Type != schema.MarkerDependency {
				continue
			}
			if !fileMatches(m.Kind.TargetFile, q.File) {
				continue
			}
			if q.Anchor != "" && !anchorMatches(m.Kind.TargetAnchor, q.Anchor) {
				continue
			}

			anchorName := ""
			if m.Anchor != nil {
				anchorName = m.Anchor.Name
			}
			key := dependentKey{file: m.File, anchor: anchorName}
			if seen[key] {
				continue
			}
			seen[key] = true

			dependents = append(dependents, DependentEntry{
				File:         m.File,
				Anchor:       anchorName,
				Nature:       m.Kind.Assumption,
				Commit:       sha,
				Timestamp:    ann.Timestamp,
				ContextLevel: string(ann.Provenance.Source),
			})
		}
	}

	if q.MaxResults > 0 && len(dependents) > q.MaxResults {
		dependents = dependents[:q.MaxResults]
	}

	return DepsOutput{
		Query:      q,
		Dependents: dependents,
		Stats: DepsStats{
			CommitsScanned:    commitsScanned,
			DependenciesFound: len(dependents),
			ScanMethod:        "linear",
		},
	}, nil
}
