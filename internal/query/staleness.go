package query

import "github.com/codenerd/chronicle/internal/vcs"

// StaleFileEntry is one stale (file, annotation) pair surfaced by
// ScanStaleness.
type StaleFileEntry struct {
	File             string
	AnnotationCommit string
	CommitsSince     int
}

// StalenessReport summarizes staleness across every annotated commit in the
// repo.
type StalenessReport struct {
	TotalAnnotations int
	StaleCount       int
	StaleFiles       []StaleFileEntry
}

// DefaultStalenessThreshold is the number of newer commits a file can
// accumulate before an annotation on it is considered stale.
const DefaultStalenessThreshold = 5

// StalenessInfo reports how far behind an annotation has fallen relative
// to its file's current history.
type StalenessInfo struct {
	AnnotationCommit string
	LatestFileCommit string
	CommitsSince     int
	Stale            bool
}

// Staleness computes staleness for annotationCommit against file's current
// history using DefaultStalenessThreshold. Returns ok=false if file has no
// history at all.
func Staleness(backend vcs.Backend, file, annotationCommit string) (StalenessInfo, bool, error) {
	return StalenessWithThreshold(backend, file, annotationCommit, DefaultStalenessThreshold)
}

// StalenessWithThreshold computes staleness with a caller-supplied
// threshold. If annotationCommit is absent from file's log (e.g. the file
// was renamed out from under it), the annotation is treated as maximally
// stale: commits_since is the full log length and stale is always true
// (spec.md §4.6.6).
func StalenessWithThreshold(backend vcs.Backend, file, annotationCommit string, threshold int) (StalenessInfo, bool, error) {
	shas, err := backend.LogForFile(file)
	if err != nil {
		return StalenessInfo{}, false, err
	}
	if len(shas) == 0 {
		return StalenessInfo{}, false, nil
	}

	latest := shas[0]
	for i, sha := range shas {
		if sha == annotationCommit {
			return StalenessInfo{
				AnnotationCommit: annotationCommit,
				LatestFileCommit: latest,
				CommitsSince:     i,
				Stale:            i > threshold,
			}, true, nil
		}
	}

	return StalenessInfo{
		AnnotationCommit: annotationCommit,
		LatestFileCommit: latest,
		CommitsSince:     len(shas),
		Stale:            true,
	}, true, nil
}

// ScanStaleness walks every annotated commit (up to limit, newest first; 0
// means unbounded) and reports staleness across each annotation's
// files_changed, using DefaultStalenessThreshold. A malformed annotation is
// skipped, same as readAnnotation everywhere else in this package.
func ScanStaleness(backend vcs.Backend, limit int) (StalenessReport, error) {
	shas, err := backend.ListAnnotatedCommits(limit)
	if err != nil {
		return StalenessReport{}, err
	}

	var report StalenessReport
	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}
		report.TotalAnnotations++

		for _, file := range ann.Narrative.FilesChanged {
			info, found, err := StalenessWithThreshold(backend, file, ann.Commit, DefaultStalenessThreshold)
			if err != nil {
				return StalenessReport{}, err
			}
			if !found || !info.Stale {
				continue
			}
			report.StaleCount++
			report.StaleFiles = append(report.StaleFiles, StaleFileEntry{
				File:             file,
				AnnotationCommit: ann.Commit,
				CommitsSince:     info.CommitsSince,
			})
		}
	}

	return report, nil
}
