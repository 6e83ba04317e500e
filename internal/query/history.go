package query

import (
	"strings"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// HistoryQuery reconstructs the annotation timeline for a file, optionally
// narrowed to one anchor, keeping only the limit most recent entries.
type HistoryQuery struct {
	File   string
	Anchor string
	Limit  int
}

// TimelineEntry is one commit's contribution to a file's history.
type TimelineEntry struct {
	Commit        string
	Timestamp     string
	CommitMessage string
	ContextLevel  string
	Provenance    string
	Intent        string
	Reasoning     *string
	Constraints   []string
	RiskNotes     *string
}

// HistoryStats reports how much of the log the query covered.
type HistoryStats struct {
	CommitsInLog     int
	AnnotationsFound int
}

// HistoryOutput is the result of History.
type HistoryOutput struct {
	Query    HistoryQuery
	Timeline []TimelineEntry
	Stats    HistoryStats
}

// History walks query.File's log (newest first), keeps commits relevant to
// the query, reverses to oldest-first, then keeps the last Limit entries —
// i.e. the Limit most recent (spec.md §4.6.3).
func History(backend vcs.Backend, q HistoryQuery) (HistoryOutput, error) {
	shas, err := backend.LogForFile(q.File)
	if err != nil {
		return HistoryOutput{}, err
	}
	commitsInLog := len(shas)

	var entries []TimelineEntry

	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}

		fileInFilesChanged := containsMatch(ann.Narrative.FilesChanged, q.File)
		fileInMarkers := false
		for _, m := range ann.Markers {
			if fileMatches(m.File, q.File) {
				fileInMarkers = true
				break
			}
		}
		if !fileInFilesChanged && !fileInMarkers {
			continue
		}

		if q.Anchor != "" {
			hasMatchingAnchor := false
			for _, m := range ann.Markers {
				if fileMatches(m.File, q.File) && m.Anchor != nil && anchorMatches(m.Anchor.Name, q.Anchor) {
					hasMatchingAnchor = true
					break
				}
			}
			if !hasMatchingAnchor && !fileInFilesChanged {
				continue
			}
		}

		commitMsg := ""
		if ci, err := backend.CommitInfo(sha); err == nil {
			commitMsg = ci.Message
		}

		var constraints []string
		var hazards []string
		for _, m := range ann.Markers {
			if !fileMatches(m.File, q.File) {
				continue
			}
			if q.Anchor != "" && !(m.Anchor != nil && anchorMatches(m.Anchor.Name, q.Anchor)) {
				continue
			}
			switch m.Kind.Type {
			case schema.MarkerContract:
				constraints = append(constraints, m.Kind.Description)
			case schema.MarkerHazard:
				hazards = append(hazards, m.Kind.Description)
			}
		}

		var riskNotes *string
		if len(hazards) > 0 {
			joined := strings.Join(hazards, "; ")
			riskNotes = &joined
		}

		contextLevel := string(ann.Provenance.Source)
		entries = append(entries, TimelineEntry{
			Commit:        sha,
			Timestamp:     ann.Timestamp,
			CommitMessage: commitMsg,
			ContextLevel:  contextLevel,
			Provenance:    contextLevel,
			Intent:        ann.Narrative.Summary,
			Reasoning:     ann.Narrative.Motivation,
			Constraints:   constraints,
			RiskNotes:     riskNotes,
		})
	}

	// shas is newest-first; reverse so the timeline reads oldest-first.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	annotationsFound := len(entries)

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[len(entries)-q.Limit:]
	}

	return HistoryOutput{
		Query:    q,
		Timeline: entries,
		Stats: HistoryStats{
			CommitsInLog:     commitsInLog,
			AnnotationsFound: annotationsFound,
		},
	}, nil
}

func containsMatch(files []string, target string) bool {
	for _, f := range files {
		if fileMatches(f, target) {
			return true
		}
	}
	return false
}
