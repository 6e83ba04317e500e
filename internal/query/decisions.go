package query

import (
	"sort"
	"strings"

	"github.com/codenerd/chronicle/internal/vcs"
)

// DecisionsQuery asks "what was decided, and what was tried and rejected?"
// An empty File scans every annotated commit instead of one file's history.
type DecisionsQuery struct {
	File string
}

// DecisionEntry is one surviving Decision.
type DecisionEntry struct {
	What        string
	Why         string
	Stability   string
	RevisitWhen *string
	Scope       []string
	Commit      string
	Timestamp   string
}

// RejectedAlternativeEntry is one surviving rejected alternative.
type RejectedAlternativeEntry struct {
	Approach  string
	Reason    string
	Commit    string
	Timestamp string
}

// DecisionsOutput is the result of Decisions.
type DecisionsOutput struct {
	Decisions            []DecisionEntry
	RejectedAlternatives []RejectedAlternativeEntry
}

type decisionKey struct{ what, why string }
type rejectedKey struct{ approach, reason string }

const decisionScanLimit = 1000

// Decisions collects decisions and rejected alternatives across the
// relevant commits, newest first. When query.File is set, a decision whose
// scope is non-empty and disjoint from the file is dropped (spec.md §4.6.2).
func Decisions(backend vcs.Backend, q DecisionsQuery) (DecisionsOutput, error) {
	var shas []string
	var err error
	if q.File != "" {
		shas, err = backend.LogForFile(q.File)
	} else {
		shas, err = backend.ListAnnotatedCommits(decisionScanLimit)
	}
	if err != nil {
		return DecisionsOutput{}, err
	}

	bestDecisions := make(map[decisionKey]DecisionEntry)
	bestRejected := make(map[rejectedKey]RejectedAlternativeEntry)

	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}

		for _, d := range ann.Decisions {
			if q.File != "" && !scopeMatches(d.Scope, q.File) {
				continue
			}
			key := decisionKey{what: d.What, why: d.Why}
			if _, exists := bestDecisions[key]; !exists {
				bestDecisions[key] = DecisionEntry{
					What:        d.What,
					Why:         d.Why,
					Stability:   string(d.Stability),
					RevisitWhen: d.RevisitWhen,
					Scope:       d.Scope,
					Commit:      ann.Commit,
					Timestamp:   ann.Timestamp,
				}
			}
		}

		for _, r := range ann.Narrative.RejectedAlternatives {
			key := rejectedKey{approach: r.Approach, reason: r.Reason}
			if _, exists := bestRejected[key]; !exists {
				bestRejected[key] = RejectedAlternativeEntry{
					Approach:  r.Approach,
					Reason:    r.Reason,
					Commit:    ann.Commit,
					Timestamp: ann.Timestamp,
				}
			}
		}
	}

	decisions := make([]DecisionEntry, 0, len(bestDecisions))
	for _, d := range bestDecisions {
		decisions = append(decisions, d)
	}
	sort.Slice(decisions, func(i, j int) bool { return decisions[i].Timestamp > decisions[j].Timestamp })

	rejected := make([]RejectedAlternativeEntry, 0, len(bestRejected))
	for _, r := range bestRejected {
		rejected = append(rejected, r)
	}
	sort.Slice(rejected, func(i, j int) bool { return rejected[i].Timestamp > rejected[j].Timestamp })

	return DecisionsOutput{Decisions: decisions, RejectedAlternatives: rejected}, nil
}

// scopeMatches reports whether a non-empty scope includes file, via
// fileMatches or a plain prefix fallback. An empty scope is repo-wide and
// always matches.
func scopeMatches(scope []string, file string) bool {
	if len(scope) == 0 {
		return true
	}
	for _, s := range scope {
		if fileMatches(s, file) || strings.HasPrefix(file, s) {
			return true
		}
	}
	return false
}
