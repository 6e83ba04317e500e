package query

import (
	"sort"
	"strings"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// SummaryQuery asks for a condensed, per-anchor digest of a file's history.
type SummaryQuery struct {
	File   string
	Anchor string
}

// SummaryUnit is a condensed view of one (file, anchor) group's most recent
// state.
type SummaryUnit struct {
	Anchor       schema.AstAnchor
	Lines        *schema.LineRange
	Intent       string
	Constraints  []string
	RiskNotes    *string
	LastModified string
}

// SummaryStats reports how much history the query examined.
type SummaryStats struct {
	RegionsFound    int
	CommitsExamined int
}

// SummaryOutput is the result of Summary.
type SummaryOutput struct {
	Query SummaryQuery
	Units []SummaryUnit
	Stats SummaryStats
}

type summaryKey struct{ file, anchor string }

type summaryAccumulator struct {
	anchor      schema.AstAnchor
	lines       *schema.LineRange
	intent      string
	constraints []string
	seenConstr  map[string]bool
	riskNotes   []string
	timestamp   string
}

// Summary scans query.File's log newest first. Within a single commit,
// every marker matching the file (and anchor, if given) folds into that
// commit's own per-anchor accumulator — Contract descriptions into
// constraints, Hazard descriptions into risk notes, line ranges widened to
// their union. Once a (file, anchor) group has been produced by a newer
// commit, older commits touching the same group are ignored outright: the
// newest commit to mention a group wins in full, it is not merged with
// older state (spec.md §4.6.5).
func Summary(backend vcs.Backend, q SummaryQuery) (SummaryOutput, error) {
	shas, err := backend.LogForFile(q.File)
	if err != nil {
		return SummaryOutput{}, err
	}
	commitsExamined := len(shas)

	accumulators := make(map[summaryKey]*summaryAccumulator)
	var order []summaryKey

	for _, sha := range shas {
		ann, ok := readAnnotation(backend, sha)
		if !ok {
			continue
		}

		commitAccumulators := make(map[summaryKey]*summaryAccumulator)
		var commitOrder []summaryKey

		for _, m := range ann.Markers {
			if !fileMatches(m.File, q.File) {
				continue
			}
			if q.Anchor != "" && !(m.Anchor != nil && anchorMatches(m.Anchor.Name, q.Anchor)) {
				continue
			}

			anchorName := ""
			var anchor schema.AstAnchor
			if m.Anchor != nil {
				anchorName = m.Anchor.Name
				anchor = *m.Anchor
			}
			key := summaryKey{file: m.File, anchor: anchorName}

			// A commit already annotated by a newer sha never overwrites it.
			if _, already := accumulators[key]; already {
				continue
			}

			acc, exists := commitAccumulators[key]
			if !exists {
				acc = &summaryAccumulator{
					anchor:     anchor,
					seenConstr: make(map[string]bool),
					timestamp:  ann.Timestamp,
				}
				if acc.intent == "" {
					acc.intent = ann.Narrative.Summary
				}
				commitAccumulators[key] = acc
				commitOrder = append(commitOrder, key)
			}

			acc.widen(m.Lines)

			switch m.Kind.Type {
			case schema.MarkerContract:
				if !acc.seenConstr[m.Kind.Description] {
					acc.seenConstr[m.Kind.Description] = true
					acc.constraints = append(acc.constraints, m.Kind.Description)
				}
			case schema.MarkerHazard:
				acc.riskNotes = append(acc.riskNotes, m.Kind.Description)
			}
		}

		for _, key := range commitOrder {
			accumulators[key] = commitAccumulators[key]
			order = append(order, key)
		}
	}

	units := make([]SummaryUnit, 0, len(accumulators))
	for _, key := range order {
		acc := accumulators[key]
		var riskNotes *string
		if len(acc.riskNotes) > 0 {
			joined := strings.Join(acc.riskNotes, "; ")
			riskNotes = &joined
		}
		units = append(units, SummaryUnit{
			Anchor:       acc.anchor,
			Lines:        acc.lines,
			Intent:       acc.intent,
			Constraints:  acc.constraints,
			RiskNotes:    riskNotes,
			LastModified: acc.timestamp,
		})
	}

	sort.Slice(units, func(i, j int) bool {
		si, sj := uint32(0), uint32(0)
		if units[i].Lines != nil {
			si = units[i].Lines.Start
		}
		if units[j].Lines != nil {
			sj = units[j].Lines.Start
		}
		return si < sj
	})

	return SummaryOutput{
		Query: q,
		Units: units,
		Stats: SummaryStats{RegionsFound: len(units), CommitsExamined: commitsExamined},
	}, nil
}

func (a *summaryAccumulator) widen(lines *schema.LineRange) {
	if lines == nil {
		return
	}
	if a.lines == nil {
		widened := *lines
		a.lines = &widened
		return
	}
	start, end := a.lines.Start, a.lines.End
	if lines.Start < start {
		start = lines.Start
	}
	if lines.End > end {
		end = lines.End
	}
	a.lines = &schema.LineRange{Start: start, End: end}
}
