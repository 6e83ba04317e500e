package annotate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

const (
	pendingSquashFile   = "chronicle/pending-squash.json"
	pendingSquashExpiry = 60 * time.Second
)

// PendingSquash is written to <gitDir>/chronicle/pending-squash.json by a
// prepare-commit-msg hook ahead of a squash, and consumed (then deleted) by
// the post-commit hook that drives Squash Synthesis.
type PendingSquash struct {
	SourceCommits []string  `json:"source_commits"`
	SourceRef     *string   `json:"source_ref,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// PendingSquashStore is the single-writer, single-reader queue backing
// PendingSquash, following the same gitDir-rooted shape as Staging.
type PendingSquashStore struct {
	gitDir string
}

func NewPendingSquashStore(gitDir string) *PendingSquashStore {
	return &PendingSquashStore{gitDir: gitDir}
}

func (s *PendingSquashStore) path() string {
	return filepath.Join(s.gitDir, pendingSquashFile)
}

// Write persists a PendingSquash, creating the chronicle directory as
// needed.
func (s *PendingSquashStore) Write(p PendingSquash) error {
	path := s.path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return chronicleerr.IoErr("creating chronicle directory", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return chronicleerr.JsonErr("serializing pending squash", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return chronicleerr.IoErr("writing pending squash", err)
	}
	return nil
}

// Read returns the pending squash, or nil if the file is missing, invalid,
// or older than the 60-second freshness window — in the latter two cases
// the file is deleted rather than left around to confuse the next read.
func (s *PendingSquashStore) Read() (*PendingSquash, error) {
	path := s.path()
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, chronicleerr.IoErr("reading pending squash", err)
	}

	var pending PendingSquash
	if err := json.Unmarshal(content, &pending); err != nil {
		_ = os.Remove(path)
		return nil, nil
	}

	if time.Since(pending.Timestamp) > pendingSquashExpiry {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, chronicleerr.IoErr("removing stale pending squash", err)
		}
		return nil, nil
	}

	return &pending, nil
}

// Delete removes the pending squash file. Missing file is not an error.
func (s *PendingSquashStore) Delete() error {
	err := os.Remove(s.path())
	if err != nil && !os.IsNotExist(err) {
		return chronicleerr.IoErr("clearing pending squash", err)
	}
	return nil
}

// SourceAnnotation pairs a squash source commit with whatever annotation it
// carried, if any.
type SourceAnnotation struct {
	SHA        string
	Annotation *schema.Annotation
}

// CollectSourceAnnotations reads and parses the note (if any) for each
// source commit, preserving order and recording commits with no note as a
// nil Annotation rather than dropping them — Squash Synthesis needs the
// full source list to report N-of-M coverage.
func CollectSourceAnnotations(backend vcs.Backend, shas []string) []SourceAnnotation {
	out := make([]SourceAnnotation, 0, len(shas))
	for _, sha := range shas {
		content, ok, err := backend.NoteRead(sha)
		if err != nil || !ok {
			out = append(out, SourceAnnotation{SHA: sha})
			continue
		}
		ann, err := schema.Parse([]byte(content))
		if err != nil {
			out = append(out, SourceAnnotation{SHA: sha})
			continue
		}
		out = append(out, SourceAnnotation{SHA: sha, Annotation: ann})
	}
	return out
}

// SquashSynthesisContext is everything needed to synthesize one annotation
// for a squash commit out of its sources' annotations (spec.md §4.5.3).
type SquashSynthesisContext struct {
	SquashCommit  string
	SquashMessage string
	Sources       []SourceAnnotation
}

// markerGroup accumulates every marker sharing a (file, anchor name) key
// across a squash's source annotations.
type markerGroup struct {
	file    string
	anchor  *schema.AstAnchor
	lines   *schema.LineRange
	markers []schema.CodeMarker
}

type markerGroupKey struct {
	file   string
	anchor string
}

// SynthesizeSquashAnnotation deterministically merges the source
// annotations of a squash into one annotation: markers grouped by
// (file, anchor name) with contract/hazard/unstable descriptions deduped
// by text, dependencies deduped by (target_file, target_anchor), and line
// ranges widened to their union; decisions deduped by (what, why), first
// occurrence wins; motivations concatenated blank-line separated. No agent
// call is involved (spec.md §4.5.3).
func SynthesizeSquashAnnotation(ctx SquashSynthesisContext) schema.Annotation {
	groups := make(map[markerGroupKey]*markerGroup)
	var order []markerGroupKey

	var motivations []string
	var decisions []schema.Decision
	seenDecisions := make(map[[2]string]bool)

	var derivedFrom []string
	annotationsCount := 0

	for _, src := range ctx.Sources {
		derivedFrom = append(derivedFrom, src.SHA)
		if src.Annotation == nil {
			continue
		}
		annotationsCount++
		ann := src.Annotation

		if ann.Narrative.Motivation != nil && strings.TrimSpace(*ann.Narrative.Motivation) != "" {
			motivations = append(motivations, *ann.Narrative.Motivation)
		}

		for _, d := range ann.Decisions {
			key := [2]string{d.What, d.Why}
			if seenDecisions[key] {
				continue
			}
			seenDecisions[key] = true
			decisions = append(decisions, d)
		}

		for _, m := range ann.Markers {
			anchorName := ""
			if m.Anchor != nil {
				anchorName = m.Anchor.Name
			}
			key := markerGroupKey{file: m.File, anchor: anchorName}
			g, ok := groups[key]
			if !ok {
				g = &markerGroup{file: m.File, anchor: m.Anchor, lines: m.Lines}
				groups[key] = g
				order = append(order, key)
			}
			g.merge(m)
		}
	}

	var markers []schema.CodeMarker
	for _, key := range order {
		g := groups[key]
		for _, m := range g.markers {
			m.File = g.file
			m.Anchor = g.anchor
			m.Lines = g.lines
			markers = append(markers, m)
		}
	}

	var motivation *string
	if len(motivations) > 0 {
		joined := strings.Join(motivations, "\n\n")
		motivation = &joined
	}

	totalSources := len(ctx.Sources)
	allHadAnnotations := totalSources > 0 && annotationsCount == totalSources
	var notes string
	if annotationsCount > 0 {
		notes = "synthesized from " + strconv.Itoa(totalSources) + " commits (" +
			strconv.Itoa(annotationsCount) + " of " + strconv.Itoa(totalSources) + " had annotations)"
	} else {
		notes = "synthesized from " + strconv.Itoa(totalSources) + " commits (none had annotations)"
	}
	if allHadAnnotations {
		notes += "; original annotations fully preserved"
	}

	return schema.Annotation{
		Schema:    schema.CurrentSchema,
		Commit:    ctx.SquashCommit,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Narrative: schema.Narrative{
			Summary:    ctx.SquashMessage,
			Motivation: motivation,
		},
		Decisions: decisions,
		Markers:   markers,
		Provenance: schema.Provenance{
			Source:      schema.ProvenanceSquash,
			DerivedFrom: derivedFrom,
			Notes:       &notes,
		},
	}
}

// merge folds one source marker into its group: contract/hazard/unstable
// descriptions dedup by text, dependencies dedup by (target_file,
// target_anchor), and the group's line range widens to cover every marker
// it has absorbed.
func (g *markerGroup) merge(m schema.CodeMarker) {
	switch m.Kind.Type {
	case schema.MarkerDependency:
		for _, existing := range g.markers {
			if existing.Kind.Type == schema.MarkerDependency &&
				existing.Kind.TargetFile == m.Kind.TargetFile &&
				existing.Kind.TargetAnchor == m.Kind.TargetAnchor {
				g.widen(m.Lines)
				return
			}
		}
	default:
		for _, existing := range g.markers {
			if existing.Kind.Type == m.Kind.Type && existing.Kind.Description == m.Kind.Description {
				g.widen(m.Lines)
				return
			}
		}
	}
	g.markers = append(g.markers, m)
	g.widen(m.Lines)
}

func (g *markerGroup) widen(lines *schema.LineRange) {
	if lines == nil {
		return
	}
	if g.lines == nil {
		widened := *lines
		g.lines = &widened
		return
	}
	start, end := g.lines.Start, g.lines.End
	if lines.Start < start {
		start = lines.Start
	}
	if lines.End > end {
		end = lines.End
	}
	g.lines = &schema.LineRange{Start: start, End: end}
}

// AmendMigrationContext is everything needed to migrate an annotation from
// a pre-amend commit to its post-amend replacement (spec.md §4.5.4).
type AmendMigrationContext struct {
	OldCommit  string
	NewCommit  string
	OldDiff    string
	NewDiff    string
	NewMessage string
}

// MigrateAmendAnnotation reads the old commit's annotation (returning nil,
// nil silently if it has none), then either copies it onto the new commit
// with the summary replaced by the new message (when the two diffs are
// byte-identical, i.e. a message-only amend) or preserves its markers and
// decisions as-is, writing the result to the new commit without deleting
// the old note.
func MigrateAmendAnnotation(backend vcs.Backend, ctx AmendMigrationContext) (*schema.Annotation, error) {
	content, ok, err := backend.NoteRead(ctx.OldCommit)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	oldAnn, err := schema.Parse([]byte(content))
	if err != nil {
		return nil, err
	}

	newAnn := *oldAnn
	newAnn.Commit = ctx.NewCommit
	newAnn.Timestamp = time.Now().UTC().Format(time.RFC3339)

	messageOnly := ctx.OldDiff == ctx.NewDiff
	var notes string
	if messageOnly {
		newAnn.Narrative.Summary = ctx.NewMessage
		notes = "message-only"
	} else {
		notes = "migrated from amend; markers preserved"
	}
	newAnn.Provenance = schema.Provenance{
		Source:      schema.ProvenanceAmend,
		DerivedFrom: []string{ctx.OldCommit},
		Notes:       &notes,
	}

	if err := validateAndWrite(backend, &newAnn); err != nil {
		return nil, err
	}
	return &newAnn, nil
}

// WriteSquashAnnotation validates and writes a synthesized squash
// annotation to its commit.
func WriteSquashAnnotation(backend vcs.Backend, ann schema.Annotation) error {
	return validateAndWrite(backend, &ann)
}
