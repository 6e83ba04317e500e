package annotate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/config"
	"github.com/codenerd/chronicle/internal/external"
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// FilterDecision is what the pre-LLM filter decided for one commit.
type FilterDecision struct {
	Kind   FilterKind
	Reason string
}

type FilterKind int

const (
	FilterAnnotate FilterKind = iota
	FilterSkip
	FilterTrivial
)

// PreLLMFilter decides whether a commit is worth an agent call at all,
// before Backfill ever delegates to an external.AgentCollaborator (spec.md
// §4.5.2). Merge/WIP/fixup/squash commits and lockfile-only diffs are
// skipped outright; diffs at or under the trivial threshold get a minimal
// annotation with no agent call; everything else proceeds to Annotate.
func PreLLMFilter(ctx AnnotationContext, cfg config.BackfillConfig) FilterDecision {
	msg := strings.TrimSpace(ctx.CommitMessage)
	for _, prefix := range cfg.MessageSkipPrefixes {
		if strings.HasPrefix(msg, prefix) {
			return FilterDecision{Kind: FilterSkip, Reason: "commit message matches a skip prefix"}
		}
	}

	if len(ctx.Diffs) > 0 && allLockfiles(ctx.Diffs, cfg.LockfilePatterns) {
		return FilterDecision{Kind: FilterSkip, Reason: "lockfile-only changes"}
	}

	total := 0
	for _, d := range ctx.Diffs {
		total += d.ChangedLineCount()
	}
	if total <= cfg.TrivialLineThreshold {
		return FilterDecision{
			Kind:   FilterTrivial,
			Reason: fmt.Sprintf("trivial change (%d lines changed)", total),
		}
	}

	return FilterDecision{Kind: FilterAnnotate}
}

func allLockfiles(diffs []vcs.FileDiff, patterns []string) bool {
	for _, d := range diffs {
		matched := false
		for _, p := range patterns {
			if strings.HasSuffix(d.Path, p) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// BackfillResult records what happened to one commit during a Backfill run.
type BackfillResult struct {
	Commit   string
	Decision FilterKind
	Reason   string
	Written  bool
}

// Backfill walks the last n commits in HEAD's ancestry (newest first,
// per backend.ListAnnotatedCommits's sibling — here the caller supplies the
// candidate SHAs, typically from a `git log` walk upstream of this
// package), skipping any that already carry a note, running the pre-LLM
// filter on the rest, and either delegating to agent for a full annotation,
// writing a minimal message-only annotation for trivial commits, or
// skipping (spec.md §4.5.2).
func Backfill(ctx context.Context, backend vcs.Backend, gitDir string, shas []string, cfg config.BackfillConfig, agent external.AgentCollaborator) ([]BackfillResult, error) {
	results := make([]BackfillResult, 0, len(shas))

	for _, sha := range shas {
		exists, err := backend.NoteExists(sha)
		if err != nil {
			return results, err
		}
		if exists {
			continue
		}

		annCtx, err := BuildContext(backend, gitDir, sha)
		if err != nil {
			return results, err
		}

		decision := PreLLMFilter(annCtx, cfg)
		result := BackfillResult{Commit: sha, Decision: decision.Kind, Reason: decision.Reason}

		switch decision.Kind {
		case FilterSkip:
			results = append(results, result)
			continue

		case FilterTrivial:
			if err := writeMinimalAnnotation(backend, annCtx); err != nil {
				return results, err
			}
			result.Written = true
			results = append(results, result)

		case FilterAnnotate:
			diffSummary := summarizeDiffs(annCtx.Diffs)
			agentResult, err := agent.Annotate(ctx, annCtx.CommitMessage, diffSummary)
			if err != nil {
				return results, err
			}
			if err := writeAgentAnnotation(backend, annCtx, agentResult); err != nil {
				return results, err
			}
			result.Written = true
			results = append(results, result)
		}
	}

	return results, nil
}

func writeMinimalAnnotation(backend vcs.Backend, ctx AnnotationContext) error {
	ann := schema.Annotation{
		Schema:    schema.CurrentSchema,
		Commit:    ctx.CommitSHA,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Narrative: schema.Narrative{
			Summary:      ctx.CommitMessage,
			FilesChanged: dedupInOrder(ctx.Diffs),
		},
		Provenance: schema.Provenance{Source: schema.ProvenanceBackfill},
	}
	return validateAndWrite(backend, &ann)
}

func writeAgentAnnotation(backend vcs.Backend, ctx AnnotationContext, agentResult external.AgentResult) error {
	ann := schema.Annotation{
		Schema:    schema.CurrentSchema,
		Commit:    ctx.CommitSHA,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Narrative: schema.Narrative{
			Summary:      agentResult.Summary,
			FilesChanged: dedupInOrder(ctx.Diffs),
		},
		Decisions: agentResult.Decisions,
		Markers:   agentResult.Markers,
		Provenance: schema.Provenance{Source: schema.ProvenanceBackfill},
	}
	return validateAndWrite(backend, &ann)
}

func validateAndWrite(backend vcs.Backend, ann *schema.Annotation) error {
	if err := ann.Validate(); err != nil {
		return chronicleerr.ValidationErr(err.Error())
	}
	data, err := schema.Serialize(ann)
	if err != nil {
		return chronicleerr.JsonErr("serializing annotation", err)
	}
	return backend.NoteWrite(ann.Commit, string(data))
}

// summarizeDiffs renders a compact per-file summary of a commit's diff for
// the agent collaborator, since the collaborator interface takes a plain
// string rather than structured FileDiffs.
func summarizeDiffs(diffs []vcs.FileDiff) string {
	var b strings.Builder
	for _, d := range diffs {
		fmt.Fprintf(&b, "%s %s (+%d/-%d)\n", d.Status, d.Path, d.AddedLineCount(), d.RemovedLineCount())
	}
	return b.String()
}
