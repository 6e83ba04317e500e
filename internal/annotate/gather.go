package annotate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/codenerd/chronicle/internal/vcs"
)

// PendingContextFile is the gitDir-relative path to the pending-context
// sidecar, written by a prepare-commit-msg-style producer and read here.
const PendingContextFile = "chronicle/pending-context.json"

// AuthorContext is what a commit author recorded about their own intent
// ahead of time, via either the pending-context sidecar or environment
// variables set by a wrapping tool.
type AuthorContext struct {
	Task         *string
	Reasoning    *string
	Dependencies *string
	Tags         []string
}

func (c AuthorContext) isEmpty() bool {
	return c.Task == nil && c.Reasoning == nil && c.Dependencies == nil && len(c.Tags) == 0
}

// PendingContext is the on-disk shape of chronicle/pending-context.json.
type PendingContext struct {
	Task         *string  `json:"task,omitempty"`
	Reasoning    *string  `json:"reasoning,omitempty"`
	Dependencies *string  `json:"dependencies,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// AnnotationContext is everything gathered about a commit before Backfill
// decides what to do with it.
type AnnotationContext struct {
	CommitSHA     string
	CommitMessage string
	AuthorName    string
	AuthorEmail   string
	Timestamp     string
	Diffs         []vcs.FileDiff
	AuthorContext *AuthorContext
}

// BuildContext assembles an AnnotationContext for a commit: its metadata and
// diff from the backend, plus whatever author context is available from the
// pending-context sidecar and environment.
func BuildContext(backend vcs.Backend, gitDir, commit string) (AnnotationContext, error) {
	info, err := backend.CommitInfo(commit)
	if err != nil {
		return AnnotationContext{}, err
	}
	diffs, err := backend.Diff(commit)
	if err != nil {
		return AnnotationContext{}, err
	}

	return AnnotationContext{
		CommitSHA:     info.SHA,
		CommitMessage: info.Message,
		AuthorName:    info.AuthorName,
		AuthorEmail:   info.AuthorEmail,
		Timestamp:     info.Timestamp,
		Diffs:         diffs,
		AuthorContext: GatherAuthorContext(gitDir),
	}, nil
}

// GatherAuthorContext reads chronicle/pending-context.json under gitDir and
// layers environment variables over it (env wins per field), returning nil
// if nothing is set anywhere.
func GatherAuthorContext(gitDir string) *AuthorContext {
	ctx := AuthorContext{}
	if pending := readPendingContext(gitDir); pending != nil {
		ctx.Task = pending.Task
		ctx.Reasoning = pending.Reasoning
		ctx.Dependencies = pending.Dependencies
		ctx.Tags = pending.Tags
	}

	if v, ok := envNonEmpty("CHRONICLE_TASK"); ok {
		ctx.Task = &v
	}
	if v, ok := envNonEmpty("CHRONICLE_REASONING"); ok {
		ctx.Reasoning = &v
	}
	if v, ok := envNonEmpty("CHRONICLE_DEPENDENCIES"); ok {
		ctx.Dependencies = &v
	}
	if v, ok := envNonEmpty("CHRONICLE_TAGS"); ok {
		tags := strings.Split(v, ",")
		for i := range tags {
			tags[i] = strings.TrimSpace(tags[i])
		}
		ctx.Tags = tags
	}

	if ctx.isEmpty() {
		return nil
	}
	return &ctx
}

func envNonEmpty(key string) (string, bool) {
	v := os.Getenv(key)
	if v == "" {
		return "", false
	}
	return v, true
}

// readPendingContext reads and deletes nothing (unlike staging/pending-
// squash, pending-context is not a single-reader queue — the CLI layer owns
// its lifecycle). Missing file is not an error.
func readPendingContext(gitDir string) *PendingContext {
	path := filepath.Join(gitDir, PendingContextFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	var pc PendingContext
	if err := json.Unmarshal(data, &pc); err != nil {
		return nil
	}
	return &pc
}
