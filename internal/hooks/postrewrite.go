package hooks

import (
	"fmt"
	"strings"

	"github.com/codenerd/chronicle/internal/annotate"
	"github.com/codenerd/chronicle/internal/logging"
	"github.com/codenerd/chronicle/internal/vcs"
)

// RewriteMapping is one old-SHA to new-SHA pair, as git's post-rewrite hook
// reports on stdin.
type RewriteMapping struct {
	OldSHA string
	NewSHA string
}

// ParseRewriteMappings parses post-rewrite's stdin format: one
// "<old-sha> <new-sha>" pair per line, with any further fields (git may
// append extra info) ignored. Lines with fewer than two fields are
// skipped rather than treated as an error.
func ParseRewriteMappings(input string) []RewriteMapping {
	var mappings []RewriteMapping
	for _, line := range strings.Split(input, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		mappings = append(mappings, RewriteMapping{OldSHA: fields[0], NewSHA: fields[1]})
	}
	return mappings
}

// HandlePostRewrite migrates annotations across a post-rewrite event.
// rewriteType is git's first hook argument: "amend" rewrites are migrated
// one by one via annotate.MigrateAmendAnnotation; "rebase" rewrites are
// not yet handled and are logged and skipped entirely. A single mapping's
// migration failure is logged and does not abort the rest.
func HandlePostRewrite(backend vcs.Backend, rewriteType string, mappings []RewriteMapping) error {
	if rewriteType != "amend" {
		logging.Get(logging.CategoryHooks).Info("post-rewrite: %s rewrites not yet supported, skipping %d mappings", rewriteType, len(mappings))
		return nil
	}

	for _, m := range mappings {
		if err := migrateSingleAmend(backend, m.OldSHA, m.NewSHA); err != nil {
			logging.Get(logging.CategoryHooks).Warn("failed to migrate annotation from %s to %s: %v", m.OldSHA, m.NewSHA, err)
		}
	}
	return nil
}

// migrateSingleAmend renders the old and new commits' diffs as text and
// delegates to annotate.MigrateAmendAnnotation, which treats identical
// diff text as a message-only amend and writes the migrated note.
func migrateSingleAmend(backend vcs.Backend, oldSHA, newSHA string) error {
	exists, err := backend.NoteExists(oldSHA)
	if err != nil {
		return err
	}
	if !exists {
		logging.Get(logging.CategoryHooks).Debug("no annotation for old commit %s, skipping amend migration", oldSHA)
		return nil
	}

	newInfo, err := backend.CommitInfo(newSHA)
	if err != nil {
		return err
	}

	newDiffs, err := backend.Diff(newSHA)
	if err != nil {
		return err
	}
	oldDiffs, err := backend.Diff(oldSHA)
	if err != nil {
		return err
	}

	ctx := annotate.AmendMigrationContext{
		OldCommit:  oldSHA,
		NewCommit:  newSHA,
		OldDiff:    fmt.Sprintf("%+v", oldDiffs),
		NewDiff:    fmt.Sprintf("%+v", newDiffs),
		NewMessage: newInfo.Message,
	}
	migrated, err := annotate.MigrateAmendAnnotation(backend, ctx)
	if err != nil {
		return err
	}
	if migrated != nil {
		logging.Get(logging.CategoryHooks).Info("migrated annotation from %s to %s", oldSHA, newSHA)
	}
	return nil
}
