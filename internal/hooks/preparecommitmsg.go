package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/codenerd/chronicle/internal/annotate"
	"github.com/codenerd/chronicle/internal/chronicleerr"
	"github.com/codenerd/chronicle/internal/logging"
)

// squashSourcesEnvVar lets a wrapping tool declare squash sources directly,
// bypassing SQUASH_MSG parsing entirely.
const squashSourcesEnvVar = "CHRONICLE_SQUASH_SOURCES"

// HandlePrepareCommitMsg detects a squash operation in progress and, if
// found, writes a PendingSquash sidecar for the post-commit side to pick up
// and route to squash synthesis. commitSource is git's prepare-commit-msg
// second argument ("message", "template", "squash", "commit", ...); any
// value other than "squash" still defers to the other detection signals.
func HandlePrepareCommitMsg(gitDir string, commitSource *string) error {
	sourceCommits, detected := detectSquash(commitSource, gitDir)
	if !detected {
		return nil
	}
	if len(sourceCommits) == 0 {
		logging.Get(logging.CategoryHooks).Debug("squash detected but no source commits resolved")
		return nil
	}

	pending := annotate.PendingSquash{
		SourceCommits: sourceCommits,
		Timestamp:     time.Now().UTC(),
	}
	store := annotate.NewPendingSquashStore(gitDir)
	if err := store.Write(pending); err != nil {
		return err
	}
	logging.Get(logging.CategoryHooks).Info("wrote pending squash with %d source commits", len(sourceCommits))
	return nil
}

// detectSquash tries, in order: the hook's own commit_source argument, the
// presence of .git/SQUASH_MSG, and the CHRONICLE_SQUASH_SOURCES env var. The
// bool return distinguishes "not a squash" from "a squash with zero
// resolved sources".
func detectSquash(commitSource *string, gitDir string) ([]string, bool) {
	if commitSource != nil && *commitSource == "squash" {
		shas, ok := resolveSquashSourcesFromSquashMsg(gitDir)
		return shas, ok
	}

	squashMsgPath := filepath.Join(gitDir, "SQUASH_MSG")
	if _, err := os.Stat(squashMsgPath); err == nil {
		shas, ok := resolveSquashSourcesFromSquashMsg(gitDir)
		return shas, ok
	}

	if sources := os.Getenv(squashSourcesEnvVar); sources != "" {
		return parseSquashSourcesEnv(sources), true
	}

	return nil, false
}

// resolveSquashSourcesFromSquashMsg reads .git/SQUASH_MSG, if present, and
// extracts the source SHAs git merge --squash recorded in it. The bool
// return is false when SQUASH_MSG does not exist or cannot be read (the
// read error is logged).
func resolveSquashSourcesFromSquashMsg(gitDir string) ([]string, bool) {
	path := filepath.Join(gitDir, "SQUASH_MSG")
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false
		}
		logging.Get(logging.CategoryHooks).Warn("reading SQUASH_MSG: %v", chronicleerr.IoErr("reading SQUASH_MSG", err))
		return nil, false
	}
	return parseSquashMsgCommits(string(content)), true
}

// parseSquashMsgCommits extracts commit SHAs from git's SQUASH_MSG, whose
// source-commit sections each open with a line of the form "commit <sha>".
func parseSquashMsgCommits(content string) []string {
	var shas []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, ok := strings.CutPrefix(trimmed, "commit ")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		sha := fields[0]
		if len(sha) >= 7 && isHex(sha) {
			shas = append(shas, sha)
		}
	}
	return shas
}

// parseSquashSourcesEnv splits a comma-separated SHA list, trimming
// whitespace and dropping empty entries.
func parseSquashSourcesEnv(sources string) []string {
	var shas []string
	for _, part := range strings.Split(sources, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			shas = append(shas, trimmed)
		}
	}
	return shas
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
