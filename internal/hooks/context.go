// Package hooks produces the sidecar files and note migrations that a VCS
// hook driver (out of scope here — see internal/external.HookInstaller)
// would invoke at commit time: pending-context/pending-squash writers and
// the post-rewrite amend migration. Installing the hook scripts themselves
// is a CLI concern; this package is the data-flow side a CLI subcommand
// calls into.
package hooks

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/codenerd/chronicle/internal/annotate"
	"github.com/codenerd/chronicle/internal/chronicleerr"
)

// WritePendingContext persists ctx to gitDir's pending-context sidecar,
// creating the chronicle directory as needed. It is the write half of
// annotate.GatherAuthorContext's read.
func WritePendingContext(gitDir string, ctx annotate.PendingContext) error {
	path := filepath.Join(gitDir, annotate.PendingContextFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return chronicleerr.IoErr("creating chronicle directory", err)
	}
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return chronicleerr.JsonErr("serializing pending context", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return chronicleerr.IoErr("writing pending context", err)
	}
	return nil
}

// DeletePendingContext removes the pending-context sidecar. A missing file
// is not an error.
func DeletePendingContext(gitDir string) error {
	path := filepath.Join(gitDir, annotate.PendingContextFile)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return chronicleerr.IoErr("clearing pending context", err)
	}
	return nil
}
