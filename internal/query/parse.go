package query

import (
	"github.com/codenerd/chronicle/internal/logging"
	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// readAnnotation reads and parses the note for sha, returning ok=false if
// there is no note or it fails to parse. A malformed annotation never fails
// a query — it is logged and skipped, same as every commit with no note at
// all.
func readAnnotation(backend vcs.Backend, sha string) (*schema.Annotation, bool) {
	content, ok, err := backend.NoteRead(sha)
	if err != nil || !ok {
		return nil, false
	}
	ann, err := schema.Parse([]byte(content))
	if err != nil {
		logging.Get(logging.CategoryQuery).Debug("skipping malformed annotation for %s: %v", sha, err)
		return nil, false
	}
	return ann, true
}
