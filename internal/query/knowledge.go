package query

import (
	"strings"

	"github.com/codenerd/chronicle/internal/schema"
	"github.com/codenerd/chronicle/internal/vcs"
)

// EmptyTreeSHA is the well-known empty-tree object present in every git
// repository. Repository-global knowledge has no commit of its own, so it
// is anchored here instead (spec.md §4.4).
const EmptyTreeSHA = "4b825dc642cb6eb9a060e54bf899d15f13160d28"

// ReadKnowledgeStore reads the repository-global knowledge store, returning
// an empty store if none has been written yet.
func ReadKnowledgeStore(backend vcs.Backend) (schema.KnowledgeStore, error) {
	content, ok, err := backend.NoteRead(EmptyTreeSHA)
	if err != nil {
		return schema.KnowledgeStore{}, err
	}
	if !ok {
		return schema.NewKnowledgeStore(), nil
	}
	store, err := schema.ParseKnowledgeStore([]byte(content))
	if err != nil {
		return schema.KnowledgeStore{}, err
	}
	return *store, nil
}

// WriteKnowledgeStore overwrites the repository-global knowledge store.
func WriteKnowledgeStore(backend vcs.Backend, store schema.KnowledgeStore) error {
	data, err := schema.SerializeKnowledgeStore(&store)
	if err != nil {
		return err
	}
	return backend.NoteWrite(EmptyTreeSHA, string(data))
}

// FilterKnowledgeByScope narrows a knowledge store to entries applicable to
// file: a scope of "*" matches everything, a scope ending in "/" is a
// directory-prefix match, and any other scope matches file itself or any
// file under scope + "/". Anti-patterns
// carry no scope and are always included.
func FilterKnowledgeByScope(store schema.KnowledgeStore, file string) schema.FilteredKnowledge {
	normalizedFile := normalizePath(file)

	var conventions []schema.Convention
	for _, c := range store.Conventions {
		if scopeMatchesKnowledge(c.Scope, normalizedFile) {
			conventions = append(conventions, c)
		}
	}

	var boundaries []schema.ModuleBoundary
	for _, b := range store.Boundaries {
		if scopeMatchesKnowledge(b.Module, normalizedFile) {
			boundaries = append(boundaries, b)
		}
	}

	return schema.FilteredKnowledge{
		Conventions:  conventions,
		Boundaries:   boundaries,
		AntiPatterns: store.AntiPatterns,
	}
}

func scopeMatchesKnowledge(scope, file string) bool {
	if scope == "*" {
		return true
	}
	normalizedScope := normalizePath(scope)
	if strings.HasSuffix(normalizedScope, "/") {
		return strings.HasPrefix(file, normalizedScope)
	}
	return file == normalizedScope || strings.HasPrefix(file, normalizedScope+"/")
}
