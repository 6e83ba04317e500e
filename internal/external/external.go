// Package external declares the collaborator interfaces the core calls out
// to but does not implement: LLM provider access, the batch-mode agent
// loop, config-file loading, hook-installer shell plumbing, the setup
// wizard, notes sync over a remote, and JSONL export/import. None of these
// have a concrete implementation here (spec.md §1 Non-goals) — cmd/chronicle
// or a future package supplies one; the core depends only on these
// interfaces, following the teacher's own dependency-injection boundary
// idiom (internal/types.LLMClient, internal/types.ShardAgent).
package external

import (
	"context"

	"github.com/codenerd/chronicle/internal/config"
	"github.com/codenerd/chronicle/internal/logging"
	"github.com/codenerd/chronicle/internal/schema"
)

// Provider is an LLM backend. Out of scope: no adapter is implemented here.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// AgentCollaborator is the Backfill pipeline's sole hook into LLM-driven
// annotation (spec.md §4.5.2 step 4, §6 "Agent collaborator"). Given an
// assembled context, it returns the markers, cross-cutting decisions, and
// narrative summary an agent loop would produce. The core never calls an
// LLM directly; it calls this interface.
type AgentCollaborator interface {
	Annotate(ctx context.Context, commitMessage string, diffSummary string) (AgentResult, error)
}

// AgentResult is what an AgentCollaborator run produces.
type AgentResult struct {
	Markers   []schema.CodeMarker
	Decisions []schema.Decision
	Summary   string
}

// ConfigLoader reads a chronicle config file from disk. Out of scope: the
// core accepts a *config.Config constructed directly by its caller.
type ConfigLoader interface {
	Load(path string) (*config.Config, error)
}

// HookInstaller installs the git hooks (prepare-commit-msg, post-commit,
// post-rewrite) that drive pending-context/pending-squash handoff. Out of
// scope: shelling out to install hook scripts is a CLI-layer concern.
type HookInstaller interface {
	Install(gitDir string) error
	Uninstall(gitDir string) error
}

// SetupWizard drives first-run interactive configuration. Out of scope.
type SetupWizard interface {
	Run(ctx context.Context) (*config.Config, error)
}

// NotesSyncer pushes/fetches the notes ref to/from a remote. Out of scope:
// spec.md §1 lists notes-sync over remotes as an external-interface-only
// surface.
type NotesSyncer interface {
	Push(ctx context.Context, remote string) error
	Fetch(ctx context.Context, remote string) error
}

// JSONLExporter/JSONLImporter move the annotation corpus to/from a
// line-delimited JSON archive. Out of scope.
type JSONLExporter interface {
	Export(ctx context.Context, w ByteWriter) error
}

type JSONLImporter interface {
	Import(ctx context.Context, r ByteReader) error
}

// ByteWriter/ByteReader avoid importing io just for two interface method
// signatures that exist solely as markers here.
type ByteWriter interface {
	Write(p []byte) (n int, err error)
}

type ByteReader interface {
	Read(p []byte) (n int, err error)
}

// TUI and WebUI are marker interfaces for the interactive terminal UI and
// web UI surfaces (spec.md §1 Non-goals). Neither is implemented; they
// exist so a future cmd/chronicle subcommand has a named type to wire
// against without the core importing a rendering library.
type TUI interface {
	Run(ctx context.Context) error
}

type WebUI interface {
	ListenAndServe(ctx context.Context, addr string) error
}

// LoggingSink lets an external collaborator share the core's category
// logger rather than rolling its own, matching internal/logging's
// registry-by-category idiom.
func LoggingSink(category logging.Category) *logging.Logger {
	return logging.Get(category)
}
