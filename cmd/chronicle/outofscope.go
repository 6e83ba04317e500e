package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// outOfScopeCmd groups the surfaces named in internal/external but never
// implemented here: an LLM-driven batch agent loop, hook-script
// installation, config-file loading, an interactive setup wizard,
// notes-sync over a remote, and JSONL export/import. Each subcommand
// documents which external interface a future implementation would satisfy
// rather than silently doing nothing.
var outOfScopeCmd = &cobra.Command{
	Use:    "unimplemented",
	Short:  "surfaces intentionally left unimplemented by this core",
	Hidden: true,
}

func notImplemented(surface, iface string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("%s is not implemented by this core; it is a named extension point (%s)", surface, iface)
	}
}

var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "agent-driven batch annotation of historical commits (needs an external.AgentCollaborator)",
	RunE:  notImplemented("backfill", "internal/external.AgentCollaborator"),
}

var hookInstallCmd = &cobra.Command{
	Use:   "hook-install",
	Short: "install git hook scripts (needs an external.HookInstaller)",
	RunE:  notImplemented("hook-install", "internal/external.HookInstaller"),
}

var configLoadCmd = &cobra.Command{
	Use:   "config-load <path>",
	Short: "load configuration from a file (needs an external.ConfigLoader)",
	Args:  cobra.ExactArgs(1),
	RunE:  notImplemented("config-load", "internal/external.ConfigLoader"),
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "interactive first-run configuration wizard (needs an external.SetupWizard)",
	RunE:  notImplemented("setup", "internal/external.SetupWizard"),
}

var notesSyncCmd = &cobra.Command{
	Use:   "notes-sync",
	Short: "push/fetch the notes ref to/from a remote (needs an external.NotesSyncer)",
	RunE:  notImplemented("notes-sync", "internal/external.NotesSyncer"),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "export the annotation corpus as JSONL (needs an external.JSONLExporter)",
	RunE:  notImplemented("export", "internal/external.JSONLExporter"),
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "import annotations from a JSONL archive (needs an external.JSONLImporter)",
	RunE:  notImplemented("import", "internal/external.JSONLImporter"),
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "interactive terminal browser (needs an external.TUI)",
	RunE:  notImplemented("tui", "internal/external.TUI"),
}

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "web UI server (needs an external.WebUI)",
	RunE:  notImplemented("web", "internal/external.WebUI"),
}

func init() {
	outOfScopeCmd.AddCommand(
		backfillCmd,
		hookInstallCmd,
		configLoadCmd,
		setupCmd,
		notesSyncCmd,
		exportCmd,
		importCmd,
		tuiCmd,
		webCmd,
	)
}
