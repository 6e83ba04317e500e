// Package main implements the chronicle CLI - a thin command-line surface
// over the annotation core (internal/annotate, internal/query,
// internal/hooks, internal/vcs). The core never shells out or prints; this
// package is the only place that does.
//
// # File Index
//
// Entry Point & Global State:
//   - main.go     - Entry point, rootCmd, global flags, backend/config wiring
//   - annotate.go - annotateCmd (live write), stageCmd (add/show/clear staging)
//   - query.go    - contractsCmd, decisionsCmd, dependentsCmd, historyCmd,
//                   summaryCmd, stalenessCmd, stalenessScanCmd, lookupCmd
//   - knowledge.go - knowledgeShowCmd, knowledgeFilterCmd, knowledgeSetCmd
//   - hooks.go    - prepareCommitMsgCmd, postRewriteCmd, pendingContextCmd
//   - outofscope.go - stub commands for surfaces this core deliberately
//     does not implement (agent loop, hook install, config-file load,
//     notes sync, JSONL export/import, TUI, web UI)
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/codenerd/chronicle/internal/config"
	"github.com/codenerd/chronicle/internal/logging"
	"github.com/codenerd/chronicle/internal/vcs"
)

var (
	// Global flags
	verbose   bool
	workspace string
	notesRef  string

	// Logger
	logger *zap.Logger

	// cfg is the effective config for this invocation. Loading one from a
	// file is out of scope (internal/external.ConfigLoader); every run
	// starts from config.DefaultConfig and applies flag overrides.
	cfg *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "chronicle",
	Short: "chronicle - durable, machine-readable context attached to commits",
	Long: `chronicle attaches narrative, contracts, hazards, dependencies, and
decisions to git commits as content-addressed notes, so that context an
author had in their head at commit time survives for later readers and
agents.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg = config.DefaultConfig()
		if notesRef != "" {
			cfg.NotesRef = notesRef
		}
		cfg.Logging.DebugMode = verbose

		gitDir, err := resolveGitDir()
		if err != nil {
			// Not every subcommand needs a repository (config-init and the
			// unimplemented stubs do not), so keep this non-fatal the way the
			// teacher's logging init is.
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			return nil
		}
		if err := logging.Initialize(gitDir, cfg.Logging.ToLoggingSettings()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize file logging: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// resolveWorkspace returns the absolute repository root to operate on,
// honoring --workspace and falling back to the current directory.
func resolveWorkspace() (string, error) {
	ws := workspace
	if ws == "" {
		return os.Getwd()
	}
	return filepath.Abs(ws)
}

// resolveGitDir returns <workspace>/.git, the root chronicle uses for
// sidecar files (staging log, pending context, pending squash, logs).
func resolveGitDir() (string, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return "", err
	}
	return filepath.Join(ws, ".git"), nil
}

// newBackend constructs the git-CLI-backed vcs.Backend for the resolved
// workspace, honoring --notes-ref.
func newBackend() (*vcs.CliOps, error) {
	ws, err := resolveWorkspace()
	if err != nil {
		return nil, err
	}
	ops := vcs.NewCliOps(ws)
	if notesRef != "" {
		ops = ops.WithNotesRef(notesRef)
	}
	return ops, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "repository root (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&notesRef, "notes-ref", "", "override the git notes ref (default: refs/notes/chronicle)")

	rootCmd.AddCommand(
		annotateCmd,
		stageCmd,
		contractsCmd,
		decisionsCmd,
		dependentsCmd,
		historyCmd,
		summaryCmd,
		stalenessCmd,
		stalenessScanCmd,
		lookupCmd,
		knowledgeCmd,
		prepareCommitMsgCmd,
		postRewriteCmd,
		pendingContextCmd,
		outOfScopeCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
