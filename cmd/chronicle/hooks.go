package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codenerd/chronicle/internal/annotate"
	"github.com/codenerd/chronicle/internal/hooks"
)

// prepareCommitMsgCmd is what a repository's prepare-commit-msg hook would
// invoke (installing that hook script is out of scope, see outofscope.go's
// hookInstallCmd). It reads git's second hook argument and writes a pending
// squash sidecar when a squash is detected.
var prepareCommitMsgCmd = &cobra.Command{
	Use:   "prepare-commit-msg [source]",
	Short: "detect an in-progress squash and stage its source commits",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}
		var source *string
		if len(args) == 1 {
			source = &args[0]
		}
		return hooks.HandlePrepareCommitMsg(gitDir, source)
	},
}

// postRewriteCmd is what a repository's post-rewrite hook would invoke. It
// reads "<old-sha> <new-sha>" pairs from stdin and migrates any existing
// annotation from old to new.
var postRewriteCmd = &cobra.Command{
	Use:   "post-rewrite <amend|rebase>",
	Short: "migrate annotations across a commit rewrite",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		mappings := hooks.ParseRewriteMappings(string(data))
		return hooks.HandlePostRewrite(backend, args[0], mappings)
	},
}

var (
	pendingTask         string
	pendingReasoning    string
	pendingDependencies string
	pendingTags         []string
	pendingDelete       bool
)

// pendingContextCmd writes or clears the author-context sidecar that
// annotate.GatherAuthorContext reads back in when Backfill builds a
// commit's context, the handoff an editor integration or commit-template
// prompt would drive.
var pendingContextCmd = &cobra.Command{
	Use:   "pending-context",
	Short: "write or delete the pending author-context sidecar",
	RunE: func(cmd *cobra.Command, args []string) error {
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}
		if pendingDelete {
			return hooks.DeletePendingContext(gitDir)
		}
		ctx := annotate.PendingContext{Tags: pendingTags}
		if pendingTask != "" {
			ctx.Task = &pendingTask
		}
		if pendingReasoning != "" {
			ctx.Reasoning = &pendingReasoning
		}
		if pendingDependencies != "" {
			ctx.Dependencies = &pendingDependencies
		}
		return hooks.WritePendingContext(gitDir, ctx)
	},
}

func init() {
	pendingContextCmd.Flags().StringVar(&pendingTask, "task", "", "the task being worked on")
	pendingContextCmd.Flags().StringVar(&pendingReasoning, "reasoning", "", "reasoning behind the change")
	pendingContextCmd.Flags().StringVar(&pendingDependencies, "dependencies", "", "known dependencies introduced")
	pendingContextCmd.Flags().StringSliceVar(&pendingTags, "tags", nil, "free-form tags")
	pendingContextCmd.Flags().BoolVar(&pendingDelete, "delete", false, "delete the pending context instead of writing it")
}
