package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codenerd/chronicle/internal/annotate"
	"github.com/codenerd/chronicle/internal/schema"
)

var (
	liveCommit     string
	liveSummary    string
	liveMotivation string
	liveFollowUp   string
	liveMarkers    string
	liveDecisions  string
)

// annotateCmd runs the live write pipeline (spec.md §4.5.1) against a single
// commit: resolve markers' anchors against that commit's tree, drain any
// staged notes into provenance, and write the resulting annotation.
var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "write a live annotation for a commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}

		input := annotate.LiveInput{
			Commit:  liveCommit,
			Summary: liveSummary,
		}
		if liveMotivation != "" {
			input.Motivation = &liveMotivation
		}
		if liveFollowUp != "" {
			input.FollowUp = &liveFollowUp
		}
		if liveMarkers != "" {
			var markers []schema.CodeMarker
			if err := json.Unmarshal([]byte(liveMarkers), &markers); err != nil {
				return fmt.Errorf("--markers: %w", err)
			}
			input.Markers = markers
		}
		if liveDecisions != "" {
			var decisions []schema.Decision
			if err := json.Unmarshal([]byte(liveDecisions), &decisions); err != nil {
				return fmt.Errorf("--decisions: %w", err)
			}
			input.Decisions = decisions
		}

		staging := annotate.NewStaging(gitDir)
		result, err := annotate.Live(backend, staging, input)
		if err != nil {
			return err
		}

		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		return printJSON(result)
	},
}

// stageCmd manages the pre-commit staging log that a live write later
// drains into an annotation's provenance notes (spec.md §4.5.1).
var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "append to, show, or clear the pending-commit staging log",
}

var stageAddCmd = &cobra.Command{
	Use:   "add <note>",
	Short: "append a note to the staging log",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}
		return annotate.NewStaging(gitDir).Append(args[0])
	},
}

var stageShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the current staging log without clearing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}
		notes, err := annotate.NewStaging(gitDir).Read()
		if err != nil {
			return err
		}
		return printJSON(notes)
	},
}

var stageClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "discard the staging log",
	RunE: func(cmd *cobra.Command, args []string) error {
		gitDir, err := resolveGitDir()
		if err != nil {
			return err
		}
		return annotate.NewStaging(gitDir).Clear()
	},
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	annotateCmd.Flags().StringVar(&liveCommit, "commit", "HEAD", "commit to annotate")
	annotateCmd.Flags().StringVar(&liveSummary, "summary", "", "narrative summary (required)")
	annotateCmd.Flags().StringVar(&liveMotivation, "motivation", "", "why this change was made")
	annotateCmd.Flags().StringVar(&liveFollowUp, "follow-up", "", "known follow-up work")
	annotateCmd.Flags().StringVar(&liveMarkers, "markers", "", "JSON array of schema.CodeMarker")
	annotateCmd.Flags().StringVar(&liveDecisions, "decisions", "", "JSON array of schema.Decision")
	annotateCmd.MarkFlagRequired("summary")

	stageCmd.AddCommand(stageAddCmd, stageShowCmd, stageClearCmd)
}
