package main

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/codenerd/chronicle/internal/query"
)

var (
	qFile       string
	qAnchor     string
	qLimit      int
	qMaxResults int
	qScanLimit  int
)

var contractsCmd = &cobra.Command{
	Use:   "contracts",
	Short: "list surviving Contract markers for a file/anchor",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		out, err := query.Contracts(backend, query.ContractsQuery{File: qFile, Anchor: qAnchor})
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "list surviving decisions in scope for a file",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		out, err := query.Decisions(backend, query.DecisionsQuery{File: qFile})
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var dependentsCmd = &cobra.Command{
	Use:   "dependents",
	Short: "find commits that declared a dependency on a file/anchor",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		maxResults, scanLimit := qMaxResults, qScanLimit
		if maxResults == 0 {
			maxResults = cfg.Query.MaxResults
		}
		if scanLimit == 0 {
			scanLimit = cfg.Query.ScanLimit
		}
		out, err := query.Dependents(backend, query.DepsQuery{
			File:       qFile,
			Anchor:     qAnchor,
			MaxResults: maxResults,
			ScanLimit:  scanLimit,
		})
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "show a file/anchor's chronological annotation timeline",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		out, err := query.History(backend, query.HistoryQuery{File: qFile, Anchor: qAnchor, Limit: qLimit})
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "show the most recent state for each (file, anchor) group",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		out, err := query.Summary(backend, query.SummaryQuery{File: qFile, Anchor: qAnchor})
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

var stalenessCmd = &cobra.Command{
	Use:   "staleness <file> <annotation-commit>",
	Short: "check whether an annotation has gone stale relative to a file's current history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		var threshold int
		if cmd.Flags().Changed("threshold") {
			threshold, err = strconv.Atoi(cmd.Flag("threshold").Value.String())
			if err != nil {
				return err
			}
		}
		if threshold <= 0 {
			threshold = cfg.Staleness.Threshold
		}
		var (
			info StalenessResult
			ok   bool
		)
		if threshold > 0 {
			info.Info, ok, err = query.StalenessWithThreshold(backend, args[0], args[1], threshold)
		} else {
			info.Info, ok, err = query.Staleness(backend, args[0], args[1])
		}
		if err != nil {
			return err
		}
		info.Found = ok
		info.fillSummary()
		return printJSON(info)
	},
}

// StalenessResult wraps query.StalenessInfo with the found flag so a caller
// can distinguish "not stale" from "no history at all" (spec.md §4.6.6),
// plus a human-readable rendering of the commit count for terminal output.
type StalenessResult struct {
	Info    query.StalenessInfo `json:"info"`
	Found   bool                `json:"found"`
	Summary string              `json:"summary,omitempty"`
}

func (r *StalenessResult) fillSummary() {
	if !r.Found {
		return
	}
	r.Summary = humanize.Comma(int64(r.Info.CommitsSince)) + " commits since annotation"
}

var stalenessScanLimit int

var stalenessScanCmd = &cobra.Command{
	Use:   "staleness-scan",
	Short: "report staleness across every annotated commit in the repo",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		report, err := query.ScanStaleness(backend, stalenessScanLimit)
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <file> [anchor]",
	Short: "assemble the combined contracts/decisions/history/staleness/knowledge view for a file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		anchor := ""
		if len(args) > 1 {
			anchor = args[1]
		}
		out, err := query.Lookup(backend, args[0], anchor)
		if err != nil {
			return err
		}
		return printJSON(out)
	},
}

func init() {
	for _, c := range []*cobra.Command{contractsCmd, decisionsCmd, dependentsCmd, historyCmd, summaryCmd} {
		c.Flags().StringVar(&qFile, "file", "", "file path to scope the query to")
	}
	for _, c := range []*cobra.Command{contractsCmd, dependentsCmd, historyCmd, summaryCmd} {
		c.Flags().StringVar(&qAnchor, "anchor", "", "AST anchor to scope the query to")
	}
	historyCmd.Flags().IntVar(&qLimit, "limit", 0, "maximum number of timeline entries (0 = unbounded)")
	dependentsCmd.Flags().IntVar(&qMaxResults, "max-results", 0, "maximum number of dependents (0 = default)")
	dependentsCmd.Flags().IntVar(&qScanLimit, "scan-limit", 0, "maximum commits to scan (0 = default)")
	stalenessCmd.Flags().Int("threshold", 0, "commits-since-annotation threshold (0 = config default)")
	stalenessScanCmd.Flags().IntVar(&stalenessScanLimit, "limit", 0, "maximum commits to scan (0 = unbounded)")
}
