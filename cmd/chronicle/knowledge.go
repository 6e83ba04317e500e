package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/codenerd/chronicle/internal/query"
	"github.com/codenerd/chronicle/internal/schema"
)

// knowledgeCmd groups the repository-global knowledge store's read, write,
// and scoped-filter operations (spec.md §4.4).
var knowledgeCmd = &cobra.Command{
	Use:   "knowledge",
	Short: "read, write, or filter the repository-global knowledge store",
}

var knowledgeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "print the full knowledge store",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		store, err := query.ReadKnowledgeStore(backend)
		if err != nil {
			return err
		}
		return printJSON(store)
	},
}

var knowledgeFilterCmd = &cobra.Command{
	Use:   "filter <file>",
	Short: "print the knowledge store narrowed to a file's scope",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		store, err := query.ReadKnowledgeStore(backend)
		if err != nil {
			return err
		}
		return printJSON(query.FilterKnowledgeByScope(store, args[0]))
	},
}

// knowledgeSetCmd overwrites the store from a JSON document on stdin,
// matching schema.KnowledgeStore's shape. There is no merge operation: a
// caller wanting to add one entry reads, edits, and rewrites the whole
// store, same as the annotation write pipelines do for a single commit.
var knowledgeSetCmd = &cobra.Command{
	Use:   "set",
	Short: "overwrite the knowledge store from a JSON document on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := newBackend()
		if err != nil {
			return err
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		var store schema.KnowledgeStore
		if err := json.Unmarshal(data, &store); err != nil {
			return fmt.Errorf("stdin: %w", err)
		}
		if store.Schema == "" {
			store.Schema = schema.KnowledgeSchema
		}
		return query.WriteKnowledgeStore(backend, store)
	},
}

func init() {
	knowledgeCmd.AddCommand(knowledgeShowCmd, knowledgeFilterCmd, knowledgeSetCmd)
}
