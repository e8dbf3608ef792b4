// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/knowledge"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage the research notes index (ingest, search, export)",
	Long: `Notes maintains the local SQLite index over the research notes
directory. The research stage of the pipeline queries this index to ground
drafts; use these subcommands to (re)build it and inspect what it returns.`,
}

var notesIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Index the notes directory into the retrieval store",
	Long: `Ingest scans the notes directory for Markdown and plain-text files,
splits them into passages, and indexes them with FTS5. Unchanged files are
skipped on subsequent runs.`,
	RunE: runNotesIngest,
}

var notesSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the retrieval store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNotesSearch,
}

var notesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a YAML snapshot of the indexed passages",
	RunE:  runNotesExport,
}

func init() {
	notesCmd.PersistentFlags().String("notes-dir", "", "notes directory (default from config)")
	notesCmd.PersistentFlags().String("index-dir", "", "index directory (default from config)")
	notesSearchCmd.Flags().Int("limit", 0, "maximum results (default from config)")

	notesCmd.AddCommand(notesIngestCmd)
	notesCmd.AddCommand(notesSearchCmd)
	notesCmd.AddCommand(notesExportCmd)
	rootCmd.AddCommand(notesCmd)
}

func retrievalConfig(cmd *cobra.Command) types.RetrievalConfig {
	cfg := pipelineConfig().Retrieval
	if dir, _ := cmd.Flags().GetString("notes-dir"); dir != "" {
		cfg.NotesDir = dir
	}
	if dir, _ := cmd.Flags().GetString("index-dir"); dir != "" {
		cfg.IndexDir = dir
	}
	return cfg
}

func runNotesIngest(cmd *cobra.Command, args []string) error {
	store, err := knowledge.NewStore(retrievalConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d note(s) failed indexing", summary.Failed)
	}
	return nil
}

func runNotesSearch(cmd *cobra.Command, args []string) error {
	cfg := retrievalConfig(cmd)
	store, err := knowledge.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.MaxResults
	}

	passages, err := store.Retrieve(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if len(passages) == 0 {
		fmt.Println("No results.")
		return nil
	}
	for i, p := range passages {
		fmt.Printf("%d. [%s] (%.3f)\n%s\n\n", i+1, p.Source, p.Score, p.Content)
	}
	return nil
}

func runNotesExport(cmd *cobra.Command, args []string) error {
	store, err := knowledge.NewStore(retrievalConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ExportYAML(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Export written.")
	return nil
}
