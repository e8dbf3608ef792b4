// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/orchestrator"
	"github.com/pdiddy/blog-engine/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Drive one post through the pipeline interactively",
	Long: `Run starts a content item for the given topic and advances it
automatically until the draft reaches the review checkpoint. The draft is
printed and the command waits for a decision on stdin:

  approve          accept the draft and continue to publishing
  feedback <text>  request a revision (the pipeline redrafts and re-asks)
  quit             stop; the item is abandoned

After approval the pipeline uploads images, creates the remote post, and
publishes it. Use --mock to exercise the pipeline without an AI API key.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().String("title", "", "post title (defaults to the topic)")
	runCmd.Flags().String("blog", "", "target blog ID (defaults to publisher.default_blog_id)")
	runCmd.Flags().String("instructions", "", "free-text authoring directions")
	runCmd.Flags().StringSlice("label", nil, "post label (repeatable)")
	runCmd.Flags().Bool("mock", false, "use the offline mock generator")
	runCmd.Flags().String("export", "", "write a YAML snapshot of the item to this file when done")
	runCmd.Flags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	mock, _ := cmd.Flags().GetBool("mock")
	verbose, _ := cmd.Flags().GetBool("verbose")
	title, _ := cmd.Flags().GetString("title")
	blogID, _ := cmd.Flags().GetString("blog")
	instructions, _ := cmd.Flags().GetString("instructions")
	labels, _ := cmd.Flags().GetStringSlice("label")
	exportPath, _ := cmd.Flags().GetString("export")

	log := newLogger(verbose)
	engine, store, err := newEngine(pipelineConfig(), mock, log)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	item, err := engine.Start(orchestrator.StartRequest{
		Topic:        strings.Join(args, " "),
		Title:        title,
		BlogID:       blogID,
		Instructions: instructions,
		Labels:       labels,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Started %s (%s)\n", item.ID, item.Topic)

	reader := bufio.NewReader(os.Stdin)
	for {
		item, err = engine.Run(ctx, item.ID)
		if err != nil {
			return err
		}
		if workflow.Terminal(item.State) {
			fmt.Printf("\nPublished. post=%s blog=%s\n", item.PostID, item.BlogID)
			return exportSnapshot(engine, exportPath)
		}

		// At the review checkpoint: show the draft and ask.
		fmt.Printf("\n--- Draft (revision %d) ---\n%s\n--- end of draft ---\n", item.RevisionCount, item.Content)
		decision, err := readDecision(reader)
		if err != nil {
			return err
		}

		switch {
		case decision == "approve":
			if item, err = engine.Approve(item.ID); err != nil {
				return err
			}
		case decision == "quit":
			fmt.Println("Abandoned.")
			return exportSnapshot(engine, exportPath)
		case strings.HasPrefix(decision, "feedback "):
			text := strings.TrimSpace(strings.TrimPrefix(decision, "feedback "))
			item, err = engine.SubmitFeedback(item.ID, text)
			if errors.Is(err, workflow.ErrRevisionBudgetExhausted) {
				fmt.Println("Revision budget exhausted: approve or quit.")
				continue
			}
			if err != nil {
				return err
			}
		default:
			fmt.Println(`Enter "approve", "feedback <text>", or "quit".`)
		}
	}
}

// exportSnapshot writes the engine's item snapshot to path, or does
// nothing when no path was given.
func exportSnapshot(engine *orchestrator.Engine, path string) error {
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	if err := engine.ExportYAML(f); err != nil {
		return fmt.Errorf("exporting items: %w", err)
	}
	fmt.Printf("Snapshot written to %s\n", path)
	return nil
}

func readDecision(reader *bufio.Reader) (string, error) {
	fmt.Print("\n[approve | feedback <text> | quit] > ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading decision: %w", err)
	}
	return strings.TrimSpace(line), nil
}
