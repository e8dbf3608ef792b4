// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package orchestrator

import (
	"fmt"
	"strings"

	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Summarize renders a one-item human-readable status report. Pure
// presentation over the state machine and plan table; no side effects.
func Summarize(item types.ContentItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %q  [%s]\n", item.ID, item.Title, item.State)
	fmt.Fprintf(&sb, "  topic: %s\n", item.Topic)
	if item.BlogID != "" {
		fmt.Fprintf(&sb, "  blog: %s", item.BlogID)
		if item.PostID != "" {
			fmt.Fprintf(&sb, "  post: %s", item.PostID)
		}
		sb.WriteString("\n")
	}
	if item.RevisionCount > 0 {
		fmt.Fprintf(&sb, "  revisions: %d\n", item.RevisionCount)
	}

	switch {
	case workflow.Terminal(item.State):
		sb.WriteString("  done: published\n")
	case item.State == types.StateAwaitingReview:
		sb.WriteString("  waiting: human review (approve or feedback)\n")
	default:
		fmt.Fprintf(&sb, "  next: %s\n", workflow.NextAction(item.State))
	}
	return sb.String()
}
