// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/blog-engine/pkg/types"
)

// Research retrieves background passages for the item's topic and stores
// them as research context. Rerunnable. A retrieval failure degrades
// gracefully: the stage logs the failure and advances with whatever
// context the item already has, so drafting proceeds with reduced
// grounding rather than stalling the pipeline.
func (p *Pipeline) Research(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "research", types.StateTopicSelected, types.StateResearchComplete); err != nil {
		return item, err
	}

	passages, err := p.ret.Retrieve(ctx, item.Topic, p.cfg.RetrieveLimit)
	if err != nil {
		p.log.Warn("retrieval failed, proceeding without context",
			"item", item.ID, "topic", item.Topic, "error", err)
	} else if len(passages) == 0 {
		p.log.Info("no passages found for topic", "item", item.ID, "topic", item.Topic)
	} else {
		item = item.WithResearchContext(formatContext(passages))
	}

	return advance(item, types.StateResearchComplete)
}

// formatContext folds ranked passages into a single grounding block with
// source attribution.
func formatContext(passages []types.Passage) string {
	var sb strings.Builder
	for i, p := range passages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if p.Source != "" {
			fmt.Fprintf(&sb, "[%s] ", p.Source)
		}
		sb.WriteString(p.Content)
	}
	return sb.String()
}
