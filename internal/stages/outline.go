// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stages

import (
	"context"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Outline generates the article outline from the topic and research
// context. Rerunnable. A generation failure propagates with the item
// state unchanged so the caller can retry.
func (p *Pipeline) Outline(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "outline", types.StateResearchComplete, types.StateOutlineCreated); err != nil {
		return item, err
	}

	text, err := p.gen.Complete(ctx, generate.OutlinePrompt(item))
	if err != nil {
		return item, &CollaboratorError{Op: "generating outline", Err: err}
	}

	return advance(item.WithOutline(text), types.StateOutlineCreated)
}
