// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stages

import (
	"context"

	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// GenerateDraft writes the full article from the outline. Rerunnable.
func (p *Pipeline) GenerateDraft(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "generate-draft", types.StateOutlineCreated, types.StateDraftGenerated); err != nil {
		return item, err
	}

	text, err := p.gen.Complete(ctx, generate.DraftPrompt(item, p.cfg.TargetWords))
	if err != nil {
		return item, &CollaboratorError{Op: "generating draft", Err: err}
	}

	return advance(item.WithContent(text), types.StateDraftGenerated)
}

// ReviseDraft rewrites the article applying the pending reviewer
// feedback, looping the item back to DRAFT_GENERATED. Rerunnable while
// the item stays in FEEDBACK_RECEIVED.
func (p *Pipeline) ReviseDraft(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "revise-draft", types.StateFeedbackReceived); err != nil {
		return item, err
	}

	text, err := p.gen.Complete(ctx, generate.RevisionPrompt(item, nil))
	if err != nil {
		return item, &CollaboratorError{Op: "revising draft", Err: err}
	}

	return workflow.Transition(item.WithContent(text), types.StateDraftGenerated)
}

// RequestReview places the item at the human review checkpoint. One-shot:
// no external call, and no handler may move the item out again — only an
// approve or feedback decision can.
func (p *Pipeline) RequestReview(item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "request-review", types.StateDraftGenerated); err != nil {
		return item, err
	}
	return workflow.Transition(item, types.StateAwaitingReview)
}
