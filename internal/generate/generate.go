// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate calls a Generative AI API to produce outlines, drafts,
// and revisions for content items. The workflow core treats it as an
// opaque generate(prompt) → text collaborator that may fail or be slow.
// See docs/ARCHITECTURE.md § Generation.
package generate

import "context"

// Prompt is the message set sent to the model.
type Prompt struct {
	// System frames the model's role and output constraints.
	System string

	// User is the task-specific request.
	User string

	// History carries prior reviewer feedback, oldest first.
	History []Message
}

// Message is one prior conversational turn.
type Message struct {
	Role    string
	Content string
}

// Client abstracts the model client so stages and tests can swap
// implementations.
type Client interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}
