// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stages implements the pipeline stage handlers. Each handler
// takes a content item value, performs at most one external-collaborator
// call, and returns a new item advanced to the next workflow state. A
// handler never mutates its input and never touches the registry; the
// orchestrator owns storage.
// See docs/ARCHITECTURE.md § Stages.
package stages

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pdiddy/blog-engine/internal/blogger"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// Retriever is the knowledge retrieval collaborator. Empty results are a
// valid answer; an error means the call itself failed.
type Retriever interface {
	Retrieve(ctx context.Context, query string, limit int) ([]types.Passage, error)
}

// Publisher is the blog publishing backend collaborator.
type Publisher interface {
	CreatePost(ctx context.Context, req blogger.CreatePostRequest) (blogger.Post, error)
	UpdatePost(ctx context.Context, req blogger.UpdatePostRequest) (blogger.Post, error)
	PublishPost(ctx context.Context, blogID, postID string) (blogger.Post, error)
	UploadImage(ctx context.Context, localPath string) (string, error)
}

// CollaboratorError wraps a failed external call so transport layers can
// classify it without matching error strings.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *CollaboratorError) Unwrap() error { return e.Err }

// Config holds stage tuning knobs.
type Config struct {
	// TargetWords is the article length hint for draft generation.
	TargetWords int

	// RetrieveLimit is the number of passages requested by the research
	// stage. Zero uses the retriever's default.
	RetrieveLimit int
}

// Pipeline holds the collaborators shared by all stage handlers.
type Pipeline struct {
	gen generate.Client
	ret Retriever
	pub Publisher
	cfg Config
	log *slog.Logger
}

// NewPipeline wires the collaborators into a stage handler set.
func NewPipeline(gen generate.Client, ret Retriever, pub Publisher, cfg Config, log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{gen: gen, ret: ret, pub: pub, cfg: cfg, log: log}
}

// advance transitions the item toward target. Rerunnable handlers call it
// with an item that may already sit at the target state (a re-run that
// recomputes a field), in which case the state is kept as-is.
func advance(item types.ContentItem, target types.WorkflowState) (types.ContentItem, error) {
	if item.State == target {
		return item, nil
	}
	return workflow.Transition(item, target)
}

// requireState rejects a handler invocation from a state it does not
// serve, before any external call is made.
func requireState(item types.ContentItem, op string, states ...types.WorkflowState) error {
	for _, s := range states {
		if item.State == s {
			return nil
		}
	}
	return fmt.Errorf("%w: %s cannot run from %s", workflow.ErrIllegalTransition, op, item.State)
}
