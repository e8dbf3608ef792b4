// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package orchestrator is the facade tying the workflow core, the stage
// handlers, and the item registry together. Callers (the CLI and the
// HTTP server) go through the Engine; nothing else touches the registry.
// See docs/ARCHITECTURE.md § Orchestration.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/internal/stages"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// ErrBusy reports that another Advance or Run call is already driving the
// item. Stage handlers run outside the registry lock, so without this
// guard two concurrent advances of one item would race last-writer-wins.
var ErrBusy = errors.New("item is already being advanced")

// StartRequest carries the inputs for creating a new content item.
type StartRequest struct {
	// Topic is the subject to write about. Required.
	Topic string

	// Title overrides the post title. Empty defaults to Topic.
	Title string

	// BlogID targets a specific blog. Empty uses the configured default.
	BlogID string

	// Instructions are optional free-text authoring directions.
	Instructions string

	// SessionID, when set, binds the conversation session to the new item
	// so later requests can omit the item id.
	SessionID string

	// Labels become the post tags.
	Labels []string
}

// Status describes an item together with what should happen to it next.
type Status struct {
	Item              types.ContentItem `json:"item" yaml:"item"`
	RecommendedAction workflow.Action   `json:"recommended_action" yaml:"recommended_action"`
	AwaitingHuman     bool              `json:"awaiting_human" yaml:"awaiting_human"`
	Complete          bool              `json:"complete" yaml:"complete"`
}

// Engine drives content items through the pipeline.
type Engine struct {
	reg    *workflow.Registry
	pipe   *stages.Pipeline
	policy workflow.ReviewPolicy
	blogID string
	log    *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// New builds an engine around a fresh registry.
func New(pipe *stages.Pipeline, wf types.WorkflowConfig, pub types.PublisherConfig, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		reg:      workflow.NewRegistry(),
		pipe:     pipe,
		policy:   workflow.ReviewPolicy{MaxRevisions: wf.MaxRevisions},
		blogID:   pub.DefaultBlogID,
		log:      log,
		inflight: make(map[string]struct{}),
	}
}

// Start creates a new item in TOPIC_SELECTED and registers it.
func (e *Engine) Start(req StartRequest) (types.ContentItem, error) {
	if req.Topic == "" {
		return types.ContentItem{}, fmt.Errorf("%w: start needs a topic", workflow.ErrMissingPrecondition)
	}

	item := types.NewContentItem(uuid.NewString(), req.Topic)
	if req.Title != "" {
		item.Title = req.Title
	}
	item.BlogID = req.BlogID
	if item.BlogID == "" {
		item.BlogID = e.blogID
	}
	item.Instructions = req.Instructions
	item.Labels = req.Labels

	e.reg.Put(item)
	e.reg.Bind(req.SessionID, item.ID)
	e.log.Info("workflow started", "item", item.ID, "topic", item.Topic, "blog", item.BlogID)
	return item, nil
}

// Get returns the current value of an item.
func (e *Engine) Get(id string) (types.ContentItem, error) {
	item, ok := e.reg.Get(id)
	if !ok {
		return types.ContentItem{}, fmt.Errorf("%w: item %s", workflow.ErrNotFound, id)
	}
	return item, nil
}

// Update replaces an existing item's value. The item must already be
// registered; Update never creates.
func (e *Engine) Update(item types.ContentItem) error {
	if _, ok := e.reg.Get(item.ID); !ok {
		return fmt.Errorf("%w: item %s", workflow.ErrNotFound, item.ID)
	}
	e.reg.Put(item)
	return nil
}

// Delete removes an item and any session bindings pointing at it.
func (e *Engine) Delete(id string) error {
	if !e.reg.Delete(id) {
		return fmt.Errorf("%w: item %s", workflow.ErrNotFound, id)
	}
	return nil
}

// ListAll returns a snapshot of every registered item.
func (e *Engine) ListAll() []types.ContentItem { return e.reg.List() }

// ListByState returns a snapshot of the items currently in state.
func (e *Engine) ListByState(state types.WorkflowState) []types.ContentItem {
	return e.reg.ListByState(state)
}

// Resolve maps a session id to its bound item.
func (e *Engine) Resolve(sessionID string) (types.ContentItem, error) {
	id, ok := e.reg.Resolve(sessionID)
	if !ok {
		return types.ContentItem{}, fmt.Errorf("%w: no item bound to session %s", workflow.ErrNotFound, sessionID)
	}
	return e.Get(id)
}

// Approve records a human approval at the review checkpoint.
func (e *Engine) Approve(id string) (types.ContentItem, error) {
	item, err := e.Get(id)
	if err != nil {
		return types.ContentItem{}, err
	}
	approved, err := e.policy.Approve(item)
	if err != nil {
		return item, err
	}
	e.reg.Put(approved)
	e.log.Info("draft approved", "item", id)
	return approved, nil
}

// SubmitFeedback records reviewer feedback, spending one revision.
func (e *Engine) SubmitFeedback(id, feedback string) (types.ContentItem, error) {
	item, err := e.Get(id)
	if err != nil {
		return types.ContentItem{}, err
	}
	updated, err := e.policy.SubmitFeedback(item, feedback)
	if err != nil {
		return item, err
	}
	e.reg.Put(updated)
	e.log.Info("feedback recorded", "item", id, "revision", updated.RevisionCount)
	return updated, nil
}

// Recommend returns the next action for an item without running it.
func (e *Engine) Recommend(id string) (workflow.Action, error) {
	item, err := e.Get(id)
	if err != nil {
		return "", err
	}
	return workflow.NextAction(item.State), nil
}

// StatusOf reports the item together with its recommendation flags.
func (e *Engine) StatusOf(id string) (Status, error) {
	item, err := e.Get(id)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Item:              item,
		RecommendedAction: workflow.NextAction(item.State),
		AwaitingHuman:     item.State == types.StateAwaitingReview,
		Complete:          workflow.Terminal(item.State),
	}, nil
}

// StatusSummary counts registered items per workflow state.
func (e *Engine) StatusSummary() map[types.WorkflowState]int {
	summary := make(map[types.WorkflowState]int)
	for _, item := range e.reg.List() {
		summary[item.State]++
	}
	return summary
}

// Advance runs the recommended stage handler for the item exactly once
// and stores the result. It refuses to run at the review checkpoint or
// the terminal state, and refuses a second concurrent advance of the
// same item.
func (e *Engine) Advance(ctx context.Context, id string) (types.ContentItem, error) {
	if err := e.acquire(id); err != nil {
		return types.ContentItem{}, err
	}
	defer e.release(id)
	return e.advanceLocked(ctx, id)
}

// Run advances the item until it reaches the review checkpoint, the
// terminal state, or a stage failure.
func (e *Engine) Run(ctx context.Context, id string) (types.ContentItem, error) {
	if err := e.acquire(id); err != nil {
		return types.ContentItem{}, err
	}
	defer e.release(id)

	item, err := e.Get(id)
	if err != nil {
		return types.ContentItem{}, err
	}
	for workflow.Automatic(item.State) {
		if err := ctx.Err(); err != nil {
			return item, err
		}
		item, err = e.advanceLocked(ctx, id)
		if err != nil {
			return item, err
		}
	}
	return item, nil
}

func (e *Engine) advanceLocked(ctx context.Context, id string) (types.ContentItem, error) {
	item, err := e.Get(id)
	if err != nil {
		return types.ContentItem{}, err
	}

	action := workflow.NextAction(item.State)
	var next types.ContentItem
	switch action {
	case workflow.ActionResearch:
		next, err = e.pipe.Research(ctx, item)
	case workflow.ActionOutline:
		next, err = e.pipe.Outline(ctx, item)
	case workflow.ActionGenerateDraft:
		next, err = e.pipe.GenerateDraft(ctx, item)
	case workflow.ActionRequestReview:
		next, err = e.pipe.RequestReview(item)
	case workflow.ActionReviseDraft:
		next, err = e.pipe.ReviseDraft(ctx, item)
	case workflow.ActionAddImages:
		next, err = e.pipe.AddImages(ctx, item)
	case workflow.ActionCreatePost:
		next, err = e.pipe.CreatePost(ctx, item)
	case workflow.ActionPublishPost:
		next, err = e.pipe.Publish(ctx, item)
	case workflow.ActionWaitForHuman:
		return item, fmt.Errorf("%w: item %s is awaiting human review", workflow.ErrIllegalTransition, id)
	case workflow.ActionComplete:
		return item, fmt.Errorf("%w: item %s is already published", workflow.ErrIllegalTransition, id)
	default:
		return item, fmt.Errorf("%w: no action for state %s", workflow.ErrIllegalTransition, item.State)
	}
	if err != nil {
		e.log.Warn("stage failed", "item", id, "action", action, "error", err)
		return item, err
	}

	e.reg.Put(next)
	e.log.Info("stage complete", "item", id, "action", action, "state", next.State)
	return next, nil
}

// PostEdit carries the optional fields of a post update. Zero-value
// fields leave the item untouched; a nil Labels slice keeps the current
// labels.
type PostEdit struct {
	Title   string
	Content string
	Labels  []string
}

// UpdatePost applies an edit to the item and re-pushes its body over the
// existing remote post. The item stays in POST_CREATED, so the call can
// be repeated until the post reads right; nothing is stored when the
// push fails.
func (e *Engine) UpdatePost(ctx context.Context, id string, edit PostEdit) (types.ContentItem, error) {
	if err := e.acquire(id); err != nil {
		return types.ContentItem{}, err
	}
	defer e.release(id)

	item, err := e.Get(id)
	if err != nil {
		return types.ContentItem{}, err
	}
	if edit.Title != "" {
		item.Title = edit.Title
	}
	if edit.Content != "" {
		item = item.WithContent(edit.Content)
	}
	if edit.Labels != nil {
		item.Labels = edit.Labels
	}

	updated, err := e.pipe.UpdatePost(ctx, item)
	if err != nil {
		return item, err
	}
	e.reg.Put(updated)
	e.log.Info("post updated", "item", id, "post", updated.PostID)
	return updated, nil
}

func (e *Engine) acquire(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.inflight[id]; busy {
		return fmt.Errorf("%w: item %s", ErrBusy, id)
	}
	e.inflight[id] = struct{}{}
	return nil
}

func (e *Engine) release(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inflight, id)
}

// ExportYAML writes a YAML snapshot of every registered item.
func (e *Engine) ExportYAML(w io.Writer) error {
	items := e.reg.List()
	data, err := yaml.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshaling items: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
