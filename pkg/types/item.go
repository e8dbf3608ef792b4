// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the blog-engine pipeline.
// See docs/ARCHITECTURE.md § Data Structures, § Workflow.
package types

import "time"

// WorkflowState identifies a content item's position in the publishing
// pipeline. States advance along a single happy path with one loop-back
// edge (FEEDBACK_RECEIVED → DRAFT_GENERATED); the edge set itself lives in
// internal/workflow.
type WorkflowState string

const (
	StateTopicSelected    WorkflowState = "TOPIC_SELECTED"
	StateResearchComplete WorkflowState = "RESEARCH_COMPLETE"
	StateOutlineCreated   WorkflowState = "OUTLINE_CREATED"
	StateDraftGenerated   WorkflowState = "DRAFT_GENERATED"
	StateAwaitingReview   WorkflowState = "AWAITING_REVIEW"
	StateDraftApproved    WorkflowState = "DRAFT_APPROVED"
	StateFeedbackReceived WorkflowState = "FEEDBACK_RECEIVED"
	StateImagesAdded      WorkflowState = "IMAGES_ADDED"
	StatePostCreated      WorkflowState = "POST_CREATED"
	StatePublished        WorkflowState = "PUBLISHED"
)

// ImageRef references an image attached to a content item. An image either
// carries a public URL (ready to embed) or a LocalPath awaiting upload to
// the publishing backend.
type ImageRef struct {
	// URL is the public image URL. Empty until the image has been uploaded.
	URL string `json:"url" yaml:"url"`

	// Caption is an optional figure caption.
	Caption string `json:"caption,omitempty" yaml:"caption,omitempty"`

	// LocalPath is the local file path for an image not yet uploaded.
	LocalPath string `json:"local_path,omitempty" yaml:"local_path,omitempty"`
}

// ContentItem is the unit of work flowing through the pipeline, from topic
// selection to a published post. Items are immutable values: every mutation
// helper returns a fresh copy with UpdatedAt refreshed, and the registry is
// the single place where a newer value supersedes an older one.
type ContentItem struct {
	// ID is the opaque identifier assigned at creation.
	ID string `json:"id" yaml:"id"`

	// Title is the post title. Defaults to Topic when not given at start.
	Title string `json:"title" yaml:"title"`

	// Topic is the subject the item was started with.
	Topic string `json:"topic" yaml:"topic"`

	// Instructions are free-text authoring directions given at start.
	Instructions string `json:"instructions,omitempty" yaml:"instructions,omitempty"`

	// Outline is the generated article outline.
	Outline string `json:"outline,omitempty" yaml:"outline,omitempty"`

	// Content is the generated article body (Markdown).
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// ResearchContext holds retrieved background passages used for drafting.
	ResearchContext string `json:"research_context,omitempty" yaml:"research_context,omitempty"`

	// Feedback is the most recent reviewer feedback.
	Feedback string `json:"feedback,omitempty" yaml:"feedback,omitempty"`

	// Images are the images to attach to the post, in order.
	Images []ImageRef `json:"images,omitempty" yaml:"images,omitempty"`

	// Labels are post tags, assigned at creation and not mutated after.
	Labels []string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// BlogID identifies the target blog on the publishing backend.
	BlogID string `json:"blog_id,omitempty" yaml:"blog_id,omitempty"`

	// PostID identifies the remote post once created. Required before
	// update and publish.
	PostID string `json:"post_id,omitempty" yaml:"post_id,omitempty"`

	// State is the item's current workflow state.
	State WorkflowState `json:"state" yaml:"state"`

	// RevisionCount is the number of accepted feedback submissions.
	RevisionCount int `json:"revision_count" yaml:"revision_count"`

	// CreatedAt is fixed at construction.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// UpdatedAt is refreshed by every mutation helper.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// NewContentItem constructs an item at the start of the pipeline. Title
// defaults to the topic until the caller sets one.
func NewContentItem(id, topic string) ContentItem {
	now := time.Now().UTC()
	return ContentItem{
		ID:        id,
		Title:     topic,
		Topic:     topic,
		State:     StateTopicSelected,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the item. Slices are copied so the clone
// shares no mutable storage with the original.
func (c ContentItem) Clone() ContentItem {
	out := c
	if c.Images != nil {
		out.Images = make([]ImageRef, len(c.Images))
		copy(out.Images, c.Images)
	}
	if c.Labels != nil {
		out.Labels = make([]string, len(c.Labels))
		copy(out.Labels, c.Labels)
	}
	return out
}

// touch returns a clone with UpdatedAt refreshed.
func (c ContentItem) touch() ContentItem {
	out := c.Clone()
	out.UpdatedAt = time.Now().UTC()
	return out
}

// WithState returns a copy in the given state. State legality is the
// workflow package's concern, not the data model's.
func (c ContentItem) WithState(s WorkflowState) ContentItem {
	out := c.touch()
	out.State = s
	return out
}

// WithOutline returns a copy carrying the generated outline.
func (c ContentItem) WithOutline(outline string) ContentItem {
	out := c.touch()
	out.Outline = outline
	return out
}

// WithContent returns a copy carrying the generated article body.
func (c ContentItem) WithContent(content string) ContentItem {
	out := c.touch()
	out.Content = content
	return out
}

// WithResearchContext returns a copy carrying retrieved background context.
func (c ContentItem) WithResearchContext(ctx string) ContentItem {
	out := c.touch()
	out.ResearchContext = ctx
	return out
}

// WithFeedback returns a copy carrying reviewer feedback and an incremented
// revision count.
func (c ContentItem) WithFeedback(feedback string) ContentItem {
	out := c.touch()
	out.Feedback = feedback
	out.RevisionCount++
	return out
}

// WithImages returns a copy carrying the given image references.
func (c ContentItem) WithImages(images []ImageRef) ContentItem {
	out := c.touch()
	out.Images = make([]ImageRef, len(images))
	copy(out.Images, images)
	return out
}

// WithPostID returns a copy carrying the remote post identifier.
func (c ContentItem) WithPostID(postID string) ContentItem {
	out := c.touch()
	out.PostID = postID
	return out
}
