// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stages

import (
	"context"
	"fmt"

	"github.com/pdiddy/blog-engine/internal/blogger"
	"github.com/pdiddy/blog-engine/internal/workflow"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// CreatePost creates the remote draft post. One-shot: an item that
// already carries a PostID is refused so a retry can never produce a
// duplicate post on the backend.
func (p *Pipeline) CreatePost(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "create-post", types.StateImagesAdded); err != nil {
		return item, err
	}
	if item.BlogID == "" {
		return item, fmt.Errorf("%w: create-post needs a blog id", workflow.ErrMissingConfiguration)
	}
	if item.PostID != "" {
		return item, fmt.Errorf("%w: item %s already has post %s", workflow.ErrIllegalTransition, item.ID, item.PostID)
	}

	post, err := p.pub.CreatePost(ctx, blogger.CreatePostRequest{
		BlogID:  item.BlogID,
		Title:   item.Title,
		Content: item.Content,
		Labels:  item.Labels,
		Images:  item.Images,
		Draft:   true,
	})
	if err != nil {
		return item, &CollaboratorError{Op: "creating post", Err: err}
	}

	return workflow.Transition(item.WithPostID(post.ID), types.StatePostCreated)
}

// UpdatePost pushes the current item body over the existing remote
// post. Rerunnable from POST_CREATED; the state does not move.
func (p *Pipeline) UpdatePost(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "update-post", types.StatePostCreated); err != nil {
		return item, err
	}
	if item.BlogID == "" || item.PostID == "" {
		return item, fmt.Errorf("%w: update-post needs blog and post ids", workflow.ErrMissingPrecondition)
	}

	_, err := p.pub.UpdatePost(ctx, blogger.UpdatePostRequest{
		BlogID:  item.BlogID,
		PostID:  item.PostID,
		Title:   item.Title,
		Content: item.Content,
		Labels:  item.Labels,
		Images:  item.Images,
	})
	if err != nil {
		return item, &CollaboratorError{Op: "updating post", Err: err}
	}
	return item, nil
}

// Publish flips the remote post live and moves the item to its terminal
// state. One-shot.
func (p *Pipeline) Publish(ctx context.Context, item types.ContentItem) (types.ContentItem, error) {
	if err := requireState(item, "publish", types.StatePostCreated); err != nil {
		return item, err
	}
	if item.BlogID == "" || item.PostID == "" {
		return item, fmt.Errorf("%w: publish needs blog and post ids", workflow.ErrMissingPrecondition)
	}

	if _, err := p.pub.PublishPost(ctx, item.BlogID, item.PostID); err != nil {
		return item, &CollaboratorError{Op: "publishing post", Err: err}
	}

	return workflow.Transition(item, types.StatePublished)
}
