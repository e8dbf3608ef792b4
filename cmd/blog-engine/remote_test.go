// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/internal/blogger"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/orchestrator"
	"github.com/pdiddy/blog-engine/internal/server"
	"github.com/pdiddy/blog-engine/internal/stages"
	"github.com/pdiddy/blog-engine/pkg/types"
)

type nullRetriever struct{}

func (nullRetriever) Retrieve(context.Context, string, int) ([]types.Passage, error) {
	return nil, nil
}

type nullPublisher struct{}

func (nullPublisher) CreatePost(context.Context, blogger.CreatePostRequest) (blogger.Post, error) {
	return blogger.Post{ID: "p-1", Status: "draft"}, nil
}

func (nullPublisher) UpdatePost(_ context.Context, req blogger.UpdatePostRequest) (blogger.Post, error) {
	return blogger.Post{ID: req.PostID}, nil
}

func (nullPublisher) PublishPost(_ context.Context, _, postID string) (blogger.Post, error) {
	return blogger.Post{ID: postID, Status: "live"}, nil
}

func (nullPublisher) UploadImage(context.Context, string) (string, error) {
	return "https://cdn.example.com/img.png", nil
}

func testAPIClient(t *testing.T) (*apiClient, *orchestrator.Engine) {
	t.Helper()
	pipe := stages.NewPipeline(generate.Mock{}, nullRetriever{}, nullPublisher{}, stages.Config{}, nil)
	engine := orchestrator.New(pipe, types.WorkflowConfig{}, types.PublisherConfig{DefaultBlogID: "B1"}, nil)
	srv := httptest.NewServer(server.New(engine, nil).Routes())
	t.Cleanup(srv.Close)
	return &apiClient{baseURL: srv.URL, httpClient: srv.Client()}, engine
}

func TestRemote_StartStatusList(t *testing.T) {
	client, _ := testAPIClient(t)
	ctx := context.Background()

	item, err := client.start(ctx, map[string]any{"topic": "Rust ownership"})
	require.NoError(t, err)
	assert.Equal(t, "B1", item.BlogID)
	assert.Equal(t, types.StateTopicSelected, item.State)

	st, err := client.status(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, st.Item.ID)
	assert.False(t, st.AwaitingHuman)

	items, err := client.list(ctx, string(types.StateTopicSelected))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, item.ID, items[0].ID)

	empty, err := client.list(ctx, string(types.StatePublished))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRemote_ApproveAndFeedback(t *testing.T) {
	client, engine := testAPIClient(t)
	ctx := context.Background()

	item, err := client.start(ctx, map[string]any{"topic": "Go generics"})
	require.NoError(t, err)
	_, err = engine.Run(ctx, item.ID)
	require.NoError(t, err)

	revised, err := client.feedback(ctx, item.ID, "shorter intro")
	require.NoError(t, err)
	assert.Equal(t, types.StateFeedbackReceived, revised.State)
	assert.Equal(t, 1, revised.RevisionCount)

	_, err = engine.Run(ctx, item.ID)
	require.NoError(t, err)

	approved, err := client.approve(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StateDraftApproved, approved.State)

	// A second approval is refused server-side, with the reason carried.
	_, err = client.approve(ctx, item.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approve")
}

func TestRemote_Delete(t *testing.T) {
	client, _ := testAPIClient(t)
	ctx := context.Background()

	item, err := client.start(ctx, map[string]any{"topic": "gone"})
	require.NoError(t, err)
	require.NoError(t, client.remove(ctx, item.ID))

	_, err = client.status(ctx, item.ID)
	require.Error(t, err)

	err = client.remove(ctx, item.ID)
	require.Error(t, err, "deleting twice reports not found")
}
