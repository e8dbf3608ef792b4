// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/blog-engine/internal/blogger"
	"github.com/pdiddy/blog-engine/internal/generate"
	"github.com/pdiddy/blog-engine/internal/orchestrator"
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

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	pipe := stages.NewPipeline(generate.Mock{}, nullRetriever{}, nullPublisher{}, stages.Config{}, nil)
	engine := orchestrator.New(pipe, types.WorkflowConfig{}, types.PublisherConfig{DefaultBlogID: "B1"}, nil)
	srv := httptest.NewServer(New(engine, nil).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func decodeItem(t *testing.T, resp *http.Response) types.ContentItem {
	t.Helper()
	defer resp.Body.Close()
	var item types.ContentItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&item))
	return item
}

func TestCreateWorkflow(t *testing.T) {
	srv := testServer(t)

	resp := postJSON(t, srv.URL+"/api/workflows", map[string]any{
		"topic":      "Rust ownership",
		"session_id": "chat-1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	item := decodeItem(t, resp)
	assert.Equal(t, "Rust ownership", item.Topic)
	assert.Equal(t, "B1", item.BlogID)
	assert.Equal(t, types.StateTopicSelected, item.State)

	// Session resolves to the new item.
	got, err := http.Get(srv.URL + "/api/sessions/chat-1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, item.ID, decodeItem(t, got).ID)
}

func TestCreateWorkflow_MissingTopicIsBadRequest(t *testing.T) {
	srv := testServer(t)
	resp := postJSON(t, srv.URL+"/api/workflows", map[string]any{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRunApprovePublishOverHTTP(t *testing.T) {
	srv := testServer(t)

	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "Go generics"}))
	base := srv.URL + "/api/workflows/" + item.ID

	resp := postJSON(t, base+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item = decodeItem(t, resp)
	assert.Equal(t, types.StateAwaitingReview, item.State)

	// Approving twice: first moves the item, second is a conflict.
	resp = postJSON(t, base+"/approve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, types.StateDraftApproved, decodeItem(t, resp).State)

	resp = postJSON(t, base+"/approve", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = postJSON(t, base+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	item = decodeItem(t, resp)
	assert.Equal(t, types.StatePublished, item.State)
	assert.Equal(t, "p-1", item.PostID)
}

func TestFeedbackAndBudgetStatuses(t *testing.T) {
	srv := testServer(t)

	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "Go errors"}))
	base := srv.URL + "/api/workflows/" + item.ID

	resp := postJSON(t, base+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	for i := 0; i < 3; i++ {
		resp = postJSON(t, base+"/feedback", map[string]string{"feedback": "tighten"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp = postJSON(t, base+"/feedback", map[string]string{"feedback": "again"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListByStateFilter(t *testing.T) {
	srv := testServer(t)

	a := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "A"}))
	decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "B"}))

	resp := postJSON(t, srv.URL+"/api/workflows/"+a.ID+"/run", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	got, err := http.Get(srv.URL + "/api/workflows?state=TOPIC_SELECTED")
	require.NoError(t, err)
	defer got.Body.Close()
	var items []types.ContentItem
	require.NoError(t, json.NewDecoder(got.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, "B", items[0].Topic)
}

func TestUnknownItemIs404(t *testing.T) {
	srv := testServer(t)

	got, err := http.Get(srv.URL + "/api/workflows/nope")
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

func TestDeleteWorkflow(t *testing.T) {
	srv := testServer(t)
	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "gone"}))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/workflows/"+item.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	got, err := http.Get(srv.URL + "/api/workflows/" + item.ID)
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusNotFound, got.StatusCode)
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	got, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer got.Body.Close()
	assert.Equal(t, http.StatusOK, got.StatusCode)
}

func TestExportSnapshot(t *testing.T) {
	srv := testServer(t)
	postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "Go generics"}).Body.Close()

	got, err := http.Get(srv.URL + "/api/export")
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, "application/yaml", got.Header.Get("Content-Type"))

	body, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Go generics")
}

func TestUpdatePostOverHTTP(t *testing.T) {
	srv := testServer(t)

	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "Go generics"}))
	base := srv.URL + "/api/workflows/" + item.ID

	postJSON(t, base+"/run", nil).Body.Close()
	postJSON(t, base+"/approve", nil).Body.Close()
	// Two single steps stop at POST_CREATED instead of running through
	// to publication.
	postJSON(t, base+"/advance", nil).Body.Close()
	resp := postJSON(t, base+"/advance", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, types.StatePostCreated, decodeItem(t, resp).State)

	resp = postJSON(t, base+"/update", map[string]any{"content": "polished body", "labels": []string{"go"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeItem(t, resp)
	assert.Equal(t, types.StatePostCreated, got.State)
	assert.Equal(t, "polished body", got.Content)

	// An empty body is a plain re-push.
	resp = postJSON(t, base+"/update", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "polished body", decodeItem(t, resp).Content)
}

func TestUpdateBeforeCreationIsConflict(t *testing.T) {
	srv := testServer(t)
	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "too early"}))

	resp := postJSON(t, srv.URL+"/api/workflows/"+item.ID+"/update", map[string]any{"content": "x"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownActionIs404(t *testing.T) {
	srv := testServer(t)
	item := decodeItem(t, postJSON(t, srv.URL+"/api/workflows", map[string]any{"topic": "routing"}))
	base := srv.URL + "/api/workflows/" + item.ID

	resp := postJSON(t, base+"/bogus", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// A known action with the wrong method stays 405.
	got, err := http.Get(base + "/approve")
	require.NoError(t, err)
	got.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, got.StatusCode)
}
