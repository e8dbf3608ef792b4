// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package blogger is the HTTP client for the blog publishing backend. It
// exposes the narrow surface the pipeline needs: create, update, publish,
// and fetch posts, plus image upload. All calls go through the shared
// retry helper so backend rate limits are absorbed here, not in the
// workflow core.
// See docs/ARCHITECTURE.md § Publishing.
package blogger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/blog-engine/internal/httputil"
	"github.com/pdiddy/blog-engine/pkg/types"
)

const defaultTimeout = 60 * time.Second

// Blog identifies one blog available to the authenticated account.
type Blog struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Post is the backend's view of a post after create, update, or publish.
type Post struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Status string `json:"status"`
	Title  string `json:"title"`
}

// CreatePostRequest carries everything needed to create a remote post.
type CreatePostRequest struct {
	BlogID  string
	Title   string
	Content string // Markdown; converted to HTML before upload
	Labels  []string
	Images  []types.ImageRef
	Draft   bool
}

// UpdatePostRequest carries a full replacement body for an existing post.
type UpdatePostRequest struct {
	BlogID  string
	PostID  string
	Title   string
	Content string // Markdown; converted to HTML before upload
	Labels  []string
	Images  []types.ImageRef
}

// Client talks to the publishing backend.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

// New builds a Client from publisher configuration.
func New(cfg types.PublisherConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("publisher base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// ListBlogs returns the blogs available to the authenticated account.
func (c *Client) ListBlogs(ctx context.Context) ([]Blog, error) {
	var out struct {
		Blogs []Blog `json:"blogs"`
	}
	if err := c.do(ctx, http.MethodGet, "/blogs", nil, &out); err != nil {
		return nil, err
	}
	return out.Blogs, nil
}

// CreatePost creates a remote post and returns its identifier. Content is
// converted from Markdown to HTML with image figures appended. Callers
// must not invoke this twice for the same item: the backend would create
// a second post.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (Post, error) {
	html, err := renderPostHTML(req.Content, req.Images)
	if err != nil {
		return Post{}, err
	}
	body := map[string]any{
		"title":   req.Title,
		"content": html,
		"draft":   req.Draft,
	}
	if len(req.Labels) > 0 {
		body["labels"] = req.Labels
	}
	var post Post
	path := fmt.Sprintf("/blogs/%s/posts", url.PathEscape(req.BlogID))
	if err := c.do(ctx, http.MethodPost, path, body, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// UpdatePost replaces the remote post's title, content, and labels.
// Safe to re-invoke: the backend overwrites with the same values.
func (c *Client) UpdatePost(ctx context.Context, req UpdatePostRequest) (Post, error) {
	html, err := renderPostHTML(req.Content, req.Images)
	if err != nil {
		return Post{}, err
	}
	body := map[string]any{
		"title":   req.Title,
		"content": html,
		"labels":  req.Labels,
	}
	var post Post
	path := fmt.Sprintf("/blogs/%s/posts/%s", url.PathEscape(req.BlogID), url.PathEscape(req.PostID))
	if err := c.do(ctx, http.MethodPut, path, body, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// PublishPost makes a draft post live.
func (c *Client) PublishPost(ctx context.Context, blogID, postID string) (Post, error) {
	var post Post
	path := fmt.Sprintf("/blogs/%s/posts/%s/publish", url.PathEscape(blogID), url.PathEscape(postID))
	if err := c.do(ctx, http.MethodPost, path, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// GetPost fetches a post for review or pull-back editing.
func (c *Client) GetPost(ctx context.Context, blogID, postID string) (Post, error) {
	var post Post
	path := fmt.Sprintf("/blogs/%s/posts/%s", url.PathEscape(blogID), url.PathEscape(postID))
	if err := c.do(ctx, http.MethodGet, path, nil, &post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// ListPosts returns recent posts for a blog. includeDrafts widens the
// listing to unpublished posts.
func (c *Client) ListPosts(ctx context.Context, blogID string, maxResults int, includeDrafts bool) ([]Post, error) {
	path := fmt.Sprintf("/blogs/%s/posts?max_results=%d", url.PathEscape(blogID), maxResults)
	if includeDrafts {
		path += "&status=all"
	}
	var out struct {
		Posts []Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// do executes one JSON request against the backend, decoding the response
// into out when it is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setHeaders(req)

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: backend returned %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
