// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/orchestrator"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// apiClient backs the remote subcommands (start, status, list, approve,
// feedback, delete). The item registry lives inside a running serve
// process, so these verbs talk to its HTTP API instead of building an
// engine of their own. Requests are sent exactly once: workflow actions
// must not repeat on a transient failure.
type apiClient struct {
	baseURL    string
	httpClient *http.Client
}

func newAPIClient(cmd *cobra.Command) *apiClient {
	server, _ := cmd.Flags().GetString("server")
	return &apiClient{
		baseURL:    strings.TrimRight(server, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// addServerFlag attaches the shared --server flag to a remote subcommand.
func addServerFlag(cmd *cobra.Command) {
	cmd.Flags().String("server", "http://localhost:8080", "base URL of a running serve instance")
}

func (c *apiClient) start(ctx context.Context, req map[string]any) (types.ContentItem, error) {
	var item types.ContentItem
	err := c.do(ctx, http.MethodPost, "/api/workflows", req, &item)
	return item, err
}

func (c *apiClient) status(ctx context.Context, id string) (orchestrator.Status, error) {
	var st orchestrator.Status
	err := c.do(ctx, http.MethodGet, "/api/workflows/"+url.PathEscape(id)+"/status", nil, &st)
	return st, err
}

func (c *apiClient) list(ctx context.Context, state string) ([]types.ContentItem, error) {
	path := "/api/workflows"
	if state != "" {
		path += "?state=" + url.QueryEscape(state)
	}
	var items []types.ContentItem
	err := c.do(ctx, http.MethodGet, path, nil, &items)
	return items, err
}

func (c *apiClient) approve(ctx context.Context, id string) (types.ContentItem, error) {
	var item types.ContentItem
	err := c.do(ctx, http.MethodPost, "/api/workflows/"+url.PathEscape(id)+"/approve", nil, &item)
	return item, err
}

func (c *apiClient) feedback(ctx context.Context, id, text string) (types.ContentItem, error) {
	var item types.ContentItem
	err := c.do(ctx, http.MethodPost, "/api/workflows/"+url.PathEscape(id)+"/feedback",
		map[string]any{"feedback": text}, &item)
	return item, err
}

func (c *apiClient) remove(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/workflows/"+url.PathEscape(id), nil, nil)
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out any) error {
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

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: server returned %d", method, path, resp.StatusCode)
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
