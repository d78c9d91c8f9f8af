// Package azdo implements the ThreadClient port against the Azure DevOps
// pull-request threads REST API.
package azdo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gregjones/httpcache"

	"github.com/rkoval/revthread/internal/domain/model"
	"github.com/rkoval/revthread/internal/domain/port/driven"
)

const apiVersion = "7.0"

// Compile-time interface satisfaction check.
var _ driven.ThreadClient = (*Client)(nil)

// ClientConfig carries the coordinates and transport options for a Client.
type ClientConfig struct {
	// OrgURL is the organization base URL, e.g. https://dev.azure.com/acme.
	OrgURL       string
	Project      string
	RepositoryID string
	// PAT is a personal access token, sent via basic auth.
	PAT     string
	Timeout time.Duration
	// RetryMaxElapsed enables exponential-backoff retries on transient
	// failures when non-zero. The default is no retries: retry policy lives
	// in this transport or with the caller, never in the services.
	RetryMaxElapsed time.Duration
}

// Client talks to the Azure DevOps PR-thread API. The transport stack layers
// an in-memory ETag cache (effective on the iteration GETs) over an optional
// retry transport.
type Client struct {
	httpClient *http.Client
	baseURL    string // <org>/<project>/_apis/git/repositories/<repo>
	pat        string
}

// NewClient creates a Client from config.
func NewClient(cfg ClientConfig) *Client {
	var transport http.RoundTripper = http.DefaultTransport
	if cfg.RetryMaxElapsed > 0 {
		transport = NewRetryTransport(transport, cfg.RetryMaxElapsed)
	}
	cacheTransport := httpcache.NewMemoryCacheTransport()
	cacheTransport.Transport = transport

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Transport: cacheTransport, Timeout: timeout},
		baseURL: fmt.Sprintf("%s/%s/_apis/git/repositories/%s",
			cfg.OrgURL, url.PathEscape(cfg.Project), url.PathEscape(cfg.RepositoryID)),
		pat: cfg.PAT,
	}
}

// NewClientWithHTTPClient creates a Client backed by the given http.Client
// and raw base URL. Intended for tests against an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, pat string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL, pat: pat}
}

// Wire types for the threads API.

type commentPayload struct {
	ParentCommentID int    `json:"parentCommentId"`
	Content         string `json:"content"`
	CommentType     string `json:"commentType"`
}

type threadContextPayload struct {
	FilePath string `json:"filePath"`
}

type newThreadPayload struct {
	Comments      []commentPayload      `json:"comments"`
	Status        string                `json:"status"`
	ThreadContext *threadContextPayload `json:"threadContext,omitempty"`
}

type threadResponse struct {
	ID       int `json:"id"`
	Comments []struct {
		ID int `json:"id"`
	} `json:"comments"`
}

// CreateThread creates a discussion thread with one root comment and returns
// the host-assigned thread and comment ids.
func (c *Client) CreateThread(ctx context.Context, prID int, thread driven.NewThread) (int, int, error) {
	payload := newThreadPayload{
		Comments: []commentPayload{{
			ParentCommentID: 0,
			Content:         thread.Content,
			CommentType:     "text",
		}},
		Status: string(thread.Status),
	}
	if thread.FilePath != "" {
		payload.ThreadContext = &threadContextPayload{FilePath: model.NormalizePath(thread.FilePath)}
	}

	var resp threadResponse
	path := fmt.Sprintf("pullRequests/%d/threads", prID)
	if err := c.do(ctx, http.MethodPost, path, payload, &resp); err != nil {
		return 0, 0, err
	}
	if resp.ID == 0 || len(resp.Comments) == 0 {
		return 0, 0, fmt.Errorf("thread creation response missing ids for PR %d", prID)
	}

	return resp.ID, resp.Comments[0].ID, nil
}

// PatchComment replaces a comment's content. Dry run logs the would-be call
// and performs no network I/O.
func (c *Client) PatchComment(ctx context.Context, prID, threadID, commentID int, content string, dryRun bool) error {
	if dryRun {
		slog.Info("dry run: patch comment", "pr_id", prID, "thread_id", threadID, "comment_id", commentID)
		return nil
	}

	path := fmt.Sprintf("pullRequests/%d/threads/%d/comments/%d", prID, threadID, commentID)
	return c.do(ctx, http.MethodPatch, path, map[string]string{"content": content}, nil)
}

// PatchThreadStatus updates a thread's lifecycle status. Dry run as above.
func (c *Client) PatchThreadStatus(ctx context.Context, prID, threadID int, status model.ThreadStatus, dryRun bool) error {
	if dryRun {
		slog.Info("dry run: patch thread status", "pr_id", prID, "thread_id", threadID, "status", status)
		return nil
	}

	path := fmt.Sprintf("pullRequests/%d/threads/%d", prID, threadID)
	return c.do(ctx, http.MethodPatch, path, map[string]string{"status": string(status)}, nil)
}

type iterationsResponse struct {
	Value []struct {
		ID int `json:"id"`
	} `json:"value"`
}

// ListIterations returns the PR's iterations in API order (oldest first).
func (c *Client) ListIterations(ctx context.Context, prID int) ([]model.Iteration, error) {
	var resp iterationsResponse
	path := fmt.Sprintf("pullRequests/%d/iterations", prID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	iterations := make([]model.Iteration, 0, len(resp.Value))
	for _, it := range resp.Value {
		iterations = append(iterations, model.Iteration{ID: it.ID})
	}
	return iterations, nil
}

type changesResponse struct {
	ChangeEntries []struct {
		ChangeTrackingID int `json:"changeTrackingId"`
		Item             struct {
			Path string `json:"path"`
		} `json:"item"`
	} `json:"changeEntries"`
}

// ListIterationChanges returns the files changed in one iteration.
func (c *Client) ListIterationChanges(ctx context.Context, prID, iterationID int) ([]model.IterationChange, error) {
	var resp changesResponse
	path := fmt.Sprintf("pullRequests/%d/iterations/%d/changes", prID, iterationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	changes := make([]model.IterationChange, 0, len(resp.ChangeEntries))
	for _, entry := range resp.ChangeEntries {
		changes = append(changes, model.IterationChange{
			Path:             entry.Item.Path,
			ChangeTrackingID: entry.ChangeTrackingID,
		})
	}
	return changes, nil
}

// do issues one JSON request and decodes the response into out (if non-nil).
// Any non-2xx status is an error carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	u := fmt.Sprintf("%s/%s?api-version=%s", c.baseURL, path, apiVersion)

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("building request %s %s: %w", method, path, err)
	}
	req.SetBasicAuth("", c.pat)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response of %s %s: %w", method, path, err)
		}
	}

	return nil
}
