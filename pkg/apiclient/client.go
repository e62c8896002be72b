// Package apiclient wraps the backend's plain request/response endpoints:
// the knowledge cluster snapshot, node detail lookups, podcast listings and
// knowledge sharing. The streamed endpoints live in pkg/sse.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"graphcast/pkg/graph"
	"graphcast/pkg/logging"
)

// DefaultTimeout bounds every non-streamed request.
const DefaultTimeout = 10 * time.Second

// Client talks to the backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string, logger logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.With(logging.Component("apiclient")),
	}
}

// SetHTTPClient overrides the transport, used in tests.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// FetchCluster retrieves the knowledge cluster snapshot the graph model is
// built from.
func (c *Client) FetchCluster(ctx context.Context) (*graph.ClusterResponse, error) {
	start := time.Now()
	var cluster graph.ClusterResponse
	if err := c.getJSON(ctx, "/api/knowledge/cluster", &cluster); err != nil {
		return nil, err
	}
	c.logger.Info("cluster fetched",
		logging.Count(len(cluster.Categories)),
		logging.Latency(time.Since(start)))
	return &cluster, nil
}

// NodeDetail looks up a knowledge item by id. Lookup failures come back as
// an inline error payload, never as a Go error, so the dialog always has
// something to render.
func (c *Client) NodeDetail(ctx context.Context, id string) NodeDetail {
	return c.fetchDetail(ctx, "/api/knowledge/"+id)
}

// TopicDetail looks up the knowledge behind a topic node.
func (c *Client) TopicDetail(ctx context.Context, id string) NodeDetail {
	return c.fetchDetail(ctx, "/api/knowledge/by-hot-word/"+id)
}

func (c *Client) fetchDetail(ctx context.Context, path string) NodeDetail {
	var detail NodeDetail
	if err := c.getJSON(ctx, path, &detail); err != nil {
		c.logger.Warn("detail fetch failed",
			logging.Endpoint(path),
			logging.Error(err))
		return NodeDetail{Error: "Failed to load details. Please try again."}
	}
	return detail
}

// Podcasts lists all generated episodes.
func (c *Client) Podcasts(ctx context.Context) (*PodcastList, error) {
	var list PodcastList
	if err := c.getJSON(ctx, "/api/podcasts/", &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// PodcastDetails retrieves the parsed script for one episode.
func (c *Client) PodcastDetails(ctx context.Context, knowledgeItemID string) (*PodcastDetails, error) {
	var details PodcastDetails
	if err := c.getJSON(ctx, "/api/podcasts/"+knowledgeItemID+"/details", &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// PodcastAudioURL returns the streamable audio location for an episode;
// the player fetches it directly.
func (c *Client) PodcastAudioURL(knowledgeItemID string) string {
	return c.baseURL + "/api/podcasts/" + knowledgeItemID + "/audio"
}

// ShareKnowledge shares a knowledge item with the given users.
func (c *Client) ShareKnowledge(ctx context.Context, knowledgeItemID string, share ShareRequest) error {
	body, err := json.Marshal(share)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/share/knowledge/"+knowledgeItemID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("share knowledge %s: unexpected status %d", knowledgeItemID, resp.StatusCode)
	}
	c.logger.Info("knowledge shared",
		logging.NodeID(knowledgeItemID),
		logging.Count(len(share.UserIDs)))
	return nil
}
