package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/gridraw/pkg/graph"
	"github.com/matzehuels/gridraw/pkg/httputil"
	"github.com/matzehuels/gridraw/pkg/pipeline"
	"github.com/matzehuels/gridraw/pkg/store"
)

// Client calls a gridraw API server. Transport failures, 429 and 5xx
// responses are retried with backoff.
type Client struct {
	base     string
	http     *http.Client
	attempts int
	delay    time.Duration
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

// WithRetry sets the number of attempts and the first backoff delay.
func WithRetry(attempts int, delay time.Duration) ClientOption {
	return func(c *Client) { c.attempts, c.delay = attempts, delay }
}

// NewClient returns a client for the server at base, e.g.
// "http://localhost:8080".
func NewClient(base string, opts ...ClientOption) *Client {
	c := &Client{
		base:     strings.TrimRight(base, "/"),
		http:     &http.Client{Timeout: 2 * DefaultTimeout},
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Order requests the canonical ordering of the instance described by opts.
func (c *Client) Order(ctx context.Context, opts pipeline.Options) (*OrderingResponse, error) {
	var resp OrderingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/orderings", opts, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Draw runs the pipeline on the server.
func (c *Client) Draw(ctx context.Context, opts pipeline.Options) (*DrawingResponse, error) {
	var resp DrawingResponse
	if err := c.do(ctx, http.MethodPost, "/v1/drawings", opts, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches a stored drawing.
func (c *Client) Get(ctx context.Context, id string) (graph.Drawing, error) {
	var d graph.Drawing
	err := c.do(ctx, http.MethodGet, "/v1/drawings/"+url.PathEscape(id), nil, &d)
	return d, err
}

// Artifact fetches a stored drawing rendered in format.
func (c *Client) Artifact(ctx context.Context, id, format string) ([]byte, error) {
	var data []byte
	path := "/v1/drawings/" + url.PathEscape(id) + "?format=" + url.QueryEscape(format)
	err := c.do(ctx, http.MethodGet, path, nil, &data)
	return data, err
}

// List lists stored drawings.
func (c *Client) List(ctx context.Context, opts store.ListOptions) ([]DrawingSummary, error) {
	q := url.Values{}
	if opts.Name != "" {
		q.Set("name", opts.Name)
	}
	if opts.Algorithm != "" {
		q.Set("algorithm", opts.Algorithm)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	path := "/v1/drawings"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var resp ListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Drawings, nil
}

// Delete removes a stored drawing.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/drawings/"+url.PathEscape(id), nil, nil)
}

// do sends body as JSON and decodes the response into out. A *[]byte out
// receives the raw body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	return httputil.Retry(ctx, c.attempts, c.delay, func() error {
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return &httputil.RetryableError{Err: fmt.Errorf("%w: %v", httputil.ErrNetwork, err)}
		}
		defer resp.Body.Close()

		if err := httputil.CheckStatus(resp); err != nil {
			return err
		}
		switch v := out.(type) {
		case nil:
			return nil
		case *[]byte:
			*v, err = io.ReadAll(resp.Body)
			return err
		default:
			return json.NewDecoder(resp.Body).Decode(out)
		}
	})
}
