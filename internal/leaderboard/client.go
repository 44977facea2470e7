package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single remote call.
const DefaultTimeout = 5 * time.Second

// Client talks to a remote leaderboard endpoint served by Server.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient creates a client for the given endpoint URL, for example
// http://localhost:8080/api/leaderboard. A nil httpClient uses a client with
// DefaultTimeout.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{endpoint: endpoint, http: httpClient}
}

// Endpoint returns the URL the client talks to.
func (c *Client) Endpoint() string { return c.endpoint }

type boardResponse struct {
	Entries []Entry `json:"entries"`
	Error   string  `json:"error,omitempty"`
}

type mutation struct {
	Type    string `json:"type"`
	Name    string `json:"name,omitempty"`
	Score   int    `json:"score,omitempty"`
	OldName string `json:"oldName,omitempty"`
	NewName string `json:"newName,omitempty"`
}

// Entries fetches the remote board.
func (c *Client) Entries(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}
	return c.do(req)
}

// Record submits a score.
func (c *Client) Record(ctx context.Context, name string, score int) ([]Entry, error) {
	return c.post(ctx, mutation{Type: "record", Name: SanitizeName(name), Score: score})
}

// Rename renames a player on the remote board.
func (c *Client) Rename(ctx context.Context, oldName, newName string) ([]Entry, error) {
	return c.post(ctx, mutation{Type: "rename", OldName: SanitizeName(oldName), NewName: SanitizeName(newName)})
}

func (c *Client) post(ctx context.Context, body mutation) ([]Entry, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("leaderboard: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) do(req *http.Request) ([]Entry, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	var out boardResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: out.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrUnavailable, decodeErr)
	}
	return Normalize(out.Entries), nil
}
