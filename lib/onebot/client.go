// Package onebot implements host.API over the OneBot v11 HTTP API
// (send_group_msg, send_private_msg).
package onebot

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
	"unicode/utf8"

	"github.com/Luo9/Plugin-Hello/lib/host"
)

const (
	defaultTimeout = 10 * time.Second
	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 1 << 20
	// maxErrorBody caps the response text quoted in an error, in runes.
	maxErrorBody = 256
)

// APIError is a well-formed OneBot response whose status is not ok.
type APIError struct {
	Action  string
	Status  string
	RetCode int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("onebot %s: status=%s retcode=%d: %s", e.Action, e.Status, e.RetCode, e.Message)
	}
	return fmt.Sprintf("onebot %s: status=%s retcode=%d", e.Action, e.Status, e.RetCode)
}

type response struct {
	Status  string          `json:"status"`
	RetCode int             `json:"retcode"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Wording string          `json:"wording,omitempty"`
}

// Client calls the OneBot HTTP API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ host.API = (*Client)(nil)

// New validates cfg and returns a client. It performs no network I/O.
func New(cfg host.APIConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("onebot: API URL cannot be empty")
	}
	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("onebot: invalid API URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("onebot: unsupported API URL scheme %q", u.Scheme)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		token:      cfg.AccessToken,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// FromHost builds a client from the host config. It has the shape plugins expect
// from an API factory.
func FromHost(cfg *host.Config) (host.API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("onebot: nil host config")
	}
	return New(cfg.API)
}

// SendGroupMessage sends text to a group.
func (c *Client) SendGroupMessage(ctx context.Context, groupID, text string) error {
	id, err := parseID("group_id", groupID)
	if err != nil {
		return err
	}
	return c.call(ctx, "send_group_msg", map[string]any{
		"group_id":    id,
		"message":     text,
		"auto_escape": true,
	})
}

// SendPrivateMsg sends text to a user.
func (c *Client) SendPrivateMsg(ctx context.Context, userID, text string) error {
	id, err := parseID("user_id", userID)
	if err != nil {
		return err
	}
	return c.call(ctx, "send_private_msg", map[string]any{
		"user_id":     id,
		"message":     text,
		"auto_escape": true,
	})
}

func (c *Client) call(ctx context.Context, action string, params map[string]any) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("onebot %s: marshal: %w", action, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+action, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("onebot %s: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("onebot %s: %w", action, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("onebot %s: read body: %w", action, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("onebot %s: HTTP %d: %s", action, resp.StatusCode, truncate(strings.TrimSpace(string(data)), maxErrorBody))
	}
	var r response
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("onebot %s: decode response: %w", action, err)
	}
	// "async" (retcode 1) means the implementation queued the send.
	if r.Status == "ok" || r.Status == "async" {
		return nil
	}
	msg := r.Wording
	if msg == "" {
		msg = r.Message
	}
	return &APIError{Action: action, Status: r.Status, RetCode: r.RetCode, Message: msg}
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// parseID converts a decimal account or group ID to the integer OneBot expects.
func parseID(field, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("onebot: invalid %s %q", field, s)
	}
	return id, nil
}
