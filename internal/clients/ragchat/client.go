// Package ragchat is the HTTP client for the external retrieval-augmented
// chat capability: free-text questions answered over the caller's stored
// documents. The capability does its own retrieval; this client only
// carries the message and the caller identity.
package ragchat

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUnavailable reports that the chat capability could not be reached.
var ErrUnavailable = errors.New("chat service unreachable")

// APIError is a failure reported by the chat capability itself.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("chat service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("chat service error: %s", e.Detail)
}

// Client calls the chat capability over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New constructs a Client for the capability at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{baseURL: baseURL, httpClient: &http.Client{Timeout: timeout}}
}

type askRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type askResponse struct {
	Reply  string `json:"reply"`
	Detail string `json:"detail"`
}

// Ask sends one message on behalf of userID and returns the reply text.
func (c *Client) Ask(ctx context.Context, userID, message string) (string, error) {
	payload, err := json.Marshal(askRequest{Message: message, UserID: userID})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}

	var decoded askResponse
	_ = json.Unmarshal(body, &decoded)

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Detail: decoded.Detail}
	}
	return decoded.Reply, nil
}
