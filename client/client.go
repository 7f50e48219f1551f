package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the check-in API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a client for baseURL. token may be empty when the server runs without JWT.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("check-in api: status %d", e.Status)
	}
	return fmt.Sprintf("check-in api: status %d: %s", e.Status, e.Message)
}

type datesBody struct {
	Message string   `json:"message,omitempty"`
	Dates   []string `json:"dates"`
	Error   string   `json:"error,omitempty"`
}

// GetCheckIns fetches the user's check-in dates.
func (c *Client) GetCheckIns(ctx context.Context, userID string) ([]string, error) {
	return c.do(ctx, http.MethodGet, userID)
}

// PostCheckIn checks the user in for today and returns the updated dates.
func (c *Client) PostCheckIn(ctx context.Context, userID string) ([]string, error) {
	return c.do(ctx, http.MethodPost, userID)
}

func (c *Client) do(ctx context.Context, method, userID string) ([]string, error) {
	endpoint := c.BaseURL + "/api/checkin/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	hc := c.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	var body datesBody
	decodeErr := json.Unmarshal(raw, &body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Message: body.Error}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode check-in response: %w", decodeErr)
	}
	if body.Dates == nil {
		body.Dates = []string{}
	}
	return body.Dates, nil
}
