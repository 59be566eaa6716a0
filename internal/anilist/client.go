// Package anilist is a thin client for the AniList GraphQL API. It performs
// one POST round trip per call and does no caching or retrying; callers that
// want caching wrap it with the query controller.
package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	DefaultEndpoint = "https://graphql.anilist.co"

	defaultTimeout = 30 * time.Second
	userAgent      = "Arc/1.0"
)

// RequestError reports a non-2xx response from the API.
type RequestError struct {
	StatusCode int
	Status     string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("anilist request failed: %s", e.Status)
}

// Client issues GraphQL requests against AniList.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for endpoint. An empty endpoint selects the
// public AniList API.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

type gqlRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables"`
}

type gqlResponse struct {
	Data json.RawMessage `json:"data"`
}

// Do posts query with variables and decodes the response's "data" object
// into dest.
func (c *Client) Do(ctx context.Context, query string, variables any, dest any) error {
	payload, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("anilist request", "endpoint", c.endpoint, "bytes", len(payload))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("anilist request failed", "error", err)
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("anilist request error", "status", resp.StatusCode)
		return &RequestError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var gql gqlResponse
	if err := json.Unmarshal(body, &gql); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if err := json.Unmarshal(gql.Data, dest); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}
