// Package notion implements the minimal Notion REST client the bridge
// needs: creating and updating databases, inserting pages, and querying
// records. It is not a general-purpose SDK.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"
)

const notionVersion = "2022-06-28"

// Config holds configuration for the Notion client.
type Config struct {
	// BaseURL is the API base URL (default: https://api.notion.com).
	BaseURL string

	// Token is the integration bearer token. Required.
	Token string

	// Timeout is the per-request HTTP timeout (default: 30s).
	Timeout time.Duration

	// MaxRetries is the number of retries after a failed attempt; values
	// below 1 fall back to the default of 1. Every failure is retried the
	// same way; there is no distinction between retryable and fatal errors.
	MaxRetries int

	// RetryDelay is the fixed pause between attempts (default: 2s).
	RetryDelay time.Duration

	// Logger is optional.
	Logger hclog.Logger
}

// Client calls the Notion API.
type Client struct {
	baseURL    string
	token      string
	maxRetries uint64
	retryDelay time.Duration
	httpClient *http.Client
	logger     hclog.Logger
}

// NewClient creates a new Notion client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Token == "" {
		return nil, errors.New("notion: token is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.notion.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	// Clamp before the uint64 conversion below: a negative count would
	// otherwise wrap into an effectively unbounded retry loop.
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		maxRetries: uint64(cfg.MaxRetries),
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger.Named("notion-client"),
	}, nil
}

// CreateDatabase creates a database under the given parent page and returns
// it. Property schemas come from the caller unmodified.
func (c *Client) CreateDatabase(
	ctx context.Context,
	parentPageID string,
	title string,
	properties map[string]PropertySchema,
) (*Database, error) {
	req := CreateDatabaseRequest{
		Parent: Parent{
			Type:   "page_id",
			PageID: parentPageID,
		},
		Title: []RichText{
			{Type: "text", Text: &Text{Content: title}},
		},
		Properties: properties,
	}

	var db Database
	if err := c.call(ctx, http.MethodPost, "/v1/databases", req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// UpdateDatabase replaces or merges the named property schemas of an
// existing database.
func (c *Client) UpdateDatabase(
	ctx context.Context,
	databaseID string,
	properties map[string]PropertySchema,
) (*Database, error) {
	req := UpdateDatabaseRequest{Properties: properties}

	var db Database
	path := fmt.Sprintf("/v1/databases/%s", databaseID)
	if err := c.call(ctx, http.MethodPatch, path, req, &db); err != nil {
		return nil, err
	}
	return &db, nil
}

// CreatePage inserts a page (one record) into a database.
func (c *Client) CreatePage(
	ctx context.Context,
	databaseID string,
	properties map[string]PropertyValue,
) (*Page, error) {
	req := CreatePageRequest{
		Parent:     Parent{DatabaseID: databaseID},
		Properties: properties,
	}

	var page Page
	if err := c.call(ctx, http.MethodPost, "/v1/pages", req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// QueryDatabase fetches the records of a database in one unpaginated call.
// If the database has more records than one API page, only the first page
// is returned.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	var resp QueryDatabaseResponse
	path := fmt.Sprintf("/v1/databases/%s/query", databaseID)
	if err := c.call(ctx, http.MethodPost, path, struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// call performs one API operation through the retry policy: a fixed delay
// between attempts, every failure retried alike, and the final error
// propagated unchanged. The delay is a plain blocking sleep; a request
// cannot be aborted mid-retry.
func (c *Client) call(ctx context.Context, method, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	attempt := func() error {
		return c.doRequest(ctx, method, path, body, out)
	}

	notify := func(err error, delay time.Duration) {
		c.logger.Warn("notion call failed, retrying",
			"method", method,
			"path", path,
			"delay", delay,
			"error", err,
		)
	}

	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryDelay), c.maxRetries)
	return backoff.RetryNotify(attempt, bo, notify)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(respBody, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
