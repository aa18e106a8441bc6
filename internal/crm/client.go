// Package crm talks to the remote collection API: a bearer-token JSON POST
// surface plus a detached dispatcher that keeps delivery off the intake path.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ClientConfig configures the collection API client
type ClientConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Client posts JSON payloads to the collection API
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	log        *zap.Logger
}

// NewClient creates a new collection API client
func NewClient(config ClientConfig, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		log:        log,
	}
}

// Post sends payload as a JSON body to path on the collection API. A
// response carrying a "message" field is logged as a warning; message and
// HTTP status are advisory only and do not fail the call. Only transport and
// encoding failures return an error.
func (c *Client) Post(ctx context.Context, path string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", c.config.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to %s: %w", path, err)
	}
	defer resp.Body.Close()

	var decoded struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err == nil && decoded.Message != "" {
		c.log.Warn("Collection API returned a message",
			zap.String("path", path),
			zap.String("message", decoded.Message))
	}

	if resp.StatusCode >= http.StatusBadRequest {
		c.log.Warn("Collection API returned an error status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
	}

	return nil
}
