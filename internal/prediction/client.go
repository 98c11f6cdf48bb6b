// Package prediction provides the inventory service's client for the food
// info prediction endpoint. The call is advisory: one bounded attempt, and
// every failure mode degrades to sentinel values instead of an error, so the
// caller can always proceed.
package prediction

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/grocery-assistant/backend/internal/httputil"
)

// Sentinel values used when enrichment is unavailable or fails.
const (
	CategoryUnknown = "Unknown"
	ExpiryUnknown   = "N/A"
)

const (
	defaultTimeout  = 8 * time.Second
	maxBodyBytes    = 1 << 20 // 1MiB
	predictionsPath = "/recipes/predict_food_info"
)

// Result is the outcome of a prediction call. The failure branch still
// carries sentinel category/expiry so callers need no special-casing.
type Result struct {
	Success  bool   `json:"success"`
	Category string `json:"category"`
	Expiry   string `json:"expiry"`
	Message  string `json:"message,omitempty"`
}

// Config configures the prediction client.
type Config struct {
	// BaseURL is the recipes service base URL. Empty puts the client in
	// degraded mode: Predict short-circuits without a network call.
	BaseURL string
	// Timeout bounds each attempt. Defaults to 8s.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client calls the prediction endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a prediction client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		httpClient: client,
		logger:     cfg.Logger,
	}
}

// Configured reports whether an endpoint is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// Predict asks the recipes service for a category/expiry pair for itemName.
// Single attempt, no retry. Transport errors, timeouts, non-200 statuses,
// malformed bodies, and missing fields all map to a failed Result with
// sentinel values; Predict never returns an error.
func (c *Client) Predict(ctx context.Context, itemName string) Result {
	if !c.Configured() {
		return fallback("prediction endpoint not configured")
	}

	payload, err := json.Marshal(map[string]string{"item_name": itemName})
	if err != nil {
		return fallback("failed to encode prediction request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictionsPath, bytes.NewReader(payload))
	if err != nil {
		return fallback("failed to build prediction request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("item", itemName).Msg("prediction call failed")
		return fallback("prediction call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("item", itemName).Msg("prediction returned non-200")
		return fallback("prediction service error")
	}

	body, err := httputil.ReadAllStrict(resp.Body, maxBodyBytes)
	if err != nil {
		return fallback("failed to read prediction response")
	}

	var result Result
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn().Err(err).Str("item", itemName).Msg("prediction response not valid JSON")
		return fallback("malformed prediction response")
	}

	if !result.Success || result.Category == "" || result.Expiry == "" {
		if result.Message == "" {
			result.Message = "prediction unavailable"
		}
		return fallback(result.Message)
	}

	return result
}

func fallback(message string) Result {
	return Result{
		Success:  false,
		Category: CategoryUnknown,
		Expiry:   ExpiryUnknown,
		Message:  message,
	}
}
