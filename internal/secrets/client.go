// Package secrets provides a client for the key-value secret store. A secret
// is a named JSON object; callers look up individual keys inside it.
package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/grocery-assistant/backend/internal/httputil"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxBodySize = 1 << 20 // 1MiB
)

// Config configures the secret store client.
type Config struct {
	// BaseURL is the base URL of the secret store.
	BaseURL string
	// HTTPClient is used to execute requests. When nil, a default client with
	// a conservative timeout is used.
	HTTPClient *http.Client
	// MaxBodyBytes caps response bodies to prevent memory exhaustion.
	MaxBodyBytes int64
}

// Client fetches secrets from the secret store over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxBodyBytes int64
}

// New creates a new secret store client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("secrets: BaseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("secrets: BaseURL must be a valid URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("secrets: BaseURL scheme must be http or https")
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	if client.Timeout == 0 {
		client.Timeout = defaultTimeout
	}

	maxBodyBytes := cfg.MaxBodyBytes
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodySize
	}

	return &Client{
		baseURL:      baseURL,
		httpClient:   client,
		maxBodyBytes: maxBodyBytes,
	}, nil
}

// GetValue returns the value of key inside the named secret.
func (c *Client) GetValue(ctx context.Context, secretName, key string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("secrets: client is nil")
	}
	secretName = strings.TrimSpace(secretName)
	if secretName == "" {
		return "", fmt.Errorf("secrets: secret name is required")
	}
	if key == "" {
		return "", fmt.Errorf("secrets: key is required")
	}

	endpoint := c.baseURL + "/secrets/" + url.PathEscape(secretName)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("secrets: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("secrets: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("secrets: secret %q not found", secretName)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("secrets: unexpected status %d", resp.StatusCode)
	}

	body, err := httputil.ReadAllStrict(resp.Body, c.maxBodyBytes)
	if err != nil {
		return "", fmt.Errorf("secrets: read response: %w", err)
	}

	var values map[string]string
	if err := json.Unmarshal(body, &values); err != nil {
		return "", fmt.Errorf("secrets: secret %q is not a JSON object: %w", secretName, err)
	}

	value, ok := values[key]
	if !ok {
		return "", fmt.Errorf("secrets: key %q not found in secret %q", key, secretName)
	}
	return value, nil
}
