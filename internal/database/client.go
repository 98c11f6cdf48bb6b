// Package database provides the document store integration. Persistence is a
// REST document store in production and an in-memory store for local
// development and tests; services only see the Repository interface.
package database

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/grocery-assistant/backend/internal/httputil"
)

// ErrUniqueViolation is returned when an insert collides with a unique
// constraint. The store, not the application, serializes concurrent writers.
var ErrUniqueViolation = errors.New("unique constraint violation")

const (
	maxResponseBytes  = 8 << 20  // 8 MiB
	maxErrorBodyBytes = 32 << 10 // 32 KiB
)

// Client wraps the document store's REST API.
type Client struct {
	url        string
	serviceKey string
	httpClient *http.Client
}

// Config holds document store configuration.
type Config struct {
	URL        string
	ServiceKey string
}

// NewClient creates a new document store client.
func NewClient(cfg Config) (*Client, error) {
	url := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if url == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	parsed, err := neturl.Parse(url)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("store URL must be a valid URL")
	}
	if parsed.User != nil {
		return nil, fmt.Errorf("store URL must not include user info")
	}

	transport := http.DefaultTransport
	if base, ok := http.DefaultTransport.(*http.Transport); ok {
		cloned := base.Clone()
		if cloned.TLSClientConfig == nil {
			cloned.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		} else if cloned.TLSClientConfig.MinVersion < tls.VersionTLS12 {
			cloned.TLSClientConfig = cloned.TLSClientConfig.Clone()
			cloned.TLSClientConfig.MinVersion = tls.VersionTLS12
		}
		transport = cloned
	}

	return &Client{
		url:        url,
		serviceKey: cfg.ServiceKey,
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}, nil
}

// request makes an HTTP request to the store's REST API.
func (c *Client) request(ctx context.Context, method, collection string, body interface{}, query string) ([]byte, error) {
	url := fmt.Sprintf("%s/rest/v1/%s", c.url, collection)
	if query != "" {
		url += "?" + query
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusConflict {
		return nil, ErrUniqueViolation
	}
	if resp.StatusCode >= 400 {
		respBody, truncated, readErr := httputil.ReadAllWithLimit(resp.Body, maxErrorBodyBytes)
		if readErr != nil {
			return nil, fmt.Errorf("read error response: %w", readErr)
		}
		msg := strings.TrimSpace(string(respBody))
		if truncated {
			msg += "...(truncated)"
		}
		return nil, fmt.Errorf("store API error %d: %s", resp.StatusCode, msg)
	}

	respBody, err := httputil.ReadAllStrict(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return respBody, nil
}
