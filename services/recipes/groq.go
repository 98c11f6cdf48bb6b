package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/grocery-assistant/backend/internal/errors"
	"github.com/grocery-assistant/backend/internal/httputil"
)

const (
	// DefaultGroqURL is the OpenAI-compatible chat completions endpoint.
	DefaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

	generateModel = "llama3-8b-8192"
	predictModel  = "llama3-70b-8192"

	defaultGroqTimeout = 30 * time.Second
	maxGroqBody        = 1 << 20
)

// GroqClient calls the Groq chat completions API. A client with an empty API
// key is valid but unconfigured; calls fail fast without touching the network.
type GroqClient struct {
	apiKey     string
	apiURL     string
	httpClient *http.Client
}

// GroqConfig configures a GroqClient.
type GroqConfig struct {
	APIKey     string
	APIURL     string
	HTTPClient *http.Client
}

// NewGroqClient creates a Groq API client.
func NewGroqClient(cfg GroqConfig) *GroqClient {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = DefaultGroqURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultGroqTimeout}
	}
	return &GroqClient{
		apiKey:     cfg.APIKey,
		apiURL:     apiURL,
		httpClient: httpClient,
	}
}

// Configured reports whether an API key is present.
func (c *GroqClient) Configured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	TopP           float64         `json:"top_p,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

// complete posts a chat completion request and returns the first choice's
// message content.
func (c *GroqClient) complete(ctx context.Context, req chatRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", errors.Internal("Failed to encode completion request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Internal("Failed to build completion request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", errors.Upstream("Completion request failed", err)
	}
	defer resp.Body.Close()

	body, err := httputil.ReadAllStrict(resp.Body, maxGroqBody)
	if err != nil {
		return "", errors.Upstream("Failed to read completion response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", errors.Upstream(fmt.Sprintf("Completion API returned status %d", resp.StatusCode), nil)
	}

	content := gjson.GetBytes(body, "choices.0.message.content")
	if !content.Exists() {
		return "", errors.Upstream("Completion response missing content", nil)
	}
	return content.String(), nil
}

// GenerateRecipe asks the model for a Markdown recipe using some or all of the
// given ingredients.
func (c *GroqClient) GenerateRecipe(ctx context.Context, items []string) (string, error) {
	if !c.Configured() {
		return "", errors.Unavailable("Recipe service is not configured properly")
	}

	return c.complete(ctx, chatRequest{
		Model: generateModel,
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: "You are a helpful assistant that generates simple recipes based on a list of ingredients. Format the recipe clearly using Markdown.",
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Generate a simple recipe using some or all of these ingredients: %s. If you cannot make a reasonable recipe, say so.", strings.Join(items, ", ")),
			},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
		TopP:        1,
	})
}

// FoodInfo is a predicted category and shelf-life description for a food item.
type FoodInfo struct {
	Category string `json:"category"`
	Expiry   string `json:"expiry"`
}

// PredictFoodInfo asks the model for a food item's category and typical shelf
// life. The model is constrained to a JSON object response; anything else is
// an error.
func (c *GroqClient) PredictFoodInfo(ctx context.Context, itemName string) (FoodInfo, error) {
	if !c.Configured() {
		return FoodInfo{}, errors.Unavailable("AI prediction not available")
	}

	prompt := fmt.Sprintf(`For the food item '%s', please provide:
1. The food category (e.g., Produce, Dairy, Meat, Seafood, Bakery, Pantry, Frozen, Beverage)
2. The typical shelf life/expiry information

Return ONLY the following JSON format with no additional text:
{
    "category": "Category name",
    "expiry": "Detailed expiry information"
}`, itemName)

	content, err := c.complete(ctx, chatRequest{
		Model: predictModel,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful AI that provides accurate food storage information."},
			{Role: "user", Content: prompt},
		},
		Temperature:    0.2,
		MaxTokens:      500,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return FoodInfo{}, err
	}

	var info FoodInfo
	if err := json.Unmarshal([]byte(content), &info); err != nil {
		return FoodInfo{}, errors.Internal("Failed to parse food information", err)
	}
	if info.Category == "" || info.Expiry == "" {
		return FoodInfo{}, errors.Internal("Failed to parse food information", fmt.Errorf("missing category or expiry in response"))
	}
	return info, nil
}
