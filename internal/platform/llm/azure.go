package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultMaxTokens = 2000
	visionTemp       = 0.1
)

// AzureConfig holds the static configuration for an Azure OpenAI deployment.
type AzureConfig struct {
	Endpoint         string
	APIKey           string
	Deployment       string
	VisionDeployment string
	APIVersion       string
	Temperature      float64
}

// AzureClient implements Completer and VisionCompleter against the Azure
// OpenAI chat completions API. It holds only static configuration and a
// shared HTTP client, so a single instance serves concurrent requests.
type AzureClient struct {
	cfg  AzureConfig
	http *http.Client
}

// NewAzureClient creates a client for the given deployment. If httpClient is
// nil a client with a 90 second timeout is used; individual calls are still
// bounded by their context.
func NewAzureClient(cfg AzureConfig, httpClient *http.Client) *AzureClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second}
	}
	return &AzureClient{cfg: cfg, http: httpClient}
}

type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends a system instruction and user message to the chat deployment
// and returns the raw completion text.
func (c *AzureClient) Complete(ctx context.Context, system, user string, opts ...Option) (string, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	req := chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   defaultMaxTokens,
	}
	if co.temperature != nil {
		req.Temperature = *co.temperature
	}
	if co.maxTokens != nil {
		req.MaxTokens = *co.maxTokens
	}

	return c.post(ctx, c.cfg.Deployment, req)
}

// CompleteVision sends a prompt plus an inline base64 image to the vision
// deployment. The very low temperature keeps medical image analysis output
// consistent between runs.
func (c *AzureClient) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	req := chatRequest{
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []map[string]interface{}{
					{"type": "text", "text": prompt},
					{"type": "image_url", "image_url": map[string]string{"url": dataURL}},
				},
			},
		},
		Temperature: visionTemp,
		MaxTokens:   defaultMaxTokens,
	}

	deployment := c.cfg.VisionDeployment
	if deployment == "" {
		deployment = c.cfg.Deployment
	}
	return c.post(ctx, deployment, req)
}

func (c *AzureClient) post(ctx context.Context, deployment string, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	url := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), deployment, c.cfg.APIVersion)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.cfg.APIKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrUnavailable, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}
