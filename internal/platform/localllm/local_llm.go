package localllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"recipehub/internal/chef"
)

const (
	// DefaultURL is the chat completions endpoint of a local LM Studio server.
	DefaultURL = "http://localhost:1234/v1/chat/completions"
	// DefaultModel is the model requested when none is configured.
	DefaultModel = "gemma-3-12b-it:2"
)

// Client represents a client for the local LLM.
type Client struct {
	httpClient *http.Client
	apiURL     string
	model      string
	logger     *zap.Logger
}

// NewClient creates a new client for the local LLM.
func NewClient(apiURL, model string, logger *zap.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		apiURL:     apiURL,
		model:      model,
		logger:     logger,
	}
}

// Request represents the request body for the local LLM.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens"`
}

// Message represents a message in the request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Response represents the response from the local LLM.
type Response struct {
	Choices []Choice `json:"choices"`
}

// Choice represents a choice in the response.
type Choice struct {
	Message Message `json:"message"`
}

// GenerateContent sends a single user prompt and returns the first reply.
func (c *Client) GenerateContent(ctx context.Context, prompt string, temperature, topP float64) (string, error) {
	reqBody := Request{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   1024,
	}

	reqBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(reqBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("received non-OK status code: %d", resp.StatusCode)
	}

	var llmResp Response
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("no content found in response")
	}

	c.logger.Debug("local llm response", zap.Int("length", len(llmResp.Choices[0].Message.Content)))
	return llmResp.Choices[0].Message.Content, nil
}

// AskChef answers a question about a recipe.
func (c *Client) AskChef(ctx context.Context, recipeContext, question string) (string, error) {
	reply, err := c.GenerateContent(ctx, chef.QuestionPrompt(recipeContext, question), 0.7, 0.9)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return chef.Answer(reply), nil
}

// ModerateMessage reports whether a chat message should be flagged.
func (c *Client) ModerateMessage(ctx context.Context, message string) (bool, error) {
	reply, err := c.GenerateContent(ctx, chef.ModerationPrompt(message), 0, 0)
	if err != nil {
		return false, fmt.Errorf("failed to generate content: %w", err)
	}
	return chef.IsFlagged(reply), nil
}
