package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const ollamaChatPath = "/api/chat"

// talks to Ollama's native chat API
type OllamaClient struct {
	client *resty.Client
}

// no client timeout is set: a long generation runs until the server answers
func NewOllamaClient(opts Options) (*OllamaClient, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	client := resty.New().
		SetBaseURL(endpoint).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &OllamaClient{client: client}, nil
}

// matches the request schema of /api/chat
type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  ollamaOptions `json:"options"`
}

// zero values are meaningful (temperature 0), so nothing is omitted
type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type ollamaChatResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	Error           string  `json:"error,omitempty"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

// sends one non-streaming chat request
func (c *OllamaClient) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	body := ollamaChatRequest{
		Model:    req.Model,
		Messages: req.Messages,
		Stream:   false,
		Options: ollamaOptions{
			Temperature: req.Temperature,
			TopP:        req.TopP,
			NumPredict:  req.MaxTokens,
		},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(ollamaChatPath)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if resp.IsError() {
		var errResp ollamaErrorResponse
		if err := json.Unmarshal(resp.Body(), &errResp); err == nil && errResp.Error != "" {
			return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode(), errResp.Error)
		}

		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var chatResp ollamaChatResponse
	if err := json.Unmarshal(resp.Body(), &chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if chatResp.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", chatResp.Error)
	}

	if !chatResp.Done {
		return nil, fmt.Errorf("incomplete response (done=false)")
	}

	if chatResp.Message.Content == "" {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text:  chatResp.Message.Content,
		Model: chatResp.Model,
		Usage: Usage{
			InputTokens:  chatResp.PromptEvalCount,
			OutputTokens: chatResp.EvalCount,
		},
	}, nil
}
