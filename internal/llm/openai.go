package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// talks to any OpenAI-compatible chat completions server
// (Ollama's /v1, llama.cpp server, vLLM, LM Studio, ...)
type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(opts Options) (*OpenAIClient, error) {
	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is required")
	}

	clientConfig := openai.DefaultConfig(opts.APIKey)
	clientConfig.BaseURL = endpoint

	return &OpenAIClient{client: openai.NewClientWithConfig(clientConfig)}, nil
}

// go-openai drops a zero temperature from the payload, so the server default
// applies in that one case
func (c *OpenAIClient) GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, msg := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no content in response")
	}

	return &TextGenerationResponse{
		Text:  resp.Choices[0].Message.Content,
		Model: resp.Model,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
