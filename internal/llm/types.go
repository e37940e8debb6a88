package llm

import (
	"context"
	"fmt"
	"strings"
)

// represents different LLM providers
type Provider string

const (
	// native Ollama chat API
	ProviderOllama Provider = "ollama"
	// any OpenAI-compatible chat completions server
	ProviderOpenAI Provider = "openai"
)

const DefaultOllamaEndpoint = "http://localhost:11434"

// message roles accepted by both providers
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// generates text from a list of chat messages
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextGenerationRequest) (*TextGenerationResponse, error)
}

// represents a single chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// one completion call. sampling parameters are sent as given, without clamping.
type TextGenerationRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
	TopP        float64
	MaxTokens   int
}

type TextGenerationResponse struct {
	Text  string
	Model string
	Usage Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// connection settings for a provider client
type Options struct {
	Endpoint string
	APIKey   string // openai-compatible servers only
}

// parses a provider name, case-insensitively
func ParseProvider(name string) (Provider, error) {
	switch p := Provider(strings.ToLower(strings.TrimSpace(name))); p {
	case ProviderOllama, ProviderOpenAI:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported provider: %q", name)
	}
}
