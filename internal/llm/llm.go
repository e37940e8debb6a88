package llm

import "fmt"

// creates a text generator for the given provider
func New(provider Provider, opts Options) (TextGenerator, error) {
	switch provider {
	case ProviderOllama:
		return NewOllamaClient(opts)
	case ProviderOpenAI:
		return NewOpenAIClient(opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %q", provider)
	}
}
