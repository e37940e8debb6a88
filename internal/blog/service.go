package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "codeberg.org/llamaquill/quill/internal/errors"
	"codeberg.org/llamaquill/quill/internal/llm"
	"codeberg.org/llamaquill/quill/internal/logger"
	"codeberg.org/llamaquill/quill/internal/metrics"
	"github.com/google/uuid"
)

// builds a client for the endpoint chosen on the form
type GeneratorFactory func(endpoint string) (llm.TextGenerator, error)

// returns a factory for the configured provider
func ProviderFactory(provider llm.Provider, apiKey string) GeneratorFactory {
	return func(endpoint string) (llm.TextGenerator, error) {
		return llm.New(provider, llm.Options{Endpoint: endpoint, APIKey: apiKey})
	}
}

// turns validated requests into results. one call per request, no retry.
type Service struct {
	provider     string
	newGenerator GeneratorFactory
}

func NewService(provider llm.Provider, factory GeneratorFactory) *Service {
	return &Service{
		provider:     string(provider),
		newGenerator: factory,
	}
}

// NewRequest that also counts rejected fields
func (s *Service) Prepare(f Form) (Request, error) {
	req, err := NewRequest(f)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			metrics.RecordValidationFailure(verr.Field)
		}

		return Request{}, err
	}

	return req, nil
}

// sends req once and waits for the answer. caller cancellation does not
// abort a call that was already issued, and no deadline is imposed here.
func (s *Service) Generate(ctx context.Context, req Request) Result {
	ctx = context.WithoutCancel(ctx)

	log := logger.FromContext(ctx).With(
		"submission_id", uuid.NewString(),
		"provider", s.provider,
		"model", req.Model(),
		"endpoint", req.Endpoint(),
	)

	log.Info("generation started",
		"audience", string(req.Audience()),
		"word_count", req.WordCount(),
		"temperature", req.Temperature(),
		"top_p", req.TopP(),
		"max_tokens", req.MaxTokens(),
	)

	start := time.Now()

	text, err := s.call(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		info := apperrors.Classify(err)
		metrics.RecordGeneration(s.provider, elapsed, info.Category)
		log.Warn("generation failed", "error", err, "category", info.Category, "duration", elapsed)

		return Failed(err)
	}

	metrics.RecordGeneration(s.provider, elapsed, "")
	log.Info("generation complete", "duration", elapsed, "chars", len(text))

	return Succeeded(text)
}

func (s *Service) call(ctx context.Context, req Request) (string, error) {
	content, err := BuildPrompt(ctx, req)
	if err != nil {
		return "", err
	}

	generator, err := s.newGenerator(req.Endpoint())
	if err != nil {
		return "", fmt.Errorf("failed to create client: %w", err)
	}

	resp, err := generator.GenerateText(ctx, llm.TextGenerationRequest{
		Model:       req.Model(),
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: content}},
		Temperature: req.Temperature(),
		TopP:        req.TopP(),
		MaxTokens:   req.MaxTokens(),
	})
	if err != nil {
		return "", err
	}

	return resp.Text, nil
}
