package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOllamaClient(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		want     string
		wantErr  bool
	}{
		{name: "plain endpoint", endpoint: "http://localhost:11434", want: "http://localhost:11434"},
		{name: "trailing slash removed", endpoint: "http://localhost:11434/", want: "http://localhost:11434"},
		{name: "missing endpoint", endpoint: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewOllamaClient(Options{Endpoint: tt.endpoint})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, client.client.BaseURL)
		})
	}
}

func TestOllamaClient_GenerateTextSendsParametersUnchanged(t *testing.T) {
	var got ollamaChatRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{
			Model:           "mistral",
			Message:         Message{Role: RoleAssistant, Content: "# Title\n\nBody"},
			Done:            true,
			PromptEvalCount: 12,
			EvalCount:       34,
		})
	}))
	defer server.Close()

	client, err := NewOllamaClient(Options{Endpoint: server.URL})
	require.NoError(t, err)

	resp, err := client.GenerateText(context.Background(), TextGenerationRequest{
		Model:       "mistral",
		Messages:    []Message{{Role: RoleUser, Content: "write"}},
		Temperature: 0,
		TopP:        0.35,
		MaxTokens:   4096,
	})

	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nBody", resp.Text)
	assert.Equal(t, 12, resp.Usage.InputTokens)
	assert.Equal(t, 34, resp.Usage.OutputTokens)

	assert.Equal(t, "mistral", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, RoleUser, got.Messages[0].Role)
	assert.Equal(t, "write", got.Messages[0].Content)
	assert.Equal(t, 0.0, got.Options.Temperature)
	assert.Equal(t, 0.35, got.Options.TopP)
	assert.Equal(t, 4096, got.Options.NumPredict)
}

func TestOllamaClient_ZeroTemperatureIsSerialized(t *testing.T) {
	var raw map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		_ = json.NewEncoder(w).Encode(ollamaChatResponse{Message: Message{Content: "ok"}, Done: true})
	}))
	defer server.Close()

	client, err := NewOllamaClient(Options{Endpoint: server.URL})
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), TextGenerationRequest{Model: "phi3"})
	require.NoError(t, err)

	options, ok := raw["options"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, options, "temperature")
}

func TestOllamaClient_GenerateTextErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantContains string
	}{
		{
			name:         "model not found",
			status:       http.StatusNotFound,
			body:         `{"error":"model \"llama9\" not found, try pulling it first"}`,
			wantContains: "not found",
		},
		{
			name:         "plain text server error",
			status:       http.StatusInternalServerError,
			body:         "boom",
			wantContains: "status 500: boom",
		},
		{
			name:         "error field on 200",
			status:       http.StatusOK,
			body:         `{"error":"out of memory"}`,
			wantContains: "out of memory",
		},
		{
			name:         "incomplete response",
			status:       http.StatusOK,
			body:         `{"message":{"role":"assistant","content":"partial"},"done":false}`,
			wantContains: "incomplete response",
		},
		{
			name:         "empty content",
			status:       http.StatusOK,
			body:         `{"message":{"role":"assistant","content":""},"done":true}`,
			wantContains: "no content",
		},
		{
			name:         "malformed json",
			status:       http.StatusOK,
			body:         `{"message":`,
			wantContains: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewOllamaClient(Options{Endpoint: server.URL})
			require.NoError(t, err)

			resp, err := client.GenerateText(context.Background(), TextGenerationRequest{Model: "llama9"})

			assert.Nil(t, resp)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestOllamaClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	client, err := NewOllamaClient(Options{Endpoint: endpoint})
	require.NoError(t, err)

	_, err = client.GenerateText(context.Background(), TextGenerationRequest{Model: "llama3"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}
