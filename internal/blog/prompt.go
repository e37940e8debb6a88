package blog

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

// the one fixed instruction sent to the model
const PromptTemplate = `You are an expert content writer.
Write a clear, engaging blog post for the audience: {audience}.
Topic: {topic}
Target length: about {words} words (±10%).

Constraints:
- Inviting intro, 2–4 short sections with headings, concise conclusion.
- Short paragraphs (3–4 lines), concrete tips/examples, no fluff.
- No code unless essential.
Now write the blog.`

var blogPrompt = prompt.FromMessages(schema.FString, schema.UserMessage(PromptTemplate))

// renders the template for r and returns the user message content
func BuildPrompt(ctx context.Context, r Request) (string, error) {
	messages, err := blogPrompt.Format(ctx, map[string]any{
		"audience": string(r.Audience()),
		"topic":    r.Topic(),
		"words":    r.WordCount(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to format prompt: %w", err)
	}

	if len(messages) != 1 {
		return "", fmt.Errorf("expected one prompt message, got %d", len(messages))
	}

	return messages[0].Content, nil
}
