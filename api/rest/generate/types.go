package generate

import (
	"bytes"
	"context"
	"encoding/json"

	"codeberg.org/llamaquill/quill/internal/blog"
)

// validates forms and runs generations. *blog.Service satisfies it.
type Generator interface {
	Prepare(f blog.Form) (blog.Request, error)
	Generate(ctx context.Context, req blog.Request) blog.Result
}

// Request represents the request body for blog generation. omitted advanced
// settings take the form defaults.
type Request struct {
	Topic       string    `json:"topic"`
	WordCount   WordCount `json:"word_count"`
	Audience    string    `json:"audience"`
	Model       string    `json:"model"`
	Temperature *float64  `json:"temperature"`
	TopP        *float64  `json:"top_p"`
	MaxTokens   *int      `json:"max_tokens"`
	Endpoint    string    `json:"endpoint"`
}

// Response represents the response for a successful generation
type Response struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// the word count exactly as sent. a JSON string is taken verbatim and a JSON
// number keeps its literal text, so "300.5" and 300.5 fail the same way.
type WordCount string

func (w *WordCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*w = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WordCount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*w = WordCount(n.String())

	return nil
}

// fills the form, taking defaults for omitted settings
func (r Request) toForm(defaults blog.Settings) blog.Form {
	settings := defaults

	if r.Model != "" {
		settings.Model = r.Model
	}
	if r.Temperature != nil {
		settings.Temperature = *r.Temperature
	}
	if r.TopP != nil {
		settings.TopP = *r.TopP
	}
	if r.MaxTokens != nil {
		settings.MaxTokens = *r.MaxTokens
	}
	if r.Endpoint != "" {
		settings.Endpoint = r.Endpoint
	}

	return blog.Form{
		Topic:     r.Topic,
		WordCount: string(r.WordCount),
		Audience:  blog.Audience(r.Audience),
		Settings:  settings,
	}
}
