package web

import (
	"context"
	"html/template"

	"codeberg.org/llamaquill/quill/internal/blog"
)

// validates forms and runs generations. *blog.Service satisfies it.
type Generator interface {
	Prepare(f blog.Form) (blog.Request, error)
	Generate(ctx context.Context, req blog.Request) blog.Result
}

// the posted fields, kept as text so the page can echo them back verbatim
type FormValues struct {
	Topic       string `form:"topic"`
	WordCount   string `form:"word_count"`
	Audience    string `form:"audience"`
	Model       string `form:"model"`
	Temperature string `form:"temperature"`
	TopP        string `form:"top_p"`
	MaxTokens   string `form:"max_tokens"`
	Endpoint    string `form:"endpoint"`
}

type pageData struct {
	Form      FormValues
	Audiences []blog.Audience
	Models    []string

	Temperature blog.FloatRange
	TopP        blog.FloatRange
	MaxTokens   blog.IntRange

	Advanced bool
	Invalid  *blog.ValidationError
	Busy     bool
	Failure  *blog.Failure
	Rendered template.HTML
}
