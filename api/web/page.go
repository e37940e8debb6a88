package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"codeberg.org/llamaquill/quill/internal/blog"
	apperrors "codeberg.org/llamaquill/quill/internal/errors"
	"codeberg.org/llamaquill/quill/internal/logger"
	"codeberg.org/llamaquill/quill/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed templates/index.html
var templatesFS embed.FS

const pageTemplate = "index.html"

// serves the blog form as an HTML page
type Page struct {
	generator Generator
	gate      *blog.Gate
	models    []string
	defaults  blog.Settings

	tmpl     *template.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

func NewPage(generator Generator, gate *blog.Gate, models []string, defaults blog.Settings) (*Page, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/"+pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}

	return &Page{
		generator: generator,
		gate:      gate,
		models:    models,
		defaults:  defaults,
		tmpl:      tmpl,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy:    bluemonday.UGCPolicy(),
	}, nil
}

// renders the empty form
func (p *Page) Show(c *gin.Context) {
	p.render(c, http.StatusOK, p.data(p.defaultValues()))
}

// validates the posted form, runs one generation and renders the outcome
func (p *Page) Submit(c *gin.Context) {
	var values FormValues
	if err := c.ShouldBind(&values); err != nil {
		apperrors.BadRequest(c, "invalid form", err)
		return
	}

	data := p.data(values)

	form, verr := p.check(values)
	if verr != nil {
		metrics.RecordValidationFailure(verr.Field)
		data.Invalid = verr
		data.Advanced = !isPrimary(verr.Field)
		p.render(c, http.StatusBadRequest, data)
		return
	}

	request, err := p.generator.Prepare(form)
	if err != nil {
		if !errors.As(err, &data.Invalid) {
			data.Invalid = &blog.ValidationError{Message: err.Error()}
		}
		data.Advanced = !isPrimary(data.Invalid.Field)
		p.render(c, http.StatusBadRequest, data)
		return
	}

	if err := p.gate.TryAcquire(); err != nil {
		metrics.RecordBusy()
		data.Busy = true
		p.render(c, http.StatusConflict, data)
		return
	}
	defer p.gate.Release()

	result := p.generator.Generate(c.Request.Context(), request)
	if result.Failed() {
		data.Failure = &blog.Failure{
			Message: apperrors.SanitizeMessage(result.Failure.Message),
			Hints:   result.Failure.Hints,
		}
		p.render(c, http.StatusBadGateway, data)
		return
	}

	data.Rendered = p.toHTML(result.Text)
	p.render(c, http.StatusOK, data)
}

// converts the model's markdown to HTML with anything unsafe stripped. the
// source text itself is not altered.
func (p *Page) toHTML(text string) template.HTML {
	var buf bytes.Buffer
	if err := p.markdown.Convert([]byte(text), &buf); err != nil {
		logger.Warn("failed to render markdown, showing plain text", "error", err)
		return template.HTML("<pre>" + template.HTMLEscapeString(text) + "</pre>") //nolint:gosec // escaped above
	}

	return template.HTML(p.policy.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized by bluemonday
}

// topic and word count are reported before any settings problem, in the
// same order the form validator uses
func (p *Page) check(v FormValues) (blog.Form, *blog.ValidationError) {
	var verr *blog.ValidationError

	if _, err := blog.Validate(v.Topic, v.WordCount); errors.As(err, &verr) {
		return blog.Form{}, verr
	}
	if _, err := blog.ParseAudience(v.Audience); errors.As(err, &verr) {
		return blog.Form{}, verr
	}

	form, verr := p.parse(v)
	if verr != nil {
		return blog.Form{}, verr
	}

	if verr := blog.CheckTopicLength(v.Topic); verr != nil {
		return blog.Form{}, verr
	}

	return form, nil
}

// converts posted text to a form. numeric settings that do not parse are
// reported against their field.
func (p *Page) parse(v FormValues) (blog.Form, *blog.ValidationError) {
	settings := p.defaults

	if v.Model != "" {
		settings.Model = v.Model
	}
	if v.Endpoint != "" {
		settings.Endpoint = v.Endpoint
	}

	if v.Temperature != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Temperature), 64)
		if err != nil {
			return blog.Form{}, &blog.ValidationError{Field: blog.FieldTemperature, Message: "temperature must be a number"}
		}
		settings.Temperature = f
	}

	if v.TopP != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.TopP), 64)
		if err != nil {
			return blog.Form{}, &blog.ValidationError{Field: blog.FieldTopP, Message: "top_p must be a number"}
		}
		settings.TopP = f
	}

	if v.MaxTokens != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v.MaxTokens))
		if err != nil {
			return blog.Form{}, &blog.ValidationError{Field: blog.FieldMaxTokens, Message: "max tokens must be an integer"}
		}
		settings.MaxTokens = n
	}

	return blog.Form{
		Topic:     v.Topic,
		WordCount: v.WordCount,
		Audience:  blog.Audience(v.Audience),
		Settings:  settings,
	}, nil
}

func (p *Page) defaultValues() FormValues {
	f := blog.DefaultForm(p.models, p.defaults.Endpoint)
	f.Settings = p.defaults

	return FormValues{
		WordCount:   f.WordCount,
		Audience:    string(f.Audience),
		Model:       f.Settings.Model,
		Temperature: strconv.FormatFloat(f.Settings.Temperature, 'f', -1, 64),
		TopP:        strconv.FormatFloat(f.Settings.TopP, 'f', -1, 64),
		MaxTokens:   strconv.Itoa(f.Settings.MaxTokens),
		Endpoint:    f.Settings.Endpoint,
	}
}

func (p *Page) data(values FormValues) pageData {
	if values.Audience == "" {
		values.Audience = string(blog.DefaultAudience)
	}
	if values.Model == "" {
		values.Model = p.defaults.Model
	}

	return pageData{
		Form:        values,
		Audiences:   blog.Audiences,
		Models:      p.models,
		Temperature: blog.TemperatureRange,
		TopP:        blog.TopPRange,
		MaxTokens:   blog.MaxTokensRange,
	}
}

// executes into a buffer so a template failure can still answer with a 500
func (p *Page) render(c *gin.Context, status int, data pageData) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, pageTemplate, data); err != nil {
		apperrors.InternalError(c, "failed to render page", err)
		return
	}

	c.Render(status, render.Data{
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	})
}

func isPrimary(field string) bool {
	switch field {
	case "", blog.FieldTopic, blog.FieldWordCount, blog.FieldAudience:
		return true
	}

	return false
}
