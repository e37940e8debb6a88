package blog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	MinWords = 50
	MaxWords = 2000

	// longest topic accepted over HTTP, in runes
	MaxTopicLength = 1000
)

// field names reported by ValidationError, matching the form field names
const (
	FieldTopic       = "topic"
	FieldWordCount   = "word_count"
	FieldAudience    = "audience"
	FieldModel       = "model"
	FieldTemperature = "temperature"
	FieldTopP        = "top_p"
	FieldMaxTokens   = "max_tokens"
	FieldEndpoint    = "endpoint"
)

// a user input problem. it is shown next to the form and never reaches the
// generation server.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// checks the two primary fields in order and stops at the first failure.
// returns the parsed word count.
func Validate(topic, wordCountText string) (int, error) {
	if strings.TrimSpace(topic) == "" {
		return 0, &ValidationError{Field: FieldTopic, Message: "topic required"}
	}

	words, err := strconv.Atoi(strings.TrimSpace(wordCountText))
	if err != nil {
		return 0, &ValidationError{Field: FieldWordCount, Message: "word count must be an integer"}
	}

	if words < MinWords || words > MaxWords {
		return 0, &ValidationError{
			Field:   FieldWordCount,
			Message: fmt.Sprintf("word count out of range (%d-%d)", MinWords, MaxWords),
		}
	}

	return words, nil
}

// bounds request size on the network surfaces. the terminal form has no
// limit on topic length.
func CheckTopicLength(topic string) *ValidationError {
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return &ValidationError{
			Field:   FieldTopic,
			Message: fmt.Sprintf("topic too long (max %d characters)", MaxTopicLength),
		}
	}

	return nil
}

// rejects advanced settings outside their bounds. submitted values are never
// clamped.
func ValidateSettings(s Settings) error {
	if strings.TrimSpace(s.Model) == "" {
		return &ValidationError{Field: FieldModel, Message: "model required"}
	}

	if !TemperatureRange.Contains(s.Temperature) {
		return rangeError(FieldTemperature, "temperature", TemperatureRange.Min, TemperatureRange.Max)
	}

	if !TopPRange.Contains(s.TopP) {
		return rangeError(FieldTopP, "top_p", TopPRange.Min, TopPRange.Max)
	}

	if !MaxTokensRange.Contains(s.MaxTokens) {
		return &ValidationError{
			Field:   FieldMaxTokens,
			Message: fmt.Sprintf("max tokens out of range (%d-%d)", MaxTokensRange.Min, MaxTokensRange.Max),
		}
	}

	return ValidateEndpoint(s.Endpoint)
}

// accepts absolute http(s) URLs only
func ValidateEndpoint(endpoint string) error {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return &ValidationError{Field: FieldEndpoint, Message: "endpoint required"}
	}

	u, err := url.Parse(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: FieldEndpoint, Message: "endpoint must be an absolute http(s) URL"}
	}

	return nil
}

func rangeError(field, label string, min, max float64) error {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s out of range (%g-%g)", label, min, max),
	}
}
