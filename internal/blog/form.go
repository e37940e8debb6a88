package blog

import (
	"math"
	"strconv"
	"strings"
)

// who the post is written for
type Audience string

const (
	AudienceResearchers    Audience = "Researchers"
	AudienceDataScientists Audience = "Data Scientists"
	AudienceGeneral        Audience = "General Audience"
)

const DefaultAudience = AudienceGeneral

// selector order
var Audiences = []Audience{AudienceResearchers, AudienceDataScientists, AudienceGeneral}

// accepts the display spelling in any case. empty input picks the default.
func ParseAudience(raw string) (Audience, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultAudience, nil
	}

	for _, a := range Audiences {
		if strings.EqualFold(raw, string(a)) {
			return a, nil
		}
	}

	return "", &ValidationError{Field: FieldAudience, Message: "unknown audience " + raw}
}

// inclusive bounds and step of a float control
type FloatRange struct {
	Min, Max, Step float64
}

func (r FloatRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// moves v by dir steps and clamps to the bounds. the result is rounded to
// the step grid so repeated stepping does not drift.
func (r FloatRange) Move(v float64, dir int) float64 {
	next := v + float64(dir)*r.Step
	next = math.Round(next/r.Step) * r.Step
	next = math.Round(next*100) / 100

	return math.Min(r.Max, math.Max(r.Min, next))
}

// inclusive bounds and step of an integer control
type IntRange struct {
	Min, Max, Step int
}

func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

func (r IntRange) Move(v, dir int) int {
	next := v + dir*r.Step
	if next < r.Min {
		return r.Min
	}
	if next > r.Max {
		return r.Max
	}

	return next
}

var (
	TemperatureRange = FloatRange{Min: 0, Max: 1, Step: 0.05}
	TopPRange        = FloatRange{Min: 0.1, Max: 1, Step: 0.05}
	MaxTokensRange   = IntRange{Min: 128, Max: 4096, Step: 50}
)

const (
	DefaultTemperature = 0.2
	DefaultTopP        = 0.9
	DefaultMaxTokens   = 700
)

// the advanced section of the form
type Settings struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
	Endpoint    string
}

// the first model of the list is preselected
func DefaultSettings(models []string, endpoint string) Settings {
	s := Settings{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
		Endpoint:    endpoint,
	}
	if len(models) > 0 {
		s.Model = models[0]
	}

	return s
}

const DefaultWordCount = 500

// raw field values as entered. WordCount stays text until validated.
type Form struct {
	Topic     string
	WordCount string
	Audience  Audience
	Settings  Settings
}

// a blank topic with every other field at its default
func DefaultForm(models []string, endpoint string) Form {
	return Form{
		WordCount: strconv.Itoa(DefaultWordCount),
		Audience:  DefaultAudience,
		Settings:  DefaultSettings(models, endpoint),
	}
}

// a validated submission. fields are only readable, so a request cannot
// change between validation and the call.
type Request struct {
	topic       string
	wordCount   int
	audience    Audience
	model       string
	temperature float64
	topP        float64
	maxTokens   int
	endpoint    string
}

// validates every field and builds the request. only the first failure is
// reported.
func NewRequest(f Form) (Request, error) {
	words, err := Validate(f.Topic, f.WordCount)
	if err != nil {
		return Request{}, err
	}

	audience, err := ParseAudience(string(f.Audience))
	if err != nil {
		return Request{}, err
	}

	if err := ValidateSettings(f.Settings); err != nil {
		return Request{}, err
	}

	return Request{
		topic:       strings.TrimSpace(f.Topic),
		wordCount:   words,
		audience:    audience,
		model:       strings.TrimSpace(f.Settings.Model),
		temperature: f.Settings.Temperature,
		topP:        f.Settings.TopP,
		maxTokens:   f.Settings.MaxTokens,
		endpoint:    strings.TrimSpace(f.Settings.Endpoint),
	}, nil
}

func (r Request) Topic() string { return r.topic }
func (r Request) WordCount() int { return r.wordCount }
func (r Request) Audience() Audience { return r.audience }
func (r Request) Model() string { return r.model }
func (r Request) Temperature() float64 { return r.temperature }
func (r Request) TopP() float64 { return r.topP }
func (r Request) MaxTokens() int { return r.maxTokens }
func (r Request) Endpoint() string { return r.endpoint }
