package config

import (
	"time"

	"codeberg.org/llamaquill/quill/internal/llm"
)

// holds the resolved runtime configuration
type Config struct {
	Environment string
	LogLevel    string
	LogFile     string // empty means the TUI discards logs

	Provider llm.Provider
	Endpoint string   // default generation server, editable per submission
	Models   []string // first entry is the default selection
	APIKey   string   // only sent by the openai-compatible provider

	Addr            string
	RateLimit       string // ulule format, e.g. "30-M"
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// reports whether the process runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// returns the model selected by default
func (c *Config) DefaultModel() string {
	if len(c.Models) == 0 {
		return ""
	}

	return c.Models[0]
}
