package config

import (
	"fmt"
	"strings"
	"time"

	"codeberg.org/llamaquill/quill/internal/blog"
	"codeberg.org/llamaquill/quill/internal/llm"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	limiter "github.com/ulule/limiter/v3"
)

const envPrefix = "QUILL"

// configuration keys shared by env vars (QUILL_<KEY>), the config file and CLI flags
const (
	KeyConfigFile      = "config"
	KeyEnv             = "env"
	KeyLogLevel        = "log_level"
	KeyLogFile         = "log_file"
	KeyProvider        = "provider"
	KeyEndpoint        = "endpoint"
	KeyModels          = "models"
	KeyAPIKey          = "api_key"
	KeyAddr            = "addr"
	KeyRateLimit       = "rate_limit"
	KeyCORSOrigins     = "cors_origins"
	KeyShutdownTimeout = "shutdown_timeout"
)

// the model list offered by the form when nothing else is configured
var DefaultModels = []string{"llama3", "mistral", "phi3", "qwen2.5"}

// returns a viper instance with defaults and env binding in place
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyEnv, "development")
	v.SetDefault(KeyProvider, string(llm.ProviderOllama))
	v.SetDefault(KeyEndpoint, llm.DefaultOllamaEndpoint)
	v.SetDefault(KeyModels, strings.Join(DefaultModels, ","))
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyRateLimit, "30-M")
	v.SetDefault(KeyCORSOrigins, "*")
	v.SetDefault(KeyShutdownTimeout, 10*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// loads configuration from .env, environment variables, the optional config
// file and whatever flags were bound to v
func Load(v *viper.Viper) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - a .env file is optional
	}

	if path := v.GetString(KeyConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	provider, err := llm.ParseProvider(v.GetString(KeyProvider))
	if err != nil {
		return nil, err
	}

	endpoint := strings.TrimSpace(v.GetString(KeyEndpoint))
	if err := checkEndpoint(endpoint); err != nil {
		return nil, err
	}

	models := stringList(v.Get(KeyModels))
	if len(models) == 0 {
		models = append([]string(nil), DefaultModels...)
	}

	rateLimit := v.GetString(KeyRateLimit)
	if _, err := limiter.NewRateFromFormatted(rateLimit); err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", KeyRateLimit, rateLimit, err)
	}

	origins := stringList(v.Get(KeyCORSOrigins))
	for _, origin := range origins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return nil, fmt.Errorf("invalid %s entry %q: expected * or an http(s) origin", KeyCORSOrigins, origin)
		}
	}

	return &Config{
		Environment:     v.GetString(KeyEnv),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFile:         v.GetString(KeyLogFile),
		Provider:        provider,
		Endpoint:        endpoint,
		Models:          models,
		APIKey:          v.GetString(KeyAPIKey),
		Addr:            v.GetString(KeyAddr),
		RateLimit:       rateLimit,
		CORSOrigins:     origins,
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}, nil
}

func checkEndpoint(endpoint string) error {
	if err := blog.ValidateEndpoint(endpoint); err != nil {
		return fmt.Errorf("invalid %s %q: %w", KeyEndpoint, endpoint, err)
	}

	return nil
}

// accepts a comma separated string (env, flags) or a yaml list
func stringList(raw any) []string {
	var items []string

	switch val := raw.(type) {
	case string:
		items = strings.Split(val, ",")
	case []string:
		items = val
	case []any:
		for _, item := range val {
			items = append(items, fmt.Sprint(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}
