package main

import (
	"fmt"
	"io"
	"os"

	"codeberg.org/llamaquill/quill/internal/blog"
	"codeberg.org/llamaquill/quill/internal/config"
	"codeberg.org/llamaquill/quill/internal/logger"
	"codeberg.org/llamaquill/quill/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

// flag name for each config key, where they differ
var flagKeys = map[string]string{
	"config":           config.KeyConfigFile,
	"env":              config.KeyEnv,
	"log-level":        config.KeyLogLevel,
	"log-file":         config.KeyLogFile,
	"provider":         config.KeyProvider,
	"endpoint":         config.KeyEndpoint,
	"models":           config.KeyModels,
	"api-key":          config.KeyAPIKey,
	"addr":             config.KeyAddr,
	"rate-limit":       config.KeyRateLimit,
	"cors-origins":     config.KeyCORSOrigins,
	"shutdown-timeout": config.KeyShutdownTimeout,
}

type app struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	a := &app{}

	root := &cobra.Command{
		Use:     "quill",
		Short:   "Generate audience-tuned blog posts with a local language model",
		Long:    "quill collects a topic, a length and an audience, sends one request to a local\ngeneration server (Ollama by default) and shows the returned post.\n\nWithout a subcommand it opens the interactive terminal form.",
		Version: version,

		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			for name, key := range flagKeys {
				if f := cmd.Flags().Lookup(name); f != nil {
					if err := v.BindPFlag(key, f); err != nil {
						return fmt.Errorf("failed to bind flag %s: %w", name, err)
					}
				}
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			return nil
		},

		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runForm()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a yaml config file")
	flags.String("env", "", "environment: development or production")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-file", "", "write logs to this file")
	flags.String("provider", "", "generation provider: ollama or openai")
	flags.String("endpoint", "", "generation server base URL")
	flags.String("models", "", "comma separated model list, first is the default")
	flags.String("api-key", "", "API key for the openai provider")

	root.AddCommand(newServeCmd(a), newPromptCmd(a))

	return root
}

// runs the terminal form. logs go to the configured file or nowhere, since
// the form owns the terminal.
func (a *app) runForm() error {
	if !term.IsTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("the form needs an interactive terminal, use `quill serve` for the web page")
	}

	closeLog, err := a.configureLogging(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	svc := blog.NewService(a.cfg.Provider, blog.ProviderFactory(a.cfg.Provider, a.cfg.APIKey))
	form := tui.NewApp(svc, a.cfg.Models, a.cfg.Endpoint)

	p := tea.NewProgram(form, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running quill: %w", err)
	}

	return nil
}

// points the logger at the log file if one is set, else at fallback
func (a *app) configureLogging(fallback io.Writer) (func(), error) {
	if a.cfg.LogFile == "" {
		logger.Configure(a.cfg.Environment, a.cfg.LogLevel, fallback)
		return func() {}, nil
	}

	f, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger.Configure(a.cfg.Environment, a.cfg.LogLevel, f)

	return func() { f.Close() }, nil //nolint:errcheck,gosec // best-effort cleanup on exit
}
