package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calplan/internal/calendar"
	"calplan/internal/config"
	"calplan/internal/logging"
	"calplan/internal/oracle"
	"calplan/internal/planner"
	"calplan/internal/timezone"
)

// rootCmd represents the base command for the calplan application.
var rootCmd = &cobra.Command{
	Use:   "calplan",
	Short: "Natural-language front end to a CalDAV calendar",
	Long: `calplan accepts free-text calendar commands, asks a language model to
translate them into a structured operation (create event, delete event,
list events) and executes that operation against a CalDAV server.

It can run as:
  - A one-shot CLI tool (create, delete, list, advice)
  - A minimal web server (serve)`,
	SilenceUsage: true,
}

// version will be set by main.
var version = "dev"

// SetVersion sets the version for the root command.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "calplan version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newCreateCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAdviceCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// app bundles the clients a single invocation needs. They are constructed
// once per invocation (or once per process for serve) and read-only
// afterwards.
type app struct {
	cfg         *config.Config
	tz          *timezone.Normalizer
	oracle      *oracle.Client
	interpreter *planner.Interpreter
	calendar    *calendar.Client
}

// newApp loads the configuration and constructs the model client and the
// calendar gateway. Gateway construction talks to the CalDAV server
// (principal discovery plus a write probe) and is fatal on failure.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel)

	tz, err := timezone.NewNormalizer(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	oc := oracle.NewClient(oracle.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		Model:       cfg.OpenAIModel,
		Temperature: cfg.OpenAITemperature,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Timezone:    cfg.Timezone,
	})

	cal, err := calendar.NewClient(ctx, calendar.Config{
		URL:      cfg.CalDAVURL,
		Username: cfg.CalDAVUsername,
		Password: cfg.CalDAVPassword,
	}, tz)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize calendar gateway: %w", err)
	}

	return &app{
		cfg:         cfg,
		tz:          tz,
		oracle:      oc,
		interpreter: planner.NewInterpreter(oc, tz),
		calendar:    cal,
	}, nil
}
