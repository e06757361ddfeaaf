package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/cvforge/internal/app"
	"github.com/khrees2412/cvforge/internal/config"
	"github.com/khrees2412/cvforge/pkg/logging"
	"github.com/spf13/cobra"
)

// command annotations: skipApp commands only need the config, skipConfig commands need nothing
const (
	skipApp    = "skipApp"
	skipConfig = "skipConfig"
)

var (
	configPath string
	logLevel   string

	// set by PersistentPreRunE, closed by Execute
	loaded  *config.Config
	current *app.App
)

var rootCmd = &cobra.Command{
	Use:   "cvforge",
	Short: "Generate tailored CVs for job offers with a local LLM",
	Long: `cvforge searches Jooble for job offers and writes a CV tailored to each one.
CVs are generated by a local Ollama or LM Studio model and saved as text and PDF.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipConfig] != "" {
			return nil
		}

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		loaded = cfg
		log := logging.New(cfg.LogLevel)

		if cmd.Annotations[skipApp] != "" {
			return nil
		}

		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}
		current = application

		cmd.SetContext(app.WithApp(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)

	if current != nil {
		current.Logger.Sync()
		if cerr := current.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Error closing resources: %v\n", cerr)
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

// mustApp returns the App created for this command
func mustApp(cmd *cobra.Command) (*app.App, error) {
	a := app.FromContext(cmd.Context())
	if a == nil {
		return nil, fmt.Errorf("application is not initialized")
	}
	return a, nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default ./cvforge.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override the configured log level")
}
