package cmd

import (
	"fmt"
	"strings"

	"github.com/khrees2412/cvforge/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
}

var showConfigCmd = &cobra.Command{
	Use:         "show",
	Short:       "Display current configuration",
	Annotations: map[string]string{skipApp: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loaded
		if cfg == nil {
			return fmt.Errorf("configuration is not loaded")
		}

		source := cfg.Source
		if source == "" {
			source = "(defaults and environment)"
		}

		fmt.Println(titleStyle.Render("Configuration"))
		fmt.Printf("%s %s\n", labelStyle.Render("Config File:"), source)
		fmt.Printf("%s %s\n", labelStyle.Render("Environment:"), cfg.Env)
		fmt.Printf("%s %s\n", labelStyle.Render("Listen Address:"), cfg.Addr())
		fmt.Printf("%s %s\n", labelStyle.Render("Output Dir:"), cfg.OutputDir)
		fmt.Printf("%s %s\n", labelStyle.Render("Templates Dir:"), cfg.TemplatesDir)
		fmt.Printf("%s %s\n", labelStyle.Render("Template Store:"), cfg.TemplateStore)
		if cfg.TemplateStore == config.StoreFile {
			fmt.Printf("%s %s\n", labelStyle.Render("Template File:"), cfg.TemplateStorePath)
		}
		fmt.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DatabasePath)
		fmt.Printf("%s %t\n", labelStyle.Render("History:"), cfg.History)
		fmt.Printf("%s %s\n", labelStyle.Render("CORS Origins:"), strings.Join(cfg.CORSOrigins, ", "))

		fmt.Printf("\n%s\n", labelStyle.Render("Jooble"))
		fmt.Printf("  URL: %s\n", cfg.Jooble.URL)
		fmt.Printf("  API Key: %s\n", config.Mask(cfg.Jooble.APIKey))

		fmt.Printf("\n%s\n", labelStyle.Render("AI"))
		fmt.Printf("  Provider: %s\n", cfg.AI.Provider)
		fmt.Printf("  URL: %s\n", cfg.AI.URL)
		fmt.Printf("  Model: %s\n", cfg.AI.Model)
		fmt.Printf("  Timeout: %dms\n", cfg.AI.TimeoutMS)
		fmt.Printf("  Attempts: %d (delay %s)\n", cfg.AI.MaxAttempts, cfg.AI.RetryDelay)

		fmt.Printf("\n%s\n", labelStyle.Render("PDF Rendering"))
		fmt.Printf("  Enabled: %t\n", cfg.Render.Enabled)
		if cfg.Render.ChromePath != "" {
			fmt.Printf("  Chrome: %s\n", cfg.Render.ChromePath)
		}
		return nil
	},
}

var initConfigCmd = &cobra.Command{
	Use:         "init",
	Short:       "Write a default config file",
	Annotations: map[string]string{skipConfig: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFile()
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Printf("✓ Configuration written to %s\n", path)
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:         "set",
	Short:       "Update a configuration value",
	Annotations: map[string]string{skipConfig: "true"},
	Example: `  cvforge config set --key jooble.api_key --value YOUR_KEY
  cvforge config set --key ai.provider --value lmstudio
  cvforge config set --key ai.model --value llama3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" || value == "" {
			return fmt.Errorf("both --key and --value are required")
		}

		if err := config.Set(configFile(), key, value); err != nil {
			return fmt.Errorf("error updating config: %w (valid keys: %s)", err, strings.Join(config.Keys(), ", "))
		}

		fmt.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func configFile() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigFile
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(initConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
