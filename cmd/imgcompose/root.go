package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/config"
	"github.com/ironsheep/image-compose-mcp/internal/logger"
)

var (
	configFile string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "imgcompose",
	Short: "Crop, resize and combine images into paginated PDFs",
	Long: `imgcompose crops and resizes images to exact pixel sizes and combines
ordered image sequences into a PDF with one image per page, optional
header, footer, caption and "Page N of M" numbering.

Run "imgcompose serve" to expose the same operations as MCP tools over
stdin/stdout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "Also write logs to this file, rotated")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write JSON logs instead of console output")
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}

// loadConfig builds cfg from defaults, the config file, IMGCOMPOSE_*
// variables and finally the logging flags, then starts the logger.
func loadConfig(cmd *cobra.Command) error {
	var err error
	if configFile != "" {
		if cfg, err = config.LoadFile(configFile); err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}
	cfg.ApplyEnv()

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = mustGetString(cmd, "log-level")
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.File = mustGetString(cmd, "log-file")
	}
	if mustGetBool(cmd, "log-json") {
		cfg.Logging.Format = "json"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return logger.Init(logger.Options{
		Level:      cfg.Logging.Level,
		Pretty:     cfg.Logging.Format != "json",
		File:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
}
