// Package cmd holds the pitchbot command line: the bot server and the
// operator commands around its booking store.
package cmd

import (
	"log/slog"
	"os"

	"github.com/hanksha/pitch-booking-bot/config"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "pitchbot",
	Short:        "Telegram bot for booking sports pitches",
	SilenceUsage: true,
}

func Execute() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(resourceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
}

// readConfig loads the configuration without validating it and installs the
// configured logger as the default.
func readConfig() (*config.Config, error) {
	cfg, err := config.Read(envFile)

	if err != nil {
		return nil, err
	}

	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	return cfg, nil
}
