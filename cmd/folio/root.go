package main

import (
	"log"
	"os"

	"github.com/folioworks/folio/pkg/config"
	"github.com/folioworks/folio/pkg/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configDir string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Folio site backend",
	Long: `folio serves the site API: fuzzy search over site content, webhook
subscriptions with signed deliveries, contact and newsletter forms, and an
optional assistant chat.`,
	Version:      version.GetInfo().String(),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadEnv()
		return config.Load(configDir)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "config", "directory holding config.yaml")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importWebhooksCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(migrateCmd)
}

func loadEnv() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}
}
