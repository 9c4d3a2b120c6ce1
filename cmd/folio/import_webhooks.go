package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/folioworks/folio/pkg/config"
	container "github.com/folioworks/folio/pkg/dependency_container"
	infraLogger "github.com/folioworks/folio/pkg/infra/logger"
	"github.com/folioworks/folio/pkg/infra/repository"
	"github.com/folioworks/folio/pkg/infra/webhookfile"
	"github.com/spf13/cobra"
)

var importFile string

var importWebhooksCmd = &cobra.Command{
	Use:   "import-webhooks",
	Short: "Import webhook subscriptions from a legacy JSON export",
	Long: `Reads a JSON array of webhook records (camelCase keys, millisecond
timestamps) and stores them. Records whose id already exists are skipped.

Example:
  folio import-webhooks --file data/webhooks.json`,
	Args: cobra.NoArgs,
	RunE: runImportWebhooks,
}

func init() {
	importWebhooksCmd.Flags().StringVarP(&importFile, "file", "f", "", "legacy webhooks JSON file")
	_ = importWebhooksCmd.MarkFlagRequired("file")
}

func runImportWebhooks(cmd *cobra.Command, _ []string) error {
	logger := infraLogger.NewLogger("")
	logger.SetOutput(cmd.ErrOrStderr())

	f, err := os.Open(filepath.Clean(importFile))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", importFile, err)
	}
	defer f.Close()

	db, err := container.OpenDatabase(config.GetConfig(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	report, err := webhookfile.NewImporter(logger, repository.NewWebhookRepository(db.DB)).Import(cmd.Context(), f)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "imported: %d\nskipped:  %d\ninvalid:  %d\n", report.Imported, report.Skipped, len(report.Invalid))
	for _, e := range report.Invalid {
		fmt.Fprintf(out, "  - %v\n", e)
	}
	return nil
}
