package main

import (
	"fmt"

	"github.com/folioworks/folio/pkg/config"
	container "github.com/folioworks/folio/pkg/dependency_container"
	infraLogger "github.com/folioworks/folio/pkg/infra/logger"
	"github.com/spf13/cobra"
)

var rollbackSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations, or roll back recent ones",
	Long: `Opening the database applies pending migrations, so serve does this on
start. Run migrate on its own to upgrade ahead of a deploy or, with
--rollback, to revert the newest steps.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&rollbackSteps, "rollback", 0, "number of applied migrations to revert")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	logger := infraLogger.NewLogger("")
	logger.SetOutput(cmd.ErrOrStderr())

	db, err := container.OpenDatabase(config.GetConfig(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	out := cmd.OutOrStdout()
	if rollbackSteps > 0 {
		reverted, err := db.Migrations().Rollback(cmd.Context(), rollbackSteps)
		for _, id := range reverted {
			fmt.Fprintf(out, "reverted %s\n", id)
		}
		return err
	}

	ids, err := db.Migrations().Applied(cmd.Context())
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintf(out, "applied %s\n", id)
	}
	return nil
}
