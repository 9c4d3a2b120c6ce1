package main

import (
	"fmt"
	"strings"

	"github.com/folioworks/folio/pkg/app/search"
	"github.com/folioworks/folio/pkg/config"
	infraContent "github.com/folioworks/folio/pkg/infra/content"
	infraLogger "github.com/folioworks/folio/pkg/infra/logger"
	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Query the content index from the command line",
	Long: `Loads content from content.root, builds the index and prints the ranked
matches. Lower scores are better.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 10, "maximum number of results")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()
	logger := infraLogger.NewLogger("")
	logger.SetOutput(cmd.ErrOrStderr())

	items, err := infraContent.NewFileRepository(logger, cfg.Content.Root).Load(cmd.Context())
	if err != nil {
		return err
	}
	idx := search.BuildIndex(items, search.WithThreshold(cfg.Search.Threshold), search.WithLogger(logger))

	query := strings.Join(args, " ")
	results := idx.Query(query, searchLimit)
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "no matches for %q in %d items\n", query, idx.Len())
		return nil
	}
	for _, r := range results {
		fmt.Fprintf(out, "%.3f  %-9s %s  %s\n", r.Score, r.Item.Type, r.Item.Title, r.Item.URL)
	}
	return nil
}
