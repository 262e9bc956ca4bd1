package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/ui"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List projects recorded by previous scans",
	Long: `Read the catalog database without re-decoding anything: every project
recorded by previous scans with its status, counts, and scan time,
followed by aggregate object kind totals across the workspace.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().String("db", "", "catalog database path (default from config)")
	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New()

	dbPath := cfg.CatalogDB
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}

	// Don't create an empty database just to read nothing from it.
	if _, err := os.Stat(dbPath); err != nil {
		printer.CatalogProjects(nil, cfg.MaxListed)
		return nil
	}

	ctx := cmd.Context()
	store, err := catalog.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Projects(ctx)
	if err != nil {
		return err
	}
	printer.CatalogProjects(recs, cfg.MaxListed)

	totals, err := store.KindTotals(ctx)
	if err != nil {
		return err
	}
	printer.CatalogKinds(totals, cfg.MaxListed)
	return nil
}
