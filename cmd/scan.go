package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/report"
	"github.com/papapumpkin/parallax/internal/telemetry"
	"github.com/papapumpkin/parallax/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Discover and decode every project under a directory tree",
	Long: `Walk a directory tree, decode every project.pbxproj found, and record
the results in the catalog database. Failed decodes are recorded with
their diagnostic and do not stop the scan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().String("db", "", "catalog database path (default from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New()

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	dbPath := cfg.CatalogDB
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = v
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("scan: create catalog directory: %w", err)
	}

	emitter, err := openEmitter(&cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()
	session := telemetry.NewSession()

	ctx := cmd.Context()
	store, err := catalog.Open(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	printer.ScanStart(root)
	emit(emitter, session, telemetry.KindScanStart, root, nil)

	paths, err := catalog.FindProjects(ctx, root)
	if err != nil {
		return err
	}

	ok, failed := 0, 0
	for _, path := range paths {
		rec, kinds := scanOne(path)
		if err := store.Put(ctx, rec, kinds); err != nil {
			return err
		}
		printer.ScanResult(rec)
		if rec.Status == catalog.StatusOK {
			ok++
		} else {
			failed++
		}
	}

	printer.ScanDone(ok, failed)
	emit(emitter, session, telemetry.KindScanDone, root, map[string]any{
		"projects": len(paths),
		"ok":       ok,
		"failed":   failed,
	})
	return nil
}

// scanOne decodes a single discovered project into its catalog record
// and per-discriminator counts. A decode failure produces a failed
// record rather than an error.
func scanOne(path string) (catalog.Record, map[string]int) {
	rec := catalog.Record{Path: path, Status: catalog.StatusOK}

	project, err := decodeProject(path)
	if err != nil {
		rec.Status = catalog.StatusFailed
		rec.Diagnostic = ui.Diagnostic(err)
		return rec, nil
	}

	s := report.Summarize(project)
	rec.ObjectVersion = s.ObjectVersion
	rec.ObjectCount = s.ObjectCount
	rec.TargetCount = len(s.Targets)

	kinds := make(map[string]int, len(s.Kinds))
	for _, kc := range s.Kinds {
		kinds[kc.Isa] = kc.Count
	}
	return rec, kinds
}
