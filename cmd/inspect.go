package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/report"
	"github.com/papapumpkin/parallax/internal/telemetry"
	"github.com/papapumpkin/parallax/internal/ui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [path]",
	Short: "Decode one project file and summarize its contents",
	Long: `Decode a project.pbxproj document (or the one inside an .xcodeproj
bundle) and print a summary of its structure: version metadata, targets
with their build phases, object kind counts, and configuration names.

The text format goes to stderr; json and toml reports go to stdout so
they can be piped into other tools.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "", "output format: text, json, or toml (default from config)")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New()

	format := cfg.Format
	if v, _ := cmd.Flags().GetString("format"); v != "" {
		format = v
	}
	if format != "text" {
		if _, err := report.FormatByName(format); err != nil {
			return fmt.Errorf("inspect: %w (supported: text, %s)", err, strings.Join(report.FormatNames(), ", "))
		}
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	resolved, err := catalog.ResolveProjectPath(path)
	if err != nil {
		return err
	}

	emitter, err := openEmitter(&cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()
	session := telemetry.NewSession()

	emit(emitter, session, telemetry.KindDecodeStart, resolved, nil)
	project, err := decodeProject(resolved)
	if err != nil {
		emit(emitter, session, telemetry.KindDecodeFailed, resolved, map[string]any{
			"error": ui.Diagnostic(err),
		})
		return err
	}

	summary := report.Summarize(project)
	summary.Source = resolved
	emit(emitter, session, telemetry.KindDecodeDone, resolved, map[string]any{
		"objects": summary.ObjectCount,
		"targets": len(summary.Targets),
	})

	if format == "text" {
		printer.Summary(summary, cfg.MaxListed)
		return nil
	}

	f, err := report.FormatByName(format)
	if err != nil {
		return err
	}
	rendered, err := f.Render(summary)
	if err != nil {
		return fmt.Errorf("inspect: render %s report: %w", format, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(rendered, "\n"))
	return nil
}
