package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/telemetry"
	"github.com/papapumpkin/parallax/internal/ui"
)

var checkCmd = &cobra.Command{
	Use:   "check <path>...",
	Short: "Decode project files and report pass/fail for each",
	Long: `Decode every given project file, continuing past failures, and print
one result line per file. The exit status is non-zero when any file
fails to decode.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New()

	emitter, err := openEmitter(&cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()
	session := telemetry.NewSession()

	ok, failed := 0, 0
	for _, arg := range args {
		resolved, err := catalog.ResolveProjectPath(arg)
		if err != nil {
			printer.CheckFail(arg, err)
			failed++
			continue
		}

		emit(emitter, session, telemetry.KindDecodeStart, resolved, nil)
		project, err := decodeProject(resolved)
		if err != nil {
			emit(emitter, session, telemetry.KindDecodeFailed, resolved, map[string]any{
				"error": ui.Diagnostic(err),
			})
			printer.CheckFail(resolved, err)
			failed++
			continue
		}

		emit(emitter, session, telemetry.KindDecodeDone, resolved, map[string]any{
			"objects": len(project.Objects),
		})
		printer.CheckPass(resolved, len(project.Objects))
		ok++
	}

	printer.CheckSummary(ok, failed)
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}
