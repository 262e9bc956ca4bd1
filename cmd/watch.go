package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/telemetry"
	"github.com/papapumpkin/parallax/internal/ui"
	"github.com/papapumpkin/parallax/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <path>",
	Short: "Re-decode a project file whenever it changes",
	Long: `Watch one project file and re-decode it after every change, printing a
result line per reload. Changes are debounced so editor save bursts
collapse into a single reload. Stop with ctrl-c.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int("debounce", 0, "debounce window in milliseconds (default from config)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	printer := ui.New()

	resolved, err := catalog.ResolveProjectPath(args[0])
	if err != nil {
		return err
	}

	debounceMS := cfg.WatchDebounceMS
	if v, _ := cmd.Flags().GetInt("debounce"); v > 0 {
		debounceMS = v
	}

	emitter, err := openEmitter(&cfg)
	if err != nil {
		return err
	}
	defer emitter.Close()
	session := telemetry.NewSession()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.NewWatcher(resolved, time.Duration(debounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	printer.WatchStart(resolved)

	// Decode once up front so the session starts from a known state.
	if project, err := decodeProject(resolved); err != nil {
		printer.ReloadFailed(time.Now(), err)
	} else {
		printer.ReloadOK(time.Now(), len(project.Objects))
	}

	for {
		select {
		case <-ctx.Done():
			printer.Info("\nstopping watch")
			return nil
		case reload := <-w.Reloads:
			project, err := decodeProject(reload.Path)
			if err != nil {
				printer.ReloadFailed(reload.At, err)
				emit(emitter, session, telemetry.KindWatchReload, reload.Path, map[string]any{
					"status": "failed",
					"error":  ui.Diagnostic(err),
				})
				continue
			}
			printer.ReloadOK(reload.At, len(project.Objects))
			emit(emitter, session, telemetry.KindWatchReload, reload.Path, map[string]any{
				"status":  "ok",
				"objects": len(project.Objects),
			})
		}
	}
}
