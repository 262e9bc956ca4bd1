package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/papapumpkin/parallax/internal/config"
	"github.com/papapumpkin/parallax/internal/pbx"
	"github.com/papapumpkin/parallax/internal/telemetry"
)

var rootCmd = &cobra.Command{
	Use:   "parallax",
	Short: "Inspect Xcode project description files",
	Long:  "Parallax decodes project.pbxproj documents into a typed object graph and reports on targets, build phases, and everything else the file records.",
	RunE:  runRootDefault,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .parallax.yaml)")
	rootCmd.PersistentFlags().String("telemetry", "", "append JSONL telemetry events to this file")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".parallax")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("PARALLAX")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()
}

// runRootDefault inspects the project in the current directory when
// exactly one .xcodeproj bundle is present. Otherwise it falls back to
// showing help.
func runRootDefault(cmd *cobra.Command, args []string) error {
	matches, err := filepath.Glob("*.xcodeproj")
	if err != nil || len(matches) != 1 {
		return cmd.Help()
	}
	return runInspect(inspectCmd, []string{matches[0]})
}

// loadConfig loads the viper-backed config and applies persistent flag
// overrides on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if v, _ := cmd.Flags().GetString("telemetry"); v != "" {
		cfg.TelemetryPath = v
	}
	return cfg, nil
}

// openEmitter opens the telemetry sink named by the config. A disabled
// sink yields a nil emitter, which is a valid no-op.
func openEmitter(cfg *config.Config) (*telemetry.Emitter, error) {
	if cfg.TelemetryPath == "" {
		return nil, nil
	}
	return telemetry.NewEmitter(cfg.TelemetryPath)
}

// emit records one telemetry event, filling in the timestamp. Emit
// failures never interrupt a command.
func emit(e *telemetry.Emitter, session, kind, path string, data any) {
	_ = e.Emit(telemetry.Event{
		Timestamp: time.Now(),
		Kind:      kind,
		Session:   session,
		Path:      path,
		Data:      data,
	})
}

// decodeProject reads and decodes one project description file.
func decodeProject(path string) (*pbx.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	project, err := pbx.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return project, nil
}

// isStderrTTY reports whether stderr is attached to a terminal.
func isStderrTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}
