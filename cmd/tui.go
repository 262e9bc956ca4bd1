package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/parallax/internal/catalog"
	"github.com/papapumpkin/parallax/internal/tui"
)

// tuiCmd launches the interactive object-graph browser.
var tuiCmd = &cobra.Command{
	Use:   "tui [path]",
	Short: "Browse a decoded project interactively",
	Long: `Decode a project file and open an interactive browser over its object
graph: drill from object kinds into individual objects and their
fields. Fields are rendered the way the project file writes them.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	resolved, err := catalog.ResolveProjectPath(path)
	if err != nil {
		return err
	}

	if !isStderrTTY() {
		return fmt.Errorf("parallax tui requires a TTY (terminal)")
	}

	project, err := decodeProject(resolved)
	if err != nil {
		return err
	}

	return tui.Run(resolved, project)
}
