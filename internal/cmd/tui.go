package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cheerioskun/charbrowser/internal/catalog"
	"github.com/cheerioskun/charbrowser/internal/export"
	"github.com/cheerioskun/charbrowser/ui"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive TUI interface",
	Long: `Start the interactive character browser.

The TUI provides:
- A search box filtering characters by name
- Status, species and gender toggle buttons (press again to deselect)
- A responsive grid of character cards
- Export of the displayed characters to JSON

Examples:
  charbrowser tui
  charbrowser tui --endpoint http://localhost:8080/api/character/ --verbose`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Close()

	client := catalog.NewClient(cfg.ClientOptions(logger))

	if cfg.Verbose {
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", client.Endpoint())
		fmt.Fprintf(os.Stderr, "Logging to: %s\n", cfg.Log.File)
	}
	logger.Info("starting TUI against %s", client.Endpoint())

	// Initialize TUI
	model := ui.NewAppModel(client, export.NewService(appFs), logger, client.Endpoint())

	// Start the TUI program
	program := tea.NewProgram(model, tea.WithAltScreen())

	_, err = program.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
