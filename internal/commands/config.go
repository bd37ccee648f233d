package commands

import (
	"github.com/spf13/cobra"

	"github.com/aegislabs/aegis/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open the interactive settings menu",
	Long: `Open a terminal menu for CLI settings: verbose logging, clipboard
copying, markdown style and the chat theme. Changes are written to the
config file immediately.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.RunConfig()
	},
}
