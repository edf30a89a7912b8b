package cmd

import (
	"github.com/spf13/cobra"

	"tasklog/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse and edit tasks interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		return ui.Run(s)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
