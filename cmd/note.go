package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <id> <text>",
	Short: "Attach a note to a task",
	Long: `Append a note line below the task with the given ID, after any
notes it already has.

Example:
  tasklog note dev-3 blocked on access request`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		id := args[0]
		text := strings.Join(args[1:], " ")
		if err := s.AddNote(cmd.Context(), id, text); err != nil {
			return err
		}
		fmt.Printf("noted on %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(noteCmd)
}
