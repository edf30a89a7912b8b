package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task complete",
	Long: `Mark the task with the given ID as complete. Completing an already
complete task is a no-op.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		if err := s.CompleteTask(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("completed %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
