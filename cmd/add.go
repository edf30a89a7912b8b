package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <tag> <title>",
	Short: "Create a task under today's section",
	Long: `Create a new task with the next ID for the given tag and append it
to today's section, creating the section if needed.

Example:
  tasklog add dev implement login flow`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		tag := args[0]
		title := strings.Join(args[1:], " ")
		id, err := s.CreateTask(cmd.Context(), tag, title)
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
