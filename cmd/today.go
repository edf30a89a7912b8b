package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's section of the log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		text, err := s.TodaySection()
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		fmt.Println(text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(todayCmd)
}
