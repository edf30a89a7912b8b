package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	searchTag  string
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search task titles and notes",
	Long: `Case-insensitive substring search over task titles and note text
across the scan window. Use --tag to restrict results to one tag.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		matches, err := s.SearchTasks(query, searchTag)
		if err != nil {
			return err
		}
		if searchJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(matches)
		}
		for _, m := range matches {
			box := " "
			if m.Done {
				box = "x"
			}
			fmt.Printf("[%s] %s %s\n", box, m.ID, m.Title)
			if m.Snippet != "" && m.Snippet != m.Title {
				fmt.Printf("      %s\n", m.Snippet)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchTag, "tag", "", "only show tasks with this tag")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print matches as JSON")
}
