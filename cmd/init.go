package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tasklog/internal/config"
)

var initLogPath string

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config, counter state, and log files",
	Long: `Initialize tasklog: create the configuration directory, the config
file, the tag counter state file, and the log file itself (only if it does
not already exist). Point --log at an existing markdown file to overlay
tasks onto it.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.BaseDir()
		if err != nil {
			return fmt.Errorf("resolve config directory: %w", err)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		cfgPath, err := config.ConfigPath()
		if err != nil {
			return err
		}
		cfg := GetConfig()
		if initLogPath != "" {
			cfg.LogPath = initLogPath
		}
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) || initLogPath != "" {
			if err := cfg.Write(cfgPath); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		if err := s.Init(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("initialized at %s\n", dir)
		fmt.Printf("log file: %s\n", s.LogPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initLogPath, "log", "", "path to your log.md file (default: ~/.config/tasklog/log.md)")
}
