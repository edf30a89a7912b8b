package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file, from --config.
	cfgFile string
	// verbose enables extra output on stderr.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tasklog",
	Short: "Track tasks inside a freeform markdown log",
	Long: `tasklog overlays structured, trackable tasks on top of an otherwise
freeform markdown log file. It only ever touches the lines it owns: date
section headers, checkbox task lines, and their indented notes. Everything
else in the file is preserved byte for byte.

Tasks get stable IDs like dev-12 (per-tag monotonic counters), live under
the section for the day they were created, and can be completed or
annotated from the CLI, an interactive TUI, or an MCP server.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.config/tasklog/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
