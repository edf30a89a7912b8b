package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tasklog/internal/config"
	"tasklog/internal/store"
)

const envPrefix = "TASKLOG"

// GlobalAppConfig holds the loaded application configuration for the
// lifetime of one command invocation.
var GlobalAppConfig config.AppConfig

// InitConfig reads the config file and environment variables into
// GlobalAppConfig. Missing config file is fine (defaults apply); a config
// file that exists but fails to parse or validate is fatal.
func InitConfig() {
	// A .env next to the working directory may carry TASKLOG_* overrides.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()

	defaults := config.Defaults()
	viper.SetDefault("logPath", defaults.LogPath)
	viper.SetDefault("dateFormat", defaults.DateFormat)
	viper.SetDefault("noteIndent", defaults.NoteIndent)
	viper.SetDefault("scanWindow", defaults.ScanWindow)

	cfgFlag := viper.GetString("config")
	if cfgFlag != "" {
		viper.SetConfigFile(cfgFlag)
	} else {
		path, err := config.ConfigPath()
		if err == nil {
			viper.SetConfigFile(path)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			// A config file that exists but cannot be parsed is fatal;
			// a missing one just means defaults apply until 'init'.
			fmt.Fprintln(os.Stderr, "error reading config file:", err)
			os.Exit(1)
		}
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "no config file found, using defaults")
		}
	} else if viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "using config file:", viper.ConfigFileUsed())
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		fmt.Fprintln(os.Stderr, "error unmarshaling config:", err)
		os.Exit(1)
	}
	if err := GlobalAppConfig.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// GetConfig returns the loaded application configuration.
func GetConfig() *config.AppConfig {
	return &GlobalAppConfig
}

// GetStore builds the task store from the loaded configuration.
func GetStore() (*store.Store, error) {
	s, err := store.New(GetConfig())
	if err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}
	return s, nil
}
