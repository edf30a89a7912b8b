// Package config defines the application configuration, its defaults, and
// the date-format handling shared by every command.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"tasklog/internal/fsutil"
)

// AppConfig holds every user-tunable setting. Loaded from config.yaml by
// viper, overridable through TASKLOG_* environment variables.
type AppConfig struct {
	// LogPath is the markdown file tasks are overlaid on. Supports ~.
	LogPath string `mapstructure:"logPath" yaml:"logPath" validate:"required"`
	// DateFormat describes section header dates using DD, MM, and YYYY
	// tokens, e.g. "DD/MM/YYYY".
	DateFormat string `mapstructure:"dateFormat" yaml:"dateFormat" validate:"required,dateformat"`
	// NoteIndent is the number of leading spaces on a note line.
	NoteIndent int `mapstructure:"noteIndent" yaml:"noteIndent" validate:"min=1,max=16"`
	// ScanWindow is how many trailing lines of the log are parsed.
	ScanWindow int `mapstructure:"scanWindow" yaml:"scanWindow" validate:"min=10"`
}

var validate = validator.New()

func init() {
	// dateformat accepts any format DateLayout can compile.
	_ = validate.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		_, err := DateLayout(fl.Field().String())
		return err == nil
	})
}

// Defaults returns the configuration used before any config file exists.
func Defaults() AppConfig {
	return AppConfig{
		LogPath:    "~/.config/tasklog/log.md",
		DateFormat: "DD/MM/YYYY",
		NoteIndent: 6,
		ScanWindow: 5000,
	}
}

// Validate checks the configuration and returns a readable error naming
// every failing field.
func (c *AppConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var msgs []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", fe.Field()))
		case "dateformat":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a valid date format (need DD, MM, and YYYY once each)", fe.Field(), fe.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// ResolvedLogPath expands a leading ~ in LogPath.
func (c *AppConfig) ResolvedLogPath() (string, error) {
	path, err := homedir.Expand(c.LogPath)
	if err != nil {
		return "", fmt.Errorf("resolve log path %q: %w", c.LogPath, err)
	}
	return path, nil
}

// Layout compiles DateFormat into a time layout string.
func (c *AppConfig) Layout() (string, error) {
	return DateLayout(c.DateFormat)
}

// Write serializes the configuration to YAML at path atomically.
func (c *AppConfig) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return fsutil.AtomicWriteFile(path, data, 0o644)
}

// dateSeparators are the only characters allowed between date tokens.
const dateSeparators = "/-. _"

// DateLayout compiles a DD/MM/YYYY style format into a Go time layout.
// The format must contain each of DD, MM, and YYYY exactly once, joined
// only by separator characters. Keeping the grammar this tight means a
// header date parsed with the layout always reprints byte-identically.
func DateLayout(format string) (string, error) {
	counts := make(map[string]int)
	var layout strings.Builder

	rest := format
	for len(rest) > 0 {
		switch {
		case strings.HasPrefix(rest, "YYYY"):
			counts["YYYY"]++
			layout.WriteString("2006")
			rest = rest[4:]
		case strings.HasPrefix(rest, "DD"):
			counts["DD"]++
			layout.WriteString("02")
			rest = rest[2:]
		case strings.HasPrefix(rest, "MM"):
			counts["MM"]++
			layout.WriteString("01")
			rest = rest[2:]
		default:
			if !strings.ContainsRune(dateSeparators, rune(rest[0])) {
				return "", fmt.Errorf("date format %q: unexpected character %q", format, rest[0])
			}
			layout.WriteByte(rest[0])
			rest = rest[1:]
		}
	}

	for _, token := range []string{"DD", "MM", "YYYY"} {
		if counts[token] != 1 {
			return "", fmt.Errorf("date format %q: %s must appear exactly once", format, token)
		}
	}
	return layout.String(), nil
}
