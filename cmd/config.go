package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jayPark21/Pomodoro-timer/internal/config"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

// maxSuggestions caps the "did you mean" list for unknown keys.
const maxSuggestions = 3

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
	Long:  `Show the current settings, print the config file location, or change a single key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), app.config)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print every setting",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd.OutOrStdout(), app.config)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change one setting and save it",
	Example: `  pomodoro config set timer.default_focus 15
  pomodoro config set sound.countdown_beeps false`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := setConfigValue(app.config, key, value); err != nil {
			return err
		}
		if err := config.Save(app.config); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", key, value)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func showConfig(out io.Writer, cfg *config.Config) error {
	keys := config.Keys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	fmt.Fprintln(out)
	for _, k := range keys {
		v, _ := cfg.Get(k)
		fmt.Fprintf(out, "  %-*s  %s\n", width, k, v)
	}
	fmt.Fprintln(out)
	return nil
}

// setConfigValue applies key=value, suggesting close matches for unknown keys.
func setConfigValue(cfg *config.Config, key, value string) error {
	err := cfg.Set(key, value)
	if !errors.Is(err, config.ErrUnknownKey) {
		return err
	}
	if suggestions := suggestKeys(key); len(suggestions) > 0 {
		return fmt.Errorf("%w (did you mean %s?)", err, strings.Join(suggestions, ", "))
	}
	return err
}

// suggestKeys returns the config keys that fuzzy-match input, best first.
func suggestKeys(input string) []string {
	matches := fuzzy.Find(input, config.Keys())
	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
