// Package cmd wires the holster CLI.
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"holster-go/internal/config"
)

var (
	cfgPath  string
	logLevel string
	logFile  string

	version, commit, date string
)

// SetVersionInfo sets version information from ldflags.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "holster",
	Short: "Manage MCP server entries in the host configuration file",
	Long: `holster edits the JSON configuration file that declares which MCP servers
the host application launches. Active entries live under "mcpServers";
parked entries are holstered under "unusedMcpServers", which the host
ignores. A server name is always in exactly one of the two collections.`,
	Example: `  holster serve                 # Expose the operations as MCP tools over stdio
  holster list                  # Print active and inactive entries
  holster path                  # Print the resolved config file path
  holster serve --config ./claude_desktop_config.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to the managed config file (default: the host application's per-user location)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log to this file (with rotation) instead of stderr")

	viper.SetEnvPrefix("HOLSTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file"))

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
}

// Execute runs the root command.
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("holster %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("holster %s\n", version)
}

// configPath resolves the managed file path from flag, environment, or the
// per-user default.
func configPath() (string, error) {
	if p := viper.GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}
