package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"holster-go/internal/config"
	"holster-go/internal/logs"
	"holster-go/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the management tools over MCP stdio",
	Long: `Runs an MCP server on stdin/stdout exposing create_server, list_servers,
update_server_status, delete_servers, ping, and explain. Logs go to stderr
or, with --log-file, to a rotated file.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	logCfg := logs.DefaultConfig()
	logCfg.Level = viper.GetString("log-level")
	if file := viper.GetString("log-file"); file != "" {
		logCfg.EnableConsole = false
		logCfg.EnableFile = true
		logCfg.Filename = file
	}

	logger, err := logs.Setup(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	store := config.NewStore(path, logger)

	watcher, err := config.NewWatcher(store, logger)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		logger.Warn("external edit watcher unavailable", zap.Error(err))
	} else {
		defer func() { _ = watcher.Stop() }()
	}

	return server.Serve(store, logger, version)
}
