package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-minimax/internal"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP game server",
		Long:  `Loads config.yml (or the environment), connects to Redis and serves the game API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				baseDir, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to get current directory: %w", err)
				}
				path = filepath.Join(baseDir, "config.yml")
			}

			conf := config.MustLoad(path)
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				conf.LogLevel = level
			}

			logger := initLogger(os.Stdout, conf.LogLevel)

			if err := app.RunApp(logger, conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to config.yml (default ./config.yml)")

	return cmd
}
