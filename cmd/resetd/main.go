// @title        resetd API
// @version      1.0
// @description  User registration and e-mailed password reset.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resetd/internal/app"
	"resetd/internal/config"
	"resetd/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.From(context.Background()).Error("startup error", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "resetd",
		Short:         "user accounts with e-mailed password reset",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml (optional, env overrides apply)")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		logging.Init(cfg.Log)
		return cfg, nil
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.From(cmd.Context()).Info("config loaded",
				zap.String("config", configPath),
				zap.Int("port", cfg.Server.Port),
				zap.String("database", cfg.Database.Name),
			)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}

	rootCmd.AddCommand(runCmd, newUsersCmd(loadConfig))
	return rootCmd
}
