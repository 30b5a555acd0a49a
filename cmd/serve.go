package cmd

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"edu_analytics_backend/internal/app"
	"edu_analytics_backend/pkg/configwatcher"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().Bool("watch", true, "Reload thresholds when config.yaml changes")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// root 命令没有 --watch，默认开启
	watch := true
	if f := cmd.Flags().Lookup("watch"); f != nil {
		watch, _ = cmd.Flags().GetBool("watch")
	}
	if watch {
		path := filepath.Join(configDir(cmd), "config.yaml")
		w := configwatcher.New(path, application.Log.Named("configwatcher"))
		go func() {
			if err := w.Watch(ctx, application.ApplyConfig); err != nil {
				application.Log.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	if err := application.Run(ctx); err != nil {
		application.Log.Error("Server stopped", zap.Error(err))
		return err
	}
	return nil
}
