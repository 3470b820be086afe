package cmd

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bunshodo/leakscope/internal/config"
	"github.com/bunshodo/leakscope/internal/llm"
	"github.com/bunshodo/leakscope/internal/server"
	"github.com/bunshodo/leakscope/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP/WebSocket server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load()
		if err != nil {
			logrus.Fatalf("configuration: %v", err)
		}

		store, cleanup, err := openStore(ctx, cfg.Storage)
		if err != nil {
			logrus.Fatalf("storage: %v", err)
		}
		defer cleanup()

		ai, err := llm.New(ctx, cfg.LLM)
		if err != nil {
			logrus.Fatalf("llm client: %v", err)
		}

		srv := server.New(store, ai, cfg.Email)
		if err := srv.Run(ctx, cfg.Server.ListenAddr); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, func(), error) {
	if cfg.DemoMode {
		logrus.Info("demo mode: serving the fixture dataset")
		return storage.NewFixtureStore(), func() {}, nil
	}
	pg, err := storage.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}
