package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bunshodo/leakscope/internal/storage"
)

var migrateDatabaseURL string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		url := migrateDatabaseURL
		if url == "" {
			url = os.Getenv("DATABASE_URL")
		}
		if url == "" {
			logrus.Fatal("DATABASE_URL is required")
		}
		if err := storage.Migrate(url); err != nil {
			logrus.Fatalf("migrate: %v", err)
		}
		logrus.Info("migrations applied")
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "database-url", "", "Postgres URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(migrateCmd)
}
