package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bunshodo/leakscope/internal/config"
	"github.com/bunshodo/leakscope/internal/extract"
	"github.com/bunshodo/leakscope/internal/investigation"
	"github.com/bunshodo/leakscope/internal/llm"
	"github.com/bunshodo/leakscope/internal/models"
)

var (
	investigateDomain string
	investigateFile   string
	investigateOut    string
)

var investigateCmd = &cobra.Command{
	Use:   "investigate",
	Short: "Run a one-shot investigation from the command line",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		target := models.InvestigationTarget{}
		if investigateDomain != "" {
			domain, err := investigation.NormalizeDomain(investigateDomain)
			if err != nil {
				logrus.Fatalf("invalid domain: %v", err)
			}
			target.Domain = domain
		}
		if investigateFile != "" {
			raw, err := os.ReadFile(investigateFile)
			if err != nil {
				logrus.Fatalf("could not read document: %v", err)
			}
			name := filepath.Base(investigateFile)
			target.DocumentName = name
			target.DocumentText = extract.DocumentText(name, string(raw))
		}
		if target.IsEmpty() {
			logrus.Fatal("provide --domain and/or --file")
		}

		cfg, err := config.Load()
		if err != nil {
			logrus.Fatalf("configuration: %v", err)
		}
		ai, err := llm.New(ctx, cfg.LLM)
		if err != nil {
			logrus.Fatalf("llm client: %v", err)
		}

		runner := investigation.NewWithClient(ai)
		report, err := runner.Run(ctx, target, printProgress)
		if err != nil {
			logrus.Fatalf("investigation failed: %v", err)
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			logrus.Fatalf("could not encode report: %v", err)
		}
		if investigateOut == "" || investigateOut == "-" {
			fmt.Println(string(out))
			return
		}
		if err := os.WriteFile(investigateOut, out, 0o644); err != nil {
			logrus.Fatalf("could not write report: %v", err)
		}
		logrus.Infof("report written to %s", investigateOut)
	},
}

func printProgress(ev models.ProgressEvent) {
	switch ev.Kind {
	case models.ProgressError:
		logrus.Warnf("[%s] %s", ev.Kind, ev.Message)
	default:
		logrus.Infof("[%s] %s", ev.Kind, ev.Message)
	}
}

func init() {
	investigateCmd.Flags().StringVarP(&investigateDomain, "domain", "d", "", "Domain to investigate (e.g. example.co.jp)")
	investigateCmd.Flags().StringVarP(&investigateFile, "file", "f", "", "Document to investigate (text or HTML)")
	investigateCmd.Flags().StringVarP(&investigateOut, "out", "o", "", "Write the report JSON here instead of stdout")
	rootCmd.AddCommand(investigateCmd)
}
