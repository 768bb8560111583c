package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/config"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/logger"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/service"
)

const serviceName = "glucosense"

// rootOptions 全局参数（覆盖环境变量配置）
type rootOptions struct {
	apiURL   string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "glucosense",
		Short: "Diabetes risk intake form and report generator",
		Long: "GlucoSense collects a health intake record, sends it to a remote prediction\n" +
			"service and produces a risk assessment report with lifestyle advice.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "prediction service base URL (default $PREDICTION_API_URL)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL)")

	rootCmd.AddCommand(formCmd(opts))
	rootCmd.AddCommand(assessCmd(opts))
	rootCmd.AddCommand(serveCmd(opts))
	return rootCmd
}

// loadConfig 读取环境变量配置并应用命令行覆盖
func loadConfig(opts *rootOptions) *config.Config {
	cfg := config.Load()
	if opts.apiURL != "" {
		cfg.Prediction.BaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	return cfg
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, serviceName, cfg.Log.Output)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

func newPredictionClient(cfg *config.Config, log *zap.Logger) *service.PredictionClient {
	return service.NewPredictionClient(cfg.Prediction.BaseURL, cfg.Prediction.Path, cfg.Prediction.Timeout, log)
}
