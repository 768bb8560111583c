package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/form"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/report"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/tui"
)

// formLogFile 终端表单默认日志文件（日志写到终端会破坏界面）
const formLogFile = "glucosense.log"

func formCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in the intake form interactively (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, opts)
		},
	}
}

func runForm(cmd *cobra.Command, opts *rootOptions) error {
	cfg := loadConfig(opts)
	if os.Getenv("LOG_OUTPUT") == "" {
		cfg.Log.Output = formLogFile
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	controller := form.NewController(log)
	model := tui.New(controller, newPredictionClient(cfg, log), tui.Options{
		ReportDir:    cfg.Report.Dir,
		ReportFormat: format,
		Catalog:      advice.Default,
	}, log)

	log.Info("Starting intake form",
		zap.String("prediction_api", cfg.Prediction.BaseURL),
		zap.String("report_dir", cfg.Report.Dir),
	)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
	if _, err := p.Run(); err != nil {
		log.Error("Intake form exited with error", zap.Error(err))
		return fmt.Errorf("intake form: %w", err)
	}
	return nil
}
