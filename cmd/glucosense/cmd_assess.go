package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/form"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/report"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"
)

type assessOptions struct {
	file   string
	format string
	outDir string
	quiet  bool
	fields map[domain.FieldID]*string
}

func assessCmd(root *rootOptions) *cobra.Command {
	opts := &assessOptions{fields: make(map[domain.FieldID]*string, len(domain.FieldOrder))}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Submit an intake record non-interactively and write the report",
		Example: "  glucosense assess --file intake.yaml --format pdf --out ./reports\n" +
			"  glucosense assess --gender male --age 52 --weight 88 --height 1.8 ...",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "YAML intake file (field name -> value)")
	cmd.Flags().StringVar(&opts.format, "format", "", "report format: pdf, xlsx or md (default $REPORT_FORMAT)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "report output directory (default $REPORT_DIR)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "do not print the report to the terminal")
	for _, id := range domain.FieldOrder {
		opts.fields[id] = cmd.Flags().String(flagName(id), "", fmt.Sprintf("%s (overrides the intake file)", id))
	}
	return cmd
}

func runAssess(cmd *cobra.Command, root *rootOptions, opts *assessOptions) error {
	cfg := loadConfig(root)
	if opts.outDir != "" {
		cfg.Report.Dir = opts.outDir
	}
	if opts.format != "" {
		cfg.Report.Format = opts.format
	}
	format, err := report.ParseFormat(cfg.Report.Format)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	raw := domain.RawRecord{}
	if opts.file != "" {
		if raw, err = loadIntakeFile(opts.file); err != nil {
			return err
		}
	}
	for id, v := range opts.fields {
		if cmd.Flags().Changed(flagName(id)) {
			raw[id] = *v
		}
	}

	return assess(cmd.Context(), cmd.OutOrStdout(), raw, newPredictionClient(cfg, log), assessTarget{
		dir:    cfg.Report.Dir,
		format: format,
		render: !opts.quiet,
	}, log)
}

type assessTarget struct {
	dir    string
	format report.Format
	render bool
}

// assess 通过同一个表单控制器完成一次录入、提交与报告输出
func assess(ctx context.Context, out io.Writer, raw domain.RawRecord, p form.Predictor, target assessTarget, log *zap.Logger) error {
	controller := form.NewController(log)
	// 按表单顺序逐个录入；Pregnancies 是否采集在提交时按 Gender 决定
	for _, id := range domain.FieldOrder {
		if v, ok := raw[id]; ok {
			if _, err := controller.SetField(id, v); err != nil {
				return err
			}
		}
	}

	if err := controller.Submit(ctx, p); err != nil {
		var fieldErrs *validator.Errors
		if errors.As(err, &fieldErrs) {
			fmt.Fprintln(out, "The intake record has errors:")
			for _, fe := range fieldErrs.List() {
				fmt.Fprintf(out, "  %s: %s\n", form.Info(fe.Field).Label, fe.Message)
			}
		}
		return err
	}
	if f := controller.Failure(); f != nil {
		fmt.Fprintln(out, f.Message)
		return fmt.Errorf("prediction failed: %w", f.Cause)
	}

	record, result, err := controller.ReportInputs()
	if err != nil {
		return err
	}
	doc, err := report.Build(record, result, advice.Default)
	if err != nil {
		return err
	}

	path, err := report.WriteFile(target.dir, doc, target.format)
	if err != nil {
		return err
	}
	log.Info("Report written", zap.String("path", path), zap.String("message", result.Message))

	if target.render {
		if err := renderTerminal(out, doc); err != nil {
			log.Warn("Failed to render report in terminal", zap.Error(err))
		}
	}
	fmt.Fprintf(out, "Assessment: %s (confidence %s)\n", result.Message, result.Confidence)
	fmt.Fprintf(out, "Report saved to %s\n", path)
	return nil
}

// renderTerminal 用 glamour 在终端中显示 Markdown 版报告
func renderTerminal(out io.Writer, doc report.Document) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render(report.RenderMarkdown(doc))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}
