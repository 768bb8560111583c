// Package tui implements the interactive terminal intake form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/advice"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/domain"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/form"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/report"
	"github.com/Marvy-ctrl/diabetes-risk-predictor/internal/validator"
)

const helpText = "tab/shift+tab move • ctrl+s submit • ctrl+r new assessment • ctrl+p save report • esc quit"

// submitDoneMsg 预测服务交互结束
type submitDoneMsg struct {
	sub    form.Submission
	result *domain.PredictionResult
	err    error
}

// reportSavedMsg 报告写入完成
type reportSavedMsg struct {
	path string
	err  error
}

// Options 终端表单可选项
type Options struct {
	ReportDir    string
	ReportFormat report.Format
	Catalog      advice.Catalog
}

// Model bubbletea 模型；表单状态全部由 form.Controller 持有
type Model struct {
	controller   *form.Controller
	predictor    form.Predictor
	catalog      advice.Catalog
	reportDir    string
	reportFormat report.Format
	logger       *zap.Logger

	inputs  []textinput.Model // 与 domain.FieldOrder 一一对应
	focus   domain.FieldID
	spinner spinner.Model
	styles  Styles
	status  string

	quitting bool
}

func New(controller *form.Controller, predictor form.Predictor, opts Options, logger *zap.Logger) Model {
	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	if opts.Catalog == nil {
		opts.Catalog = advice.Default
	}
	if opts.ReportFormat == "" {
		opts.ReportFormat = report.FormatPDF
	}

	m := Model{
		controller:   controller,
		predictor:    predictor,
		catalog:      opts.Catalog,
		reportDir:    opts.ReportDir,
		reportFormat: opts.ReportFormat,
		logger:       logger,
		inputs:       make([]textinput.Model, len(domain.FieldOrder)),
		spinner:      sp,
		styles:       styles,
	}
	for i, id := range domain.FieldOrder {
		info := form.Info(id)
		ti := textinput.New()
		ti.Placeholder = info.Placeholder
		ti.Prompt = "› "
		ti.CharLimit = 32
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.syncInputs()
	m.setFocus(domain.FieldOrder[0])
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitDoneMsg:
		m.controller.CompleteSubmit(msg.sub, msg.result, msg.err)
		return m, nil

	case reportSavedMsg:
		if msg.err != nil {
			m.logger.Error("Failed to save report", zap.Error(msg.err))
			m.status = "Report not saved: " + msg.err.Error()
		} else {
			m.logger.Info("Report saved", zap.String("path", msg.path))
			m.status = "Report saved to " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if m.controller.State() != form.StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		var cmd tea.Cmd
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab", "down", "enter":
			cmd = m.moveFocus(1)
		case "shift+tab", "up":
			cmd = m.moveFocus(-1)
		case "ctrl+s":
			cmd = m.submit()
		case "ctrl+r":
			cmd = m.reset()
		case "ctrl+p":
			cmd = m.saveReport()
		default:
			// 提交中字段只读
			if !m.controller.CanSubmit() {
				return m, nil
			}
			cmd = m.updateFocusedInput(msg)
		}
		return m, cmd
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	i := fieldIndex(m.focus)
	before := m.inputs[i].Value()

	var cmd tea.Cmd
	m.inputs[i], cmd = m.inputs[i].Update(msg)

	if after := m.inputs[i].Value(); after != before {
		if _, err := m.controller.SetField(m.focus, after); err != nil {
			m.status = err.Error()
		}
	}
	return cmd
}

func (m *Model) submit() tea.Cmd {
	sub, err := m.controller.BeginSubmit()
	if err != nil {
		var fieldErrs *validator.Errors
		if errors.As(err, &fieldErrs) {
			m.status = "Please correct the highlighted fields."
			if list := fieldErrs.List(); len(list) > 0 {
				return m.setFocus(list[0].Field)
			}
			return nil
		}
		m.status = err.Error()
		return nil
	}
	m.status = ""
	return tea.Batch(m.spinner.Tick, exchange(m.predictor, sub))
}

// exchange 在 bubbletea 的命令协程中调用预测服务，结果以消息形式回到 Update
func exchange(p form.Predictor, sub form.Submission) tea.Cmd {
	return func() tea.Msg {
		result, err := p.Predict(context.Background(), sub.ID, sub.Payload)
		return submitDoneMsg{sub: sub, result: result, err: err}
	}
}

func (m *Model) reset() tea.Cmd {
	m.controller.Reset()
	m.syncInputs()
	m.status = ""
	return m.setFocus(domain.FieldOrder[0])
}

func (m *Model) saveReport() tea.Cmd {
	record, result, err := m.controller.ReportInputs()
	if err != nil {
		m.status = "Complete the form before saving a report."
		return nil
	}
	doc, err := report.Build(record, result, m.catalog)
	if err != nil {
		m.status = "Report unavailable: " + err.Error()
		return nil
	}
	dir, format := m.reportDir, m.reportFormat
	m.status = "Saving report..."
	return func() tea.Msg {
		path, err := report.WriteFile(dir, doc, format)
		return reportSavedMsg{path: path, err: err}
	}
}

// syncInputs 用控制器中的值覆盖输入框
func (m *Model) syncInputs() {
	values := m.controller.Values()
	for i, id := range domain.FieldOrder {
		m.inputs[i].SetValue(values[id])
		m.inputs[i].CursorEnd()
	}
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	visible := m.controller.VisibleFields()
	idx := 0
	for i, id := range visible {
		if id == m.focus {
			idx = i
			break
		}
	}
	next := (idx + delta + len(visible)) % len(visible)
	return m.setFocus(visible[next])
}

func (m *Model) setFocus(id domain.FieldID) tea.Cmd {
	var cmd tea.Cmd
	for i, fid := range domain.FieldOrder {
		if fid == id {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.focus = id
	return cmd
}

func fieldIndex(id domain.FieldID) int {
	for i, fid := range domain.FieldOrder {
		if fid == id {
			return i
		}
	}
	return 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	snap := m.controller.Snapshot()

	errs := make(map[domain.FieldID]string, len(snap.FieldErrors))
	for _, fe := range snap.FieldErrors {
		errs[fe.Field] = fe.Message
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(report.AppName))
	b.WriteString(" ")
	b.WriteString(m.styles.Subtitle.Render("Diabetes Risk Assessment"))
	b.WriteString("\n\n")

	for _, info := range snap.VisibleFields {
		focused := info.ID == m.focus
		label := m.styles.Label
		if focused {
			label = m.styles.FocusedLabel
		}
		b.WriteString(label.Render(info.Label))
		b.WriteString("\n")
		b.WriteString(m.inputs[fieldIndex(info.ID)].View())
		b.WriteString("\n")

		switch {
		case errs[info.ID] != "":
			b.WriteString(m.styles.FieldError.Render(errs[info.ID]))
			b.WriteString("\n")
		case focused && len(info.Choices) > 0:
			b.WriteString(m.styles.Hint.Render("Options: " + strings.Join(info.Choices, ", ")))
			b.WriteString("\n")
		case focused && info.Hint != "":
			b.WriteString(m.styles.Hint.Render(info.Hint))
			b.WriteString("\n")
		}
	}

	switch snap.State {
	case form.StateSubmitting:
		b.WriteString("\n" + m.spinner.View() + " Analyzing your data...\n")
	case form.StateFailed:
		b.WriteString("\n" + m.styles.Failure.Render(snap.Error) + "\n")
	case form.StateSucceeded:
		if snap.Result != nil {
			b.WriteString(m.renderResult(snap.Result))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.styles.Status.Render(m.status) + "\n")
	}
	b.WriteString(m.styles.Help.Render(helpText))
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderResult(result *domain.PredictionResult) string {
	var b strings.Builder
	b.WriteString(m.styles.ResultTitle.Render("Assessment Result"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Prediction: %s\n", result.Message))
	b.WriteString(fmt.Sprintf("Confidence: %s\n", result.Confidence))

	entry, err := m.catalog.Lookup(result.Message)
	if err != nil {
		b.WriteString(m.styles.Failure.Render(err.Error()))
		return m.styles.ResultCard.Render(b.String())
	}
	if entry.Summary != "" {
		b.WriteString("\n" + entry.Summary + "\n")
	}
	b.WriteString("\n" + m.styles.Heading.Render(entry.Title) + "\n")
	for _, l := range []struct {
		heading string
		items   []string
	}{
		{"Diet", entry.Diet},
		{"Exercise", entry.Exercise},
		{"Lifestyle", entry.Lifestyle},
	} {
		b.WriteString(l.heading + ":\n")
		for _, item := range l.items {
			b.WriteString("  • " + item + "\n")
		}
	}
	return m.styles.ResultCard.Render(strings.TrimRight(b.String(), "\n"))
}
