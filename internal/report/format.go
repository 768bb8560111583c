package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BaseFileName 报告文件名固定，用户不可配置
const BaseFileName = "diabetes_risk_assessment"

// Format 报告输出格式
type Format string

const (
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// ParseFormat accepts pdf, xlsx and md (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported report format %q", s)
	}
}

// FileName returns the fixed download file name for a format.
func (f Format) FileName() string {
	return BaseFileName + "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Render 按格式渲染报告
func Render(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatPDF:
		var buf bytes.Buffer
		if err := RenderPDF(doc, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatXLSX:
		return RenderXLSX(doc)
	case FormatMarkdown:
		return []byte(RenderMarkdown(doc)), nil
	default:
		return nil, fmt.Errorf("unsupported report format %q", format)
	}
}

// WriteFile 渲染报告并写入 dir/diabetes_risk_assessment.<ext>，返回文件路径
func WriteFile(dir string, doc Document, format Format) (string, error) {
	data, err := Render(doc, format)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir: %w", err)
	}
	path := filepath.Join(dir, format.FileName())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}
