package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// pdfEpoch 固定 PDF 创建/修改时间，保证同样的输入得到逐字节相同的文件
var pdfEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	pdfMargin     = 20.0
	pdfLineHeight = 6.0
)

// RenderPDF 将报告渲染为 A4 分页 PDF
func RenderPDF(doc Document, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator(doc.AppName, true)
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AliasNbPages("")

	// 内置字体为 cp1252 编码（μ、• 均可表示）
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(doc.AppName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	for _, s := range doc.Sections {
		pdf.SetFont("Helvetica", "BU", 13)
		pdf.CellFormat(0, 9, tr(s.Heading), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		for _, f := range s.Fields {
			pdf.CellFormat(0, pdfLineHeight, tr(f.Label+": "+f.Value), "", 1, "L", false, 0, "")
		}
		for _, p := range s.Paragraphs {
			if s.Kind == SectionDisclaimer {
				pdf.SetFont("Helvetica", "I", 9)
			}
			pdf.MultiCell(0, pdfLineHeight, tr(p), "", "L", false)
			pdf.SetFont("Helvetica", "", 11)
		}
		for _, l := range s.Lists {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(0, pdfLineHeight+1, tr(l.Heading), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			for _, item := range l.Items {
				pdf.MultiCell(0, pdfLineHeight, tr("• "+item), "", "L", false)
			}
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
