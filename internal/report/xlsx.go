package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Assessment Report"

// xlsxHeader 导出表头
var xlsxHeader = []string{"Section", "Item", "Value"}

// RenderXLSX 将报告导出为 Excel（每行一个字段/条目）
func RenderXLSX(doc Document) ([]byte, error) {
	f := excelize.NewFile()
	// Note: Don't defer Close() here, because WriteTo needs the file to be open

	index, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	// 删除默认的 Sheet1
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create title style: %w", err)
	}

	// 第1行：标题；第3行：表头；数据从第4行开始
	if err := f.SetCellValue(xlsxSheetName, "A1", doc.AppName+" - "+doc.Title); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set title: %w", err)
	}
	if err := f.SetCellStyle(xlsxSheetName, "A1", "A1", titleStyle); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to set title style: %w", err)
	}

	const headerRow = 3
	for col, header := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, headerRow)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(xlsxSheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(xlsxSheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		30, // Section
		20, // Item
		90, // Value
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(xlsxSheetName, col, col, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	row := headerRow + 1
	for _, r := range xlsxRows(doc) {
		for col, value := range r {
			if value == "" {
				continue
			}
			if err := setCellValue(f, xlsxSheetName, col+1, row, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, col+1, err)
			}
		}
		row++
	}

	// 冻结表头
	if err := f.SetPanes(xlsxSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// xlsxRows 将报告展开为 [Section, Item, Value] 行
func xlsxRows(doc Document) [][3]string {
	var rows [][3]string
	for _, s := range doc.Sections {
		for _, fld := range s.Fields {
			rows = append(rows, [3]string{s.Heading, fld.Label, fld.Value})
		}
		for _, p := range s.Paragraphs {
			rows = append(rows, [3]string{s.Heading, "", p})
		}
		for _, l := range s.Lists {
			for _, item := range l.Items {
				rows = append(rows, [3]string{s.Heading, l.Heading, item})
			}
		}
	}
	return rows
}

// setCellValue 设置单元格值
func setCellValue(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}
