package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Datos"

// XLSXExporter hoja única con cabecera en negrita. Las celdas enteras se guardan como número.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter { return &XLSXExporter{} }

func (e *XLSXExporter) Export(ctx context.Context, s Sheet, w io.Writer) error {
	if err := s.validate(); err != nil {
		return err
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("export: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("export: estilo de cabecera: %w", err)
	}

	widths := make([]int, len(s.Header))
	for i, h := range s.Header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("export: celda %s: %w", cell, err)
		}
		widths[i] = len([]rune(h))
	}
	last, _ := excelize.CoordinatesToCellName(len(s.Header), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("export: aplicar estilo: %w", err)
	}

	for r, rec := range s.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for c, v := range rec {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			var value interface{} = v
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				value = n
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("export: celda %s: %w", cell, err)
			}
			if l := len([]rune(v)); l > widths[c] {
				widths[c] = l
			}
		}
	}

	for i, wd := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, float64(min(wd+2, 60)))
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("export: fijar cabecera: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return nil
}

var _ Exporter = (*XLSXExporter)(nil)
