package table

import (
	"bufio"
	"io"
	"strings"
)

// WriteCSV escribe encabezado y filas visibles. Todo campo va entre comillas dobles y
// las comillas internas se duplican.
func (t *Table) WriteCSV(w io.Writer) error {
	header, rows := t.Matrix()
	bw := bufio.NewWriter(w)
	if err := writeCSVLine(bw, header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writeCSVLine(bw, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeCSVLine(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(`"` + strings.ReplaceAll(f, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}
