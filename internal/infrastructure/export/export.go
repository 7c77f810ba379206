// Package export serializa una tabla (cabecera más filas de texto) a XLSX, PDF o XML.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format formato de salida.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatXML  Format = "xml"
)

// ErrUnsupportedFormat formato desconocido o sin exportador en este paquete.
var ErrUnsupportedFormat = errors.New("export: formato no soportado")

// Sheet datos a exportar. Cada fila debe tener len(Header) celdas.
type Sheet struct {
	Title       string
	Header      []string
	Rows        [][]string
	GeneratedAt time.Time
}

func (s Sheet) validate() error {
	if len(s.Header) == 0 {
		return errors.New("export: cabecera vacía")
	}
	for i, r := range s.Rows {
		if len(r) != len(s.Header) {
			return fmt.Errorf("export: fila %d tiene %d celdas, se esperaban %d", i+1, len(r), len(s.Header))
		}
	}
	return nil
}

func (s Sheet) stamp() time.Time {
	if s.GeneratedAt.IsZero() {
		return time.Now()
	}
	return s.GeneratedAt
}

// Exporter escribe una Sheet en w.
type Exporter interface {
	Export(ctx context.Context, s Sheet, w io.Writer) error
}

// ParseFormat normaliza el nombre del formato.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatCSV, FormatXLSX, FormatPDF, FormatXML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// For exportador del formato. CSV lo escribe la tabla directamente.
func For(f Format) (Exporter, error) {
	switch f {
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatPDF:
		return NewPDFExporter(), nil
	case FormatXML:
		return NewXMLExporter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}
