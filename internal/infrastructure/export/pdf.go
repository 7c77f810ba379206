package export

import (
	"context"
	"fmt"
	"io"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ── Paleta ───────────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 250}
)

// maxPDFColumns la grilla de maroto tiene 12 columnas.
const maxPDFColumns = 12

// PDFExporter reporte A4 con título, tabla y pie con el conteo de filas.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter { return &PDFExporter{} }

func (e *PDFExporter) Export(ctx context.Context, s Sheet, w io.Writer) error {
	if err := s.validate(); err != nil {
		return err
	}
	if len(s.Header) > maxPDFColumns {
		return fmt.Errorf("export: el PDF admite hasta %d columnas, hay %d", maxPDFColumns, len(s.Header))
	}
	title := nonEmpty(s.Title, "Reporte")

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor("retail-admin", true).
		Build()

	m := maroto.New(cfg)
	sizes := columnSizes(len(s.Header))

	m.AddRows(titleRow(title, s.stamp().Format("02/01/2006 15:04")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(headerRow(s.Header, sizes))
	for i, rec := range s.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.AddRows(dataRow(rec, sizes, i%2 == 1))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New(fmt.Sprintf("%d filas", len(s.Rows)), props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return fmt.Errorf("export: generar pdf: %w", err)
	}
	if _, err := w.Write(doc.GetBytes()); err != nil {
		return fmt.Errorf("export: escribir pdf: %w", err)
	}
	return nil
}

// ── Secciones ────────────────────────────────────────────────────────────────

func titleRow(title, stamp string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+stamp, props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func headerRow(header []string, sizes []int) core.Row {
	cols := make([]core.Col, len(header))
	for i, h := range header {
		cols[i] = col.New(sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func dataRow(rec []string, sizes []int, striped bool) core.Row {
	cols := make([]core.Col, len(rec))
	for i, v := range rec {
		cols[i] = col.New(sizes[i]).Add(text.New(v, props.Text{Size: 8, Top: 1, Left: 1, Right: 1}))
	}
	r := row.New(6).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ──────────────────────────────────────────────────────────────────

// columnSizes reparte las 12 columnas de la grilla; el sobrante va a las primeras.
func columnSizes(n int) []int {
	sizes := make([]int, n)
	base, extra := maxPDFColumns/n, maxPDFColumns%n
	for i := range sizes {
		sizes[i] = base
		if i < extra {
			sizes[i]++
		}
	}
	return sizes
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

var _ Exporter = (*PDFExporter)(nil)
