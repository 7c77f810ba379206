package export

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
)

// XMLExporter documento <export> con un <row> por fila y un <field name="..."> por celda.
type XMLExporter struct{}

func NewXMLExporter() *XMLExporter { return &XMLExporter{} }

func (e *XMLExporter) Export(ctx context.Context, s Sheet, w io.Writer) error {
	if err := s.validate(); err != nil {
		return err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("export")
	if s.Title != "" {
		root.CreateAttr("title", s.Title)
	}
	root.CreateAttr("generated_at", s.stamp().UTC().Format(time.RFC3339))
	root.CreateAttr("rows", strconv.Itoa(len(s.Rows)))

	for i, rec := range s.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := root.CreateElement("row")
		row.CreateAttr("n", strconv.Itoa(i+1))
		for c, v := range rec {
			field := row.CreateElement("field")
			field.CreateAttr("name", s.Header[c])
			field.SetText(v)
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("export: escribir xml: %w", err)
	}
	return nil
}

var _ Exporter = (*XMLExporter)(nil)
