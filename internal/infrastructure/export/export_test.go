package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/retail-admin/internal/infrastructure/export"
)

func sampleSheet() export.Sheet {
	return export.Sheet{
		Title:       "Niveles de inventario",
		Header:      []string{"ID", "SKU", "Producto", "Cantidad"},
		Rows:        [][]string{{"42", "SKU-7", `Café "tostado"`, "20"}, {"43", "SKU-8", "Té & hierbas", "0"}},
		GeneratedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, export.FormatXLSX, f)

	_, err = export.ParseFormat("docx")
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat)

	_, err = export.For(export.FormatCSV)
	assert.ErrorIs(t, err, export.ErrUnsupportedFormat, "CSV no pasa por este paquete")
}

func TestExport_FilaConCeldasDeMasFalla(t *testing.T) {
	s := sampleSheet()
	s.Rows = append(s.Rows, []string{"1"})
	for _, f := range []export.Format{export.FormatXLSX, export.FormatPDF, export.FormatXML} {
		ex, err := export.For(f)
		require.NoError(t, err)
		assert.Error(t, ex.Export(context.Background(), s, &bytes.Buffer{}), string(f))
	}
}

func TestXLSX_CabeceraYNumeros(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXLSXExporter().Export(context.Background(), sampleSheet(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Datos")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "SKU", "Producto", "Cantidad"}, rows[0])
	assert.Equal(t, `Café "tostado"`, rows[1][2])

	typ, err := f.GetCellType("Datos", "D2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ)
	assert.NotEqual(t, excelize.CellTypeInlineString, typ)
}

func TestXML_UnRowPorFila(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewXMLExporter().Export(context.Background(), sampleSheet(), &buf))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "export", root.Tag)
	assert.Equal(t, "2", root.SelectAttrValue("rows", ""))
	assert.Equal(t, "2026-03-01T10:00:00Z", root.SelectAttrValue("generated_at", ""))

	rows := root.SelectElements("row")
	require.Len(t, rows, 2)
	fields := rows[1].SelectElements("field")
	require.Len(t, fields, 4)
	assert.Equal(t, "Producto", fields[2].SelectAttrValue("name", ""))
	assert.Equal(t, "Té & hierbas", fields[2].Text())
}

func TestPDF_GeneraDocumento(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.NewPDFExporter().Export(context.Background(), sampleSheet(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPDF_DemasiadasColumnas(t *testing.T) {
	s := export.Sheet{Header: make([]string, 13)}
	err := export.NewPDFExporter().Export(context.Background(), s, &bytes.Buffer{})
	assert.Error(t, err)
}
