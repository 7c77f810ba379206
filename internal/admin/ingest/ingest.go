// Package ingest importa hojas de conteo físico y las convierte en ajustes de inventario.
package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/client"
	"github.com/jhoicas/retail-admin/pkg/logger"
	"golang.org/x/text/encoding/charmap"
)

// Encoding codificación del archivo de conteo.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "iso-8859-1"
)

// ReasonPhysicalCount motivo de los ajustes generados.
const ReasonPhysicalCount = "physical_count"

var expectedHeader = []string{"product_id", "store_id", "counted"}

// ErrEmptySheet la hoja no tiene filas de datos.
var ErrEmptySheet = errors.New("ingest: la hoja de conteo no tiene filas")

// CountRow una fila de la hoja. Line es la línea del archivo (la cabecera es la 1).
type CountRow struct {
	Line      int
	ProductID int64
	StoreID   int64
	Counted   int64
}

// ParseEncoding acepta utf-8 / utf8 / latin1 / iso-8859-1; vacío es UTF-8.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return UTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return Latin1, nil
	default:
		return "", fmt.Errorf("ingest: codificación no soportada %q", s)
	}
}

// Parse lee la hoja completa y valida cabecera y valores.
func Parse(r io.Reader, enc Encoding) ([]CountRow, error) {
	if enc == Latin1 {
		r = charmap.ISO8859_1.NewDecoder().Reader(r)
	}
	br := bufio.NewReader(r)
	if b, err := br.Peek(3); err == nil && string(b) == "\xef\xbb\xbf" {
		_, _ = br.Discard(3)
	}

	reader := csv.NewReader(br)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ingest: leer CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, ErrEmptySheet
	}
	if !sameHeader(records[0]) {
		return nil, fmt.Errorf("ingest: cabecera esperada %v, recibida %v", expectedHeader, records[0])
	}

	rows := make([]CountRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		line := i + 2
		if len(rec) != len(expectedHeader) {
			return nil, fmt.Errorf("ingest: línea %d: se esperaban %d columnas, hay %d", line, len(expectedHeader), len(rec))
		}
		row, err := parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("ingest: línea %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func sameHeader(h []string) bool {
	if len(h) != len(expectedHeader) {
		return false
	}
	for i := range h {
		if strings.ToLower(strings.TrimSpace(h[i])) != expectedHeader[i] {
			return false
		}
	}
	return true
}

func parseRow(rec []string) (CountRow, error) {
	var row CountRow
	var err error
	if row.ProductID, err = positive(rec[0], "product_id"); err != nil {
		return row, err
	}
	if row.StoreID, err = positive(rec[1], "store_id"); err != nil {
		return row, err
	}
	row.Counted, err = strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
	if err != nil {
		return row, fmt.Errorf("counted inválido %q", rec[2])
	}
	if row.Counted < 0 {
		return row, fmt.Errorf("counted no puede ser negativo (%d)", row.Counted)
	}
	return row, nil
}

func positive(s, field string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s inválido %q", field, s)
	}
	return n, nil
}

// Adjuster aplica un ajuste sobre un nivel. *workflow.AdjustmentWorkflow lo implementa.
type Adjuster interface {
	SubmitLevel(ctx context.Context, in workflow.LevelAdjustment) (*dto.LevelResponse, error)
}

// RowError fallo de una fila concreta.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %v", e.Line, e.Err) }

// Report resultado de una importación.
type Report struct {
	Adjusted  int
	Unchanged int
	Failed    []RowError
}

// Importer cruza cada fila con el nivel actual y ajusta la diferencia.
type Importer struct {
	levels workflow.LevelsLister
	adjust Adjuster
	log    *logger.Logger
}

func NewImporter(levels workflow.LevelsLister, adjust Adjuster, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{levels: levels, adjust: adjust, log: log.Component("ingest")}
}

// Run procesa todas las filas; un fallo en una fila no detiene las demás.
// Solo una cancelación del contexto corta la importación.
func (im *Importer) Run(ctx context.Context, rows []CountRow) (Report, error) {
	var rep Report
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		changed, err := im.apply(ctx, row)
		switch {
		case err != nil:
			im.log.Warn().Err(err).Int("line", row.Line).Msg("fila de conteo no aplicada")
			rep.Failed = append(rep.Failed, RowError{Line: row.Line, Err: err})
		case changed:
			rep.Adjusted++
		default:
			rep.Unchanged++
		}
	}
	im.log.Info().Int("adjusted", rep.Adjusted).Int("unchanged", rep.Unchanged).Int("failed", len(rep.Failed)).Msg("conteo importado")
	return rep, nil
}

func (im *Importer) apply(ctx context.Context, row CountRow) (bool, error) {
	resp, err := im.levels.ListLevels(ctx, client.LevelFilter{ProductID: row.ProductID, StoreID: row.StoreID, Limit: 1})
	if err != nil {
		return false, err
	}
	var level *dto.LevelResponse
	for i := range resp.Items {
		if resp.Items[i].ProductID == row.ProductID && resp.Items[i].StoreID == row.StoreID {
			level = &resp.Items[i]
			break
		}
	}
	if level == nil {
		return false, workflow.ErrLevelNotFound
	}
	delta := row.Counted - level.Quantity
	if delta == 0 {
		return false, nil
	}
	_, err = im.adjust.SubmitLevel(ctx, workflow.LevelAdjustment{
		LevelID: level.ID,
		Delta:   delta,
		Reason:  ReasonPhysicalCount,
		Notes:   fmt.Sprintf("conteo físico, línea %d", row.Line),
	})
	return err == nil, err
}
