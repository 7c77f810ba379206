// Package table es el view-model de las tablas del panel: orden por columna, filtros,
// búsqueda global, selección masiva con acciones registradas y exportación.
package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Direction dirección de orden.
type Direction int

const (
	None Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return "none"
	}
}

// ErrUnknownColumn columna no definida en la tabla.
var ErrUnknownColumn = errors.New("table: columna desconocida")

// Column columna visible. Key es el atributo de la fila que muestra.
type Column struct {
	Key   string
	Title string
}

// Row fila con sus atributos por clave. ID identifica la fila en la selección.
type Row struct {
	ID    string
	Cells map[string]string
}

// SelectionListener recibe la visibilidad de la barra masiva y el conteo seleccionado.
// Se invoca en cada cambio del conteo, sin el lock de la tabla tomado.
type SelectionListener func(visible bool, count int)

// Table estado de una tabla. Seguro para uso concurrente.
type Table struct {
	mu        sync.RWMutex
	columns   []Column
	rows      []Row // orden de llegada
	sortCol   string
	sortDir   Direction
	filters   map[string]string
	search    string
	selected  map[string]bool
	listeners []SelectionListener
}

// New crea una tabla vacía con las columnas dadas.
func New(columns ...Column) *Table {
	return &Table{
		columns:  append([]Column(nil), columns...),
		filters:  map[string]string{},
		selected: map[string]bool{},
	}
}

// Columns devuelve las columnas.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.columns...)
}

func (t *Table) hasColumn(key string) bool {
	for _, c := range t.columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

// SetRows reemplaza las filas (recarga completa). La selección se conserva solo
// para las filas que siguen presentes.
func (t *Table) SetRows(rows []Row) {
	t.ReplaceRows(rows, nil)
}

// ReplaceRows es SetRows condicionado: accept, si no es nil, se evalúa con el lock de la
// tabla tomado y puede vetar el reemplazo. Devuelve si las filas se reemplazaron.
func (t *Table) ReplaceRows(rows []Row, accept func() bool) bool {
	t.mu.Lock()
	if accept != nil && !accept() {
		t.mu.Unlock()
		return false
	}
	before := len(t.selected)
	t.rows = append([]Row(nil), rows...)
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[r.ID] = true
	}
	for id := range t.selected {
		if !present[id] {
			delete(t.selected, id)
		}
	}
	notify := t.selectionChanged(before)
	t.mu.Unlock()
	notify()
	return true
}

// Sort alterna el orden de la columna: primera vez ascendente, luego alterna.
// Elegir otra columna reinicia en ascendente.
func (t *Table) Sort(column string) (Direction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.hasColumn(column) {
		return None, fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	if t.sortCol == column && t.sortDir == Ascending {
		t.sortDir = Descending
	} else {
		t.sortCol = column
		t.sortDir = Ascending
	}
	return t.sortDir, nil
}

// SetSort fija columna y dirección (restaurar preferencias). column vacío quita el orden.
func (t *Table) SetSort(column string, dir Direction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if column == "" || dir == None {
		t.sortCol, t.sortDir = "", None
		return nil
	}
	if !t.hasColumn(column) {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	t.sortCol, t.sortDir = column, dir
	return nil
}

// SortState columna y dirección actuales.
func (t *Table) SortState() (string, Direction) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sortCol, t.sortDir
}

// SetFilter activa un filtro por atributo; vacío lo desactiva.
func (t *Table) SetFilter(key, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if value == "" {
		delete(t.filters, key)
		return
	}
	t.filters[key] = value
}

// Filters copia de los filtros activos.
func (t *Table) Filters() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.filters))
	for k, v := range t.filters {
		out[k] = v
	}
	return out
}

// SetSearch fija la búsqueda global (sin distinguir mayúsculas, sobre todas las celdas).
func (t *Table) SetSearch(q string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.search = q
}

// matches: cada filtro activo debe ser subcadena exacta del atributo (AND).
// Un Caser no se comparte entre goroutines; cada llamada a visibleLocked crea el suyo.
func (t *Table) matches(r Row, folder cases.Caser) bool {
	for key, want := range t.filters {
		if !strings.Contains(r.Cells[key], want) {
			return false
		}
	}
	if t.search == "" {
		return true
	}
	needle := folder.String(t.search)
	for _, v := range r.Cells {
		if strings.Contains(folder.String(v), needle) {
			return true
		}
	}
	return false
}

// Visible filas que pasan filtros y búsqueda, en el orden vigente.
func (t *Table) Visible() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.visibleLocked()
}

func (t *Table) visibleLocked() []Row {
	folder := cases.Fold()
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		if t.matches(r, folder) {
			out = append(out, r)
		}
	}
	if t.sortCol == "" || t.sortDir == None {
		return out
	}
	col, desc := t.sortCol, t.sortDir == Descending
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return compareCells(out[j].Cells[col], out[i].Cells[col]) < 0
		}
		return compareCells(out[i].Cells[col], out[j].Cells[col]) < 0
	})
	return out
}

// compareCells compara numéricamente si ambas celdas son números, si no lexicográficamente.
func compareCells(a, b string) int {
	da, errA := decimal.NewFromString(strings.TrimSpace(a))
	db, errB := decimal.NewFromString(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		return da.Cmp(db)
	}
	return strings.Compare(a, b)
}

// Matrix encabezados y celdas visibles, en el orden de las columnas.
func (t *Table) Matrix() ([]string, [][]string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	header := make([]string, len(t.columns))
	for i, c := range t.columns {
		header[i] = c.Title
	}
	visible := t.visibleLocked()
	rows := make([][]string, len(visible))
	for i, r := range visible {
		cells := make([]string, len(t.columns))
		for j, c := range t.columns {
			cells[j] = r.Cells[c.Key]
		}
		rows[i] = cells
	}
	return header, rows
}
