package workflow

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/jhoicas/retail-admin/internal/admin/table"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/client"
)

// ErrSuperseded una recarga más reciente reemplazó a esta; su respuesta se descartó.
var ErrSuperseded = errors.New("workflow: recarga reemplazada por una más reciente")

// LevelsLister consulta niveles de inventario.
type LevelsLister interface {
	ListLevels(ctx context.Context, f client.LevelFilter) (*dto.LevelListResponse, error)
}

// LevelColumns columnas de la tabla de niveles.
var LevelColumns = []table.Column{
	{Key: "id", Title: "ID"},
	{Key: "sku", Title: "SKU"},
	{Key: "product", Title: "Producto"},
	{Key: "store", Title: "Tienda"},
	{Key: "quantity", Title: "Cantidad"},
	{Key: "available", Title: "Disponible"},
	{Key: "reorder_point", Title: "Punto de reorden"},
	{Key: "status", Title: "Estado"},
}

// LevelsView view-model de la pantalla de niveles. Cada recarga lleva un número de generación
// y cancela la anterior; una respuesta de una generación vieja nunca sobrescribe la tabla.
type LevelsView struct {
	mu     sync.Mutex
	api    LevelsLister
	table  *table.Table
	filter client.LevelFilter
	levels map[int64]dto.LevelResponse
	gen    uint64
	cancel context.CancelFunc
}

// NewLevelsView crea la vista con una tabla de columnas LevelColumns.
func NewLevelsView(api LevelsLister) *LevelsView {
	return &LevelsView{
		api:    api,
		table:  table.New(LevelColumns...),
		levels: map[int64]dto.LevelResponse{},
	}
}

// Table tabla subyacente (orden, filtros locales, selección).
func (v *LevelsView) Table() *table.Table { return v.table }

// Filter filtro de servidor vigente.
func (v *LevelsView) Filter() client.LevelFilter {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// SetFilter cambia el filtro de servidor y recarga.
func (v *LevelsView) SetFilter(ctx context.Context, f client.LevelFilter) error {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
	return v.Reload(ctx)
}

// Reload vuelve a pedir los niveles con el filtro vigente y reemplaza las filas.
// Devuelve ErrSuperseded si otra recarga empezó mientras esta esperaba.
func (v *LevelsView) Reload(ctx context.Context) error {
	v.mu.Lock()
	v.gen++
	gen := v.gen
	if v.cancel != nil {
		v.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	f := v.filter
	v.mu.Unlock()
	defer cancel()

	resp, err := v.api.ListLevels(fetchCtx, f)
	if err != nil {
		v.mu.Lock()
		defer v.mu.Unlock()
		if gen != v.gen {
			return ErrSuperseded
		}
		v.cancel = nil
		return err
	}

	levels := make(map[int64]dto.LevelResponse, len(resp.Items))
	rows := make([]table.Row, 0, len(resp.Items))
	for _, l := range resp.Items {
		levels[l.ID] = l
		rows = append(rows, levelRow(l))
	}
	// La generación se comprueba con el lock de la tabla tomado; los listeners de
	// selección corren después, sin v.mu, y pueden volver a llamar a la vista.
	applied := v.table.ReplaceRows(rows, func() bool {
		v.mu.Lock()
		defer v.mu.Unlock()
		if gen != v.gen {
			return false
		}
		v.cancel = nil
		v.levels = levels
		return true
	})
	if !applied {
		return ErrSuperseded
	}
	return nil
}

// Level nivel cargado por ID.
func (v *LevelsView) Level(id int64) (dto.LevelResponse, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	l, ok := v.levels[id]
	return l, ok
}

// Generation número de la última recarga iniciada.
func (v *LevelsView) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

func levelRow(l dto.LevelResponse) table.Row {
	store := l.StoreName
	if store == "" {
		store = strconv.FormatInt(l.StoreID, 10)
	}
	return table.Row{
		ID: strconv.FormatInt(l.ID, 10),
		Cells: map[string]string{
			"id":            strconv.FormatInt(l.ID, 10),
			"sku":           l.ProductSKU,
			"product":       l.ProductName,
			"store":         store,
			"quantity":      strconv.FormatInt(l.Quantity, 10),
			"available":     strconv.FormatInt(l.Available, 10),
			"reorder_point": strconv.FormatInt(l.ReorderPoint, 10),
			"status":        l.Status,
		},
	}
}
