package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jhoicas/retail-admin/internal/admin/table"
	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/jhoicas/retail-admin/internal/client"
	"github.com/jhoicas/retail-admin/internal/infrastructure/export"
	"github.com/spf13/cobra"
)

// levelsTable nombre de la tabla de niveles en las preferencias.
const levelsTable = "levels"

const msgLoadFailed = "No se pudieron cargar los niveles"

type levelsOptions struct {
	server  client.LevelFilter
	filters []string
	search  string
	sortCol string
	desc    bool
	save    bool
	format  string
	output  string
}

func (a *app) levelsCmd() *cobra.Command {
	var o levelsOptions
	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Lista niveles de inventario con orden, filtros, búsqueda y exportación",
		RunE: func(cmd *cobra.Command, _ []string) error {
			view, err := a.loadLevels(cmd, &o)
			if err != nil {
				return err
			}
			if o.format != "" {
				return a.exportTable(cmd.Context(), view.Table(), o.format, o.output)
			}
			header, rows := view.Table().Matrix()
			return a.render(header, rows)
		},
	}
	a.levelFlags(cmd, &o)
	cmd.Flags().StringArrayVar(&o.filters, "filter", nil, "filtro local columna=valor (repetible)")
	cmd.Flags().StringVar(&o.search, "search", "", "búsqueda global sin distinguir mayúsculas")
	cmd.Flags().StringVar(&o.sortCol, "sort", "", "columna de orden")
	cmd.Flags().BoolVar(&o.desc, "desc", false, "orden descendente")
	cmd.Flags().BoolVar(&o.save, "save", false, "guarda filtros y orden en las preferencias")
	cmd.Flags().StringVar(&o.format, "export", "", "exporta en csv, xlsx, pdf o xml")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "archivo de salida (por defecto stdout)")
	return cmd
}

// levelFlags filtros de servidor compartidos por levels y bulk.
func (a *app) levelFlags(cmd *cobra.Command, o *levelsOptions) {
	cmd.Flags().Int64Var(&o.server.StoreID, "store", 0, "filtra por tienda")
	cmd.Flags().Int64Var(&o.server.ProductID, "product", 0, "filtra por producto")
	cmd.Flags().StringVar(&o.server.Status, "status", "", "in_stock, low_stock, out_of_stock u overstock")
	cmd.Flags().IntVar(&o.server.Limit, "limit", 100, "máximo de niveles")
}

// loadLevels carga la vista aplicando primero las preferencias guardadas y luego los flags.
func (a *app) loadLevels(cmd *cobra.Command, o *levelsOptions) (*workflow.LevelsView, error) {
	view := workflow.NewLevelsView(a.client.Inventory)
	t := view.Table()

	local := a.prefs.Filters(levelsTable)
	if cmd.Flags().Changed("filter") {
		local = map[string]string{}
		for _, f := range o.filters {
			k, v, ok := strings.Cut(f, "=")
			if !ok || k == "" {
				return nil, fmt.Errorf("filtro inválido %q, se espera columna=valor", f)
			}
			local[k] = v
		}
	}
	for k, v := range local {
		t.SetFilter(k, v)
	}
	t.SetSearch(o.search)

	col, dir := o.sortCol, table.Ascending
	if o.desc {
		dir = table.Descending
	}
	if col == "" {
		if saved, ok := a.prefs.Snapshot().Sort[levelsTable]; ok {
			col = saved.Column
			if !saved.Ascending {
				dir = table.Descending
			}
		}
	}
	if col != "" {
		if err := t.SetSort(col, dir); err != nil {
			return nil, err
		}
	}

	if err := view.SetFilter(cmd.Context(), o.server); err != nil {
		a.log.Error().Err(err).Msg("carga de niveles falló")
		a.notes.Error(msgLoadFailed)
		return nil, err
	}

	if o.save {
		if err := a.saveLevelPrefs(t.Filters(), col, dir); err != nil {
			return nil, err
		}
	}
	return view, nil
}

func (a *app) saveLevelPrefs(filters map[string]string, col string, dir table.Direction) error {
	if err := a.prefs.ClearFilters(levelsTable); err != nil {
		return err
	}
	for k, v := range filters {
		if err := a.prefs.SetFilter(levelsTable, k, v); err != nil {
			return err
		}
	}
	if col != "" {
		if err := a.prefs.SetSort(levelsTable, col, dir != table.Descending); err != nil {
			return err
		}
	}
	return nil
}

// exportTable escribe las filas visibles en el formato pedido.
func (a *app) exportTable(ctx context.Context, t *table.Table, format, output string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	w, done, err := a.openOutput(output)
	if err != nil {
		return err
	}
	defer done()

	if f == export.FormatCSV {
		return t.WriteCSV(w)
	}
	ex, err := export.For(f)
	if err != nil {
		return err
	}
	header, rows := t.Matrix()
	return ex.Export(ctx, export.Sheet{Title: "Niveles de inventario", Header: header, Rows: rows}, w)
}

// openOutput abre el archivo de salida; vacío o "-" es Out.
func (a *app) openOutput(path string) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return a.deps.Out, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("crear %s: %w", path, err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			a.log.Warn().Err(err).Str("path", path).Msg("cerrar archivo de salida")
		}
	}, nil
}
