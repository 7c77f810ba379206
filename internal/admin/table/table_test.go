package table_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/admin/table"
)

func levelsTable() *table.Table {
	t := table.New(
		table.Column{Key: "sku", Title: "SKU"},
		table.Column{Key: "store", Title: "Tienda"},
		table.Column{Key: "quantity", Title: "Cantidad"},
		table.Column{Key: "status", Title: "Estado"},
	)
	t.SetRows([]table.Row{
		{ID: "1", Cells: map[string]string{"sku": "SKU-1001", "store": "Centro", "quantity": "150", "status": "in_stock"}},
		{ID: "2", Cells: map[string]string{"sku": "SKU-1001", "store": "Norte", "quantity": "12", "status": "low_stock"}},
		{ID: "3", Cells: map[string]string{"sku": "SKU-2001", "store": "Centro", "quantity": "9", "status": "low_stock"}},
		{ID: "4", Cells: map[string]string{"sku": "SKU-3001", "store": "Sur", "quantity": "0", "status": "out_of_stock"}},
		{ID: "5", Cells: map[string]string{"sku": "SKU-1002", "store": "Centro", "quantity": "12", "status": "in_stock"}},
	})
	return t
}

func ids(rows []table.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestSort_PrimeraVezAscendenteLuegoAlterna(t *testing.T) {
	tb := levelsTable()

	dir, err := tb.Sort("quantity")
	require.NoError(t, err)
	assert.Equal(t, table.Ascending, dir)
	// numérico, no lexicográfico; empates conservan el orden de llegada
	assert.Equal(t, []string{"4", "3", "2", "5", "1"}, ids(tb.Visible()))

	dir, _ = tb.Sort("quantity")
	assert.Equal(t, table.Descending, dir)
	assert.Equal(t, []string{"1", "2", "5", "3", "4"}, ids(tb.Visible()))

	dir, _ = tb.Sort("quantity")
	assert.Equal(t, table.Ascending, dir)

	col, dir := tb.SortState()
	assert.Equal(t, "quantity", col)
	assert.Equal(t, table.Ascending, dir)
}

func TestSort_OtraColumnaReiniciaAscendente(t *testing.T) {
	tb := levelsTable()
	_, _ = tb.Sort("quantity")
	_, _ = tb.Sort("quantity")

	dir, err := tb.Sort("store")
	require.NoError(t, err)
	assert.Equal(t, table.Ascending, dir)
	assert.Equal(t, []string{"1", "3", "5", "2", "4"}, ids(tb.Visible()))

	_, err = tb.Sort("precio")
	assert.ErrorIs(t, err, table.ErrUnknownColumn)
}

func TestSort_MezclaNumerosYTextoEsLexicografico(t *testing.T) {
	tb := table.New(table.Column{Key: "v", Title: "V"})
	tb.SetRows([]table.Row{
		{ID: "a", Cells: map[string]string{"v": "10"}},
		{ID: "b", Cells: map[string]string{"v": "9"}},
		{ID: "c", Cells: map[string]string{"v": "n/a"}},
	})
	_, _ = tb.Sort("v")
	// 9 < 10 numéricamente; "n/a" frente a números compara como texto
	assert.Equal(t, []string{"b", "a", "c"}, ids(tb.Visible()))
}

func TestFilter_ANDConSubcadenaSensibleAMayusculas(t *testing.T) {
	tb := levelsTable()

	tb.SetFilter("store", "Centro")
	assert.Equal(t, []string{"1", "3", "5"}, ids(tb.Visible()))

	tb.SetFilter("status", "low")
	assert.Equal(t, []string{"3"}, ids(tb.Visible()))

	tb.SetFilter("status", "")
	tb.SetFilter("store", "centro")
	assert.Empty(t, tb.Visible(), "los filtros distinguen mayúsculas")
}

func TestFilter_PropiedadVisibleSiYSoloSiContieneTodos(t *testing.T) {
	combos := []map[string]string{
		{},
		{"sku": "SKU-1"},
		{"sku": "100", "store": "C"},
		{"status": "stock", "quantity": "1"},
		{"store": "Sur", "status": "in"},
	}
	for _, combo := range combos {
		tb := levelsTable()
		for k, v := range combo {
			tb.SetFilter(k, v)
		}
		visible := map[string]bool{}
		for _, r := range tb.Visible() {
			visible[r.ID] = true
		}
		all := levelsTable()
		for _, r := range all.Visible() {
			want := true
			for k, v := range combo {
				if !strings.Contains(r.Cells[k], v) {
					want = false
				}
			}
			assert.Equal(t, want, visible[r.ID], "fila %s con filtros %v", r.ID, combo)
		}
	}
}

func TestSearch_GlobalSinDistinguirMayusculas(t *testing.T) {
	tb := levelsTable()
	tb.SetSearch("NORTE")
	assert.Equal(t, []string{"2"}, ids(tb.Visible()))

	tb.SetSearch("sku-30")
	assert.Equal(t, []string{"4"}, ids(tb.Visible()))
}

func TestSelection_ListenersEnCadaCambioDeConteo(t *testing.T) {
	tb := levelsTable()
	type event struct {
		visible bool
		count   int
	}
	var events []event
	tb.OnSelectionChange(func(visible bool, count int) { events = append(events, event{visible, count}) })

	require.NoError(t, tb.Select("2", true))
	require.NoError(t, tb.Select("3", true))
	require.NoError(t, tb.Select("3", true))
	require.NoError(t, tb.Select("3", false))
	require.NoError(t, tb.Select("2", false))

	assert.Equal(t, []event{{true, 1}, {true, 2}, {true, 1}, {false, 0}}, events, "remarcar una fila no notifica")
	visible, n := tb.BulkBar()
	assert.False(t, visible)
	assert.Zero(t, n)

	assert.ErrorIs(t, tb.Select("99", true), table.ErrUnknownRow)
}

func TestSelection_MaestraMarcaSoloVisibles(t *testing.T) {
	tb := levelsTable()
	tb.SetFilter("store", "Centro")
	tb.SelectAll(true)

	assert.Equal(t, []string{"1", "3", "5"}, tb.Selected())
	visible, n := tb.BulkBar()
	assert.True(t, visible)
	assert.Equal(t, 3, n)

	tb.SelectAll(false)
	assert.Empty(t, tb.Selected())
}

func TestSelection_RecargaDescartaFilasAusentes(t *testing.T) {
	tb := levelsTable()
	var last []bool
	tb.OnSelectionChange(func(visible bool, _ int) { last = append(last, visible) })
	require.NoError(t, tb.Select("4", true))

	tb.SetRows([]table.Row{{ID: "1", Cells: map[string]string{"sku": "SKU-1001"}}})
	assert.Empty(t, tb.Selected())
	assert.Equal(t, []bool{true, false}, last)
}

func TestExecuteBulk_ValidaAntesDeEnviar(t *testing.T) {
	tb := levelsTable()
	var ran [][]string
	reg, err := table.NewRegistry(table.Action{
		Name:   "recount",
		Prompt: "¿Marcar %d niveles para conteo físico?",
		Run: func(_ context.Context, ids []string) error {
			ran = append(ran, ids)
			return nil
		},
	})
	require.NoError(t, err)
	yes := func(context.Context, string) (bool, error) { return true, nil }
	no := func(context.Context, string) (bool, error) { return false, nil }
	ctx := context.Background()

	_, err = tb.ExecuteBulk(ctx, reg, "recount", yes)
	assert.ErrorIs(t, err, table.ErrNothingSelected)

	require.NoError(t, tb.Select("2", true))
	require.NoError(t, tb.Select("4", true))

	_, err = tb.ExecuteBulk(ctx, reg, "", yes)
	assert.ErrorIs(t, err, table.ErrNoAction)
	_, err = tb.ExecuteBulk(ctx, reg, "borrar", yes)
	assert.ErrorIs(t, err, table.ErrUnknownAction)
	_, err = tb.ExecuteBulk(ctx, reg, "recount", no)
	assert.ErrorIs(t, err, table.ErrNotConfirmed)
	assert.Empty(t, ran, "ninguna petición antes de confirmar")

	var prompt string
	n, err := tb.ExecuteBulk(ctx, reg, "recount", func(_ context.Context, p string) (bool, error) {
		prompt = p
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, "¿Marcar 2 niveles para conteo físico?", prompt)
	assert.Equal(t, [][]string{{"2", "4"}}, ran)

	visible, count := tb.BulkBar()
	assert.False(t, visible, "la barra se oculta tras una acción exitosa")
	assert.Zero(t, count)
}

func TestExecuteBulk_PropagaErrorDeAccion(t *testing.T) {
	tb := levelsTable()
	boom := errors.New("falló")
	reg, err := table.NewRegistry(table.Action{Name: "x", Run: func(context.Context, []string) error { return boom }})
	require.NoError(t, err)
	require.NoError(t, tb.Select("1", true))

	_, err = tb.ExecuteBulk(context.Background(), reg, "x", func(context.Context, string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"1"}, tb.Selected(), "un fallo conserva la selección")
}

func TestReplaceRows_AcceptVeta(t *testing.T) {
	tb := levelsTable()
	require.NoError(t, tb.Select("2", true))
	var events int
	tb.OnSelectionChange(func(bool, int) { events++ })

	ok := tb.ReplaceRows([]table.Row{{ID: "9"}}, func() bool { return false })
	assert.False(t, ok)
	assert.Len(t, tb.Visible(), 5)
	assert.Equal(t, []string{"2"}, tb.Selected())
	assert.Zero(t, events)

	ok = tb.ReplaceRows([]table.Row{{ID: "9"}}, func() bool { return true })
	assert.True(t, ok)
	assert.Len(t, tb.Visible(), 1)
	assert.Equal(t, 1, events)
}

func TestNewRegistry_Validaciones(t *testing.T) {
	run := func(context.Context, []string) error { return nil }
	_, err := table.NewRegistry(table.Action{Name: "", Run: run})
	assert.Error(t, err)
	_, err = table.NewRegistry(table.Action{Name: "a"})
	assert.Error(t, err)
	_, err = table.NewRegistry(table.Action{Name: "a", Run: run}, table.Action{Name: "a", Run: run})
	assert.Error(t, err)

	reg, err := table.NewRegistry(table.Action{Name: "b", Run: run}, table.Action{Name: "a", Run: run})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, reg.Names())
}

func TestWriteCSV_EncabezadoMasVisiblesEntreComillas(t *testing.T) {
	tb := levelsTable()
	tb.SetFilter("store", "Centro")
	_, _ = tb.Sort("quantity")

	var buf bytes.Buffer
	require.NoError(t, tb.WriteCSV(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\r\n"), "\r\n")
	require.Len(t, lines, len(tb.Visible())+1)
	assert.Equal(t, `"SKU","Tienda","Cantidad","Estado"`, lines[0])
	assert.Equal(t, `"SKU-2001","Centro","9","low_stock"`, lines[1])
	for _, l := range lines {
		for _, f := range strings.Split(l, ",") {
			assert.True(t, strings.HasPrefix(f, `"`) && strings.HasSuffix(f, `"`), "campo sin comillas: %s", f)
		}
	}
}

func TestWriteCSV_DuplicaComillasInternas(t *testing.T) {
	tb := table.New(table.Column{Key: "name", Title: "Nombre"})
	tb.SetRows([]table.Row{{ID: "1", Cells: map[string]string{"name": `Pantalla 24" LED`}}})

	var buf bytes.Buffer
	require.NoError(t, tb.WriteCSV(&buf))
	assert.Equal(t, "\"Nombre\"\r\n\"Pantalla 24\"\" LED\"\r\n", buf.String())

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, `Pantalla 24" LED`, records[1][0])
}
