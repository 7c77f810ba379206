package ingest_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/admin/ingest"
	"github.com/jhoicas/retail-admin/internal/admin/workflow"
	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/client"
)

func TestParse_FilasValidas(t *testing.T) {
	rows, err := ingest.Parse(strings.NewReader("\xef\xbb\xbfproduct_id,store_id,counted\n4,1,12\n8, 2, 0\n"), ingest.UTF8)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ingest.CountRow{Line: 2, ProductID: 4, StoreID: 1, Counted: 12}, rows[0])
	assert.Equal(t, ingest.CountRow{Line: 3, ProductID: 8, StoreID: 2, Counted: 0}, rows[1])
}

func TestParse_Latin1(t *testing.T) {
	// el valor inválido se reporta ya decodificado.
	_, err := ingest.Parse(strings.NewReader("product_id,store_id,counted\n4,1,\xf1\n"), ingest.Latin1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ñ")
}

func TestParse_Errores(t *testing.T) {
	cases := map[string]string{
		"sin filas":       "product_id,store_id,counted\n",
		"cabecera":        "sku,store,qty\n1,1,1\n",
		"columnas":        "product_id,store_id,counted\n1,1\n",
		"negativo":        "product_id,store_id,counted\n1,1,-2\n",
		"producto cero":   "product_id,store_id,counted\n0,1,2\n",
		"tienda invalida": "product_id,store_id,counted\n1,x,2\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ingest.Parse(strings.NewReader(in), ingest.UTF8)
			assert.Error(t, err)
		})
	}
	_, err := ingest.Parse(strings.NewReader("product_id,store_id,counted\n"), ingest.UTF8)
	assert.ErrorIs(t, err, ingest.ErrEmptySheet)
}

func TestParseEncoding(t *testing.T) {
	enc, err := ingest.ParseEncoding("")
	require.NoError(t, err)
	assert.Equal(t, ingest.UTF8, enc)
	enc, err = ingest.ParseEncoding("Latin1")
	require.NoError(t, err)
	assert.Equal(t, ingest.Latin1, enc)
	_, err = ingest.ParseEncoding("utf-16")
	assert.Error(t, err)
}

type fakeLevels struct {
	items []dto.LevelResponse
}

func (f fakeLevels) ListLevels(_ context.Context, lf client.LevelFilter) (*dto.LevelListResponse, error) {
	var out []dto.LevelResponse
	for _, l := range f.items {
		if l.ProductID == lf.ProductID && l.StoreID == lf.StoreID {
			out = append(out, l)
		}
	}
	return &dto.LevelListResponse{Items: out}, nil
}

type fakeAdjuster struct {
	got  []workflow.LevelAdjustment
	fail map[int64]error
}

func (f *fakeAdjuster) SubmitLevel(_ context.Context, in workflow.LevelAdjustment) (*dto.LevelResponse, error) {
	if err := f.fail[in.LevelID]; err != nil {
		return nil, err
	}
	f.got = append(f.got, in)
	return &dto.LevelResponse{ID: in.LevelID}, nil
}

func TestImporter_AjustaSoloDiferencias(t *testing.T) {
	levels := fakeLevels{items: []dto.LevelResponse{
		{ID: 10, ProductID: 4, StoreID: 1, Quantity: 15},
		{ID: 11, ProductID: 4, StoreID: 2, Quantity: 7},
		{ID: 12, ProductID: 8, StoreID: 1, Quantity: 3},
	}}
	adj := &fakeAdjuster{fail: map[int64]error{12: errors.New("boom")}}
	im := ingest.NewImporter(levels, adj, nil)

	rep, err := im.Run(context.Background(), []ingest.CountRow{
		{Line: 2, ProductID: 4, StoreID: 1, Counted: 12},
		{Line: 3, ProductID: 4, StoreID: 2, Counted: 7},
		{Line: 4, ProductID: 8, StoreID: 1, Counted: 5},
		{Line: 5, ProductID: 99, StoreID: 1, Counted: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Adjusted)
	assert.Equal(t, 1, rep.Unchanged)
	require.Len(t, rep.Failed, 2)
	assert.Equal(t, 4, rep.Failed[0].Line)
	assert.Equal(t, 5, rep.Failed[1].Line)
	assert.ErrorIs(t, rep.Failed[1].Err, workflow.ErrLevelNotFound)

	require.Len(t, adj.got, 1)
	assert.Equal(t, int64(10), adj.got[0].LevelID)
	assert.Equal(t, int64(-3), adj.got[0].Delta)
	assert.Equal(t, ingest.ReasonPhysicalCount, adj.got[0].Reason)
}

func TestImporter_ContextoCanceladoCorta(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	im := ingest.NewImporter(fakeLevels{}, &fakeAdjuster{}, nil)
	_, err := im.Run(ctx, []ingest.CountRow{{Line: 2, ProductID: 1, StoreID: 1}})
	assert.ErrorIs(t, err, context.Canceled)
}
