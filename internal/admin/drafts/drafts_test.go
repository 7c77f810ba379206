package drafts_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/admin/drafts"
	"github.com/jhoicas/retail-admin/internal/admin/storage"
)

type adjustForm struct {
	ProductID int64  `json:"product_id"`
	StoreID   int64  `json:"store_id"`
	Delta     int64  `json:"delta"`
	Reason    string `json:"reason"`
}

func TestDrafts_GuardaYRestaura(t *testing.T) {
	st := storage.NewMemory()
	d := drafts.New(st, time.Hour)

	in := adjustForm{ProductID: 7, StoreID: 1, Delta: -5, Reason: "damaged"}
	require.NoError(t, d.Save("adjust", in))

	var out adjustForm
	ok, err := d.Restore("adjust", &out)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, in, out)

	// formato persistido: {formID: {data, timestamp}}
	raw, _ := st.Get(storage.KeyFormDrafts)
	var blob map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &blob))
	assert.Contains(t, blob["adjust"], "data")
	assert.Contains(t, blob["adjust"], "timestamp")
}

func TestDrafts_VencidoSeElimina(t *testing.T) {
	st := storage.NewMemory()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := drafts.New(st, time.Hour).WithClock(func() time.Time { return now })
	require.NoError(t, d.Save("transfer", map[string]int{"quantity": 10}))

	now = now.Add(2 * time.Hour)
	var out map[string]int
	ok, err := d.Restore("transfer", &out)
	require.NoError(t, err)
	assert.False(t, ok)
	_, exists := st.Get(storage.KeyFormDrafts)
	assert.False(t, exists)
}

func TestDrafts_PruneYDiscard(t *testing.T) {
	st := storage.NewMemory()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	d := drafts.New(st, time.Hour).WithClock(func() time.Time { return now })
	require.NoError(t, d.Save("viejo", 1))
	now = now.Add(90 * time.Minute)
	require.NoError(t, d.Save("nuevo", 2))

	removed, err := d.Prune()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	var v int
	ok, err := d.Restore("nuevo", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	require.NoError(t, d.Discard("nuevo"))
	ok, err = d.Restore("nuevo", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDrafts_BlobIlegibleSeIgnora(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyFormDrafts, "no-json"))
	d := drafts.New(st, 0)

	var v int
	ok, err := d.Restore("x", &v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Error(t, d.Save("", 1))
}
