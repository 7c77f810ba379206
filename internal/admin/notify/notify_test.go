package notify_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/admin/notify"
)

func TestCenter_DescartaAlVencerTTL(t *testing.T) {
	c := notify.NewCenter(30 * time.Millisecond)
	defer c.Close()

	c.Error("no se pudo ajustar el inventario")
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool { return len(c.Active()) == 0 }, time.Second, 5*time.Millisecond)
}

func TestCenter_DescarteManual(t *testing.T) {
	c := notify.NewCenter(time.Hour)
	defer c.Close()

	first := c.Success("inventario ajustado")
	second := c.Info("recargando")
	assert.True(t, c.Dismiss(first))
	assert.False(t, c.Dismiss(first), "descartar dos veces no tiene efecto")

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, second, active[0].ID)
	assert.Equal(t, notify.LevelInfo, active[0].Level)
}

func TestCenter_NotificaListeners(t *testing.T) {
	c := notify.NewCenter(time.Hour)
	defer c.Close()

	var mu sync.Mutex
	var got []notify.Notification
	c.Subscribe(func(n notify.Notification) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, n)
	})
	c.Success("ok")
	c.Error("falló")

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, notify.LevelSuccess, got[0].Level)
	assert.Equal(t, "falló", got[1].Message)
}

func TestCenter_TTLPorDefecto(t *testing.T) {
	c := notify.NewCenter(0)
	defer c.Close()
	c.Info("x")
	// sigue activa justo después de crearse
	assert.Len(t, c.Active(), 1)
}

func TestCenter_CerradoIgnoraNuevas(t *testing.T) {
	c := notify.NewCenter(time.Hour)
	c.Close()
	assert.Zero(t, c.Error("tarde"))
	assert.Empty(t, c.Active())
}
