// Package notify mantiene las notificaciones transitorias del panel.
// Cada notificación se descarta sola al vencer su TTL o antes, a pedido.
package notify

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL vida de una notificación.
const DefaultTTL = 5 * time.Second

// Level tipo de notificación.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification mensaje visible para el usuario.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}

// Listener recibe cada notificación nueva.
type Listener func(Notification)

// Center guarda las notificaciones activas y programa su descarte.
type Center struct {
	mu        sync.Mutex
	ttl       time.Duration
	nextID    int64
	active    map[int64]Notification
	timers    map[int64]*time.Timer
	listeners []Listener
	closed    bool
}

// NewCenter crea el centro; ttl <= 0 usa DefaultTTL.
func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		active: make(map[int64]Notification),
		timers: make(map[int64]*time.Timer),
	}
}

// Subscribe registra un listener. Se invoca fuera del lock.
func (c *Center) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

func (c *Center) Success(msg string) int64 { return c.push(LevelSuccess, msg) }
func (c *Center) Error(msg string) int64   { return c.push(LevelError, msg) }
func (c *Center) Info(msg string) int64    { return c.push(LevelInfo, msg) }

func (c *Center) push(level Level, msg string) int64 {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0
	}
	c.nextID++
	n := Notification{ID: c.nextID, Level: level, Message: msg, CreatedAt: time.Now()}
	c.active[n.ID] = n
	id := n.ID
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })
	listeners := append([]Listener(nil), c.listeners...)
	c.mu.Unlock()

	for _, l := range listeners {
		l(n)
	}
	return id
}

// Dismiss retira la notificación; false si ya no estaba activa.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[id]; !ok {
		return false
	}
	delete(c.active, id)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	return true
}

// Active devuelve las notificaciones vigentes en orden de creación.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.active))
	for _, n := range c.active {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close detiene los temporizadores pendientes y descarta las nuevas notificaciones.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.closed = true
}
