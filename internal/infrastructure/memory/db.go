// Package memory implementa los puertos de persistencia en memoria. Se usa en desarrollo
// (DB_DRIVER=memory) y en los tests de casos de uso y handlers.
package memory

import (
	"sync"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
)

// DB almacén en memoria compartido por todos los repositorios.
// Las entidades se guardan por valor; los repositorios devuelven copias.
type DB struct {
	mu  sync.RWMutex
	seq int64

	stores          map[int64]entity.Store
	products        map[int64]entity.Product
	levels          map[int64]entity.InventoryLevel
	transactions    map[int64]entity.InventoryTransaction
	movements       map[int64]entity.StockMovement
	customers       map[int64]entity.Customer
	orders          map[int64]entity.Order
	forecastModels  map[int64]entity.ForecastModel
	forecasts       map[int64]entity.Forecast
	detectionModels map[int64]entity.DetectionModel
	detectionTasks  map[int64]entity.DetectionTask
	shelfAnalyses   map[int64]entity.ShelfAnalysis
	alerts          map[int64]entity.Alert
	users           map[int64]entity.User
}

// NewDB crea un almacén vacío.
func NewDB() *DB {
	return &DB{
		stores:          map[int64]entity.Store{},
		products:        map[int64]entity.Product{},
		levels:          map[int64]entity.InventoryLevel{},
		transactions:    map[int64]entity.InventoryTransaction{},
		movements:       map[int64]entity.StockMovement{},
		customers:       map[int64]entity.Customer{},
		orders:          map[int64]entity.Order{},
		forecastModels:  map[int64]entity.ForecastModel{},
		forecasts:       map[int64]entity.Forecast{},
		detectionModels: map[int64]entity.DetectionModel{},
		detectionTasks:  map[int64]entity.DetectionTask{},
		shelfAnalyses:   map[int64]entity.ShelfAnalysis{},
		alerts:          map[int64]entity.Alert{},
		users:           map[int64]entity.User{},
	}
}

// nextID asigna IDs crecientes únicos en todo el almacén. Requiere el lock de escritura.
func (db *DB) nextID() int64 {
	db.seq++
	return db.seq
}

// snapshot copia el estado para poder revertir una transacción fallida. Requiere el lock de escritura.
func (db *DB) snapshot() *DB {
	cp := &DB{
		seq:             db.seq,
		stores:          cloneMap(db.stores),
		products:        cloneMap(db.products),
		levels:          cloneMap(db.levels),
		transactions:    cloneMap(db.transactions),
		movements:       cloneMap(db.movements),
		customers:       cloneMap(db.customers),
		orders:          make(map[int64]entity.Order, len(db.orders)),
		forecastModels:  cloneMap(db.forecastModels),
		forecasts:       cloneMap(db.forecasts),
		detectionModels: cloneMap(db.detectionModels),
		detectionTasks:  cloneMap(db.detectionTasks),
		shelfAnalyses:   cloneMap(db.shelfAnalyses),
		alerts:          cloneMap(db.alerts),
		users:           cloneMap(db.users),
	}
	for id, o := range db.orders {
		cp.orders[id] = copyOrder(o)
	}
	return cp
}

// restore reemplaza el estado por el de un snapshot. Requiere el lock de escritura.
func (db *DB) restore(s *DB) {
	db.seq = s.seq
	db.stores = s.stores
	db.products = s.products
	db.levels = s.levels
	db.transactions = s.transactions
	db.movements = s.movements
	db.customers = s.customers
	db.orders = s.orders
	db.forecastModels = s.forecastModels
	db.forecasts = s.forecasts
	db.detectionModels = s.detectionModels
	db.detectionTasks = s.detectionTasks
	db.shelfAnalyses = s.shelfAnalyses
	db.alerts = s.alerts
	db.users = s.users
}

// access decide si un repositorio toma el lock del DB (uso normal) o no (dentro de TxRunner.Run,
// que ya tiene el lock de escritura durante toda la transacción).
type access struct {
	mu *sync.RWMutex
}

func (a access) read() func() {
	if a.mu == nil {
		return func() {}
	}
	a.mu.RLock()
	return a.mu.RUnlock
}

func (a access) write() func() {
	if a.mu == nil {
		return func() {}
	}
	a.mu.Lock()
	return a.mu.Unlock
}

func cloneMap[T any](m map[int64]T) map[int64]T {
	out := make(map[int64]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyOrder(o entity.Order) entity.Order {
	o.Lines = append([]entity.OrderLine(nil), o.Lines...)
	return o
}

// paginate aplica limit/offset sobre una lista ya ordenada. limit <= 0 devuelve todo.
func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
