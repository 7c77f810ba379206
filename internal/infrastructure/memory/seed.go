package memory

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// SeedOptions datos iniciales del usuario administrador.
type SeedOptions struct {
	AdminEmail    string
	AdminPassword string
}

// Seed carga un catálogo de demostración: tres tiendas, productos con niveles por tienda,
// clientes, modelos de pronóstico y visión, y un administrador.
func Seed(db *DB, opts SeedOptions) error {
	if opts.AdminEmail == "" || opts.AdminPassword == "" {
		return fmt.Errorf("seed: admin email and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin password: %w", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()
	now := time.Now()

	storeIDs := make([]int64, 0, 3)
	for _, s := range []entity.Store{
		{Code: "ST-001", Name: "Centro", Location: "Calle 10 #5-20", Manager: "Laura Gómez"},
		{Code: "ST-002", Name: "Norte", Location: "Av. 68 #100-15", Manager: "Andrés Ruiz"},
		{Code: "ST-003", Name: "Sur", Location: "Cra. 30 #1-40", Manager: "Marta Díaz"},
	} {
		s.ID = db.nextID()
		s.IsActive = true
		s.CreatedAt, s.UpdatedAt = now, now
		db.stores[s.ID] = s
		storeIDs = append(storeIDs, s.ID)
	}

	type seedProduct struct {
		sku, name, category string
		cost, price         string
		reorder, max        int64
		stock               [3]int64
	}
	for _, sp := range []seedProduct{
		{"SKU-1001", "Café molido 500g", "Despensa", "8.50", "12.90", 20, 200, [3]int64{150, 12, 0}},
		{"SKU-1002", "Arroz 1kg", "Despensa", "1.10", "1.75", 50, 400, [3]int64{320, 45, 90}},
		{"SKU-2001", "Detergente 2L", "Aseo", "3.40", "5.20", 15, 120, [3]int64{60, 8, 140}},
		{"SKU-3001", "Audífonos inalámbricos", "Tecnología", "18.00", "34.99", 5, 40, [3]int64{9, 3, 0}},
	} {
		p := entity.Product{
			ID:           db.nextID(),
			SKU:          sp.sku,
			Name:         sp.name,
			Category:     sp.category,
			CostPrice:    decimal.RequireFromString(sp.cost),
			SellingPrice: decimal.RequireFromString(sp.price),
			ReorderPoint: sp.reorder,
			MaxStock:     sp.max,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		db.products[p.ID] = p
		for i, storeID := range storeIDs {
			l := entity.InventoryLevel{
				ID:        db.nextID(),
				ProductID: p.ID,
				StoreID:   storeID,
				Quantity:  sp.stock[i],
				CreatedAt: now,
				UpdatedAt: now,
			}
			db.levels[l.ID] = l
		}
	}

	for _, c := range []entity.Customer{
		{Code: "CUS-001", Name: "Supermercado La Esquina", Email: "compras@laesquina.co", City: "Bogotá"},
		{Code: "CUS-002", Name: "Hotel Andino", Email: "almacen@hotelandino.co", City: "Medellín"},
	} {
		c.ID = db.nextID()
		c.IsActive = true
		c.CreatedAt, c.UpdatedAt = now, now
		db.customers[c.ID] = c
	}

	for _, m := range []entity.ForecastModel{
		{Name: "Promedio móvil 28d", ModelType: "moving_average", Description: "Promedio de ventas diarias de las últimas cuatro semanas", IsActive: true},
		{Name: "Holt-Winters semanal", ModelType: "exponential_smoothing", Description: "Suavizado exponencial con estacionalidad de 7 días", IsActive: false},
	} {
		m.ID = db.nextID()
		m.CreatedAt = now
		db.forecastModels[m.ID] = m
	}
	for _, m := range []entity.DetectionModel{
		{Name: "shelf-detector", Version: "1.4.0", IsActive: true},
		{Name: "shelf-detector", Version: "1.3.2", IsActive: false},
	} {
		m.ID = db.nextID()
		m.CreatedAt = now
		db.detectionModels[m.ID] = m
	}

	admin := entity.User{
		ID:           db.nextID(),
		Email:        strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	db.users[admin.ID] = admin
	return nil
}
