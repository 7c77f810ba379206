package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
	"github.com/jhoicas/retail-admin/internal/infrastructure/memory"
)

func newLevel(t *testing.T, db *memory.DB, qty, reorder int64) *entity.InventoryLevel {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStoreRepository(db).Add(entity.Store{Code: "ST-T", Name: "Tienda test", IsActive: true})
	p := &entity.Product{SKU: "SKU-T", Name: "Producto test", ReorderPoint: reorder, MaxStock: 100, IsActive: true,
		CostPrice: decimal.NewFromInt(5), SellingPrice: decimal.NewFromInt(10)}
	require.NoError(t, memory.NewProductRepository(db).Create(ctx, p))
	l := &entity.InventoryLevel{ProductID: p.ID, StoreID: store.ID, Quantity: qty}
	require.NoError(t, memory.NewInventoryLevelRepository(db).Create(ctx, l))
	return l
}

func TestInventoryLevelRepository_HidrataProductoYTienda(t *testing.T) {
	db := memory.NewDB()
	l := newLevel(t, db, 4, 10)

	got, err := memory.NewInventoryLevelRepository(db).GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "SKU-T", got.ProductSKU)
	assert.Equal(t, "Tienda test", got.StoreName)
	assert.Equal(t, int64(10), got.ReorderPoint)
	assert.Equal(t, entity.LevelStatusLowStock, got.Status())
}

func TestInventoryLevelRepository_NoExiste_RetornaNil(t *testing.T) {
	got, err := memory.NewInventoryLevelRepository(memory.NewDB()).GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInventoryLevelRepository_FiltraPorEstado(t *testing.T) {
	db := memory.NewDB()
	newLevel(t, db, 0, 10)
	repo := memory.NewInventoryLevelRepository(db)

	out, err := repo.List(context.Background(), repository.LevelFilter{Status: entity.LevelStatusOutOfStock})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	out, err = repo.List(context.Background(), repository.LevelFilter{Status: entity.LevelStatusInStock})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestInventoryLevelRepository_RechazaCantidadNegativa(t *testing.T) {
	db := memory.NewDB()
	l := newLevel(t, db, 3, 1)
	err := memory.NewInventoryLevelRepository(db).UpdateQuantity(context.Background(), l.ID, -1, nil)
	assert.ErrorIs(t, err, domain.ErrNegativeStock)
}

func TestGetProductsBelowReorderPoint(t *testing.T) {
	db := memory.NewDB()
	l := newLevel(t, db, 2, 10)

	items, err := memory.NewInventoryLevelRepository(db).GetProductsBelowReorderPoint(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, l.ProductID, items[0].ProductID)
	assert.Equal(t, int64(2), items[0].CurrentStock)

	items, err = memory.NewInventoryLevelRepository(db).GetProductsBelowReorderPoint(context.Background(), l.StoreID+1000)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestTxRunner_RevierteCambiosSiFalla(t *testing.T) {
	db := memory.NewDB()
	l := newLevel(t, db, 10, 1)
	runner := memory.NewTxRunner(db)
	boom := errors.New("boom")

	err := runner.Run(context.Background(), func(repos inventory.TxRepos) error {
		require.NoError(t, repos.Levels.UpdateQuantity(context.Background(), l.ID, 3, nil))
		require.NoError(t, repos.Transactions.Create(context.Background(), &entity.InventoryTransaction{LevelID: l.ID}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := memory.NewInventoryLevelRepository(db).GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Quantity)

	txns, err := memory.NewInventoryTransactionRepository(db).List(context.Background(), repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTxRunner_ConfirmaCambios(t *testing.T) {
	db := memory.NewDB()
	l := newLevel(t, db, 10, 1)

	err := memory.NewTxRunner(db).Run(context.Background(), func(repos inventory.TxRepos) error {
		return repos.Levels.UpdateQuantity(context.Background(), l.ID, 7, nil)
	})
	require.NoError(t, err)

	got, err := memory.NewInventoryLevelRepository(db).GetByID(context.Background(), l.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Quantity)
}

func TestOrderRepository_CopiaLineas(t *testing.T) {
	db := memory.NewDB()
	repo := memory.NewOrderRepository(db)
	o := &entity.Order{OrderNumber: "ORD-1", Status: entity.OrderStatusPending,
		Lines: []entity.OrderLine{{ProductID: 1, Quantity: 2}}}
	require.NoError(t, repo.Create(context.Background(), o))
	require.NotZero(t, o.Lines[0].ID)
	assert.Equal(t, o.ID, o.Lines[0].OrderID)

	o.Lines[0].Quantity = 99
	got, err := repo.GetByID(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Lines[0].Quantity)
}

func TestUserRepository_EmailUnicoSinMayusculas(t *testing.T) {
	repo := memory.NewUserRepository(memory.NewDB())
	require.NoError(t, repo.Create(context.Background(), &entity.User{Email: "ana@tienda.co"}))
	err := repo.Create(context.Background(), &entity.User{Email: "ANA@tienda.co"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	u, err := repo.GetByEmail(context.Background(), "Ana@Tienda.co")
	require.NoError(t, err)
	require.NotNil(t, u)
}

func TestSeed_CargaDatosDemo(t *testing.T) {
	db := memory.NewDB()
	require.NoError(t, memory.Seed(db, memory.SeedOptions{AdminEmail: "Admin@Retail.co", AdminPassword: "secret123"}))

	stores, err := memory.NewStoreRepository(db).List(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, stores, 3)

	levels, err := memory.NewInventoryLevelRepository(db).List(context.Background(), repository.LevelFilter{})
	require.NoError(t, err)
	assert.Len(t, levels, 12)

	admin, err := memory.NewUserRepository(db).GetByEmail(context.Background(), "admin@retail.co")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
}

func TestSeed_SinCredenciales_Falla(t *testing.T) {
	assert.Error(t, memory.Seed(memory.NewDB(), memory.SeedOptions{}))
}
