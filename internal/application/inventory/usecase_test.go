package inventory_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/inventory"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
	"github.com/jhoicas/retail-admin/internal/infrastructure/memory"
)

// fixture arma dos tiendas y un producto con nivel solo en la primera.
type fixture struct {
	db        *memory.DB
	uc        *inventory.UseCase
	movements *inventory.MovementUseCase
	alerts    *memory.AlertRepository
	txns      *memory.InventoryTransactionRepository
	levels    *memory.InventoryLevelRepository
	storeA    int64
	storeB    int64
	product   int64
	level     int64
}

func newFixture(t *testing.T, qty, reorder int64) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	products := memory.NewProductRepository(db)
	levels := memory.NewInventoryLevelRepository(db)
	txns := memory.NewInventoryTransactionRepository(db)
	runner := memory.NewTxRunner(db)

	a := stores.Add(entity.Store{Code: "ST-A", Name: "Centro", IsActive: true})
	b := stores.Add(entity.Store{Code: "ST-B", Name: "Norte", IsActive: true})
	p := &entity.Product{SKU: "SKU-1", Name: "Café", ReorderPoint: reorder, MaxStock: 500, IsActive: true,
		CostPrice: decimal.NewFromInt(6), SellingPrice: decimal.NewFromInt(10)}
	require.NoError(t, products.Create(ctx, p))
	l := &entity.InventoryLevel{ProductID: p.ID, StoreID: a.ID, Quantity: qty}
	require.NoError(t, levels.Create(ctx, l))

	return &fixture{
		db:        db,
		uc:        inventory.NewUseCase(runner, levels, txns, stores),
		movements: inventory.NewMovementUseCase(runner, memory.NewStockMovementRepository(db), levels, stores, products),
		alerts:    memory.NewAlertRepository(db),
		txns:      txns,
		levels:    levels,
		storeA:    a.ID,
		storeB:    b.ID,
		product:   p.ID,
		level:     l.ID,
	}
}

func TestAdjustLevel_AplicaDeltaYRegistraTransaccion(t *testing.T) {
	f := newFixture(t, 20, 5)

	out, err := f.uc.AdjustLevel(context.Background(), "7", f.level, dto.AdjustLevelRequest{
		Quantity: -3, AdjustmentReason: "damaged", Notes: "caja rota",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(17), out.Quantity)
	assert.Equal(t, entity.LevelStatusInStock, out.Status)

	txns, err := f.txns.List(context.Background(), repository.TransactionFilter{LevelID: &f.level})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, entity.TransactionTypeDamage, txns[0].Type)
	assert.Equal(t, int64(-3), txns[0].QuantityChange)
	assert.Equal(t, int64(17), txns[0].QuantityAfter)
	assert.Equal(t, "damaged: caja rota", txns[0].Reason)
	assert.Equal(t, "7", txns[0].PerformedBy)
}

func TestAdjustLevel_ConteoFisicoMarcaFecha(t *testing.T) {
	f := newFixture(t, 20, 5)
	out, err := f.uc.AdjustLevel(context.Background(), "1", f.level, dto.AdjustLevelRequest{
		Quantity: 2, AdjustmentReason: "physical_count",
	})
	require.NoError(t, err)
	assert.NotNil(t, out.LastCountedAt)
}

func TestAdjustLevel_ResultadoNegativo_Rechaza(t *testing.T) {
	f := newFixture(t, 2, 0)
	_, err := f.uc.AdjustLevel(context.Background(), "1", f.level, dto.AdjustLevelRequest{
		Quantity: -5, AdjustmentReason: "loss",
	})
	assert.ErrorIs(t, err, domain.ErrNegativeStock)

	l, err := f.levels.GetByID(context.Background(), f.level)
	require.NoError(t, err)
	assert.Equal(t, int64(2), l.Quantity, "la cantidad no debe cambiar")
}

func TestAdjustLevel_DesbordeEsEntradaInvalida(t *testing.T) {
	f := newFixture(t, 2, 0)
	_, err := f.uc.AdjustLevel(context.Background(), "1", f.level, dto.AdjustLevelRequest{
		Quantity: math.MaxInt64, AdjustmentReason: "correction",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrNegativeStock)

	l, err := f.levels.GetByID(context.Background(), f.level)
	require.NoError(t, err)
	assert.Equal(t, int64(2), l.Quantity)
}

func TestAdjustLevel_ValidaEntrada(t *testing.T) {
	f := newFixture(t, 2, 0)
	ctx := context.Background()

	_, err := f.uc.AdjustLevel(ctx, "1", f.level, dto.AdjustLevelRequest{Quantity: 0, AdjustmentReason: "other"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.AdjustLevel(ctx, "1", f.level, dto.AdjustLevelRequest{Quantity: 1, AdjustmentReason: "robo"})
	assert.ErrorIs(t, err, domain.ErrInvalidReason)

	_, err = f.uc.AdjustLevel(ctx, "1", 9999, dto.AdjustLevelRequest{Quantity: 1, AdjustmentReason: "other"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustLevel_GeneraAlertaUnaSolaVez(t *testing.T) {
	f := newFixture(t, 10, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.uc.AdjustLevel(ctx, "1", f.level, dto.AdjustLevelRequest{Quantity: -3, AdjustmentReason: "loss"})
		require.NoError(t, err)
	}
	list, err := f.alerts.List(ctx, repository.AlertFilter{Status: entity.AlertStatusActive})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.AlertTypeLowStock, list[0].Type)
}

func TestListLevels_EstadoInvalido(t *testing.T) {
	f := newFixture(t, 10, 5)
	_, err := f.uc.ListLevels(context.Background(), inventory.LevelQuery{Status: "raro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListLevels_FiltraPorTienda(t *testing.T) {
	f := newFixture(t, 10, 5)
	out, err := f.uc.ListLevels(context.Background(), inventory.LevelQuery{StoreID: &f.storeB})
	require.NoError(t, err)
	assert.Empty(t, out.Items)

	out, err = f.uc.ListLevels(context.Background(), inventory.LevelQuery{StoreID: &f.storeA})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Centro", out.Items[0].StoreName)
}

func TestGetLevel_NoExiste(t *testing.T) {
	f := newFixture(t, 10, 5)
	out, err := f.uc.GetLevel(context.Background(), 12345)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func transferRequest(f *fixture, qty int64) dto.CreateMovementRequest {
	return dto.CreateMovementRequest{
		FromStoreID:  f.storeA,
		ToStoreID:    f.storeB,
		ProductID:    f.product,
		Quantity:     qty,
		MovementType: "transfer",
		Reason:       "reposición",
	}
}

func TestCreateTransfer_QuedaPendiente(t *testing.T) {
	f := newFixture(t, 10, 2)
	mov, err := f.movements.CreateTransfer(context.Background(), "3", transferRequest(f, 4))
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusPending, mov.Status)
	assert.Contains(t, mov.TransferID, "TRF-")

	l, err := f.levels.GetByID(context.Background(), f.level)
	require.NoError(t, err)
	assert.Equal(t, int64(10), l.Quantity, "crear el traslado no mueve stock")
}

func TestCreateTransfer_Validaciones(t *testing.T) {
	f := newFixture(t, 10, 2)
	ctx := context.Background()

	same := transferRequest(f, 1)
	same.ToStoreID = f.storeA
	_, err := f.movements.CreateTransfer(ctx, "1", same)
	assert.ErrorIs(t, err, domain.ErrSameStore)

	_, err = f.movements.CreateTransfer(ctx, "1", transferRequest(f, 11))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	badType := transferRequest(f, 1)
	badType.MovementType = "adjustment"
	_, err = f.movements.CreateTransfer(ctx, "1", badType)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing := transferRequest(f, 1)
	missing.ToStoreID = 9999
	_, err = f.movements.CreateTransfer(ctx, "1", missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApproveTransfer_MueveStockEntreTiendas(t *testing.T) {
	f := newFixture(t, 10, 2)
	ctx := context.Background()
	mov, err := f.movements.CreateTransfer(ctx, "3", transferRequest(f, 4))
	require.NoError(t, err)

	out, err := f.movements.ApproveTransfer(ctx, "3", mov.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusReceived, out.Status)
	assert.NotNil(t, out.ReceivedAt)

	origin, err := f.levels.Find(ctx, f.product, f.storeA)
	require.NoError(t, err)
	dest, err := f.levels.Find(ctx, f.product, f.storeB)
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, int64(6), origin.Quantity)
	assert.Equal(t, int64(4), dest.Quantity)

	txns, err := f.txns.List(ctx, repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	_, err = f.movements.ApproveTransfer(ctx, "3", mov.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "no se aprueba dos veces")
}

func TestApproveTransfer_StockConsumidoEntreTanto(t *testing.T) {
	f := newFixture(t, 10, 2)
	ctx := context.Background()
	mov, err := f.movements.CreateTransfer(ctx, "3", transferRequest(f, 8))
	require.NoError(t, err)

	_, err = f.uc.AdjustLevel(ctx, "3", f.level, dto.AdjustLevelRequest{Quantity: -5, AdjustmentReason: "loss"})
	require.NoError(t, err)

	_, err = f.movements.ApproveTransfer(ctx, "3", mov.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	l, err := f.levels.GetByID(ctx, f.level)
	require.NoError(t, err)
	assert.Equal(t, int64(5), l.Quantity)
}

func TestCancelTransfer(t *testing.T) {
	f := newFixture(t, 10, 2)
	ctx := context.Background()
	mov, err := f.movements.CreateTransfer(ctx, "3", transferRequest(f, 2))
	require.NoError(t, err)

	out, err := f.movements.CancelTransfer(ctx, mov.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementStatusCancelled, out.Status)

	_, err = f.movements.ApproveTransfer(ctx, "3", mov.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	list, err := f.movements.ListMovements(ctx, &f.storeB, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestDeductInTx_SinStock(t *testing.T) {
	f := newFixture(t, 1, 0)
	runner := memory.NewTxRunner(f.db)
	err := runner.Run(context.Background(), func(repos inventory.TxRepos) error {
		return f.uc.DeductInTx(context.Background(), repos, f.product, f.storeA, 2, "ORD-1", "1", time.Now())
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
