package vision_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-admin/internal/application/dto"
	"github.com/jhoicas/retail-admin/internal/application/vision"
	"github.com/jhoicas/retail-admin/internal/domain"
	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/infrastructure/memory"
)

func TestCreateShelfAnalysis_PendienteYListaPorTienda(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	a := stores.Add(entity.Store{Code: "A", Name: "Centro", IsActive: true})
	b := stores.Add(entity.Store{Code: "B", Name: "Norte", IsActive: true})
	uc := vision.NewUseCase(memory.NewVisionRepository(db), stores)

	out, err := uc.CreateShelfAnalysis(ctx, dto.CreateShelfAnalysisRequest{StoreID: a.ID, ShelfCode: "P1-E3", ImageURL: "https://img/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, entity.VisionStatusPending, out.Status)
	_, err = uc.CreateShelfAnalysis(ctx, dto.CreateShelfAnalysisRequest{StoreID: b.ID, ShelfCode: "P2", ImageURL: "https://img/2.jpg"})
	require.NoError(t, err)

	list, err := uc.ListShelfAnalyses(ctx, &a.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "P1-E3", list.Items[0].ShelfCode)

	_, err = uc.CreateShelfAnalysis(ctx, dto.CreateShelfAnalysisRequest{StoreID: 999, ShelfCode: "X", ImageURL: "https://img/3.jpg"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreateShelfAnalysis(ctx, dto.CreateShelfAnalysisRequest{StoreID: a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateDetectionTask_ModeloActivo(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDB()
	stores := memory.NewStoreRepository(db)
	store := stores.Add(entity.Store{Code: "A", Name: "Centro", IsActive: true})
	repo := memory.NewVisionRepository(db)
	active := repo.AddModel(entity.DetectionModel{Name: "shelf-detector", Version: "1.4.0", IsActive: true})
	old := repo.AddModel(entity.DetectionModel{Name: "shelf-detector", Version: "1.3.2"})
	uc := vision.NewUseCase(repo, stores)

	task, err := uc.CreateDetectionTask(ctx, dto.CreateDetectionTaskRequest{ModelID: active.ID, StoreID: store.ID, ImageURL: "https://img/1.jpg"})
	require.NoError(t, err)
	assert.Equal(t, entity.VisionStatusPending, task.Status)

	_, err = uc.CreateDetectionTask(ctx, dto.CreateDetectionTaskRequest{ModelID: old.ID, StoreID: store.ID, ImageURL: "https://img/1.jpg"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateDetectionTask(ctx, dto.CreateDetectionTaskRequest{ModelID: 777, StoreID: store.ID, ImageURL: "https://img/1.jpg"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	models, err := uc.ListDetectionModels(ctx)
	require.NoError(t, err)
	assert.Len(t, models, 2)
}
