package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-admin/internal/domain/entity"
	"github.com/jhoicas/retail-admin/internal/domain/repository"
)

var _ repository.VisionRepository = (*VisionRepository)(nil)

// VisionRepository modelos de detección, tareas y análisis en memoria.
type VisionRepository struct {
	db  *DB
	acc access
}

// NewVisionRepository construye el repositorio.
func NewVisionRepository(db *DB) *VisionRepository {
	return &VisionRepository{db: db, acc: access{mu: &db.mu}}
}

// AddModel registra un modelo de detección (Seed y tests).
func (r *VisionRepository) AddModel(m entity.DetectionModel) *entity.DetectionModel {
	defer r.acc.write()()
	m.ID = r.db.nextID()
	r.db.detectionModels[m.ID] = m
	return &m
}

func (r *VisionRepository) ListModels(_ context.Context) ([]*entity.DetectionModel, error) {
	defer r.acc.read()()
	list := make([]*entity.DetectionModel, 0, len(r.db.detectionModels))
	for _, m := range r.db.detectionModels {
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *VisionRepository) GetModel(_ context.Context, id int64) (*entity.DetectionModel, error) {
	defer r.acc.read()()
	m, ok := r.db.detectionModels[id]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *VisionRepository) CreateTask(_ context.Context, t *entity.DetectionTask) error {
	defer r.acc.write()()
	t.ID = r.db.nextID()
	r.db.detectionTasks[t.ID] = *t
	return nil
}

func (r *VisionRepository) CreateShelfAnalysis(_ context.Context, a *entity.ShelfAnalysis) error {
	defer r.acc.write()()
	a.ID = r.db.nextID()
	r.db.shelfAnalyses[a.ID] = *a
	return nil
}

func (r *VisionRepository) ListShelfAnalyses(_ context.Context, storeID *int64, limit, offset int) ([]*entity.ShelfAnalysis, error) {
	defer r.acc.read()()
	list := make([]*entity.ShelfAnalysis, 0)
	for _, a := range r.db.shelfAnalyses {
		if storeID != nil && a.StoreID != *storeID {
			continue
		}
		a := a
		list = append(list, &a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return paginate(list, limit, offset), nil
}
