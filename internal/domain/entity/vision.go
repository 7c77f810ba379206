package entity

import "time"

// Estados de tareas de visión. Igual que los pronósticos, el procesamiento es externo.
const (
	VisionStatusPending   = "pending"
	VisionStatusCompleted = "completed"
	VisionStatusFailed    = "failed"
)

// DetectionModel modelo de detección de productos en estantería.
type DetectionModel struct {
	ID        int64
	Name      string
	Version   string
	IsActive  bool
	CreatedAt time.Time
}

// DetectionTask solicitud de detección de nivel de stock sobre una imagen.
type DetectionTask struct {
	ID        int64
	ModelID   int64
	StoreID   int64
	ImageURL  string
	Status    string
	CreatedAt time.Time
}

// ShelfAnalysis análisis de una estantería (ocupación, faltantes).
type ShelfAnalysis struct {
	ID           int64
	StoreID      int64
	ShelfCode    string
	ImageURL     string
	Status       string
	OccupancyPct *float64
	Notes        string
	CreatedAt    time.Time
}
