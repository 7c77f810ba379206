package dto

import "time"

// CreateShelfAnalysisRequest body para POST /api/v1/vision/shelf-analysis/.
type CreateShelfAnalysisRequest struct {
	StoreID   int64  `json:"store_id" validate:"required,gt=0"`
	ShelfCode string `json:"shelf_code" validate:"required,max=50"`
	ImageURL  string `json:"image_url" validate:"required,url"`
	Notes     string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

// ShelfAnalysisResponse salida de un análisis de estantería.
type ShelfAnalysisResponse struct {
	ID           int64     `json:"id"`
	StoreID      int64     `json:"store_id"`
	ShelfCode    string    `json:"shelf_code"`
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"`
	OccupancyPct *float64  `json:"occupancy_pct"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShelfAnalysisListResponse lista paginada de análisis.
type ShelfAnalysisListResponse struct {
	Items []ShelfAnalysisResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}

// DetectionModelResponse salida de un modelo de detección.
type DetectionModelResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Version  string `json:"version"`
	IsActive bool   `json:"is_active"`
}

// CreateDetectionTaskRequest body para POST /api/v1/vision/detection-tasks/.
type CreateDetectionTaskRequest struct {
	ModelID  int64  `json:"model_id" validate:"required,gt=0"`
	StoreID  int64  `json:"store_id" validate:"required,gt=0"`
	ImageURL string `json:"image_url" validate:"required,url"`
}

// DetectionTaskResponse salida de una tarea de detección.
type DetectionTaskResponse struct {
	ID        int64     `json:"id"`
	ModelID   int64     `json:"model_id"`
	StoreID   int64     `json:"store_id"`
	ImageURL  string    `json:"image_url"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
