package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// VisionService análisis de estantería y tareas de detección.
type VisionService struct {
	c *Client
}

func (s *VisionService) ListShelfAnalyses(ctx context.Context, storeID int64) (*dto.ShelfAnalysisListResponse, error) {
	q := url.Values{}
	setID(q, "store_id", storeID)
	var out dto.ShelfAnalysisListResponse
	if err := s.c.do(ctx, http.MethodGet, "vision/shelf-analysis/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VisionService) CreateShelfAnalysis(ctx context.Context, in dto.CreateShelfAnalysisRequest) (*dto.ShelfAnalysisResponse, error) {
	var out dto.ShelfAnalysisResponse
	if err := s.c.do(ctx, http.MethodPost, "vision/shelf-analysis/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *VisionService) ListDetectionModels(ctx context.Context) ([]dto.DetectionModelResponse, error) {
	var out []dto.DetectionModelResponse
	if err := s.c.do(ctx, http.MethodGet, "vision/detection-models/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *VisionService) CreateDetectionTask(ctx context.Context, in dto.CreateDetectionTaskRequest) (*dto.DetectionTaskResponse, error) {
	var out dto.DetectionTaskResponse
	if err := s.c.do(ctx, http.MethodPost, "vision/detection-tasks/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
