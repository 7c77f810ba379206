package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// ForecastingService pronósticos y recomendaciones de reposición.
type ForecastingService struct {
	c *Client
}

func (s *ForecastingService) ListResults(ctx context.Context, productID int64, status string) (*dto.ForecastListResponse, error) {
	q := url.Values{}
	setID(q, "product_id", productID)
	if status != "" {
		q.Set("status", status)
	}
	var out dto.ForecastListResponse
	if err := s.c.do(ctx, http.MethodGet, "forecasting/results/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ForecastingService) CreateResult(ctx context.Context, in dto.CreateForecastRequest) (*dto.ForecastResponse, error) {
	var out dto.ForecastResponse
	if err := s.c.do(ctx, http.MethodPost, "forecasting/results/", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ForecastingService) ListModels(ctx context.Context) ([]dto.ForecastModelResponse, error) {
	var out []dto.ForecastModelResponse
	if err := s.c.do(ctx, http.MethodGet, "forecasting/models/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *ForecastingService) RunModel(ctx context.Context, modelID int64, in dto.RunModelRequest) (*dto.RunModelResponse, error) {
	var out dto.RunModelResponse
	if err := s.c.do(ctx, http.MethodPost, fmt.Sprintf("forecasting/models/%d/run/", modelID), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommendations storeID 0 = todas las tiendas.
func (s *ForecastingService) Recommendations(ctx context.Context, storeID int64) (*dto.RecommendationListResponse, error) {
	q := url.Values{}
	setID(q, "store_id", storeID)
	var out dto.RecommendationListResponse
	if err := s.c.do(ctx, http.MethodGet, "forecasting/recommendations/", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
