package dto

import "time"

// AlertResponse salida de una alerta.
type AlertResponse struct {
	ID             int64      `json:"id"`
	AlertID        string     `json:"alert_id"`
	Type           string     `json:"alert_type"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	StoreID        int64      `json:"store_id"`
	LevelID        *int64     `json:"level_id,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	TriggeredAt    time.Time  `json:"triggered_at"`
	AcknowledgedAt *time.Time `json:"acknowledged_at,omitempty"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
