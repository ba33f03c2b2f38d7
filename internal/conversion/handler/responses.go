package handler

import (
	"time"

	"unitconv/internal/conversion/models"
)

// UnitsResponse is the HTTP response for GET /units/{dimension}.
type UnitsResponse struct {
	Dimension string            `json:"dimension"`
	Units     []models.UnitInfo `json:"units"`
}

// HistoryResponse is the HTTP response for GET /history.
type HistoryResponse struct {
	Records []HistoryEntry `json:"records"`
}

type HistoryEntry struct {
	ID        string    `json:"id"`
	Dimension string    `json:"dimension"`
	Input     string    `json:"input"`
	Target    string    `json:"target"`
	Result    string    `json:"result"`
	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// FromRecords converts history records to an HTTP response.
func FromRecords(records []models.Record) *HistoryResponse {
	entries := make([]HistoryEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, HistoryEntry{
			ID:        r.ID.String(),
			Dimension: r.Kind.String(),
			Input:     r.Input,
			Target:    r.Target,
			Result:    r.Result,
			RequestID: r.RequestID,
			CreatedAt: r.CreatedAt,
		})
	}
	return &HistoryResponse{Records: entries}
}
