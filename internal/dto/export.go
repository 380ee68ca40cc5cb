package dto

import (
	"time"

	"github.com/noah-isme/campus-events-api/internal/models"
)

// ExportRequest captures POST /reports/exports payload.
type ExportRequest struct {
	Type    models.ExportType   `json:"type" validate:"required"`
	Format  string              `json:"format" validate:"required,oneof=csv pdf"`
	Filters models.ExportParams `json:"filters"`
}

// ExportJobResponse is returned after enqueueing an export.
type ExportJobResponse struct {
	ID       string              `json:"id"`
	Status   models.ExportStatus `json:"status"`
	Progress int                 `json:"progress"`
}

// ExportStatusResponse exposes job progress metadata.
type ExportStatusResponse struct {
	ID         string              `json:"id"`
	Type       models.ExportType   `json:"type"`
	Format     string              `json:"format"`
	Status     models.ExportStatus `json:"status"`
	Progress   int                 `json:"progress"`
	ResultURL  *string             `json:"result_url,omitempty"`
	Error      *string             `json:"error,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	FinishedAt *time.Time          `json:"finished_at,omitempty"`
}
