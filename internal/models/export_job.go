package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ExportType names a report that can be exported.
type ExportType string

const (
	ExportTypeEventPopularity      ExportType = "event-popularity"
	ExportTypeStudentParticipation ExportType = "student-participation"
	ExportTypeTopStudents          ExportType = "top-students"
	ExportTypeAttendanceStats      ExportType = "attendance-stats"
	ExportTypeFeedback             ExportType = "feedback"
	ExportTypeRatingByType         ExportType = "rating-by-type"
)

// Valid reports whether t names an exportable report.
func (t ExportType) Valid() bool {
	switch t {
	case ExportTypeEventPopularity, ExportTypeStudentParticipation, ExportTypeTopStudents,
		ExportTypeAttendanceStats, ExportTypeFeedback, ExportTypeRatingByType:
		return true
	}
	return false
}

// ExportStatus captures background job lifecycle states.
type ExportStatus string

const (
	ExportStatusQueued   ExportStatus = "queued"
	ExportStatusRunning  ExportStatus = "running"
	ExportStatusFinished ExportStatus = "finished"
	ExportStatusFailed   ExportStatus = "failed"
)

// ExportJob is a persisted report export request.
type ExportJob struct {
	ID           string       `db:"id" json:"id"`
	Type         ExportType   `db:"type" json:"type"`
	Format       string       `db:"format" json:"format"`
	Params       ExportParams `db:"params" json:"params"`
	Status       ExportStatus `db:"status" json:"status"`
	Progress     int          `db:"progress" json:"progress"`
	ResultURL    *string      `db:"result_url" json:"result_url,omitempty"`
	ErrorMessage *string      `db:"error_message" json:"error_message,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	FinishedAt   *time.Time   `db:"finished_at" json:"finished_at,omitempty"`
}

// ExportParams holds the report filters, stored as JSONB.
type ExportParams struct {
	CollegeID string   `json:"college_id,omitempty"`
	EventType string   `json:"event_type,omitempty"`
	EventID   string   `json:"event_id,omitempty"`
	StudentID string   `json:"student_id,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	MinRating *float64 `json:"min_rating,omitempty"`
	MaxRating *float64 `json:"max_rating,omitempty"`
}

// Value implements driver.Valuer.
func (p ExportParams) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal export params: %w", err)
	}
	return data, nil
}

// Scan implements sql.Scanner.
func (p *ExportParams) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = ExportParams{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for ExportParams", value)
	}
	if len(data) == 0 {
		*p = ExportParams{}
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("unmarshal export params: %w", err)
	}
	return nil
}
