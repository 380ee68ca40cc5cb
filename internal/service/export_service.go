package service

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/pkg/export"
)

type reportSource interface {
	EventPopularity(ctx context.Context, filter models.ReportFilter) ([]models.EventPopularityRow, error)
	StudentParticipation(ctx context.Context, studentID string) (*models.StudentParticipationReport, error)
	StudentParticipationList(ctx context.Context, filter models.ReportFilter) ([]models.StudentParticipationRow, error)
	TopActiveStudents(ctx context.Context, filter models.ReportFilter) ([]models.TopStudentRow, error)
	EventAttendance(ctx context.Context, eventID string) (*models.EventAttendanceRow, error)
	AttendanceByEventType(ctx context.Context, collegeID string) ([]models.EventTypeAttendanceRow, error)
	FeedbackReport(ctx context.Context, filter models.FeedbackReportFilter) ([]models.FeedbackReportRow, error)
	RatingByEventType(ctx context.Context, collegeID string) ([]models.EventTypeRatingRow, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type urlSigner interface {
	Generate(jobID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       export.Format
	ExpiresAt    time.Time
}

// ExportService runs a report, renders it and stores the signed result.
type ExportService struct {
	reports reportSource
	storage fileStorage
	signer  urlSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(reports reportSource, storage fileStorage, signer urlSigner, cfg ExportConfig, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	return &ExportService{
		reports: reports,
		storage: storage,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

// Generate builds the job's dataset and stores the rendered export under <type>/<job id>.<format>.
func (s *ExportService) Generate(ctx context.Context, job *models.ExportJob) (*ExportResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job nil")
	}
	format := export.Format(job.Format)
	renderer, err := export.RendererFor(format)
	if err != nil {
		return nil, err
	}
	dataset, err := s.buildDataset(ctx, job.Type, job.Params)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}

	relPath, err := s.storage.Save(fmt.Sprintf("%s/%s.%s", job.Type, job.ID, format), payload)
	if err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}
	token, expiresAt, err := s.signer.Generate(job.ID, relPath)
	if err != nil {
		return nil, fmt.Errorf("sign export: %w", err)
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	s.logger.Info("export generated", zap.String("job_id", job.ID), zap.String("path", relPath), zap.Int("rows", len(dataset.Rows)))
	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/reports/exports/download/%s", prefix, token),
		Format:       format,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (jobID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func (s *ExportService) buildDataset(ctx context.Context, kind models.ExportType, params models.ExportParams) (export.Dataset, error) {
	filter := models.ReportFilter{
		CollegeID: params.CollegeID,
		EventType: models.EventType(params.EventType),
		Limit:     params.Limit,
	}
	switch kind {
	case models.ExportTypeEventPopularity:
		rows, err := s.reports.EventPopularity(ctx, filter)
		if err != nil {
			return export.Dataset{}, err
		}
		return popularityDataset(rows), nil
	case models.ExportTypeStudentParticipation:
		if params.StudentID != "" {
			report, err := s.reports.StudentParticipation(ctx, params.StudentID)
			if err != nil {
				return export.Dataset{}, err
			}
			return participationEventsDataset(report), nil
		}
		rows, err := s.reports.StudentParticipationList(ctx, filter)
		if err != nil {
			return export.Dataset{}, err
		}
		return participationDataset(rows), nil
	case models.ExportTypeTopStudents:
		rows, err := s.reports.TopActiveStudents(ctx, filter)
		if err != nil {
			return export.Dataset{}, err
		}
		return topStudentsDataset(rows), nil
	case models.ExportTypeAttendanceStats:
		if params.EventID != "" {
			row, err := s.reports.EventAttendance(ctx, params.EventID)
			if err != nil {
				return export.Dataset{}, err
			}
			return eventAttendanceDataset(row), nil
		}
		rows, err := s.reports.AttendanceByEventType(ctx, params.CollegeID)
		if err != nil {
			return export.Dataset{}, err
		}
		return attendanceByTypeDataset(rows), nil
	case models.ExportTypeFeedback:
		fbFilter := models.FeedbackReportFilter{CollegeID: params.CollegeID, EventType: filter.EventType}
		if params.MinRating != nil {
			fbFilter.MinRating = *params.MinRating
		}
		if params.MaxRating != nil {
			fbFilter.MaxRating = *params.MaxRating
		}
		rows, err := s.reports.FeedbackReport(ctx, fbFilter)
		if err != nil {
			return export.Dataset{}, err
		}
		return feedbackDataset(rows), nil
	case models.ExportTypeRatingByType:
		rows, err := s.reports.RatingByEventType(ctx, params.CollegeID)
		if err != nil {
			return export.Dataset{}, err
		}
		return ratingByTypeDataset(rows), nil
	default:
		return export.Dataset{}, fmt.Errorf("unsupported export type %s", kind)
	}
}

func popularityDataset(rows []models.EventPopularityRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"event_id":      row.EventID,
			"event_name":    row.EventName,
			"event_type":    string(row.EventType),
			"event_date":    formatDate(row.EventDate),
			"venue":         row.Venue,
			"registrations": strconv.Itoa(row.TotalRegistrations),
			"attendance":    strconv.Itoa(row.TotalAttendance),
			"avg_rating":    formatFloat(row.AverageRating),
			"feedback":      strconv.Itoa(row.FeedbackCount),
		})
	}
	return export.Dataset{
		Title: "Event Popularity",
		Columns: []export.Column{
			{Key: "event_id", Label: "Event ID"},
			{Key: "event_name", Label: "Event"},
			{Key: "event_type", Label: "Type"},
			{Key: "event_date", Label: "Date"},
			{Key: "venue", Label: "Venue"},
			{Key: "registrations", Label: "Registrations"},
			{Key: "attendance", Label: "Attendance"},
			{Key: "avg_rating", Label: "Avg Rating"},
			{Key: "feedback", Label: "Feedback"},
		},
		Rows: out,
	}
}

var participationColumns = []export.Column{
	{Key: "student_id", Label: "Student ID"},
	{Key: "student_name", Label: "Student"},
	{Key: "department", Label: "Department"},
	{Key: "registered", Label: "Registered"},
	{Key: "attended", Label: "Attended"},
	{Key: "feedback", Label: "Feedback"},
	{Key: "avg_rating", Label: "Avg Rating"},
	{Key: "attendance_pct", Label: "Attendance (%)"},
}

func participationRow(row models.StudentParticipationRow) map[string]string {
	return map[string]string{
		"student_id":     row.StudentID,
		"student_name":   row.StudentName,
		"department":     deref(row.Department),
		"registered":     strconv.Itoa(row.EventsRegistered),
		"attended":       strconv.Itoa(row.EventsAttended),
		"feedback":       strconv.Itoa(row.FeedbackGiven),
		"avg_rating":     formatFloat(row.AverageRatingGiven),
		"attendance_pct": formatFloat(row.AttendancePercentage),
	}
}

func participationDataset(rows []models.StudentParticipationRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, participationRow(row))
	}
	return export.Dataset{Title: "Student Participation", Columns: participationColumns, Rows: out}
}

func participationEventsDataset(report *models.StudentParticipationReport) export.Dataset {
	out := make([]map[string]string, 0, len(report.Events))
	for _, ev := range report.Events {
		out = append(out, map[string]string{
			"event_name":        ev.EventName,
			"event_type":        string(ev.EventType),
			"event_date":        formatDate(ev.EventDate),
			"registration_date": formatDate(ev.RegistrationDate),
			"attended":          strconv.FormatBool(ev.Attended),
			"rating":            formatInt(ev.FeedbackRating),
		})
	}
	return export.Dataset{
		Title: fmt.Sprintf("Participation of %s (%s)", report.Summary.StudentName, report.Summary.StudentID),
		Columns: []export.Column{
			{Key: "event_name", Label: "Event"},
			{Key: "event_type", Label: "Type"},
			{Key: "event_date", Label: "Date"},
			{Key: "registration_date", Label: "Registered On"},
			{Key: "attended", Label: "Attended"},
			{Key: "rating", Label: "Rating"},
		},
		Rows: out,
	}
}

func topStudentsDataset(rows []models.TopStudentRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := participationRow(row.StudentParticipationRow)
		record["score"] = strconv.Itoa(row.ActivityScore)
		out = append(out, record)
	}
	columns := append(append([]export.Column{}, participationColumns...), export.Column{Key: "score", Label: "Activity Score"})
	return export.Dataset{Title: "Top Active Students", Columns: columns, Rows: out}
}

func eventAttendanceDataset(row *models.EventAttendanceRow) export.Dataset {
	return export.Dataset{
		Title: fmt.Sprintf("Attendance for %s", row.EventName),
		Columns: []export.Column{
			{Key: "event_id", Label: "Event ID"},
			{Key: "event_name", Label: "Event"},
			{Key: "event_date", Label: "Date"},
			{Key: "capacity", Label: "Capacity"},
			{Key: "registered", Label: "Registered"},
			{Key: "attended", Label: "Attended"},
			{Key: "remaining", Label: "Remaining"},
			{Key: "attendance_pct", Label: "Attendance (%)"},
		},
		Rows: []map[string]string{{
			"event_id":       row.EventID,
			"event_name":     row.EventName,
			"event_date":     formatDate(row.EventDate),
			"capacity":       strconv.Itoa(row.MaxCapacity),
			"registered":     strconv.Itoa(row.TotalRegistered),
			"attended":       strconv.Itoa(row.TotalAttended),
			"remaining":      strconv.Itoa(row.RemainingCapacity),
			"attendance_pct": formatFloat(row.AttendancePercentage),
		}},
	}
}

func attendanceByTypeDataset(rows []models.EventTypeAttendanceRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"event_type":     string(row.EventType),
			"events":         strconv.Itoa(row.TotalEvents),
			"registrations":  strconv.Itoa(row.TotalRegistrations),
			"attendance":     strconv.Itoa(row.TotalAttendance),
			"attendance_pct": formatFloat(row.AverageAttendancePercentage),
		})
	}
	return export.Dataset{
		Title: "Attendance by Event Type",
		Columns: []export.Column{
			{Key: "event_type", Label: "Type"},
			{Key: "events", Label: "Events"},
			{Key: "registrations", Label: "Registrations"},
			{Key: "attendance", Label: "Attendance"},
			{Key: "attendance_pct", Label: "Avg Attendance (%)"},
		},
		Rows: out,
	}
}

func feedbackDataset(rows []models.FeedbackReportRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]string{
			"event_id":   row.EventID,
			"event_name": row.EventName,
			"event_type": string(row.EventType),
			"event_date": formatDate(row.EventDate),
			"total":      strconv.Itoa(row.TotalFeedback),
			"avg_rating": formatFloat(row.AverageRating),
			"min":        formatInt(row.MinRating),
			"max":        formatInt(row.MaxRating),
			"r1":         strconv.Itoa(row.Rating1Count),
			"r2":         strconv.Itoa(row.Rating2Count),
			"r3":         strconv.Itoa(row.Rating3Count),
			"r4":         strconv.Itoa(row.Rating4Count),
			"r5":         strconv.Itoa(row.Rating5Count),
		})
	}
	return export.Dataset{
		Title: "Feedback Report",
		Columns: []export.Column{
			{Key: "event_id", Label: "Event ID"},
			{Key: "event_name", Label: "Event"},
			{Key: "event_type", Label: "Type"},
			{Key: "event_date", Label: "Date"},
			{Key: "total", Label: "Responses"},
			{Key: "avg_rating", Label: "Avg"},
			{Key: "min", Label: "Min"},
			{Key: "max", Label: "Max"},
			{Key: "r1", Label: "1"},
			{Key: "r2", Label: "2"},
			{Key: "r3", Label: "3"},
			{Key: "r4", Label: "4"},
			{Key: "r5", Label: "5"},
		},
		Rows: out,
	}
}

func ratingByTypeDataset(rows []models.EventTypeRatingRow) export.Dataset {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		avg := row.AverageRating
		out = append(out, map[string]string{
			"event_type": string(row.EventType),
			"avg_rating": formatFloat(&avg),
			"feedback":   strconv.Itoa(row.FeedbackCount),
		})
	}
	return export.Dataset{
		Title: "Rating by Event Type",
		Columns: []export.Column{
			{Key: "event_type", Label: "Type"},
			{Key: "avg_rating", Label: "Avg Rating"},
			{Key: "feedback", Label: "Feedback"},
		},
		Rows: out,
	}
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(models.EventDateLayout)
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
