package service

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
)

var fixedNow = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}

// passTx runs fn directly without a transaction.
type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(exec sqlx.ExtContext) error) error {
	return fn(nil)
}

// campusStore keeps lifecycle rows in insertion order, which doubles as registration order.
type campusStore struct {
	mu       sync.Mutex
	events   map[string]*models.Event
	students map[string]*models.Student
	regs     []*models.Registration
	atts     []*models.Attendance
	fbs      []*models.Feedback
}

func newCampusStore() *campusStore {
	return &campusStore{
		events:   map[string]*models.Event{},
		students: map[string]*models.Student{},
	}
}

func (s *campusStore) addEvent(id string, capacity int, date time.Time) *models.Event {
	ev := &models.Event{
		ID:          id,
		CollegeID:   "CLG01",
		Name:        "Event " + id,
		Type:        models.EventTypeWorkshop,
		Date:        date,
		Time:        "10:00",
		Venue:       "Hall A",
		MaxCapacity: capacity,
		Status:      models.EventStatusActive,
	}
	s.events[id] = ev
	return ev
}

func (s *campusStore) addStudent(ids ...string) {
	for _, id := range ids {
		s.students[id] = &models.Student{ID: id, CollegeID: "CLG01", Name: "Student " + id, Email: id + "@campus.test"}
	}
}

func (s *campusStore) registration(studentID, eventID string) *models.Registration {
	for _, r := range s.regs {
		if r.StudentID == studentID && r.EventID == eventID {
			return r
		}
	}
	return nil
}

func (s *campusStore) countStatus(eventID string, status models.RegistrationStatus) int {
	n := 0
	for _, r := range s.regs {
		if r.EventID == eventID && r.Status == status {
			n++
		}
	}
	return n
}

type fakeEvents struct{ *campusStore }

func (f fakeEvents) LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Event, error) {
	return f.FindByID(ctx, id)
}

func (f fakeEvents) FindByID(ctx context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ev, ok := f.events[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *ev
	return &clone, nil
}

type fakeStudents struct{ *campusStore }

func (f fakeStudents) Exists(ctx context.Context, exec sqlx.ExtContext, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.students[id]
	return ok, nil
}

type fakeRegistrations struct{ *campusStore }

func (f fakeRegistrations) FindByID(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.ID == id {
			clone := *r
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeRegistrations) FindByPair(ctx context.Context, exec sqlx.ExtContext, studentID, eventID string) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r := f.registration(studentID, eventID); r != nil {
		clone := *r
		return &clone, nil
	}
	return nil, sql.ErrNoRows
}

func (f fakeRegistrations) CountByStatus(ctx context.Context, exec sqlx.ExtContext, eventID string, status models.RegistrationStatus) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countStatus(eventID, status), nil
}

func (f fakeRegistrations) Create(ctx context.Context, exec sqlx.ExtContext, reg *models.Registration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registration(reg.StudentID, reg.EventID) != nil {
		return repository.ErrDuplicate
	}
	clone := *reg
	f.regs = append(f.regs, &clone)
	return nil
}

func (f fakeRegistrations) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.RegistrationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.ID == id {
			r.Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f fakeRegistrations) OldestWaitlisted(ctx context.Context, exec sqlx.ExtContext, eventID string) (*models.Registration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.regs {
		if r.EventID == eventID && r.Status == models.RegistrationStatusWaitlisted {
			clone := *r
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeRegistrations) GetDetail(ctx context.Context, id string) (*models.RegistrationDetail, error) {
	reg, err := f.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	return &models.RegistrationDetail{Registration: *reg}, nil
}

func (f fakeRegistrations) ListByEvent(ctx context.Context, eventID string, status models.RegistrationStatus) ([]models.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EventRegistration
	for _, r := range f.regs {
		if r.EventID == eventID && (status == "" || r.Status == status) {
			out = append(out, models.EventRegistration{Registration: *r})
		}
	}
	return out, nil
}

func (f fakeRegistrations) ListByStudent(ctx context.Context, studentID string, status models.RegistrationStatus) ([]models.StudentRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StudentRegistration
	for _, r := range f.regs {
		if r.StudentID == studentID && (status == "" || r.Status == status) {
			out = append(out, models.StudentRegistration{Registration: *r})
		}
	}
	return out, nil
}

func (f fakeRegistrations) StatsByEvent(ctx context.Context, eventID string) (*models.RegistrationStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return &models.RegistrationStats{
		Confirmed:  f.countStatus(eventID, models.RegistrationStatusConfirmed),
		Waitlisted: f.countStatus(eventID, models.RegistrationStatusWaitlisted),
		Cancelled:  f.countStatus(eventID, models.RegistrationStatusCancelled),
	}, nil
}

type fakeAttendance struct{ *campusStore }

func (f fakeAttendance) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.atts {
		if a.ID == id {
			clone := *a
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeAttendance) FindByPair(ctx context.Context, studentID, eventID string) (*models.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.atts {
		if a.StudentID == studentID && a.EventID == eventID {
			clone := *a
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeAttendance) Create(ctx context.Context, att *models.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.atts {
		if a.StudentID == att.StudentID && a.EventID == att.EventID {
			return repository.ErrDuplicate
		}
	}
	clone := *att
	f.atts = append(f.atts, &clone)
	return nil
}

func (f fakeAttendance) UpdateStatus(ctx context.Context, id string, status models.AttendanceStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.atts {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f fakeAttendance) ListByEvent(ctx context.Context, eventID string) ([]models.EventAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EventAttendance
	for _, a := range f.atts {
		if a.EventID == eventID {
			out = append(out, models.EventAttendance{Attendance: *a})
		}
	}
	return out, nil
}

func (f fakeAttendance) ListByStudent(ctx context.Context, studentID string) ([]models.StudentAttendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StudentAttendance
	for _, a := range f.atts {
		if a.StudentID == studentID {
			out = append(out, models.StudentAttendance{Attendance: *a})
		}
	}
	return out, nil
}

func (f fakeAttendance) Counts(ctx context.Context, eventID string) (int, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	attended := 0
	for _, a := range f.atts {
		if a.EventID == eventID && a.Status == models.AttendanceStatusPresent {
			attended++
		}
	}
	return f.countStatus(eventID, models.RegistrationStatusConfirmed), attended, nil
}

func (f fakeAttendance) ListAbsentees(ctx context.Context, eventID string) ([]models.Absentee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Absentee
	for _, r := range f.regs {
		if r.EventID != eventID || r.Status != models.RegistrationStatusConfirmed {
			continue
		}
		present := false
		for _, a := range f.atts {
			if a.StudentID == r.StudentID && a.EventID == eventID && a.Status == models.AttendanceStatusPresent {
				present = true
			}
		}
		if !present {
			out = append(out, models.Absentee{StudentID: r.StudentID})
		}
	}
	return out, nil
}

type fakeFeedback struct{ *campusStore }

func (f fakeFeedback) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fb := range f.fbs {
		if fb.ID == id {
			clone := *fb
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeFeedback) FindByPair(ctx context.Context, studentID, eventID string) (*models.Feedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fb := range f.fbs {
		if fb.StudentID == studentID && fb.EventID == eventID {
			clone := *fb
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f fakeFeedback) Create(ctx context.Context, fb *models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.fbs {
		if existing.StudentID == fb.StudentID && existing.EventID == fb.EventID {
			return repository.ErrDuplicate
		}
	}
	clone := *fb
	f.fbs = append(f.fbs, &clone)
	return nil
}

func (f fakeFeedback) Update(ctx context.Context, fb *models.Feedback) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, existing := range f.fbs {
		if existing.ID == fb.ID {
			clone := *fb
			f.fbs[i] = &clone
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f fakeFeedback) ListByEvent(ctx context.Context, eventID string) ([]models.EventFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EventFeedback
	for _, fb := range f.fbs {
		if fb.EventID == eventID {
			out = append(out, models.EventFeedback{Feedback: *fb})
		}
	}
	return out, nil
}

func (f fakeFeedback) ListByStudent(ctx context.Context, studentID string) ([]models.StudentFeedback, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.StudentFeedback
	for _, fb := range f.fbs {
		if fb.StudentID == studentID {
			out = append(out, models.StudentFeedback{Feedback: *fb})
		}
	}
	return out, nil
}

func (f fakeFeedback) StatsByEvent(ctx context.Context, eventID string) (*models.FeedbackStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &models.FeedbackStats{}
	sum := 0
	for _, fb := range f.fbs {
		if fb.EventID != eventID {
			continue
		}
		stats.TotalFeedback++
		sum += fb.Rating
		if stats.MinRating == 0 || fb.Rating < stats.MinRating {
			stats.MinRating = fb.Rating
		}
		if fb.Rating > stats.MaxRating {
			stats.MaxRating = fb.Rating
		}
	}
	if stats.TotalFeedback > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalFeedback)
	}
	return stats, nil
}

type lifecycle struct {
	store         *campusStore
	registrations *RegistrationService
	attendance    *AttendanceService
	feedback      *FeedbackService
}

func newLifecycle() *lifecycle {
	store := newCampusStore()
	regs := NewRegistrationService(fakeRegistrations{store}, fakeEvents{store}, fakeStudents{store}, passTx{}, nil, nil)
	regs.now = fixedClock
	regs.newID = sequentialIDs("reg")
	att := NewAttendanceService(fakeAttendance{store}, fakeRegistrations{store}, fakeEvents{store}, nil, nil)
	att.now = fixedClock
	att.newID = sequentialIDs("att")
	fb := NewFeedbackService(fakeFeedback{store}, fakeAttendance{store}, nil, nil)
	fb.now = fixedClock
	fb.newID = sequentialIDs("fb")
	return &lifecycle{store: store, registrations: regs, attendance: att, feedback: fb}
}
