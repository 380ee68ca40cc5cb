package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-events-api/internal/models"
	"github.com/noah-isme/campus-events-api/internal/repository"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
)

type collegeRepoStub struct {
	colleges map[string]*models.College
	lists    int
	finds    int
}

func newCollegeRepoStub(ids ...string) *collegeRepoStub {
	stub := &collegeRepoStub{colleges: map[string]*models.College{}}
	for _, id := range ids {
		stub.colleges[id] = &models.College{ID: id, Name: "College " + id}
	}
	return stub
}

func (r *collegeRepoStub) Create(ctx context.Context, college *models.College) error {
	if _, ok := r.colleges[college.ID]; ok {
		return repository.ErrDuplicate
	}
	clone := *college
	r.colleges[college.ID] = &clone
	return nil
}

func (r *collegeRepoStub) List(ctx context.Context) ([]models.College, error) {
	r.lists++
	out := make([]models.College, 0, len(r.colleges))
	for _, c := range r.colleges {
		out = append(out, *c)
	}
	return out, nil
}

func (r *collegeRepoStub) FindByID(ctx context.Context, id string) (*models.College, error) {
	r.finds++
	c, ok := r.colleges[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (r *collegeRepoStub) LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.College, error) {
	return r.FindByID(ctx, id)
}

func (r *collegeRepoStub) Update(ctx context.Context, college *models.College) error {
	clone := *college
	r.colleges[college.ID] = &clone
	return nil
}

func (r *collegeRepoStub) Stats(ctx context.Context, id string) (*models.CollegeStats, error) {
	return &models.CollegeStats{TotalEvents: 2}, nil
}

func TestCollegeServiceCreateAndConflict(t *testing.T) {
	repo := newCollegeRepoStub()
	svc := NewCollegeService(repo, nil, nil, nil)
	ctx := context.Background()

	college, err := svc.Create(ctx, CreateCollegeRequest{CollegeID: " CLG01 ", CollegeName: "North", ContactEmail: "ops@north.test"})
	require.NoError(t, err)
	assert.Equal(t, "CLG01", college.ID)

	_, err = svc.Create(ctx, CreateCollegeRequest{CollegeID: "CLG01", CollegeName: "Again"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = svc.Create(ctx, CreateCollegeRequest{CollegeID: "CLG02", CollegeName: "Bad", ContactEmail: "not-an-email"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestCollegeServiceListIsCachedUntilWrite(t *testing.T) {
	repo := newCollegeRepoStub("CLG01")
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCollegeService(repo, cache, nil, nil)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)

	_, err = svc.Create(ctx, CreateCollegeRequest{CollegeID: "CLG02", CollegeName: "South"})
	require.NoError(t, err)
	colleges, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.lists)
	assert.Len(t, colleges, 2)
}

func TestCollegeServiceGet(t *testing.T) {
	repo := newCollegeRepoStub("CLG01")
	cache := NewCacheService(newMemoryCache(), nil, time.Minute, nil, true)
	svc := NewCollegeService(repo, cache, nil, nil)
	ctx := context.Background()

	detail, err := svc.Get(ctx, "CLG01")
	require.NoError(t, err)
	assert.Equal(t, 2, detail.Stats.TotalEvents)
	_, err = svc.Get(ctx, "CLG01")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.finds)

	_, err = svc.Get(ctx, "CLG99")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

type studentRepoStub struct {
	students map[string]*models.Student
}

func (r *studentRepoStub) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentListItem, error) {
	return nil, nil
}

func (r *studentRepoStub) ListByCollege(ctx context.Context, collegeID string, filter models.StudentFilter) ([]models.Student, error) {
	return nil, nil
}

func (r *studentRepoStub) FindByID(ctx context.Context, id string) (*models.Student, error) {
	s, ok := r.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *s
	return &clone, nil
}

func (r *studentRepoStub) EmailTaken(ctx context.Context, email, excludeID string) (bool, error) {
	for _, s := range r.students {
		if s.Email == email && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *studentRepoStub) CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error) {
	n := 0
	for _, s := range r.students {
		if s.CollegeID == collegeID {
			n++
		}
	}
	return n, nil
}

func (r *studentRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, student *models.Student) error {
	clone := *student
	r.students[student.ID] = &clone
	return nil
}

func (r *studentRepoStub) Update(ctx context.Context, student *models.Student) error {
	clone := *student
	r.students[student.ID] = &clone
	return nil
}

func (r *studentRepoStub) ParticipationStats(ctx context.Context, id string) (*models.ParticipationStats, error) {
	return &models.ParticipationStats{}, nil
}

func TestStudentServiceCreateAllocatesSequentialIDs(t *testing.T) {
	repo := &studentRepoStub{students: map[string]*models.Student{}}
	svc := NewStudentService(repo, newCollegeRepoStub("CLG01"), passTx{}, nil, nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateStudentRequest{CollegeID: "CLG01", StudentName: "Ana", Email: "ana@campus.test"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, CreateStudentRequest{CollegeID: "CLG01", StudentName: "Ben", Email: "ben@campus.test"})
	require.NoError(t, err)
	assert.Equal(t, "CLG01-STU0001", first.ID)
	assert.Equal(t, "CLG01-STU0002", second.ID)

	_, err = svc.Create(ctx, CreateStudentRequest{CollegeID: "CLG01", StudentName: "Ana 2", Email: "ana@campus.test"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	_, err = svc.Create(ctx, CreateStudentRequest{CollegeID: "CLG77", StudentName: "Cy", Email: "cy@campus.test"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Update(ctx, second.ID, UpdateStudentRequest{StudentName: "Ben", Email: "ana@campus.test"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	updated, err := svc.Update(ctx, second.ID, UpdateStudentRequest{StudentName: "Benjamin", Email: "ben@campus.test"})
	require.NoError(t, err)
	assert.Equal(t, "Benjamin", updated.Name)
}

type eventRepoStub struct {
	*campusStore
}

func (r eventRepoStub) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	var out []models.Event
	for _, ev := range r.events {
		if ev.Status == models.EventStatusActive {
			out = append(out, *ev)
		}
	}
	return out, len(out), nil
}

func (r eventRepoStub) FindByID(ctx context.Context, id string) (*models.Event, error) {
	return fakeEvents{r.campusStore}.FindByID(ctx, id)
}

func (r eventRepoStub) LockForUpdate(ctx context.Context, exec sqlx.ExtContext, id string) (*models.Event, error) {
	return r.FindByID(ctx, id)
}

func (r eventRepoStub) CountByCollege(ctx context.Context, exec sqlx.ExtContext, collegeID string) (int, error) {
	n := 0
	for _, ev := range r.events {
		if ev.CollegeID == collegeID {
			n++
		}
	}
	return n, nil
}

func (r eventRepoStub) Create(ctx context.Context, exec sqlx.ExtContext, event *models.Event) error {
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r eventRepoStub) Update(ctx context.Context, event *models.Event) error {
	clone := *event
	r.events[event.ID] = &clone
	return nil
}

func (r eventRepoStub) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.EventStatus) error {
	r.events[id].Status = status
	return nil
}

func (r eventRepoStub) Stats(ctx context.Context, id string) (*models.EventStats, error) {
	return &models.EventStats{Registrations: r.countStatus(id, models.RegistrationStatusConfirmed)}, nil
}

func newEventServiceForTest() (*EventService, *lifecycle) {
	lc := newLifecycle()
	svc := NewEventService(eventRepoStub{lc.store}, newCollegeRepoStub("CLG01"), fakeRegistrations{lc.store}, passTx{}, nil, nil, nil)
	svc.now = fixedClock
	return svc, lc
}

func validEventRequest() EventRequest {
	return EventRequest{
		EventName:   "Go Workshop",
		EventType:   "Workshop",
		EventDate:   "2025-03-20",
		EventTime:   "14:00",
		Venue:       "Lab 2",
		MaxCapacity: 2,
	}
}

func TestEventServiceCreateAllocatesID(t *testing.T) {
	svc, _ := newEventServiceForTest()
	ctx := context.Background()

	event, err := svc.Create(ctx, CreateEventRequest{CollegeID: "CLG01", EventRequest: validEventRequest()})
	require.NoError(t, err)
	assert.Equal(t, "CLG01-EVT001", event.ID)
	assert.Equal(t, models.EventStatusActive, event.Status)
	assert.Equal(t, time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), event.Date)

	next, err := svc.Create(ctx, CreateEventRequest{CollegeID: "CLG01", EventRequest: validEventRequest()})
	require.NoError(t, err)
	assert.Equal(t, "CLG01-EVT002", next.ID)

	_, err = svc.Create(ctx, CreateEventRequest{CollegeID: "CLG09", EventRequest: validEventRequest()})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEventServiceCreateValidation(t *testing.T) {
	svc, _ := newEventServiceForTest()
	ctx := context.Background()

	cases := map[string]func(r *EventRequest){
		"zero capacity": func(r *EventRequest) { r.MaxCapacity = 0 },
		"unknown type":  func(r *EventRequest) { r.EventType = "Party" },
		"bad date":      func(r *EventRequest) { r.EventDate = "20/03/2025" },
		"bad time":      func(r *EventRequest) { r.EventTime = "25:00" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validEventRequest()
			mutate(&req)
			_, err := svc.Create(ctx, CreateEventRequest{CollegeID: "CLG01", EventRequest: req})
			assert.ErrorIs(t, err, appErrors.ErrValidation)
		})
	}
}

func TestEventServiceUpdateRejectsCapacityBelowConfirmed(t *testing.T) {
	svc, lc := newEventServiceForTest()
	lc.store.addEvent("E1", 3, fixedNow)
	lc.store.addStudent("S1", "S2")
	ctx := context.Background()
	for _, s := range []string{"S1", "S2"} {
		_, err := lc.registrations.Enroll(ctx, s, "E1")
		require.NoError(t, err)
	}

	req := validEventRequest()
	req.MaxCapacity = 1
	_, err := svc.Update(ctx, "E1", req)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	req.MaxCapacity = 2
	event, err := svc.Update(ctx, "E1", req)
	require.NoError(t, err)
	assert.Equal(t, 2, event.MaxCapacity)
}

func TestEventServiceCancel(t *testing.T) {
	svc, lc := newEventServiceForTest()
	lc.store.addEvent("E1", 3, fixedNow)
	lc.store.addStudent("S1")
	ctx := context.Background()

	event, err := svc.Cancel(ctx, "E1")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCancelled, event.Status)

	_, err = svc.Cancel(ctx, "E1")
	assert.ErrorIs(t, err, appErrors.ErrInactiveEvent)
	_, err = lc.registrations.Enroll(ctx, "S1", "E1")
	assert.ErrorIs(t, err, appErrors.ErrInactiveEvent)
	_, err = svc.Cancel(ctx, "E404")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestEventServiceGetDerivesCompleted(t *testing.T) {
	svc, lc := newEventServiceForTest()
	lc.store.addEvent("PAST", 3, fixedNow.AddDate(0, 0, -1))
	lc.store.addEvent("TODAY", 3, fixedNow)
	ctx := context.Background()

	past, err := svc.Get(ctx, "PAST")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusCompleted, past.EffectiveStatus)
	assert.Equal(t, models.EventStatusActive, past.Status)

	today, err := svc.Get(ctx, "TODAY")
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusActive, today.EffectiveStatus)
}

func TestEventServiceListDefaults(t *testing.T) {
	svc, lc := newEventServiceForTest()
	lc.store.addEvent("E1", 3, fixedNow)

	events, page, err := svc.List(context.Background(), models.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 20, page.PageSize)
	assert.Equal(t, 1, page.Page)

	_, _, err = svc.List(context.Background(), models.EventFilter{Type: "Party"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
