package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/chronos-room-api/internal/models"
	appErrors "github.com/noah-isme/chronos-room-api/pkg/errors"
)

// scheduleRepoStub filters its blocks the way the SQL query does: same room,
// same weekday, half-open time overlap.
type scheduleRepoStub struct {
	blocks []models.AcademicSchedule
	err    error
	calls  int
}

func (s *scheduleRepoStub) FindConflicting(ctx context.Context, roomID string, dayOfWeek models.DayOfWeek, startTime, endTime string) ([]models.AcademicSchedule, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	var out []models.AcademicSchedule
	for _, b := range s.blocks {
		if b.RoomID == roomID && b.DayOfWeek == dayOfWeek && b.StartTime < endTime && b.EndTime > startTime {
			out = append(out, b)
		}
	}
	return out, nil
}

type reservationRepoStub struct {
	reservations []models.EventReservation
	err          error
	calls        int
	statuses     []models.ReservationStatus
}

func (s *reservationRepoStub) FindConflicting(ctx context.Context, roomID string, date time.Time, startTime, endTime string, statuses []models.ReservationStatus) ([]models.EventReservation, error) {
	s.calls++
	s.statuses = statuses
	if s.err != nil {
		return nil, s.err
	}
	allowed := make(map[models.ReservationStatus]bool, len(statuses))
	for _, st := range statuses {
		allowed[st] = true
	}
	var out []models.EventReservation
	for _, r := range s.reservations {
		if r.RoomID == roomID && r.EventDate.Equal(date) && allowed[r.Status] && r.StartTime < endTime && r.EndTime > startTime {
			out = append(out, r)
		}
	}
	return out, nil
}

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

func TestFindConflictsDetectsOverlaps(t *testing.T) {
	// 2025-03-03 is a Monday.
	monday := date(t, "2025-03-03")

	schedules := &scheduleRepoStub{blocks: []models.AcademicSchedule{
		{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"},
	}}
	reservations := &reservationRepoStub{reservations: []models.EventReservation{
		{RoomID: "r1", EventTitle: "Club Meeting", OrganizationName: "Chess Club", EventDate: monday, StartTime: "10:00", EndTime: "12:00", Status: models.StatusPending},
	}}

	svc := NewConflictService(schedules, reservations, nil)

	result, err := svc.FindConflicts(context.Background(), "r1", monday, "10:00", "11:30")
	require.NoError(t, err)
	assert.True(t, result.HasConflict)
	assert.Equal(t, []string{"Course CS101 on MONDAY from 09:00 to 11:00"}, result.AcademicConflicts)
	assert.Equal(t, []string{"Club Meeting by Chess Club on 2025-03-03 from 10:00 to 12:00 (PENDING)"}, result.ReservationConflicts)
}

func TestFindConflictsBackToBackIsNotAConflict(t *testing.T) {
	monday := date(t, "2025-03-03")

	schedules := &scheduleRepoStub{blocks: []models.AcademicSchedule{
		{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"},
	}}
	reservations := &reservationRepoStub{reservations: []models.EventReservation{
		{RoomID: "r1", EventDate: monday, StartTime: "13:00", EndTime: "14:00", Status: models.StatusApproved},
	}}

	svc := NewConflictService(schedules, reservations, nil)

	// Starts exactly when the lecture ends, ends exactly when the event starts.
	result, err := svc.FindConflicts(context.Background(), "r1", monday, "11:00", "13:00")
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Empty(t, result.AcademicConflicts)
	assert.Empty(t, result.ReservationConflicts)
	assert.NotNil(t, result.AcademicConflicts)
	assert.NotNil(t, result.ReservationConflicts)
}

func TestFindConflictsIgnoresTerminalReservations(t *testing.T) {
	monday := date(t, "2025-03-03")

	reservations := &reservationRepoStub{reservations: []models.EventReservation{
		{RoomID: "r1", EventDate: monday, StartTime: "10:00", EndTime: "12:00", Status: models.StatusRejected},
		{RoomID: "r1", EventDate: monday, StartTime: "10:00", EndTime: "12:00", Status: models.StatusCancelled},
	}}

	svc := NewConflictService(&scheduleRepoStub{}, reservations, nil)

	result, err := svc.FindConflicts(context.Background(), "r1", monday, "10:00", "11:00")
	require.NoError(t, err)
	assert.False(t, result.HasConflict)
	assert.Equal(t, models.OccupyingStatuses, reservations.statuses)
}

func TestFindConflictsDerivesWeekdayFromDate(t *testing.T) {
	// 2025-03-09 is a Sunday.
	sunday := date(t, "2025-03-09")

	schedules := &scheduleRepoStub{blocks: []models.AcademicSchedule{
		{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"},
		{RoomID: "r1", CourseCode: "REL200", DayOfWeek: models.Sunday, StartTime: "09:00", EndTime: "11:00"},
	}}

	svc := NewConflictService(schedules, &reservationRepoStub{}, nil)

	result, err := svc.FindConflicts(context.Background(), "r1", sunday, "10:00", "11:00")
	require.NoError(t, err)
	require.Len(t, result.AcademicConflicts, 1)
	assert.Contains(t, result.AcademicConflicts[0], "REL200")
}

func TestFindConflictsRejectsInvalidWindow(t *testing.T) {
	svc := NewConflictService(&scheduleRepoStub{}, &reservationRepoStub{}, nil)
	monday := date(t, "2025-03-03")

	cases := []struct {
		name       string
		start, end string
	}{
		{"start after end", "14:00", "12:00"},
		{"zero length", "12:00", "12:00"},
		{"malformed start", "9:00", "11:00"},
		{"malformed end", "09:00", "25:00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FindConflicts(context.Background(), "r1", monday, tc.start, tc.end)
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
		})
	}
}

func TestHasConflictShortCircuitsOnAcademicConflict(t *testing.T) {
	monday := date(t, "2025-03-03")

	schedules := &scheduleRepoStub{blocks: []models.AcademicSchedule{
		{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"},
	}}
	reservations := &reservationRepoStub{}

	svc := NewConflictService(schedules, reservations, nil)

	conflict, err := svc.HasConflict(context.Background(), "r1", monday, "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, conflict)
	assert.Zero(t, reservations.calls)
}

func TestHasConflictMatchesFindConflicts(t *testing.T) {
	monday := date(t, "2025-03-03")

	schedules := &scheduleRepoStub{blocks: []models.AcademicSchedule{
		{RoomID: "r1", CourseCode: "CS101", DayOfWeek: models.Monday, StartTime: "09:00", EndTime: "11:00"},
	}}
	reservations := &reservationRepoStub{reservations: []models.EventReservation{
		{RoomID: "r1", EventDate: monday, StartTime: "15:00", EndTime: "17:00", Status: models.StatusApproved},
	}}

	svc := NewConflictService(schedules, reservations, nil)

	windows := []struct{ start, end string }{
		{"08:00", "09:00"},
		{"08:00", "09:30"},
		{"11:00", "12:00"},
		{"14:00", "15:00"},
		{"16:00", "18:00"},
	}
	for _, w := range windows {
		detailed, err := svc.FindConflicts(context.Background(), "r1", monday, w.start, w.end)
		require.NoError(t, err)
		boolean, err := svc.HasConflict(context.Background(), "r1", monday, w.start, w.end)
		require.NoError(t, err)
		assert.Equal(t, detailed.HasConflict, boolean, "window %s-%s", w.start, w.end)
	}
}

func TestFindConflictsWrapsStoreFailure(t *testing.T) {
	monday := date(t, "2025-03-03")
	svc := NewConflictService(&scheduleRepoStub{err: errors.New("boom")}, &reservationRepoStub{}, nil)

	_, err := svc.FindConflicts(context.Background(), "r1", monday, "10:00", "11:00")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}
