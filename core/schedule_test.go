package core

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

func at(value string) time.Time {
	t, err := utils.ParseLocalDateTime(value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTodaysShifts(t *testing.T) {
	shifts := []model.Shift{
		{ID: 1, StartDateTime: "2026-10-15T07:00:00"},
		{ID: 2, StartDateTime: "2026-10-16T07:00:00"},
		{ID: 3, StartDateTime: "2026-10-15T23:00:00"},
		{ID: 4, StartDateTime: "not a date"},
	}

	today := TodaysShifts(shifts, at("2026-10-15T12:00:00"))
	assert.Equal(t, []int{1, 3}, shiftIDs(today))
}

func TestStaffOnShiftDeduplicates(t *testing.T) {
	anna := model.User{ID: "u1", FirstName: utils.Ptr("Anna")}
	bo := model.User{ID: "u2", FirstName: utils.Ptr("Bo")}
	carl := model.User{ID: "u3", FirstName: utils.Ptr("Carl")}

	shifts := []model.Shift{
		{ID: 1, StartDateTime: "2026-10-15T07:00:00", AssignedUsers: []model.User{anna, bo}},
		{ID: 2, StartDateTime: "2026-10-15T15:00:00", AssignedUsers: []model.User{bo, anna}},
		{ID: 3, StartDateTime: "2026-10-14T15:00:00", AssignedUsers: []model.User{carl}},
	}

	staff := StaffOnShift(shifts, at("2026-10-15T12:00:00"))
	assert.Equal(t, []model.User{anna, bo}, staff)
}

func TestUpcomingActivities(t *testing.T) {
	activities := []model.Activity{
		{ID: 1, StartDateTime: "2026-10-15T14:00:00", EndDateTime: "2026-10-15T15:00:00"},
		{ID: 2, StartDateTime: "2026-10-15T08:00:00", EndDateTime: "2026-10-15T09:00:00"}, // ended
		{ID: 3, StartDateTime: "2026-10-15T10:00:00", EndDateTime: "2026-10-15T18:00:00"}, // running
		{ID: 4, StartDateTime: "2026-10-17T10:00:00", EndDateTime: "2026-10-17T11:00:00"},
		{ID: 5, StartDateTime: "2026-10-16T10:00:00", EndDateTime: "2026-10-16T11:00:00"},
	}
	now := at("2026-10-15T12:00:00")

	tests := []struct {
		name  string
		limit int
		want  []int
	}{
		{name: "all", limit: 0, want: []int{3, 1, 5, 4}},
		{name: "main screen", limit: MainScreenActivities, want: []int{3, 1, 5}},
		{name: "limit above count", limit: 10, want: []int{3, 1, 5, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, activityIDs(UpcomingActivities(activities, now, tt.limit)))
		})
	}
}

func TestScheduleService(t *testing.T) {
	backend := facility()
	backend.schedules = []model.Shift{
		{ID: 1, TaskType: "shift", StartDateTime: "2026-10-15T07:00:00"},
		{ID: 2, TaskType: "shift", StartDateTime: "2026-10-16T07:00:00"},
	}
	backend.scheduleUsers = []model.ScheduleUser{
		{ID: 1, ScheduleID: utils.Ptr(1), UserID: utils.Ptr("u1")},
		{ID: 2, ScheduleID: utils.Ptr(2), UserID: utils.Ptr("u2")},
	}
	backend.events = []model.Activity{
		{ID: 7, StartDateTime: "2026-10-15T08:00:00", EndDateTime: "2026-10-15T09:00:00"},
		{ID: 8, StartDateTime: "2026-10-15T13:00:00", EndDateTime: "2026-10-15T14:00:00"},
	}

	service := NewScheduleService(NewEnricher(backend))
	service.now = func() time.Time { return at("2026-10-15T12:00:00") }
	ctx := context.Background()

	today, err := service.Shifts(ctx, "", true)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, shiftIDs(today))

	all, err := service.Shifts(ctx, "", false)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, shiftIDs(all))

	staff, err := service.StaffOnShift(ctx, "")
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "u1", staff[0].ID)

	upcoming, err := service.Activities(ctx, "", true, MainScreenActivities)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, activityIDs(upcoming))
}

func TestExportShiftPlan(t *testing.T) {
	shifts := []model.Shift{
		{
			ID:              1,
			StartDateTime:   "2026-10-15T07:00:00",
			EndDateTime:     "2026-10-15T15:00:00",
			TaskDescription: utils.Ptr("Morgenvagt"),
			SubLocationName: utils.Ptr("Afdeling A"),
			AssignedUsers: []model.User{
				{ID: "u1", FirstName: utils.Ptr("Anna"), LastName: utils.Ptr("Jensen")},
				{ID: "u2", Email: "bo@example.dk"},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportShiftPlan(shifts, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(shiftPlanSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Personale", rows[0][5])
	assert.Equal(t, []string{"1", "2026-10-15T07:00:00", "2026-10-15T15:00:00", "Afdeling A", "Morgenvagt", "Anna Jensen, bo@example.dk"}, rows[1])
}

func TestExportShiftPlanCSV(t *testing.T) {
	shifts := []model.Shift{{ID: 4, StartDateTime: "2026-10-15T15:00:00", EndDateTime: "2026-10-15T23:00:00"}}

	var buf bytes.Buffer
	require.NoError(t, ExportShiftPlanCSV(shifts, &buf))

	assert.Equal(t, "ID,Start,Slut,Afdeling,Beskrivelse,Personale\n4,2026-10-15T15:00:00,2026-10-15T23:00:00,,,\n", buf.String())
}
