package core

import (
	"context"
	"slices"
	"time"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

// MainScreenActivities is how many upcoming activities the front page shows.
const MainScreenActivities = 3

func TodaysShifts(shifts []model.Shift, now time.Time) []model.Shift {
	return utils.Filter(shifts, func(s model.Shift) bool { return s.IsToday(now) })
}

// StaffOnShift collects the staff assigned to today's shifts, each user once,
// in the order they are first seen.
func StaffOnShift(shifts []model.Shift, now time.Time) []model.User {
	staff := make([]model.User, 0)
	seen := make(map[string]bool)
	for _, shift := range TodaysShifts(shifts, now) {
		for _, user := range shift.AssignedUsers {
			if seen[user.ID] {
				continue
			}
			seen[user.ID] = true
			staff = append(staff, user)
		}
	}
	return staff
}

// UpcomingActivities keeps activities that have not ended, earliest start
// first. limit <= 0 keeps all of them.
func UpcomingActivities(activities []model.Activity, now time.Time, limit int) []model.Activity {
	upcoming := utils.Filter(activities, func(a model.Activity) bool { return a.IsUpcoming(now) })

	slices.SortStableFunc(upcoming, func(a, b model.Activity) int {
		as, aerr := a.StartTime()
		bs, berr := b.StartTime()
		switch {
		case aerr != nil && berr != nil:
			return 0
		case aerr != nil:
			return 1
		case berr != nil:
			return -1
		}
		return as.Compare(bs)
	})

	if limit > 0 && len(upcoming) > limit {
		upcoming = upcoming[:limit]
	}
	return upcoming
}

// ScheduleService answers the questions the staff screens ask, on top of the
// enrichment pipeline.
type ScheduleService struct {
	enricher *Enricher
	now      func() time.Time
}

func NewScheduleService(enricher *Enricher) *ScheduleService {
	return &ScheduleService{enricher: enricher, now: time.Now}
}

func (s *ScheduleService) Shifts(ctx context.Context, userEmail string, todayOnly bool) ([]model.Shift, error) {
	shifts, err := s.enricher.GetShifts(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if todayOnly {
		return TodaysShifts(shifts, s.now()), nil
	}
	return shifts, nil
}

func (s *ScheduleService) StaffOnShift(ctx context.Context, userEmail string) ([]model.User, error) {
	shifts, err := s.enricher.GetShifts(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	return StaffOnShift(shifts, s.now()), nil
}

func (s *ScheduleService) Activities(ctx context.Context, userEmail string, upcomingOnly bool, limit int) ([]model.Activity, error) {
	activities, err := s.enricher.GetActivities(ctx, userEmail)
	if err != nil {
		return nil, err
	}
	if upcomingOnly {
		return UpcomingActivities(activities, s.now(), limit), nil
	}
	return activities, nil
}
