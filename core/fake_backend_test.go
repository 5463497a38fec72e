package core

import (
	"context"
	"sync/atomic"

	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

type fakeBackend struct {
	users                 []model.User
	subLocations          []model.SubLocation
	schedules             []model.Shift
	events                []model.Activity
	userLocationUsers     []model.UserLocationUser
	userLocationLocations []model.UserLocationLocation
	scheduleSubLocations  []model.ScheduleSubLocation
	scheduleUsers         []model.ScheduleUser
	eventSubLocations     []model.EventSubLocation

	failWith error
	failOn   string
	calls    atomic.Int32
}

func (f *fakeBackend) fail(name string) error {
	f.calls.Add(1)
	if f.failOn == name {
		return f.failWith
	}
	return nil
}

func (f *fakeBackend) Users(ctx context.Context) ([]model.User, error) {
	return f.users, f.fail("users")
}

func (f *fakeBackend) UsersByEmail(ctx context.Context, email string) ([]model.User, error) {
	matches := utils.Filter(f.users, func(u model.User) bool { return u.Email == email })
	return matches, f.fail("usersByEmail")
}

func (f *fakeBackend) SubLocations(ctx context.Context) ([]model.SubLocation, error) {
	return f.subLocations, f.fail("subLocations")
}

func (f *fakeBackend) Schedules(ctx context.Context) ([]model.Shift, error) {
	return f.schedules, f.fail("schedules")
}

func (f *fakeBackend) Events(ctx context.Context) ([]model.Activity, error) {
	return f.events, f.fail("events")
}

func (f *fakeBackend) UserLocationUsers(ctx context.Context, userID string) ([]model.UserLocationUser, error) {
	rows := utils.Filter(f.userLocationUsers, func(r model.UserLocationUser) bool {
		return r.UserID != nil && *r.UserID == userID
	})
	return rows, f.fail("userLocationUsers")
}

func (f *fakeBackend) UserLocationLocations(ctx context.Context, userLocationID int) ([]model.UserLocationLocation, error) {
	rows := utils.Filter(f.userLocationLocations, func(r model.UserLocationLocation) bool {
		return r.UserLocationID != nil && *r.UserLocationID == userLocationID
	})
	return rows, f.fail("userLocationLocations")
}

func (f *fakeBackend) ScheduleSubLocations(ctx context.Context) ([]model.ScheduleSubLocation, error) {
	return f.scheduleSubLocations, f.fail("scheduleSubLocations")
}

func (f *fakeBackend) ScheduleUsers(ctx context.Context) ([]model.ScheduleUser, error) {
	return f.scheduleUsers, f.fail("scheduleUsers")
}

func (f *fakeBackend) EventSubLocations(ctx context.Context) ([]model.EventSubLocation, error) {
	return f.eventSubLocations, f.fail("eventSubLocations")
}

// facility builds a backend where staff@example.dk works at location "loc-a",
// which has sub-location "sub-a". "sub-b" belongs to "loc-b".
func facility() *fakeBackend {
	return &fakeBackend{
		users: []model.User{
			{ID: "u1", FirstName: utils.Ptr("Anna"), LastName: utils.Ptr("Jensen"), Email: "staff@example.dk"},
			{ID: "u2", FirstName: utils.Ptr("Bo"), Email: "bo@example.dk"},
		},
		subLocations: []model.SubLocation{
			{ID: "sub-a", Name: "Afdeling A", Location: utils.Ptr[model.ID]("loc-a")},
			{ID: "sub-b", Name: "Afdeling B", Location: utils.Ptr[model.ID]("loc-b")},
		},
		userLocationUsers: []model.UserLocationUser{
			{ID: 1, UserID: utils.Ptr("u1"), UserLocationID: utils.Ptr(10)},
		},
		userLocationLocations: []model.UserLocationLocation{
			{ID: 1, UserLocationID: utils.Ptr(10), LocationID: utils.Ptr[model.ID]("loc-a")},
		},
	}
}
