package core

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"teamop.dk/bosted/logging"
	"teamop.dk/bosted/model"
	"teamop.dk/bosted/utils"
)

// Enricher joins the normalized backend collections into display ready
// shifts and activities, optionally narrowed to one facility.
type Enricher struct {
	backend Backend
}

func NewEnricher(backend Backend) *Enricher {
	return &Enricher{backend: backend}
}

// ResolveUserLocation walks user -> userLocation -> location. Only the first
// complete junction row of each hop is used. A missing hop is not an error;
// ok is false and callers skip location filtering.
func (e *Enricher) ResolveUserLocation(ctx context.Context, email string) (locationID model.ID, ok bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", false, nil
	}

	users, err := e.backend.UsersByEmail(ctx, email)
	if err != nil {
		return "", false, err
	}
	user := utils.Find(users, func(u *model.User) bool { return u.Email == email })
	if user == nil {
		return "", false, nil
	}

	userLocations, err := e.backend.UserLocationUsers(ctx, user.ID)
	if err != nil {
		return "", false, err
	}
	userLocation, ok := model.FirstLink[string, int](userLocations)
	if !ok {
		return "", false, nil
	}

	locations, err := e.backend.UserLocationLocations(ctx, userLocation.Target)
	if err != nil {
		return "", false, err
	}
	location, ok := model.FirstLink[int, model.ID](locations)
	if !ok {
		return "", false, nil
	}

	return location.Target, true, nil
}

// GetShifts returns the "shift" rows of the task schedule with sub-location
// names and assigned staff attached. When userEmail resolves to a facility,
// shifts mapped only to sub-locations of other facilities are left out.
func (e *Enricher) GetShifts(ctx context.Context, userEmail string) ([]model.Shift, error) {
	locationID, filtering, err := e.ResolveUserLocation(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	var (
		subLocations []model.SubLocation
		rows         []model.Shift
		subLinks     []model.ScheduleSubLocation
		userLinks    []model.ScheduleUser
		users        []model.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { subLocations, err = e.backend.SubLocations(gctx); return })
	g.Go(func() (err error) { rows, err = e.backend.Schedules(gctx); return })
	g.Go(func() (err error) { subLinks, err = e.backend.ScheduleSubLocations(gctx); return })
	g.Go(func() (err error) { userLinks, err = e.backend.ScheduleUsers(gctx); return })
	g.Go(func() (err error) { users, err = e.backend.Users(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	subIndex := utils.IndexBy(subLocations, func(s model.SubLocation) model.ID { return s.ID })
	userIndex := utils.IndexBy(users, func(u model.User) string { return u.ID })
	subGroups := groupTargets(model.CompleteLinks[int, model.ID](subLinks))
	userGroups := groupTargets(model.CompleteLinks[int, string](userLinks))

	shifts := make([]model.Shift, 0, len(rows))
	for _, shift := range utils.Filter(rows, model.Shift.IsShift) {
		targets, mapped := subGroups[shift.ID]
		names, belongs := resolveSubLocations(targets, subIndex, locationID)

		// shifts are only dropped on an explicit mismatch
		if filtering && mapped && !belongs {
			continue
		}

		shift.SubLocationName = joinNames(names)
		shift.AssignedUsers = resolveUsers(userGroups[shift.ID], userIndex)
		shifts = append(shifts, shift)
	}

	logging.FromContext(ctx).Debug("enriched shifts",
		"rows", len(rows),
		"shifts", len(shifts),
		"location_filter", filtering,
	)
	return shifts, nil
}

// GetActivities returns events with their sub-location names attached. When
// userEmail resolves to a facility, events without any sub-location mapping
// are left out as well as events mapped elsewhere.
func (e *Enricher) GetActivities(ctx context.Context, userEmail string) ([]model.Activity, error) {
	locationID, filtering, err := e.ResolveUserLocation(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	var (
		subLocations []model.SubLocation
		events       []model.Activity
		subLinks     []model.EventSubLocation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { subLocations, err = e.backend.SubLocations(gctx); return })
	g.Go(func() (err error) { events, err = e.backend.Events(gctx); return })
	g.Go(func() (err error) { subLinks, err = e.backend.EventSubLocations(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	subIndex := utils.IndexBy(subLocations, func(s model.SubLocation) model.ID { return s.ID })
	subGroups := groupTargets(model.CompleteLinks[int, model.ID](subLinks))

	activities := make([]model.Activity, 0, len(events))
	for _, activity := range events {
		targets, mapped := subGroups[activity.ID]
		names, belongs := resolveSubLocations(targets, subIndex, locationID)

		if filtering && (!mapped || !belongs) {
			continue
		}

		activity.SubLocationName = joinNames(names)
		activities = append(activities, activity)
	}

	logging.FromContext(ctx).Debug("enriched activities",
		"rows", len(events),
		"activities", len(activities),
		"location_filter", filtering,
	)
	return activities, nil
}

func groupTargets[O comparable, T comparable](links []model.Link[O, T]) map[O][]T {
	groups := make(map[O][]T)
	for _, link := range links {
		groups[link.Owner] = append(groups[link.Owner], link.Target)
	}
	return groups
}

// resolveSubLocations looks up the mapped ids, skipping unknown ones, and
// reports whether any of them sits in locationID.
func resolveSubLocations(ids []model.ID, index map[model.ID]model.SubLocation, locationID model.ID) (names []string, belongs bool) {
	for _, id := range ids {
		sub, ok := index[id]
		if !ok {
			continue
		}
		names = append(names, sub.Name)
		if locationID != "" && sub.BelongsTo(locationID) {
			belongs = true
		}
	}
	return names, belongs
}

func resolveUsers(ids []string, index map[string]model.User) []model.User {
	var users []model.User
	for _, id := range ids {
		if user, ok := index[id]; ok {
			users = append(users, user)
		}
	}
	return utils.NilIfEmpty(users)
}

func joinNames(names []string) *string {
	return utils.StringOrNil(strings.Join(names, ", "))
}
