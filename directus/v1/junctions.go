package v1

import (
	"context"
	"strconv"

	"teamop.dk/bosted/model"
)

// JunctionEndpoint reads the many-to-many mapping collections. Rows are
// returned as sent; incomplete rows are the caller's to discard.
type JunctionEndpoint struct {
	client *DirectusClient
}

func (this *JunctionEndpoint) UserLocationUsers(ctx context.Context, userID string) ([]model.UserLocationUser, error) {
	return fetchItems[model.UserLocationUser](ctx, this.client, "userLocation_user", filterEq("user_id", userID))
}

func (this *JunctionEndpoint) UserLocationLocations(ctx context.Context, userLocationID int) ([]model.UserLocationLocation, error) {
	return fetchItems[model.UserLocationLocation](ctx, this.client, "userLocation_location",
		filterEq("userLocation_id", strconv.Itoa(userLocationID)))
}

func (this *JunctionEndpoint) ScheduleSubLocations(ctx context.Context) ([]model.ScheduleSubLocation, error) {
	return fetchItems[model.ScheduleSubLocation](ctx, this.client, "taskSchedule_subLocation", nil)
}

func (this *JunctionEndpoint) ScheduleUsers(ctx context.Context) ([]model.ScheduleUser, error) {
	return fetchItems[model.ScheduleUser](ctx, this.client, "taskSchedule_user", nil)
}

func (this *JunctionEndpoint) EventSubLocations(ctx context.Context) ([]model.EventSubLocation, error) {
	return fetchItems[model.EventSubLocation](ctx, this.client, "event_subLocation", nil)
}
